package keymap

import (
	"sort"
	"strings"
)

// Node is a child of a KeyTrie: either a terminal (one command name, or a
// sequence of command names) or a nested KeyTrie. Exactly one of Commands
// or Trie is set.
type Node struct {
	Commands []string
	Trie     *KeyTrie
}

// CommandNode builds a terminal Node bound to a single command.
func CommandNode(name string) Node {
	return Node{Commands: []string{name}}
}

// SequenceNode builds a terminal Node bound to an ordered command sequence.
func SequenceNode(names ...string) Node {
	return Node{Commands: names}
}

// TrieNode builds a Node wrapping a nested KeyTrie.
func TrieNode(t *KeyTrie) Node {
	return Node{Trie: t}
}

// IsTerminal reports whether n is a command (or command sequence) rather
// than a nested sub-trie.
func (n Node) IsTerminal() bool {
	return n.Trie == nil
}

// KeyTrie is an internal node: a description, a sticky flag, and a map of
// outgoing KeyEvent edges to child Nodes.
type KeyTrie struct {
	Description string
	Sticky      bool
	Children    map[KeyEvent]Node
}

// NewKeyTrie creates a non-sticky KeyTrie with the given description.
func NewKeyTrie(description string) *KeyTrie {
	return &KeyTrie{Description: description, Children: make(map[KeyEvent]Node)}
}

// NewStickyKeyTrie creates a sticky KeyTrie with the given description.
func NewStickyKeyTrie(description string) *KeyTrie {
	t := NewKeyTrie(description)
	t.Sticky = true
	return t
}

// Bind adds or overwrites an outgoing edge.
func (t *KeyTrie) Bind(k KeyEvent, n Node) {
	t.Children[k] = n
}

// Traverse walks path from t. n=0 returns t itself wrapped as a Node. A
// path that resolves to a terminal returns it; one that runs out of path
// inside a sub-trie returns that sub-trie; an unknown edge returns
// (Node{}, false).
func (t *KeyTrie) Traverse(path []KeyEvent) (Node, bool) {
	if len(path) == 0 {
		return TrieNode(t), true
	}
	child, ok := t.Children[path[0]]
	if !ok {
		return Node{}, false
	}
	if child.IsTerminal() {
		return child, true
	}
	return child.Trie.Traverse(path[1:])
}

// Merge merges other into t in place: for each (k, v) in other, if k is
// absent from t it's inserted; if both sides hold a sub-trie at k they
// recurse; otherwise other's value replaces t's.
func (t *KeyTrie) Merge(other *KeyTrie) {
	for k, otherChild := range other.Children {
		if !otherChild.IsTerminal() {
			if selfChild, ok := t.Children[k]; ok && !selfChild.IsTerminal() {
				selfChild.Trie.Merge(otherChild.Trie)
				continue
			}
		}
		t.Children[k] = otherChild
	}
}

// InfoRow is one rendered row of an infobox: the comma-joined key events
// that share a description, and that description.
type InfoRow struct {
	Keys        string
	Description string
}

// InfoboxContents groups t's children by identical description into rows,
// sorts keys within a row, and sorts rows by lowercased first key (with
// lowercase sorting before uppercase of the same letter).
func (t *KeyTrie) InfoboxContents() (string, []InfoRow) {
	type group struct {
		keys []string
		desc string
	}
	var groups []group

	for k, child := range t.Children {
		var desc string
		if child.IsTerminal() {
			if len(child.Commands) > 0 && child.Commands[0] == "no_op" {
				continue
			}
			if len(child.Commands) == 1 {
				desc = child.Commands[0]
			} else {
				desc = "[Multiple commands]"
			}
		} else {
			desc = child.Trie.Description
		}

		placed := false
		for i := range groups {
			if groups[i].desc == desc {
				groups[i].keys = append(groups[i].keys, k.String())
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, group{keys: []string{k.String()}, desc: desc})
		}
	}

	for i := range groups {
		sortKeyStrings(groups[i].keys)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].keys[0]) < strings.ToLower(groups[j].keys[0])
	})
	// Lowercase sorts before uppercase of the same letter.
	for x, y := 0, 1; y < len(groups); x, y = y, y+1 {
		xk, yk := groups[x].keys[0], groups[y].keys[0]
		if strings.ToLower(xk) == strings.ToLower(yk) && xk < yk {
			groups[x], groups[y] = groups[y], groups[x]
		}
	}

	rows := make([]InfoRow, len(groups))
	for i, g := range groups {
		joined := ""
		for j, k := range g.keys {
			if j > 0 {
				joined += ", "
			}
			joined += k
		}
		rows[i] = InfoRow{Keys: joined, Description: g.desc}
	}
	return t.Description, rows
}
