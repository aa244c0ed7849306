package cmd

import "fmt"

// runGrammar implements the "--grammar {fetch|build}" flag. Tree-sitter
// grammar compilation is explicitly out of spec.md §1's scope ("No
// language-grammar compilation"); this validates the action name and
// reports that clearly rather than silently accepting an action it can't
// perform.
func runGrammar(action string) error {
	switch action {
	case "fetch", "build":
		fmt.Printf("grammar %s: not supported by this build (grammar compilation is out of scope)\n", action)
		return nil
	default:
		return fmt.Errorf("invalid --grammar action %q, want \"fetch\" or \"build\"", action)
	}
}
