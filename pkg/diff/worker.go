package diff

import (
	"strings"
	"sync"
	"time"

	"github.com/coreseekdev/glyph/pkg/rope"
	znkrdiff "znkr.io/diff"
)

// Debounce timeouts for the accumulator below.
const (
	debounceSync  = 1 * time.Millisecond
	debounceAsync = 96 * time.Millisecond
	blockingWait  = 12 * time.Millisecond // timeout used when update_document(blocking=false)

	maxTotalLines = 64 * 65535
	maxBytesPerLine = 128
)

// destination identifies which side of the diff an event updates.
type destination int

const (
	destDocument destination = iota
	destBaseline
)

// event is one accumulator entry: a new text for one side of the diff,
// optionally carrying a render-lock request.
type event struct {
	text       *rope.Rope
	dest       destination
	renderLock bool // true = caller wants rendering held
	noTimeout  bool // true = "most synchronous": block until done
}

// Handle is the public, concurrency-safe handle to a running diff worker.
type Handle struct {
	eventCh chan event
	closeCh chan struct{}

	mu    sync.Mutex
	hunks []Hunk

	redrawCh chan struct{} // buffered(1); worker sends here to request a follow-up redraw

	renderLock sync.RWMutex // writer = render loop, reader = worker during a render-locked diff
}

// Start spawns the worker goroutine and returns a Handle, computing the
// initial diff synchronously before returning so the first Hunks() call
// never races an empty worker.
func Start(baseline, document *rope.Rope) *Handle {
	h := &Handle{
		eventCh:  make(chan event, 64),
		closeCh:  make(chan struct{}),
		redrawCh: make(chan struct{}, 1),
	}
	h.hunks = compute(baseline, document)
	go h.run(baseline, document)
	return h
}

// Close terminates the worker.
func (h *Handle) Close() {
	close(h.closeCh)
}

// LockForRender is called by the render loop before a redraw; it holds off
// any diff worker currently racing a render-lock timeout until release is
// called. The render loop is always the writer side of renderLock, so a
// worker's reader-side acquisition never starves it.
func (h *Handle) LockForRender() (release func()) {
	h.renderLock.Lock()
	return h.renderLock.Unlock
}

// RedrawRequested returns the channel the render loop should select on to
// learn that a diff finished after its render lock timed out. A diff that
// completes within the render lock sends nothing here.
func (h *Handle) RedrawRequested() <-chan struct{} { return h.redrawCh }

// Hunks returns a snapshot of the current hunk list.
func (h *Handle) Hunks() []Hunk {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Hunk, len(h.hunks))
	copy(out, h.hunks)
	return out
}

// HunkAt returns the hunk covering line, if any.
func (h *Handle) HunkAt(line uint32) (Hunk, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := hunkAt(h.hunks, line)
	if i < 0 {
		return Hunk{}, false
	}
	return h.hunks[i], true
}

// NextHunk returns the first hunk after line, if any.
func (h *Handle) NextHunk(line uint32) (Hunk, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := nextHunk(h.hunks, line)
	if i < 0 {
		return Hunk{}, false
	}
	return h.hunks[i], true
}

// PrevHunk returns the last hunk before line, if any.
func (h *Handle) PrevHunk(line uint32) (Hunk, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := prevHunk(h.hunks, line)
	if i < 0 {
		return Hunk{}, false
	}
	return h.hunks[i], true
}

// NthHunk returns the nth hunk (0-indexed), if in range.
func (h *Handle) NthHunk(n int) (Hunk, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n < 0 || n >= len(h.hunks) {
		return Hunk{}, false
	}
	return h.hunks[n], true
}

// UpdateDocument is called from the render loop with the new document
// content. It always requests the render lock, since this is a render-loop
// update and the recomputed hunks should land before the next redraw when
// possible. When blocking is true, the caller asks that rendering be held
// until the recomputation actually completes, however long that takes; when
// false, rendering is held only for the short blockingWait timeout before
// falling back to stale hunks and a follow-up redraw.
func (h *Handle) UpdateDocument(r *rope.Rope, blocking bool) {
	h.send(event{text: r, dest: destDocument, renderLock: true, noTimeout: blocking})
}

// UpdateBaseline is called when the VCS baseline changes (e.g. after a
// commit or checkout). It never blocks rendering.
func (h *Handle) UpdateBaseline(r *rope.Rope) {
	h.send(event{text: r, dest: destBaseline})
}

func (h *Handle) send(e event) {
	select {
	case h.eventCh <- e:
	case <-h.closeCh:
	}
}

func (h *Handle) run(baseline, document *rope.Rope) {
	for {
		select {
		case first, ok := <-h.eventCh:
			if !ok {
				return
			}
			baseline, document = h.debounceAndApply(first, baseline, document)
		case <-h.closeCh:
			return
		}
	}
}

// debounceAndApply implements the accumulator: coalesce events destined for
// the same side, using the most synchronous requested timeout, until the
// debounce window closes with no further input, then recompute.
func (h *Handle) debounceAndApply(first event, baseline, document *rope.Rope) (*rope.Rope, *rope.Rope) {
	pending := map[destination]*rope.Rope{first.dest: first.text}
	noTimeout := first.noTimeout
	renderLocked := first.renderLock

	timer := time.NewTimer(h.currentTimeout(renderLocked, noTimeout))
	defer timer.Stop()

	for {
		select {
		case e, ok := <-h.eventCh:
			if !ok {
				break
			}
			pending[e.dest] = e.text
			if e.renderLock {
				renderLocked = true
			}
			if e.noTimeout {
				noTimeout = true
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(h.currentTimeout(renderLocked, noTimeout))
			continue
		case <-timer.C:
		case <-h.closeCh:
			return baseline, document
		}
		break
	}

	if b, ok := pending[destBaseline]; ok {
		baseline = b
	}
	if d, ok := pending[destDocument]; ok {
		document = d
	}

	h.recompute(baseline, document, renderLocked, noTimeout)
	return baseline, document
}

// currentTimeout picks the debounce window: while a render-lock request is
// pending, use the short sync window; otherwise the long async one. A
// no-timeout request always wins and fires the timer immediately.
func (h *Handle) currentTimeout(renderLocked, noTimeout bool) time.Duration {
	if noTimeout {
		return 0
	}
	if renderLocked {
		return debounceSync
	}
	return debounceAsync
}

// recompute runs the diff, optionally racing a render-lock timeout, and
// atomically swaps in the new hunk list. When noTimeout is set the render
// lock is taken unconditionally (no race, no fallback): the caller asked for
// rendering to be held until this recomputation finishes, however long that
// takes.
func (h *Handle) recompute(baseline, document *rope.Rope, renderLocked, noTimeout bool) {
	if renderLocked {
		if noTimeout {
			h.renderLock.RLock()
			defer h.renderLock.RUnlock()
			h.doCompute(baseline, document)
			return
		}
		release, ok := h.tryAcquireReadWithin(blockingWait)
		if !ok {
			h.doCompute(baseline, document)
			select {
			case h.redrawCh <- struct{}{}:
			default:
			}
			return
		}
		defer release()
	}
	h.doCompute(baseline, document)
}

// tryAcquireReadWithin attempts to take the render lock's read side within
// d; it returns ok=false on timeout, in which case rendering proceeds with
// stale hunks and a follow-up redraw is requested once the recomputation
// eventually lands. sync.RWMutex.RLock cannot be canceled once called, so on
// timeout a goroutine is left to pick up the lock whenever it is eventually
// granted and release it immediately — otherwise a lock acquired after the
// caller gave up would never be unlocked.
func (h *Handle) tryAcquireReadWithin(d time.Duration) (release func(), ok bool) {
	acquired := make(chan struct{})
	go func() {
		h.renderLock.RLock()
		close(acquired)
	}()
	select {
	case <-acquired:
		return h.renderLock.RUnlock, true
	case <-time.After(d):
		go func() {
			<-acquired
			h.renderLock.RUnlock()
		}()
		return nil, false
	}
}

func (h *Handle) doCompute(baseline, document *rope.Rope) {
	hunks := compute(baseline, document)
	h.mu.Lock()
	h.hunks = hunks
	h.mu.Unlock()
}

// compute runs the line-level diff, bailing out to a nil (empty) hunk list
// above the size caps and returning hunks sorted by position.
func compute(baseline, document *rope.Rope) []Hunk {
	if baseline == nil || document == nil {
		return nil
	}
	totalLines := baseline.LineCount() + document.LineCount()
	if totalLines > maxTotalLines {
		return nil
	}
	totalBytes := baseline.LengthBytes() + document.LengthBytes()
	if totalBytes > totalLines*maxBytesPerLine {
		return nil
	}

	beforeLines := linesOf(baseline)
	afterLines := linesOf(document)

	raw := znkrdiff.HunksFunc(beforeLines, afterLines, func(a, b string) bool { return a == b }, znkrdiff.Context(0))

	hunks := make([]Hunk, 0, len(raw))
	for _, rh := range raw {
		hunks = append(hunks, Hunk{
			Before: Range{Start: uint32(rh.PosX), End: uint32(rh.EndX)},
			After:  Range{Start: uint32(rh.PosY), End: uint32(rh.EndY)},
		})
	}
	sortHunks(hunks)
	return hunks
}

func linesOf(r *rope.Rope) []string {
	n := r.LineCount()
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line := strings.TrimSuffix(r.LineWithEnding(i), "\n")
		line = strings.TrimSuffix(line, "\r")
		lines = append(lines, line)
	}
	return lines
}
