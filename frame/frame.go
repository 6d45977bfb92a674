// Package frame provides the per-frame scheduling primitive the engine runs on.
//
// A Loop never starts goroutines. The host calls Frame once per animation
// frame, on the same goroutine that applies edits, so callbacks and edits
// interleave but never overlap.
package frame

// Scheduler runs callbacks once per frame until they are cancelled.
type Scheduler interface {
	// Every registers fn to run on each frame. The returned cancel func stops
	// it; calling cancel more than once, or from inside fn, is safe.
	Every(fn func()) (cancel func())
}

type entry struct {
	id uint64
	fn func()
}

// Loop is a Scheduler driven by explicit Frame calls.
type Loop struct {
	entries []entry
	nextID  uint64
	frames  uint64
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Every implements Scheduler.
func (l *Loop) Every(fn func()) func() {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, entry{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *Loop) remove(id uint64) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *Loop) active(id uint64) bool {
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// Frame runs every registered callback once in registration order. Callbacks
// registered during the frame first run on the next one; callbacks cancelled
// during the frame are skipped if they have not run yet.
func (l *Loop) Frame() {
	l.frames++
	pending := append([]entry(nil), l.entries...)
	for _, e := range pending {
		if l.active(e.id) {
			e.fn()
		}
	}
}

// Pending returns how many callbacks are registered.
func (l *Loop) Pending() int {
	return len(l.entries)
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// RunUntilIdle calls Frame until no callbacks remain or max frames have run,
// returning the number of frames executed.
func (l *Loop) RunUntilIdle(max int) int {
	n := 0
	for n < max && len(l.entries) > 0 {
		l.Frame()
		n++
	}
	return n
}
