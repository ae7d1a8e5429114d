package notes

import "time"

// SaveDelay is how long after the last edit an autosave fires.
const SaveDelay = 2 * time.Second

// NewNoteKey is the debounce key for an edit session with no note id yet.
const NewNoteKey = "new"

// Debouncer tracks a generation counter per key. Arming a key invalidates
// any timer armed for it earlier, so a fired timer is acted on only if its
// generation is still current. This gives exactly-once, last-write-wins
// debouncing on a single-threaded event loop without cancellable timers.
type Debouncer struct {
	gens map[string]int
}

func NewDebouncer() *Debouncer {
	return &Debouncer{gens: make(map[string]int)}
}

// Arm supersedes any pending timer for key and returns the generation the
// new timer must carry.
func (d *Debouncer) Arm(key string) int {
	d.gens[key]++
	return d.gens[key]
}

// Cancel invalidates any pending timer for key.
func (d *Debouncer) Cancel(key string) {
	if _, ok := d.gens[key]; ok {
		d.gens[key]++
	}
}

// CancelAll invalidates every pending timer.
func (d *Debouncer) CancelAll() {
	for key := range d.gens {
		d.gens[key]++
	}
}

// Valid reports whether a timer armed with gen for key is still current.
// Only generations handed out by Arm can be valid.
func (d *Debouncer) Valid(key string, gen int) bool {
	return gen > 0 && d.gens[key] == gen
}
