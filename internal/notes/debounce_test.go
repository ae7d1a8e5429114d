package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerArmSupersedes(t *testing.T) {
	d := NewDebouncer()

	first := d.Arm("note-1")
	assert.True(t, d.Valid("note-1", first))

	second := d.Arm("note-1")
	assert.False(t, d.Valid("note-1", first), "earlier timer must be superseded")
	assert.True(t, d.Valid("note-1", second))
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	d := NewDebouncer()

	a := d.Arm("note-a")
	b := d.Arm("note-b")

	d.Arm("note-a")
	assert.False(t, d.Valid("note-a", a))
	assert.True(t, d.Valid("note-b", b))
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer()

	gen := d.Arm("note-1")
	d.Cancel("note-1")
	assert.False(t, d.Valid("note-1", gen))

	// Cancelling an unknown key must not make a later zero-gen tick valid.
	d.Cancel("never-armed")
	assert.False(t, d.Valid("never-armed", 0))
}

func TestDebouncerCancelAll(t *testing.T) {
	d := NewDebouncer()

	a := d.Arm("note-a")
	b := d.Arm("note-b")
	d.CancelAll()

	assert.False(t, d.Valid("note-a", a))
	assert.False(t, d.Valid("note-b", b))
}
