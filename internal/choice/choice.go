// Package choice builds the selectable port list for the device settings
// screen and maps each entry to a compact integer ID. The list is rebuilt on
// every visit to the screen and handed back to the configuration record via
// UpdateConfig when the user is done.
package choice

import (
	"sort"

	"github.com/glideconf/portsel/internal/devconf"
)

// ID identifies one list entry. The upper 16 bits carry the port type, the
// lower 16 bits a per-build sequence number that only keeps the ID unique.
// Entries of the static table instead use their table index, which is always
// below the reserved threshold.
type ID uint32

const seqBits = 16

// Encode packs a port type and a sequence number into an ID. seq must fit in
// 16 bits; callers hand in the current list length, which stays far below
// that.
func Encode(t devconf.PortType, seq int) ID {
	return ID(uint32(t)<<seqBits | uint32(seq&0xffff))
}

// Decode recovers the port type from an ID. IDs below staticSize are
// positional indexes into the static table; anything else carries the type in
// its high bits and the low bits are ignored.
func Decode(id ID, staticSize int) devconf.PortType {
	if n := int(id); n < staticSize && n < len(StaticPortTypes) {
		return StaticPortTypes[n].Type
	}
	return devconf.PortType(id >> seqBits)
}

// Entry is one selectable port. Key is the internal value (device path, MAC,
// UART index); Label is what the user sees.
type Entry struct {
	ID    ID
	Key   string
	Label string
	Help  string
}

// List is an ordered set of entries with at most one selected. The zero value
// is an empty list with nothing selected.
type List struct {
	entries  []Entry
	selected int // index+1, 0 = none
}

func (l *List) Count() int { return len(l.entries) }

// Entries returns the backing slice; callers must not modify it.
func (l *List) Entries() []Entry { return l.entries }

func (l *List) Add(e Entry) {
	l.entries = append(l.entries, e)
}

// Select marks the entry whose key matches, reporting whether one was found.
func (l *List) Select(key string) bool {
	for i, e := range l.entries {
		if e.Key == key {
			l.selected = i + 1
			return true
		}
	}
	return false
}

// SelectID marks the entry with the given ID.
func (l *List) SelectID(id ID) bool {
	for i, e := range l.entries {
		if e.ID == id {
			l.selected = i + 1
			return true
		}
	}
	return false
}

// Selected returns the selected entry, if any.
func (l *List) Selected() (Entry, bool) {
	if l.selected == 0 {
		return Entry{}, false
	}
	return l.entries[l.selected-1], true
}

// SortFrom orders entries[from:] by label, keeping the selection on the same
// entry. Used after appending a batch of detected devices.
func (l *List) SortFrom(from int) {
	var selID ID
	if e, ok := l.Selected(); ok {
		selID = e.ID
	}
	tail := l.entries[from:]
	sort.SliceStable(tail, func(i, j int) bool {
		return tail[i].Label < tail[j].Label
	})
	if l.selected > from {
		l.SelectID(selID)
	}
}
