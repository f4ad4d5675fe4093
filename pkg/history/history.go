// Package history implements the linear, branch-discarding undo/redo stack
// of committed raster snapshots.
package history

import (
	"image"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/adjust"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/raster"
)

// Entry pairs a committed raster snapshot with the adjustments that were
// live when it was committed, so shells can restore slider state on undo.
type Entry struct {
	Raster      *image.NRGBA
	Adjustments adjust.Adjustments
}

// History is an ordered sequence of entries plus a current index. The
// zero-th entry is the originally loaded image. Entries own their raster
// buffers exclusively: commits store deep copies and checkouts hand out
// deep copies, so no live mutation can corrupt a snapshot.
type History struct {
	entries []Entry
	index   int
}

// New creates a history whose single entry snapshots the given raster.
func New(base *image.NRGBA, a adjust.Adjustments) *History {
	return &History{
		entries: []Entry{{Raster: raster.Clone(base), Adjustments: a}},
	}
}

// Commit truncates every entry after the current index, appends a snapshot
// of r with the given adjustments, and advances the index to it. Redo
// branches are discarded, never merged.
func (h *History) Commit(r *image.NRGBA, a adjust.Adjustments) {
	h.entries = append(h.entries[:h.index+1], Entry{Raster: raster.Clone(r), Adjustments: a})
	h.index = len(h.entries) - 1
}

// Undo steps back one entry and returns the entry now current. At the
// oldest entry it is a no-op and reports false.
func (h *History) Undo() (Entry, bool) {
	if h.index == 0 {
		return Entry{}, false
	}
	h.index--
	return h.checkout(), true
}

// Redo steps forward one entry and returns the entry now current. At the
// newest entry it is a no-op and reports false.
func (h *History) Redo() (Entry, bool) {
	if h.index >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.index++
	return h.checkout(), true
}

// Current returns a copy of the entry at the current index.
func (h *History) Current() Entry {
	return h.checkout()
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the current 0-based index.
func (h *History) Index() int {
	return h.index
}

// CanUndo reports whether Undo would move the index.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether Redo would move the index.
func (h *History) CanRedo() bool {
	return h.index < len(h.entries)-1
}

func (h *History) checkout() Entry {
	e := h.entries[h.index]
	return Entry{Raster: raster.Clone(e.Raster), Adjustments: e.Adjustments}
}
