// Package session is the editing controller: it owns the working raster,
// the undo/redo history, the live preview state, and the tool mode, and it
// sequences every operation the editor shell can trigger.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/adjust"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/bgremove"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/codec"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/history"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/markup"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/raster"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/retouch"
	"github.com/asitkhanda/Thebasicimageeditor/pkg/transform"
)

// Mode names the active tool surface. Exactly one mode is active at a time.
type Mode int

const (
	ModeIdle Mode = iota
	ModeCrop
	ModeAdjust
	ModeFilter
	ModeDraw
	ModeRepair
	ModeRemoveBackground
	ModeCompress
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeCrop:
		return "crop"
	case ModeAdjust:
		return "adjust"
	case ModeFilter:
		return "filter"
	case ModeDraw:
		return "draw"
	case ModeRepair:
		return "repair"
	case ModeRemoveBackground:
		return "remove-background"
	case ModeCompress:
		return "compress"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ErrWrongMode reports an operation invoked outside the tool mode that owns
// it.
var ErrWrongMode = errors.New("session: operation not available in current mode")

// ErrSuperseded reports an async result discarded because the session state
// changed while the work was in flight.
var ErrSuperseded = errors.New("session: result superseded by newer edit")

// ErrUnknownPreset reports a preset name not found in any loaded pack.
var ErrUnknownPreset = errors.New("session: unknown preset")

// Remover runs background removal on a raster. Satisfied by
// *bgremove.Client.
type Remover interface {
	Remove(ctx context.Context, img *image.NRGBA, progress bgremove.ProgressFunc) (*image.NRGBA, error)
}

// Session drives one image through the editing pipeline. It is not safe for
// concurrent use; the shell serializes calls onto it.
type Session struct {
	hist *history.History
	base *image.NRGBA // raster at the current history position

	live        adjust.Adjustments // uncommitted slider state
	lastApplied adjust.Adjustments // base for preset merges

	cur     *markup.Stroke // stroke in progress, Draw mode only
	pending transform.CropSpec

	presets []adjust.Preset
	remover Remover

	mode  Mode
	gen   uint64 // bumped on every state change; stale async work is dropped
	debug bool
}

// New starts a session on the given raster. The raster is cloned; the
// caller's buffer is never touched.
func New(base *image.NRGBA) *Session {
	b := raster.Clone(base)
	live := adjust.Defaults()
	return &Session{
		hist:        history.New(b, live),
		base:        b,
		live:        live,
		lastApplied: live,
		presets:     adjust.Builtin(),
	}
}

// Open decodes uploaded image bytes and starts a session on the result.
// JPEGs with an EXIF orientation are rotated upright first.
func Open(data []byte) (*Session, error) {
	img, format, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	if format == "jpeg" {
		img = transform.AutoOrient(img, codec.Orientation(data))
	}
	return New(img), nil
}

// SetRemover installs the background removal client.
func (s *Session) SetRemover(r Remover) { s.remover = r }

// SetDebug toggles verbose logging.
func (s *Session) SetDebug(on bool) { s.debug = on }

// AddPresets appends a loaded preset pack. Later packs shadow earlier ones
// on name lookup.
func (s *Session) AddPresets(ps []adjust.Preset) {
	s.presets = append(ps, s.presets...)
}

// Mode returns the active tool mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode switches the active tool. Leaving Draw finishes any stroke in
// progress. Entering Crop first bakes uncommitted adjustments into the
// raster, since the crop engine works on flattened pixels.
func (s *Session) SetMode(m Mode) error {
	if m == s.mode {
		return nil
	}
	if s.mode == ModeDraw && s.cur != nil {
		if err := s.EndStroke(); err != nil {
			return err
		}
	}
	if m == ModeCrop && !s.live.IsDefault() {
		if err := s.bakeLive(); err != nil {
			return err
		}
	}
	s.debugf("mode %s -> %s", s.mode, m)
	s.mode = m
	return nil
}

// bakeLive flattens the live adjustments into the raster and commits.
func (s *Session) bakeLive() error {
	baked, err := adjust.Apply(s.base, s.live)
	if err != nil {
		return err
	}
	s.commit(baked, s.live)
	s.lastApplied = s.live
	s.live = adjust.Defaults()
	return nil
}

// commit installs r as the working raster and snapshots it.
func (s *Session) commit(r *image.NRGBA, a adjust.Adjustments) {
	s.base = r
	s.hist.Commit(r, a)
	s.gen++
}

// Raster returns a copy of the working raster at the current history
// position, without live adjustments.
func (s *Session) Raster() *image.NRGBA {
	return raster.Clone(s.base)
}

// Adjustments returns the live slider state.
func (s *Session) Adjustments() adjust.Adjustments { return s.live }

// SetAdjustments replaces the live slider state. Preview-only until
// ApplyAdjustments commits it.
func (s *Session) SetAdjustments(a adjust.Adjustments) {
	s.live = a
}

// Preview renders the working raster through the live adjustments, with the
// stroke in progress replayed on top. Always a fresh buffer.
func (s *Session) Preview() (*image.NRGBA, error) {
	return adjust.Bake(s.base, s.live, s.pendingStrokes())
}

func (s *Session) pendingStrokes() []markup.Stroke {
	if s.cur == nil {
		return nil
	}
	return []markup.Stroke{*s.cur}
}

// ApplyAdjustments commits the live slider state into the raster. A default
// (identity) state is a no-op.
func (s *Session) ApplyAdjustments() error {
	if s.live.IsDefault() {
		return nil
	}
	return s.bakeLive()
}

// ApplyPreset merges the named preset onto the most recently applied
// adjustments and commits the result. Unspecified channels keep their
// last applied value, so stacking presets composes rather than resets.
func (s *Session) ApplyPreset(name string) error {
	p, ok := adjust.Lookup(name, s.presets)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	merged := p.Merge(s.lastApplied)
	baked, err := adjust.Apply(s.base, merged)
	if err != nil {
		return err
	}
	s.commit(baked, merged)
	s.lastApplied = merged
	s.live = adjust.Defaults()
	return nil
}

// BeginStroke starts a freehand stroke at (x, y). colorSpec is a hex color
// like "#d33" or a named color.
func (s *Session) BeginStroke(colorSpec string, width, x, y float64) error {
	if s.mode != ModeDraw {
		return ErrWrongMode
	}
	c, err := markup.ParseHexColor(colorSpec)
	if err != nil {
		return err
	}
	s.cur = &markup.Stroke{
		Points: []markup.Point{{X: x, Y: y}},
		Color:  c,
		Width:  width,
	}
	return nil
}

// ExtendStroke appends a vertex to the stroke in progress. Points are kept
// in arrival order.
func (s *Session) ExtendStroke(x, y float64) error {
	if s.cur == nil {
		return ErrWrongMode
	}
	s.cur.Points = append(s.cur.Points, markup.Point{X: x, Y: y})
	return nil
}

// EndStroke rasterizes the stroke in progress onto the working raster and
// commits it as one history entry.
func (s *Session) EndStroke() error {
	if s.cur == nil {
		return ErrWrongMode
	}
	out := raster.Clone(s.base)
	markup.Rasterize(out, []markup.Stroke{*s.cur})
	s.cur = nil
	s.commit(out, s.live)
	return nil
}

// SpotHeal blurs a disc of the given radius around (x, y) and commits. Each
// tap is its own history entry.
func (s *Session) SpotHeal(x, y, radius int) error {
	if s.mode != ModeRepair {
		return ErrWrongMode
	}
	out := retouch.BoxBlurRegion(raster.Clone(s.base), x, y, radius, 0)
	s.commit(out, s.live)
	return nil
}

// RemoveRedEye desaturates red-cast pixels in a disc around (x, y) and
// commits.
func (s *Session) RemoveRedEye(x, y, radius int) error {
	if s.mode != ModeRepair {
		return ErrWrongMode
	}
	out := retouch.DesaturateRedEye(raster.Clone(s.base), x, y, radius)
	s.commit(out, s.live)
	return nil
}

// RemoveColor keys out every pixel near the given color and commits.
func (s *Session) RemoveColor(colorSpec string, tolerance float64) error {
	if s.mode != ModeRepair {
		return ErrWrongMode
	}
	c, err := markup.ParseHexColor(colorSpec)
	if err != nil {
		return err
	}
	out := retouch.ChromaKeyRemove(raster.Clone(s.base), c, tolerance)
	s.commit(out, s.live)
	return nil
}

// SetRotation updates the pending crop rotation. Preview-only until
// ApplyCrop commits.
func (s *Session) SetRotation(degrees float64) error {
	if s.mode != ModeCrop {
		return ErrWrongMode
	}
	s.pending.Rotation = degrees
	return nil
}

// SetFlip updates the pending mirror flags.
func (s *Session) SetFlip(horizontal, vertical bool) error {
	if s.mode != ModeCrop {
		return ErrWrongMode
	}
	s.pending.FlipH = horizontal
	s.pending.FlipV = vertical
	return nil
}

// CropPreview renders the working raster through the pending rotation and
// flips, without extraction.
func (s *Session) CropPreview() (*image.NRGBA, error) {
	if s.mode != ModeCrop {
		return nil, ErrWrongMode
	}
	return transform.Render(s.base, s.pending.Rotation, s.pending.FlipH, s.pending.FlipV), nil
}

// ApplyCrop extracts the given rectangle from the transformed raster and
// commits. The rectangle is clamped to the rotated bounds first. Zero width
// and height commits the rotate/flip alone. The pending transform resets to
// identity afterwards.
func (s *Session) ApplyCrop(x, y, width, height int) error {
	if s.mode != ModeCrop {
		return ErrWrongMode
	}
	spec := s.pending
	spec.X, spec.Y = x, y
	spec.Width, spec.Height = width, height
	b := s.base.Bounds()
	spec = spec.Clamp(b.Dx(), b.Dy())
	out, err := transform.Crop(s.base, spec)
	if err != nil {
		return err
	}
	s.commit(out, s.live)
	s.pending = transform.CropSpec{}
	return nil
}

// RemoveBackground sends the working raster to the removal service and
// commits the matte result. If any other edit lands while the request is in
// flight, the result is discarded and ErrSuperseded returned.
func (s *Session) RemoveBackground(ctx context.Context, progress bgremove.ProgressFunc) error {
	if s.remover == nil {
		return fmt.Errorf("session: no background removal service configured")
	}
	started := s.gen
	out, err := s.remover.Remove(ctx, raster.Clone(s.base), progress)
	if err != nil {
		return err
	}
	if s.gen != started {
		s.debugf("dropping stale removal result (gen %d != %d)", started, s.gen)
		return ErrSuperseded
	}
	s.commit(out, s.live)
	return nil
}

// Undo steps the history back one entry and restores the raster and slider
// state from it. Reports whether anything changed.
func (s *Session) Undo() bool {
	e, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.restore(e)
	return true
}

// Redo steps the history forward one entry. Reports whether anything
// changed.
func (s *Session) Redo() bool {
	e, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.restore(e)
	return true
}

func (s *Session) restore(e history.Entry) {
	s.base = e.Raster
	s.lastApplied = e.Adjustments
	s.live = adjust.Defaults()
	s.cur = nil
	s.gen++
}

// CanUndo reports whether an older entry exists.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a newer entry exists.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// HistoryLen returns the number of committed entries.
func (s *Session) HistoryLen() int { return s.hist.Len() }

// Export flattens the session state and encodes it in the requested
// format.
func (s *Session) Export(f codec.Format, quality int) ([]byte, error) {
	flat, err := adjust.Bake(s.base, s.live, s.pendingStrokes())
	if err != nil {
		return nil, err
	}
	return codec.Encode(flat, f, quality)
}

// Compare reports size and quality metrics for exporting the current state
// at the given format and quality, for the compression preview.
func (s *Session) Compare(f codec.Format, quality int) (codec.Comparison, error) {
	flat, err := adjust.Bake(s.base, s.live, s.pendingStrokes())
	if err != nil {
		return codec.Comparison{}, err
	}
	return codec.Compare(flat, f, quality)
}

func (s *Session) debugf(format string, args ...any) {
	if s.debug {
		log.Printf("session: "+format, args...)
	}
}
