package adjust

import (
	"image"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/markup"
)

// Bake flattens the live preview state into one fresh raster: src rendered
// through the ordered filter chain with any uncommitted strokes replayed on
// top. Callers that bake are expected to reset their live adjustments to
// Defaults afterwards, since the result already carries them.
func Bake(src *image.NRGBA, a Adjustments, strokes []markup.Stroke) (*image.NRGBA, error) {
	out, err := Apply(src, a)
	if err != nil {
		return nil, err
	}
	markup.Rasterize(out, strokes)
	return out, nil
}
