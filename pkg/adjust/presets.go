package adjust

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Preset is a named, sparse set of adjustment overrides. Nil fields are left
// at the base value when merging, so applying a preset replaces only the
// channels it names.
type Preset struct {
	Name       string   `yaml:"name"`
	Brightness *float64 `yaml:"brightness,omitempty"`
	Contrast   *float64 `yaml:"contrast,omitempty"`
	Saturation *float64 `yaml:"saturation,omitempty"`
	Blur       *float64 `yaml:"blur,omitempty"`
	HueRotate  *float64 `yaml:"hueRotate,omitempty"`
	Sepia      *float64 `yaml:"sepia,omitempty"`
	Grayscale  *float64 `yaml:"grayscale,omitempty"`
}

// Merge overlays the preset onto base, overwriting only the fields the
// preset specifies.
func (p Preset) Merge(base Adjustments) Adjustments {
	out := base
	if p.Brightness != nil {
		out.Brightness = *p.Brightness
	}
	if p.Contrast != nil {
		out.Contrast = *p.Contrast
	}
	if p.Saturation != nil {
		out.Saturation = *p.Saturation
	}
	if p.Blur != nil {
		out.Blur = *p.Blur
	}
	if p.HueRotate != nil {
		out.HueRotate = *p.HueRotate
	}
	if p.Sepia != nil {
		out.Sepia = *p.Sepia
	}
	if p.Grayscale != nil {
		out.Grayscale = *p.Grayscale
	}
	return out
}

func fp(v float64) *float64 { return &v }

// Builtin returns the built-in filter presets.
func Builtin() []Preset {
	return []Preset{
		{Name: "clarendon", Contrast: fp(120), Saturation: fp(125)},
		{Name: "gingham", Brightness: fp(105), HueRotate: fp(-10)},
		{Name: "moon", Grayscale: fp(100), Contrast: fp(110), Brightness: fp(110)},
		{Name: "lark", Contrast: fp(90), Brightness: fp(115), Saturation: fp(110)},
		{Name: "reyes", Sepia: fp(22), Brightness: fp(110), Contrast: fp(85), Saturation: fp(75)},
		{Name: "juno", Contrast: fp(112), Brightness: fp(108), Saturation: fp(140)},
		{Name: "slumber", Saturation: fp(66), Brightness: fp(105)},
		{Name: "crema", Sepia: fp(20), Contrast: fp(125), Brightness: fp(115), Saturation: fp(90)},
		{Name: "nashville", Sepia: fp(20), Contrast: fp(120), Brightness: fp(105), Saturation: fp(120)},
	}
}

// LoadPresets parses a YAML preset pack: a sequence of preset records, each
// with a unique non-empty name.
func LoadPresets(r io.Reader) ([]Preset, error) {
	var out []Preset
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse preset pack: %w", err)
	}
	seen := map[string]bool{}
	for i, p := range out {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return out, nil
}

// Lookup finds a preset by name, searching the given sets in order.
func Lookup(name string, sets ...[]Preset) (Preset, bool) {
	for _, set := range sets {
		for _, p := range set {
			if p.Name == name {
				return p, true
			}
		}
	}
	return Preset{}, false
}
