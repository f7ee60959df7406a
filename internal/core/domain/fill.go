package domain

import "encoding/json"

// PaintType identifies the kind of paint a fill applies.
type PaintType string

// Paint types as reported by the design service.
const (
	PaintSolid           PaintType = "SOLID"
	PaintImage           PaintType = "IMAGE"
	PaintGradientLinear  PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial  PaintType = "GRADIENT_RADIAL"
	PaintGradientAngular PaintType = "GRADIENT_ANGULAR"
	PaintGradientDiamond PaintType = "GRADIENT_DIAMOND"
	PaintVideo           PaintType = "VIDEO"
	PaintEmoji           PaintType = "EMOJI"
)

// IsImage reports whether the paint references a raster image.
func (t PaintType) IsImage() bool {
	return t == PaintImage
}

// Color is an RGBA colour with channels in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// GradientStop is a single colour stop along a gradient axis.
type GradientStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Fill is a paint applied to a node. For image fills, the resolution
// pipeline populates ImageURL and either ImageData (inline data URI) or
// Oversized once the bytes have been fetched and sized.
type Fill struct {
	Type    PaintType `json:"type"`
	Visible bool      `json:"visible"`
	Opacity float64   `json:"opacity"`

	// Solid / gradient paints.
	Color         *Color         `json:"color,omitempty"`
	GradientStops []GradientStop `json:"gradientStops,omitempty"`

	// Image paints. ImageRef is the service's content-addressed key;
	// ScaleMode is how the image is mapped onto the node.
	ImageRef  string `json:"imageRef,omitempty"`
	ScaleMode string `json:"scaleMode,omitempty"`

	// Populated by enrichment.
	ImageURL  string `json:"imageUrl,omitempty"`
	ImageData string `json:"imageData,omitempty"`
	Oversized bool   `json:"oversized,omitempty"`

	// NodeExport marks an image resolved through the whole-node raster
	// fallback: the URL is a render of the containing frame, not the
	// precise asset.
	NodeExport bool `json:"isNodeExport,omitempty"`
}

// UnmarshalJSON decodes a fill from the service's wire format.
// The service omits "visible" and "opacity" when they hold their
// defaults (true and 1.0), so plain struct decoding would zero them.
func (f *Fill) UnmarshalJSON(data []byte) error {
	type wireFill struct {
		Type          PaintType      `json:"type"`
		Visible       *bool          `json:"visible"`
		Opacity       *float64       `json:"opacity"`
		Color         *Color         `json:"color"`
		GradientStops []GradientStop `json:"gradientStops"`
		ImageRef      string         `json:"imageRef"`
		ScaleMode     string         `json:"scaleMode"`
		ImageURL      string         `json:"imageUrl"`
	}

	var w wireFill
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	f.Type = w.Type
	f.Visible = w.Visible == nil || *w.Visible
	f.Opacity = 1
	if w.Opacity != nil {
		f.Opacity = *w.Opacity
	}
	f.Color = w.Color
	f.GradientStops = w.GradientStops
	f.ImageRef = w.ImageRef
	f.ScaleMode = w.ScaleMode
	f.ImageURL = w.ImageURL
	return nil
}
