package domain

import (
	"encoding/json"
	"fmt"
)

// NodeKind identifies a design-element variant. The set is closed:
// unknown wire values decode to KindUnknown rather than failing, so a
// service-side addition cannot break the export pipeline.
type NodeKind string

// Node kinds as reported by the design service.
const (
	KindDocument     NodeKind = "DOCUMENT"
	KindCanvas       NodeKind = "CANVAS"
	KindFrame        NodeKind = "FRAME"
	KindGroup        NodeKind = "GROUP"
	KindSection      NodeKind = "SECTION"
	KindText         NodeKind = "TEXT"
	KindVector       NodeKind = "VECTOR"
	KindRectangle    NodeKind = "RECTANGLE"
	KindEllipse      NodeKind = "ELLIPSE"
	KindLine         NodeKind = "LINE"
	KindPolygon      NodeKind = "REGULAR_POLYGON"
	KindStar         NodeKind = "STAR"
	KindBoolean      NodeKind = "BOOLEAN_OPERATION"
	KindComponent    NodeKind = "COMPONENT"
	KindComponentSet NodeKind = "COMPONENT_SET"
	KindInstance     NodeKind = "INSTANCE"
	KindSlice        NodeKind = "SLICE"
	KindUnknown      NodeKind = "UNKNOWN"
)

// knownKinds is the closed set of kinds the decoder accepts verbatim.
var knownKinds = map[NodeKind]bool{
	KindDocument: true, KindCanvas: true, KindFrame: true, KindGroup: true,
	KindSection: true, KindText: true, KindVector: true, KindRectangle: true,
	KindEllipse: true, KindLine: true, KindPolygon: true, KindStar: true,
	KindBoolean: true, KindComponent: true, KindComponentSet: true,
	KindInstance: true, KindSlice: true,
}

// Rect is an axis-aligned bounding box in absolute canvas coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextStyle carries the typography of a text node's single style run.
type TextStyle struct {
	FontFamily          string  `json:"fontFamily,omitempty"`
	FontWeight          float64 `json:"fontWeight,omitempty"`
	FontSize            float64 `json:"fontSize,omitempty"`
	LineHeightPx        float64 `json:"lineHeightPx,omitempty"`
	LetterSpacing       float64 `json:"letterSpacing,omitempty"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string  `json:"textAlignVertical,omitempty"`
}

// TextData is the kind-specific payload of a TEXT node.
type TextData struct {
	Characters string     `json:"characters"`
	Style      *TextStyle `json:"style,omitempty"`
}

// Path is a single vector path with an SVG-style path string.
type Path struct {
	Path        string `json:"path"`
	WindingRule string `json:"windingRule,omitempty"`
}

// VectorData is the kind-specific payload of vector-shape nodes
// (VECTOR, LINE, REGULAR_POLYGON, STAR, BOOLEAN_OPERATION).
type VectorData struct {
	FillGeometry   []Path `json:"fillGeometry,omitempty"`
	StrokeGeometry []Path `json:"strokeGeometry,omitempty"`
	// Operation is set for BOOLEAN_OPERATION nodes (UNION, SUBTRACT, ...).
	Operation string `json:"operation,omitempty"`
}

// FrameData is the kind-specific payload of container nodes
// (FRAME, GROUP, SECTION, COMPONENT, COMPONENT_SET, INSTANCE).
type FrameData struct {
	LayoutMode      string  `json:"layoutMode,omitempty"`
	ItemSpacing     float64 `json:"itemSpacing,omitempty"`
	PaddingLeft     float64 `json:"paddingLeft,omitempty"`
	PaddingRight    float64 `json:"paddingRight,omitempty"`
	PaddingTop      float64 `json:"paddingTop,omitempty"`
	PaddingBottom   float64 `json:"paddingBottom,omitempty"`
	ClipsContent    bool    `json:"clipsContent,omitempty"`
	CornerRadius    float64 `json:"cornerRadius,omitempty"`
	BackgroundColor *Color  `json:"backgroundColor,omitempty"`
	// ComponentID is set for INSTANCE nodes.
	ComponentID string `json:"componentId,omitempty"`
}

// Node is one element of a design-file tree. Common fields are shared by
// every kind; exactly one of the kind-specific payloads (Text, Vector,
// Frame) is populated depending on Kind. IDs are unique within one file
// only, so cross-file aggregation must key by (fileID, node ID).
type Node struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Kind    NodeKind `json:"kind"`
	Visible bool     `json:"visible"`
	Opacity float64  `json:"opacity"`

	// Geometry.
	Box               *Rect       `json:"absoluteBoundingBox,omitempty"`
	RelativeTransform [][]float64 `json:"relativeTransform,omitempty"`

	// Paint.
	Fills   []*Fill `json:"fills,omitempty"`
	Strokes []*Fill `json:"strokes,omitempty"`

	// Kind-specific payloads.
	Text   *TextData   `json:"text,omitempty"`
	Vector *VectorData `json:"vector,omitempty"`
	Frame  *FrameData  `json:"frame,omitempty"`

	// Children are owned by this node, ordered as authored.
	Children []*Node `json:"children,omitempty"`
}

// wireNode mirrors the design service's flat node document. Kind-specific
// fields live side by side on the wire; decoding sorts them into the
// typed payloads exactly once, at the connector boundary.
type wireNode struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Type              NodeKind    `json:"type"`
	Visible           *bool       `json:"visible"`
	Opacity           *float64    `json:"opacity"`
	Children          []*Node     `json:"children"`
	Box               *Rect       `json:"absoluteBoundingBox"`
	RelativeTransform [][]float64 `json:"relativeTransform"`
	Fills             []*Fill     `json:"fills"`
	Strokes           []*Fill     `json:"strokes"`

	Characters string     `json:"characters"`
	Style      *TextStyle `json:"style"`

	FillGeometry     []Path `json:"fillGeometry"`
	StrokeGeometry   []Path `json:"strokeGeometry"`
	BooleanOperation string `json:"booleanOperation"`

	LayoutMode      string  `json:"layoutMode"`
	ItemSpacing     float64 `json:"itemSpacing"`
	PaddingLeft     float64 `json:"paddingLeft"`
	PaddingRight    float64 `json:"paddingRight"`
	PaddingTop      float64 `json:"paddingTop"`
	PaddingBottom   float64 `json:"paddingBottom"`
	ClipsContent    *bool   `json:"clipsContent"`
	CornerRadius    float64 `json:"cornerRadius"`
	BackgroundColor *Color  `json:"backgroundColor"`
	ComponentID     string  `json:"componentId"`
}

// UnmarshalJSON decodes a node document from the service's wire format.
// "visible" and "opacity" default to true and 1.0 when omitted.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode node: %w", err)
	}
	if w.ID == "" {
		return fmt.Errorf("decode node: %w: missing id", ErrInvalidInput)
	}

	n.ID = w.ID
	n.Name = w.Name
	n.Kind = w.Type
	if !knownKinds[n.Kind] {
		n.Kind = KindUnknown
	}
	n.Visible = w.Visible == nil || *w.Visible
	n.Opacity = 1
	if w.Opacity != nil {
		n.Opacity = *w.Opacity
	}
	n.Box = w.Box
	n.RelativeTransform = w.RelativeTransform
	n.Fills = w.Fills
	n.Strokes = w.Strokes
	n.Children = w.Children

	switch n.Kind {
	case KindText:
		n.Text = &TextData{Characters: w.Characters, Style: w.Style}
	case KindVector, KindLine, KindPolygon, KindStar, KindBoolean:
		n.Vector = &VectorData{
			FillGeometry:   w.FillGeometry,
			StrokeGeometry: w.StrokeGeometry,
			Operation:      w.BooleanOperation,
		}
	case KindFrame, KindGroup, KindSection, KindComponent, KindComponentSet, KindInstance, KindCanvas:
		n.Frame = &FrameData{
			LayoutMode:      w.LayoutMode,
			ItemSpacing:     w.ItemSpacing,
			PaddingLeft:     w.PaddingLeft,
			PaddingRight:    w.PaddingRight,
			PaddingTop:      w.PaddingTop,
			PaddingBottom:   w.PaddingBottom,
			ClipsContent:    w.ClipsContent != nil && *w.ClipsContent,
			CornerRadius:    w.CornerRadius,
			BackgroundColor: w.BackgroundColor,
			ComponentID:     w.ComponentID,
		}
	}
	return nil
}

// Walk visits the node and every descendant in depth-first order.
// Traversal stops as soon as visit returns false; Walk reports whether
// the traversal ran to completion.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(visit) {
			return false
		}
	}
	return true
}

// ImageRefs returns the distinct imageRefs carried by this node's own
// image fills, in fill order.
func (n *Node) ImageRefs() []string {
	var refs []string
	seen := make(map[string]bool)
	for _, fill := range n.Fills {
		if fill == nil || !fill.Type.IsImage() || fill.ImageRef == "" {
			continue
		}
		if seen[fill.ImageRef] {
			continue
		}
		seen[fill.ImageRef] = true
		refs = append(refs, fill.ImageRef)
	}
	return refs
}
