package models

import (
	"encoding/json"
	"strings"
)

// RowStyleKind discriminates the known row style shapes
type RowStyleKind string

const (
	RowStyleSolid    RowStyleKind = "solid"
	RowStyleGradient RowStyleKind = "gradient"
)

// RowStyle is the decoded background styling for a row. Two stored shapes
// exist: the legacy format is a bare color string, the v2 format is a JSON
// object carrying a version tag. Both decode into this one value type.
type RowStyle struct {
	Kind  RowStyleKind `json:"kind"`
	Color string       `json:"color,omitempty"`
	From  string       `json:"from,omitempty"`
	To    string       `json:"to,omitempty"`
	Angle int          `json:"angle,omitempty"`
}

// rowStyleV2 is the on-disk v2 shape
type rowStyleV2 struct {
	Version int    `json:"version"`
	Kind    string `json:"kind"`
	Color   string `json:"color"`
	From    string `json:"from"`
	To      string `json:"to"`
	Angle   int    `json:"angle"`
}

// ParseRowStyle decodes a stored row style payload. Legacy payloads (a
// bare color string) and unrecognized versions both fall back to a solid
// color using the raw value, so a bad payload degrades the styling rather
// than hiding the row.
func ParseRowStyle(raw *string) *RowStyle {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)

	if !strings.HasPrefix(trimmed, "{") {
		return &RowStyle{Kind: RowStyleSolid, Color: trimmed}
	}

	var v2 rowStyleV2
	if err := json.Unmarshal([]byte(trimmed), &v2); err != nil || v2.Version != 2 {
		return &RowStyle{Kind: RowStyleSolid, Color: trimmed}
	}

	switch RowStyleKind(v2.Kind) {
	case RowStyleGradient:
		return &RowStyle{Kind: RowStyleGradient, From: v2.From, To: v2.To, Angle: v2.Angle}
	case RowStyleSolid:
		return &RowStyle{Kind: RowStyleSolid, Color: v2.Color}
	default:
		return &RowStyle{Kind: RowStyleSolid, Color: trimmed}
	}
}
