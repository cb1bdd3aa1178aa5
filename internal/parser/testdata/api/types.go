package api

import (
	"encoding/json"
	"time"
)

// Audit carries bookkeeping fields shared by stored resources.
type Audit struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// Widget is a thing that can be ordered.
//
// Widgets are identified by {@link #ID}.
//
//docgen:serialize
type Widget struct {
	Audit
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Color    *Color            `json:"color,omitempty"`
	Tags     []string          `json:"tags"`
	Labels   map[string]string `json:"labels"`
	Raw      json.RawMessage   `json:"raw"`
	Secret   string            `json:"secret" docgen:"-"`
	Internal string            `json:"-"`
	Untagged string
	hidden   string
}

// Empty has no properties.
//
//docgen:serialize
type Empty struct{}

// Color of a widget.
//
//docgen:enum
type Color string

const (
	// Red is warm.
	Red   Color = "RED"
	Blue  Color = "BLUE" // Blue is cool.
	Green Color = "GREEN"
)

// Page is one page of results.
type Page[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
}

// Legacy is kept for old clients.
//
// Deprecated: use Widget.
//
//docgen:serialize
type Legacy struct {
	Value int `json:"value"`
}
