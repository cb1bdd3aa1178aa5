package api

import (
	"context"
	"iter"
)

// WidgetResource serves widgets.
//
//docgen:path /widgets
type WidgetResource struct{}

// Get returns one {@link Widget}.
//
//docgen:get
//docgen:path /{id}
//docgen:produces application/json
//docgen:pathparam widgetID id
//docgen:argdoc widgetID The widget id.
//docgen:queryparam verbose
//docgen:example-args id=7
//docgen:example-response {"id":"7",
//docgen:example-response "name":"bolt"}
func (r *WidgetResource) Get(ctx context.Context, widgetID string, verbose bool) (*Widget, error) {
	return nil, nil
}

// List pages through widgets.
//
//docgen:get
//docgen:produces application/json, text/plain
func (r *WidgetResource) List(ctx context.Context) (Page[Widget], error) {
	return Page[Widget]{}, nil
}

// Stream yields every widget.
//
//docgen:post
//docgen:path /stream
//docgen:consumes application/json
func (r *WidgetResource) Stream(ctx context.Context, filter map[string][]int) iter.Seq[Widget] {
	return nil
}

// Delete removes a widget.
//
//docgen:delete
//docgen:path /{id}
//docgen:pathparam id
func (r *WidgetResource) Delete(ctx context.Context, id string) error {
	return nil
}

// Health reports liveness.
//
//docgen:get
//docgen:path health
func Health() string {
	return "ok"
}

// helper has no directives and is skipped.
func helper() {}
