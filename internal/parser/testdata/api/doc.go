// Package api is a small widget service used to exercise declaration
// collection.
//
//docgen:path /api
package api
