// Package query holds shared query primitives used by repositories.
package query

// Pagination carries optional limit/offset; nil fields mean "no bound".
type Pagination struct {
	Limit  *int
	Offset *int
}
