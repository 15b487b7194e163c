package domain

import "errors"

// ErrNotFound is returned by repositories when a point lookup matches
// no row. Postgres implementations translate pgx.ErrNoRows into this so
// callers never depend on the driver.
var ErrNotFound = errors.New("not found")
