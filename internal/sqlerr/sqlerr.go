// Package sqlerr translates database driver errors into API errors.
//
// Constraint violations become 400s with a readable message, missing rows
// become 404s, and anything else (lost connections, timeouts, unknown
// SQLSTATEs) becomes an opaque 500.
package sqlerr
