// Package validation binds request data and checks it.
//
// It uses the `validator` library to enforce rules declared in struct
// tags and turns failures (including malformed or wrongly typed JSON)
// into field-level errors the client can act on.
package validation
