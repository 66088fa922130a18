// Package handler is the HTTP entry point of every procedure.
//
// It binds and validates input through the validation package, calls
// the service layer, and writes the result.
package handler
