// Package errs defines the error shapes returned to API callers.
//
// Every failure that leaves the service, whether validation, authorization
// or database, is turned into an *HTTPError by the global error handler.
package errs
