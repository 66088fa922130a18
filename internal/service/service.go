// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated input, services call repositories and shape the result.
package service
