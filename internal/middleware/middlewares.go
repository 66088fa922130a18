package middleware

import (
	"github.com/deppfellow/go-postrpc/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component so router setup takes one value.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the error funnel.
	Global *GlobalMiddlewares

	// Auth guards protected procedures with Clerk sessions.
	Auth *AuthMiddleware

	// ContextEnhancer attaches a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing wires New Relic transactions and attributes.
	Tracing *TracingMiddleware

	// RateLimit throttles clients and reports denials.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components.
//
// Without New Relic, nrApp is nil and tracing degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
