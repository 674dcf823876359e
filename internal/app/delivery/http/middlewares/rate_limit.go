package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// CreateRateLimiter limits every client IP to MaxRequests per second.
func (m *Middlewares) CreateRateLimiter() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}
