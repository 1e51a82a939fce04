package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// DefaultStoreTimeout bounds the backing-store work done on behalf of a
// single request when the caller supplies no tighter deadline.
const DefaultStoreTimeout = 10 * time.Second

// RequestTimeout attaches a deadline to every request context so repository
// calls cannot hang past it. Handlers report the resulting
// context.DeadlineExceeded as a retryable gateway timeout.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
