package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/tomiwa/invoicepay/internal/pkg/logger"
	"github.com/tomiwa/invoicepay/internal/utils"
)

// PanicRecoveryMiddleware recovers from handler panics, logs them with the
// stack trace and reports them to New Relic when a transaction is active.
// The webhook pipeline must never crash on a malformed delivery.
func PanicRecoveryMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}

					stack := debug.Stack()

					zapLogger.Error("Panic recovered",
						logger.Err(err),
						logger.String("path", c.Request().URL.Path),
						logger.String("method", c.Request().Method),
						logger.String("stack", string(stack)),
					)

					if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
						txn.NoticeError(err)
					}

					_ = utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Internal server error")
				}
			}()

			return next(c)
		}
	}
}
