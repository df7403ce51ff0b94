package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/estate/api/internal/logger"
)

// Recovery turns a panic in any handler into a logged 500 response in the standard error envelope.
// A client that disconnected mid-response gets no body; the panic is logged at warn level only.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			requestLogger := GetLogger(c)
			if requestLogger == nil {
				requestLogger = log
			}
			fields := logger.Fields{
				"request_id": GetRequestID(c),
				"method":     c.Request.Method,
				"route":      c.FullPath(),
			}

			if err, ok := rec.(error); ok && clientGone(err) {
				fields["error"] = err.Error()
				requestLogger.Warn("Client connection lost", fields)
				c.Abort()
				return
			}

			fields["stack"] = string(debug.Stack())
			requestLogger.Error("Panic recovered", fmt.Errorf("panic: %v", rec), fields)

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":       "INTERNAL_SERVER_ERROR",
					"message":    "An unexpected error occurred",
					"request_id": GetRequestID(c),
				},
			})
		}()

		c.Next()
	}
}

func clientGone(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, http.ErrAbortHandler)
}
