package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s Server) logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestURL := c.Request.URL.String()

		// Process request
		c.Next()

		duration := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("url", requestURL),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("size", c.Writer.Size()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
		}

		fn := zap.L().Info
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			fn = zap.L().Error
		case duration > time.Second*5:
			fn = zap.L().Warn
		case strings.HasPrefix(c.Request.URL.Path, "/debug/pprof"):
			fn = zap.L().Debug
		}

		fn(fmt.Sprintf("%s %s (%d) in %s", c.Request.Method, requestURL, c.Writer.Status(), duration), fields...)
	}
}

// recovery recovers from any panics and writes a 500 if the connection is still alive
func (s Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			err, ok := recovered.(error)
			if !ok {
				err = fmt.Errorf("%v", recovered)
			}

			zap.L().Error("panic recovered",
				zap.Error(err),
				zap.Stack("stack"),
				zap.String("method", c.Request.Method),
				zap.String("url", c.Request.URL.String()))

			if brokenPipe(err) {
				c.Error(err) // nolint: errcheck
				c.Abort()
				return
			}

			c.AbortWithStatus(http.StatusInternalServerError)
		}()
		c.Next()
	}
}

// brokenPipe check peer closed the connection
func brokenPipe(err error) bool {
	var ne *net.OpError
	if !errors.As(err, &ne) {
		return false
	}

	var se *os.SyscallError
	if !errors.As(ne.Err, &se) {
		return false
	}

	message := strings.ToLower(se.Error())
	return strings.Contains(message, "broken pipe") || strings.Contains(message, "connection reset by peer")
}
