package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	maxLogBodySize = 1 << 12 // 4 KB
	masked         = "***"
)

var sensitiveKeys = []string{"senha", "password"}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request.Body != nil {
			var buf bytes.Buffer
			limited := io.LimitReader(c.Request.Body, maxLogBodySize)
			_, _ = io.Copy(&buf, limited)
			// keep the unread remainder for the handler
			c.Request.Body = readCloser{
				Reader: io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body),
				Closer: c.Request.Body,
			}
			body = maskBody(c.ContentType(), buf.Bytes())
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues("app_requests_total").Inc()
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

// maskBody renders a request body for logs with password values replaced.
// Bodies that cannot be parsed are omitted since they may hold a password.
func maskBody(contentType string, b []byte) string {
	if len(b) == 0 {
		return ""
	}

	switch contentType {
	case gin.MIMEJSON:
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			return "<unparsed json omitted>"
		}
		for _, k := range sensitiveKeys {
			if _, ok := m[k]; ok {
				m[k] = masked
			}
		}
		out, err := json.Marshal(m)
		if err != nil {
			return "<unparsed json omitted>"
		}
		return string(out)
	case gin.MIMEPOSTForm:
		vals, err := url.ParseQuery(string(b))
		if err != nil {
			return "<unparsed form omitted>"
		}
		for _, k := range sensitiveKeys {
			if vals.Has(k) {
				vals.Set(k, masked)
			}
		}
		return vals.Encode()
	default:
		return "<body omitted>"
	}
}
