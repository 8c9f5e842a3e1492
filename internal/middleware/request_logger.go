package middleware

import (
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const (
	RequestIDKey    = "requestID"
	RequestIDHeader = "X-Request-ID"
)

// RequestLogger assigns a request ID and logs one line per request. Client
// IPs are logged as a short keyed hash, never in clear.
func RequestLogger(logger *zap.Logger, fingerprintKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("requestID", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", Fingerprint(c.ClientIP(), fingerprintKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Fingerprint returns a 16 hex char keyed BLAKE2b digest of ip.
func Fingerprint(ip string, key []byte) string {
	h, err := blake2b.New(8, key)
	if err != nil {
		// key longer than 64 bytes
		sum := blake2b.Sum256(append(append([]byte{}, key...), ip...))
		return hex.EncodeToString(sum[:8])
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}

// RequestID returns the ID assigned by RequestLogger, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
