package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Replay window for webhook timestamps.
const signatureTolerance = 5 * time.Minute

// StripeWebhookAuth verifies the Stripe-Signature header before any
// handler touches the payload. The header carries a unix timestamp and
// one or more v1 signatures: HMAC-SHA256 of "<t>.<raw body>" keyed with
// the endpoint secret. A bad or stale signature aborts the request with
// no side effects.
func StripeWebhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			c.Abort()
			return
		}
		// Handlers re-read the body after verification.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		header := c.GetHeader("Stripe-Signature")
		if header == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing Stripe-Signature header"})
			c.Abort()
			return
		}

		timestamp, signatures := parseSignatureHeader(header)
		if timestamp == 0 || len(signatures) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "malformed Stripe-Signature header"})
			c.Abort()
			return
		}

		age := time.Since(time.Unix(timestamp, 0))
		if age > signatureTolerance || age < -signatureTolerance {
			c.JSON(http.StatusForbidden, gin.H{"error": "webhook timestamp outside tolerance"})
			c.Abort()
			return
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
		mac.Write([]byte("."))
		mac.Write(body)
		expected := mac.Sum(nil)

		for _, sig := range signatures {
			provided, err := hex.DecodeString(sig)
			if err != nil {
				continue
			}
			if hmac.Equal(expected, provided) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
		c.Abort()
	}
}

// parseSignatureHeader splits "t=1680000000,v1=abc,v1=def" into the
// timestamp and candidate signatures.
func parseSignatureHeader(header string) (int64, []string) {
	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err == nil {
				timestamp = ts
			}
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	return timestamp, signatures
}
