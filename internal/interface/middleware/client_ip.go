package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hexagonal-users/pkg/response"
)

const RealIPKey = "real_ip"

// RealIP stores the caller address under RealIPKey. CF-Connecting-IP wins,
// then the left-most X-Forwarded-For entry, then gin's own ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RealIPKey, resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	candidates := []string{
		c.GetHeader("CF-Connecting-IP"),
		firstHop(c.GetHeader("X-Forwarded-For")),
	}
	for _, raw := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(raw)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}

func firstHop(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return first
}

// ClientIP returns the address resolved by RealIP, falling back to gin when
// the middleware did not run.
func ClientIP(c *gin.Context) string {
	for _, ip := range []string{c.GetString(RealIPKey), c.ClientIP()} {
		if ip != "" {
			return ip
		}
	}
	return "unknown"
}

// PrivateOnly answers 403 unless the TCP peer is loopback or in a private
// range. Forwarding headers are client-controlled and ignored here; the
// header-derived ClientIP is for logging only.
func PrivateOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := net.ParseIP(c.RemoteIP())
		if ip == nil || !(ip.IsLoopback() || ip.IsPrivate()) {
			response.Error[any](c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}
