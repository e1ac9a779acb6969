package netx

import (
	"net"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
)

// ClientIP identifies the caller for rate limiting: the first
// X-Forwarded-For entry, then X-Real-IP, then the connection's remote host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get(common.ForwardedForHeaderName); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get(common.RealIPHeaderName)); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
