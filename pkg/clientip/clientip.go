package clientip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var ErrInvalidProxy = errors.New("clientip: invalid trusted proxy")

// Config controls which forwarding headers are believed.
type Config struct {
	// TrustedProxies lists the addresses or CIDR ranges of proxies in front
	// of the server. Forwarding headers are ignored for every other peer.
	TrustedProxies []string `env:"HTTP_TRUSTED_PROXIES" envSeparator:","`
	// Header is a single-value header set by the edge proxy, such as
	// CF-Connecting-IP. It takes precedence over X-Forwarded-For.
	Header string `env:"HTTP_CLIENT_IP_HEADER"`
}

// Resolver finds the client address of a request.
type Resolver struct {
	trusted []netip.Prefix
	header  string
}

func NewResolver(cfg Config) (*Resolver, error) {
	r := &Resolver{header: strings.TrimSpace(cfg.Header)}
	for _, raw := range cfg.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidProxy, raw, err)
			}
			r.trusted = append(r.trusted, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidProxy, raw, err)
		}
		addr = addr.Unmap()
		r.trusted = append(r.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return r, nil
}

// IP returns the normalized client address, or "" when none is valid.
// Forwarding headers are read only when the direct peer is a trusted
// proxy. X-Forwarded-For is walked from the right and the first hop that
// is not a trusted proxy wins.
func (res *Resolver) IP(r *http.Request) string {
	peer := remoteIP(r)
	if !res.trusts(peer) {
		return peer
	}

	if res.header != "" {
		if ip := parseIP(r.Header.Get(res.header)); ip != "" {
			return ip
		}
	}

	var hops []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		hops = append(hops, strings.Split(v, ",")...)
	}
	for i := len(hops) - 1; i >= 0; i-- {
		ip := parseIP(hops[i])
		if ip != "" && !res.trusts(ip) {
			return ip
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" && !res.trusts(ip) {
		return ip
	}
	return peer
}

func (res *Resolver) trusts(ip string) bool {
	if ip == "" || len(res.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range res.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Middleware stores the resolved client address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

// GetIP returns the address of the direct peer. No header is trusted.
func GetIP(r *http.Request) string {
	return remoteIP(r)
}

// Middleware is Resolver.Middleware with no trusted proxies.
func Middleware(next http.Handler) http.Handler {
	return (&Resolver{}).Middleware(next)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}
