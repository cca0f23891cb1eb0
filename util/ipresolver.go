package util

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// UnknownIP is stored in audit columns when no address could be determined.
const UnknownIP = "0.0.0.0"

const publicIPKey = "public-ip"

// lookupRetryAfter is how long a failed lookup is remembered, so an
// unreachable service delays at most one request per period.
const lookupRetryAfter = time.Minute

// IPResolver decides which address is written into audit columns. The
// request's client address wins; when it is loopback or missing (e.g. the
// server runs on the reception desk PC) the public address is looked up
// once and cached.
type IPResolver struct {
	lookupURL string
	client    *http.Client
	cache     *cache.Cache
}

// NewIPResolver builds a resolver using lookupURL, a plain-text "what is my
// IP" service. An empty url disables the lookup.
func NewIPResolver(lookupURL string) *IPResolver {
	return &IPResolver{
		lookupURL: lookupURL,
		client:    &http.Client{Timeout: 3 * time.Second},
		cache:     cache.New(15*time.Minute, 30*time.Minute),
	}
}

// Resolve returns the address to record for a request from clientIP.
func (r *IPResolver) Resolve(ctx context.Context, clientIP string) string {
	if ip := net.ParseIP(strings.TrimSpace(clientIP)); ip != nil && !ip.IsLoopback() && !ip.IsUnspecified() {
		return ip.String()
	}
	return r.Public(ctx)
}

// Public returns the cached public address, looking it up when needed.
func (r *IPResolver) Public(ctx context.Context) string {
	if v, ok := r.cache.Get(publicIPKey); ok {
		return v.(string)
	}
	ip, err := r.lookup(ctx)
	if err != nil {
		log.Warn().Err(err).Str("url", r.lookupURL).Msg("public ip lookup failed")
		r.cache.Set(publicIPKey, UnknownIP, lookupRetryAfter)
		return UnknownIP
	}
	r.cache.SetDefault(publicIPKey, ip)
	return ip
}

func (r *IPResolver) lookup(ctx context.Context) (string, error) {
	if r.lookupURL == "" {
		return "", errNoLookupURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.lookupURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &lookupStatusError{status: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", err
	}
	ip := net.ParseIP(strings.TrimSpace(string(body)))
	if ip == nil {
		return "", errBadLookupBody
	}
	return ip.String(), nil
}
