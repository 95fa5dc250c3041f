package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/fplhq/companion/internal/platform/cache"
	"github.com/fplhq/companion/internal/platform/logging"
	"github.com/fplhq/companion/internal/usecase"
)

// UpstreamProxy fetches a raw upstream payload for the pass-through surface.
type UpstreamProxy interface {
	FetchRaw(ctx context.Context, path string) ([]byte, error)
}

// proxyFamilies are the upstream path prefixes the proxy will forward.
// Everything else is rejected rather than blindly relayed.
var proxyFamilies = []string{
	"/bootstrap-static/",
	"/fixtures/",
	"/event/",
	"/entry/",
	"/element-summary/",
}

// ProxyHandler relays read-only FPL API requests through the shared TTL
// cache, attaching a Cache-Control header matching the endpoint family.
type ProxyHandler struct {
	upstream UpstreamProxy
	store    *cache.Store
	ttls     usecase.CacheTTLs
	logger   *logging.Logger
}

func NewProxyHandler(upstream UpstreamProxy, store *cache.Store, ttls usecase.CacheTTLs, logger *logging.Logger) *ProxyHandler {
	if logger == nil {
		logger = logging.Default()
	}
	if ttls == (usecase.CacheTTLs{}) {
		ttls = usecase.DefaultCacheTTLs()
	}

	return &ProxyHandler{
		upstream: upstream,
		store:    store,
		ttls:     ttls,
		logger:   logger,
	}
}

func (p *ProxyHandler) Passthrough(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Proxy")
	defer span.End()

	path := "/" + strings.TrimPrefix(r.PathValue("upstream"), "/")
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	if !p.allowed(path) {
		writeError(ctx, w, fmt.Errorf("%w: unsupported upstream path %s", usecase.ErrNotFound, path))
		return
	}

	upstreamPath := path
	if r.URL.RawQuery != "" {
		upstreamPath += "?" + r.URL.RawQuery
	}

	ttl := p.ttlFor(path)
	value, err := p.store.GetOrLoadTTL(ctx, "proxy:"+upstreamPath, ttl, func(ctx context.Context) (any, error) {
		return p.upstream.FetchRaw(ctx, upstreamPath)
	})
	if err != nil {
		// The recalculation window surfaces to the caller as the same 503
		// the upstream served.
		p.logger.WarnContext(ctx, "proxy fetch failed", "path", upstreamPath, "error", err)
		writeError(ctx, w, err)
		return
	}

	raw, ok := value.([]byte)
	if !ok {
		writeInternalError(ctx, w)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(raw)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (p *ProxyHandler) allowed(path string) bool {
	for _, family := range proxyFamilies {
		if strings.HasPrefix(path, family) {
			return true
		}
	}
	return false
}

// ttlFor picks the cache tier of an endpoint family: the catalogue moves over
// hours, fixtures over tens of minutes, live payloads over seconds, and
// manager records hold the historical tier.
func (p *ProxyHandler) ttlFor(path string) time.Duration {
	switch {
	case strings.HasPrefix(path, "/bootstrap-static/"):
		return p.ttls.Bootstrap
	case strings.HasPrefix(path, "/fixtures/"):
		return p.ttls.Fixtures
	case strings.HasPrefix(path, "/event/") && strings.HasSuffix(path, "/live/"):
		return p.ttls.Live
	case strings.HasPrefix(path, "/entry/"):
		return p.ttls.Historical
	default:
		return p.ttls.Default
	}
}
