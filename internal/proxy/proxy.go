// Package proxy passes raw catalog API calls through the console origin, so
// tools on the console host can reach whichever API base is connected.
package proxy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/AbdulKus/jshop-admin/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type targetKey struct{}

// BaseFunc returns the API base requests are forwarded to.
type BaseFunc func() string

func NewReverseProxy(log *logrus.Logger) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			target, _ := r.In.Context().Value(targetKey{}).(*url.URL)
			r.SetURL(target)
			r.SetXForwarded()
			r.Out.Header.Del("Cookie")
			log.Debugf("Proxy: forwarding %s %s to %s", r.In.Method, r.In.URL.Path, r.Out.URL.String())
		},
		ErrorHandler: func(rw http.ResponseWriter, req *http.Request, err error) {
			log.Errorf("Reverse proxy error for path '%s': %v", req.URL.Path, err)
			http.Error(rw, "Bad Gateway", http.StatusBadGateway)
		},
	}
}

// ParseTarget validates an API base as a forwarding target.
func ParseTarget(base string) (*url.URL, error) {
	targetURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL: %w", err)
	}
	if targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("invalid target URL %q: scheme and host required", base)
	}
	return targetURL, nil
}

// ProxyHandler forwards the request unchanged to the base returned by base
// at the time of the call.
func ProxyHandler(p *httputil.ReverseProxy, base BaseFunc, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, err := ParseTarget(base())
		if err != nil {
			log.Warnf("ProxyHandler: no usable API base: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"detail": "API base is not configured"})
			return
		}

		if reqID := middleware.GetRequestID(c); reqID != "" {
			c.Request.Header.Set(middleware.HeaderRequestID, reqID)
		}
		ctx := context.WithValue(c.Request.Context(), targetKey{}, target)
		c.Request = c.Request.WithContext(ctx)

		log.Debugf("ProxyHandler: forwarding request for path '%s'", c.Request.URL.Path)
		p.ServeHTTP(c.Writer, c.Request)
	}
}
