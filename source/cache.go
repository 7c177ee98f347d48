package source

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// diskCache implements a simple disk cache for HTTP responses.
// Entries expire at the end of the current ttl bucket.
type diskCache struct {
	base http.RoundTripper
	ttl  time.Duration
	dir  string
	log  *zap.Logger
	now  func() time.Time
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	bucket := c.now().Truncate(c.ttl).Unix()
	key := fmt.Sprintf("%d %s %s", bucket, req.Method, req.URL.String())
	key = fmt.Sprintf("ath-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		c.log.Debug("cache hit", zap.String("host", req.URL.Host), zap.String("path", req.URL.Path))
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.Info("http",
		zap.String("method", resp.Request.Method),
		zap.String("host", resp.Request.URL.Host),
		zap.String("path", resp.Request.URL.Path),
		zap.String("status", resp.Status),
	)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		c.log.Warn("cache write failed (ignored)", zap.Error(err))
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0600)
}

// NewCachingClient returns an http.Client that caches successful responses on
// disk, in dir (os.TempDir() if empty), for ttl. A non positive ttl disables the cache.
func NewCachingClient(ttl time.Duration, dir string, log *zap.Logger) *http.Client {
	client := new(http.Client)
	if ttl <= 0 {
		return client
	}
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		log = zap.NewNop()
	}
	client.Transport = &diskCache{base: http.DefaultTransport, ttl: ttl, dir: dir, log: log, now: time.Now}
	return client
}
