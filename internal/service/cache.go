// internal/service/cache.go
package service

import (
	"time"

	"github.com/dangerclosesec/audiencelab/internal/metrics"
	"github.com/dangerclosesec/audiencelab/internal/model"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const credentialCacheName = "application_credentials"

// CacheConfig holds configuration for the credential cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CredentialCache keeps recently used applications keyed by their public id
// so the machine path does not hit the database on every report. Only found
// applications are cached.
type CredentialCache struct {
	cache   *lru.LRU[string, model.Application]
	metrics *metrics.Metrics
}

// NewCredentialCache creates a cache. A non-positive size disables caching.
func NewCredentialCache(config CacheConfig, m *metrics.Metrics) *CredentialCache {
	if config.Size <= 0 {
		return &CredentialCache{metrics: m}
	}
	return &CredentialCache{
		cache:   lru.NewLRU[string, model.Application](config.Size, nil, config.TTL),
		metrics: m,
	}
}

// Get returns a copy of the cached application.
func (c *CredentialCache) Get(applicationID string) (*model.Application, bool) {
	if c == nil || c.cache == nil {
		return nil, false
	}
	app, ok := c.cache.Get(applicationID)
	if !ok {
		c.metrics.CacheMiss(credentialCacheName)
		return nil, false
	}
	c.metrics.CacheHit(credentialCacheName)
	return &app, true
}

func (c *CredentialCache) Set(app *model.Application) {
	if c == nil || c.cache == nil || app == nil {
		return
	}
	c.cache.Add(app.ApplicationID, *app)
}

// Len reports the number of live entries.
func (c *CredentialCache) Len() int {
	if c == nil || c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
