package cache

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

// OriginCache хранит, в какой таблице лежит proposta. Источник записи
// для id не меняется, поэтому кеш можно держать между запросами.
type OriginCache struct {
	cache *gocache.Cache
}

func NewOriginCache(ttl time.Duration) *OriginCache {
	return &OriginCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *OriginCache) Get(id uuid.UUID) (valueobject.ProposalOrigin, bool) {
	if val, found := c.cache.Get(id.String()); found {
		origin, ok := val.(valueobject.ProposalOrigin)
		return origin, ok
	}
	return "", false
}

func (c *OriginCache) Set(id uuid.UUID, origin valueobject.ProposalOrigin) {
	c.cache.SetDefault(id.String(), origin)
}

func (c *OriginCache) Len() int {
	return c.cache.ItemCount()
}
