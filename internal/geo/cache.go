package geo

import (
	"strings"
	"sync"
)

// Resolution is the output of resolving a free-text location: a
// canonical city name, its administrative state (if any), country,
// IANA timezone, and coordinates when geocoding succeeded.
type Resolution struct {
	CityName string
	State    string
	Country  string
	Timezone string
	Lat      float64
	Lon      float64
	HasCoord bool
}

type cacheKey struct {
	nameLower    string
	countryLower string
}

// Cache is the process-local, single-writer-under-a-mutex, read-mostly
// store spec.md §5 requires for geocoding/timezone lookups.
type Cache struct {
	mu    sync.RWMutex
	items map[cacheKey]Resolution
}

func NewCache() *Cache {
	return &Cache{items: make(map[cacheKey]Resolution)}
}

func key(name, country string) cacheKey {
	return cacheKey{nameLower: strings.ToLower(name), countryLower: strings.ToLower(country)}
}

func (c *Cache) Get(name, country string) (Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.items[key(name, country)]
	return r, ok
}

func (c *Cache) Put(name, country string, r Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key(name, country)] = r
}
