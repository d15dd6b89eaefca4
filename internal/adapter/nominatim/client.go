// Package nominatim resolves postal codes to display names through a
// Nominatim server. Lookups are cached; the public OSM instance rate-limits
// aggressively and a run touches the same handful of codes repeatedly.
package nominatim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/muesli/gominatim"
	"github.com/patrickmn/go-cache"
)

const cacheCleanupInterval = 30 * time.Minute

// Client looks up place names for postal codes.
// It implements pipeline.PlaceNamer.
type Client struct {
	region string
	cache  *cache.Cache
	log    *slog.Logger
}

// NewClient points the shared gominatim resolver at server and returns a
// caching client scoped to region (a US state code).
func NewClient(server, region string, ttl time.Duration, logger *slog.Logger) *Client {
	gominatim.SetServer(server)
	return &Client{
		region: region,
		cache:  cache.New(ttl, cacheCleanupInterval),
		log:    logger,
	}
}

// PlaceName resolves a postal code to its display name. Results, including
// negative ones, are cached for the configured TTL.
func (c *Client) PlaceName(_ context.Context, postalCode string) (string, error) {
	if cached, ok := c.cache.Get(postalCode); ok {
		return cached.(string), nil
	}

	qry := gominatim.SearchQuery{
		Q: fmt.Sprintf("%s, %s, USA", postalCode, c.region),
	}
	resp, err := qry.Get()
	if err != nil {
		return "", fmt.Errorf("nominatim lookup %s: %w", postalCode, err)
	}
	if len(resp) == 0 {
		c.cache.Set(postalCode, "", cache.DefaultExpiration)
		return "", nil
	}

	name := resp[0].DisplayName
	c.cache.Set(postalCode, name, cache.DefaultExpiration)
	c.log.Debug("place resolved", "postal_code", postalCode, "name", name)
	return name, nil
}
