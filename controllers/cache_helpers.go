package controllers

import (
	"context"
	"fmt"
	"time"

	"pawsgram/cache"
)

const feedCacheTTL = 30 * time.Second

func feedCacheKey(viewerID uint) string {
	return fmt.Sprintf("feed:%d", viewerID)
}

// invalidateFeedCache drops every cached feed variant. Called on any write
// that changes what the feed shows: post create/delete, like, save.
func invalidateFeedCache() {
	_ = cache.DeleteByPrefix(context.Background(), "feed:")
}
