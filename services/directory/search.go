// File: services/directory/search.go
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medibook/config"
	"medibook/search"
	"medibook/utils"

	"go.uber.org/zap"
)

// cacheKeyRequest pins the cache key to everything that shapes a result page.
type cacheKeyRequest struct {
	Criteria search.Criteria `json:"criteria"`
	Page     search.Page     `json:"page"`
}

// Search retrieves a ranked result page for the given criteria. It first
// attempts the result cache; on a miss it snapshots the doctor store, runs
// the engine, and caches the engine's output verbatim. Caching never alters
// what the engine would have returned.
func (s *DefaultDirectoryService) Search(ctx context.Context, criteria search.Criteria, page search.Page) (*search.Result, error) {
	logger := utils.GetLogger()

	// Reject bad input before touching cache or store.
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	// Create a cache key based on the JSON representation of the request.
	keyBytes, err := json.Marshal(cacheKeyRequest{Criteria: criteria, Page: page})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search criteria: %w", err)
	}
	cacheKey := fmt.Sprintf("%s%x", utils.SearchCachePrefix, keyBytes)

	// Try to get from cache.
	cached, err := s.CacheClient.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var result search.Result
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
		// If unmarshal fails, we fall through to re-computation.
	}

	// Snapshot the store and run the engine over it.
	doctors, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve doctors: %w", err)
	}

	result, err := search.Run(criteria, page, doctors)
	if err != nil {
		return nil, err
	}

	// Cache the result.
	resultBytes, err := json.Marshal(result)
	if err == nil {
		s.CacheClient.Set(ctx, cacheKey, resultBytes, s.cacheTTL())
	} else {
		logger.Warn("Failed to marshal search result for caching", zap.Error(err))
	}

	return result, nil
}

func (s *DefaultDirectoryService) cacheTTL() time.Duration {
	if secs := config.AppConfig.SearchCacheTTL; secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return utils.DefaultSearchCacheTTL
}
