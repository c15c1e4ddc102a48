package sharing

import (
	"context"

	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/infrastructure/cache"
)

// GetCommunityStats aggregates the headline numbers for the landing page.
// The result is memoized and flushed on every mutation, so the counts lag a
// write by at most one invalidation.
func (s *Service) GetCommunityStats(ctx context.Context) (CommunityStats, error) {
	key := cache.BuildKey("stats", map[string]string{"scope": "community"})

	var cached CommunityStats
	if readCachedJSON(ctx, s.caches.Stats, key, &cached) {
		return cached, nil
	}

	itemCounts, err := s.items.CountItems(ctx)
	if err != nil {
		return CommunityStats{}, errs.Wrap(err, "count items")
	}
	completedClaims, err := s.claims.CountClaimsByStatus(ctx, domainsharing.ClaimCompleted)
	if err != nil {
		return CommunityStats{}, errs.Wrap(err, "count completed claims")
	}
	members, err := s.profiles.CountProfiles(ctx)
	if err != nil {
		return CommunityStats{}, errs.Wrap(err, "count profiles")
	}

	stats := CommunityStats{
		ItemsShared:     itemCounts.Total,
		ItemsAvailable:  itemCounts.Available,
		ItemsCompleted:  itemCounts.Completed,
		FoodItems:       itemCounts.FoodItems,
		CompletedClaims: completedClaims,
		ActiveMembers:   members,
	}
	writeCachedJSON(ctx, s.caches.Stats, key, stats)
	return stats, nil
}
