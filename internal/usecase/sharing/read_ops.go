package sharing

import (
	"context"
	"strconv"

	"tigawane/internal/domain/geo"
	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/infrastructure/cache"
	"tigawane/internal/ports"
)

var errBadCenter = invalidInput("nearby center must be a valid coordinate")

type ListItemsInput struct {
	OwnerID         string
	Category        string
	ItemType        string
	Status          string
	IncludeComplete bool
}

// ListItems returns listings matching the filter, memoized per filter
// combination.
func (s *Service) ListItems(ctx context.Context, in ListItemsInput) ([]ItemView, error) {
	key := cache.BuildKey("items", map[string]string{
		"owner":    in.OwnerID,
		"category": in.Category,
		"type":     in.ItemType,
		"status":   in.Status,
		"all":      strconv.FormatBool(in.IncludeComplete),
	})

	var cached []ItemView
	if readCachedJSON(ctx, s.caches.Items, key, &cached) {
		return cached, nil
	}

	records, err := s.items.ListItems(ctx, ports.ItemFilter{
		OwnerID:         in.OwnerID,
		Category:        in.Category,
		ItemType:        in.ItemType,
		Status:          in.Status,
		IncludeComplete: in.IncludeComplete,
	})
	if err != nil {
		return nil, errs.Wrap(err, "list items")
	}

	views := mapItemViews(records)
	writeCachedJSON(ctx, s.caches.Items, key, views)
	return views, nil
}

// GetItem returns one listing with its claim history. Detail reads are not
// cached: claims change often and the page needs current statuses.
func (s *Service) GetItem(ctx context.Context, itemID string) (ItemDetail, error) {
	record, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return ItemDetail{}, err
	}

	claims, err := s.claims.ListClaimsForItem(ctx, itemID)
	if err != nil {
		return ItemDetail{}, errs.Wrap(err, "list claims for item")
	}

	detail := ItemDetail{ItemView: mapItemView(record), Claims: make([]ClaimView, 0, len(claims))}
	for _, claim := range claims {
		detail.Claims = append(detail.Claims, mapClaimView(claim))
	}
	return detail, nil
}

// ListMyClaims returns every claim the user has filed.
func (s *Service) ListMyClaims(ctx context.Context, claimantID string) ([]ClaimView, error) {
	records, err := s.claims.ListClaimsByClaimant(ctx, claimantID)
	if err != nil {
		return nil, errs.Wrap(err, "list claims by claimant")
	}
	views := make([]ClaimView, 0, len(records))
	for _, record := range records {
		views = append(views, mapClaimView(record))
	}
	return views, nil
}

type NearbyInput struct {
	Center   geo.Coordinate
	RadiusKm float64
}

// ListNearbyItems returns available items inside the bounding box spanning
// RadiusKm around the center. The cache key rounds the center to two
// decimals (~1 km), so nearby re-renders from slightly drifting GPS fixes
// hit the same entry.
func (s *Service) ListNearbyItems(ctx context.Context, in NearbyInput) ([]ItemView, error) {
	if !in.Center.Valid() {
		return nil, errBadCenter
	}
	if in.RadiusKm <= 0 {
		in.RadiusKm = 10
	}

	key := cache.BuildKey("nearby", map[string]string{
		"lat":    strconv.FormatFloat(in.Center.Latitude, 'f', 2, 64),
		"lon":    strconv.FormatFloat(in.Center.Longitude, 'f', 2, 64),
		"radius": strconv.FormatFloat(in.RadiusKm, 'f', 1, 64),
	})

	var cached []ItemView
	if readCachedJSON(ctx, s.caches.Nearby, key, &cached) {
		return cached, nil
	}

	minLat, maxLat, minLon, maxLon := geo.BoundingBox(in.Center, in.RadiusKm)
	records, err := s.items.ListItemsInBounds(ctx, ports.Bounds{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}, domainsharing.ItemAvailable)
	if err != nil {
		return nil, errs.Wrap(err, "list items in bounds")
	}

	views := mapItemViews(records)
	writeCachedJSON(ctx, s.caches.Nearby, key, views)
	return views, nil
}
