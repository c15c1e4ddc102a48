package sharing

import (
	"context"
	"strings"

	"tigawane/internal/errs"
	"tigawane/internal/infrastructure/cache"
	"tigawane/internal/ports"
)

var (
	errUserRequired        = invalidInput("user id is required")
	errDisplayNameRequired = invalidInput("display name is required")
)

// GetProfile returns the user's profile, memoized per user.
func (s *Service) GetProfile(ctx context.Context, userID string) (ProfileView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ProfileView{}, errUserRequired
	}

	key := cache.BuildKey("profile", map[string]string{"user_id": userID})
	var cached ProfileView
	if readCachedJSON(ctx, s.caches.Profiles, key, &cached) {
		return cached, nil
	}

	record, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}

	view := mapProfileView(record)
	writeCachedJSON(ctx, s.caches.Profiles, key, view)
	return view, nil
}

type UpdateProfileInput struct {
	UserID      string
	DisplayName string
	Location    string
	Phone       string
	Bio         string
}

// UpdateProfile creates or replaces the user's profile.
func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (ProfileView, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.UserID == "" {
		return ProfileView{}, errUserRequired
	}
	if in.DisplayName == "" {
		return ProfileView{}, errDisplayNameRequired
	}

	now := s.timestamp()
	record := ports.ProfileRecord{
		UserID:      in.UserID,
		DisplayName: in.DisplayName,
		Location:    strings.TrimSpace(in.Location),
		Phone:       strings.TrimSpace(in.Phone),
		Bio:         strings.TrimSpace(in.Bio),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing, err := s.profiles.GetProfile(ctx, in.UserID); err == nil {
		record.CreatedAt = existing.CreatedAt
	}

	if err := s.profiles.UpsertProfile(ctx, record); err != nil {
		return ProfileView{}, errs.Wrap(err, "upsert profile")
	}

	s.caches.Profiles.Invalidate(cache.BuildKey("profile", map[string]string{"user_id": in.UserID}))
	s.caches.Stats.Flush()
	s.publishChange(ctx, "profiles", ports.OpUpdate, in.UserID, map[string]any{
		"display_name": record.DisplayName,
	})
	return mapProfileView(record), nil
}
