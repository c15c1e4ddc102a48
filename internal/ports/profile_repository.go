package ports

import (
	"context"
	"errors"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRecord struct {
	UserID      string
	DisplayName string
	Location    string
	Phone       string
	Bio         string
	CreatedAt   string
	UpdatedAt   string
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (ProfileRecord, error)
	UpsertProfile(ctx context.Context, profile ProfileRecord) error
	CountProfiles(ctx context.Context) (int64, error)
}
