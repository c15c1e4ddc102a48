package ports

import (
	"context"
	"errors"
)

var ErrClaimNotFound = errors.New("claim not found")

type ClaimRecord struct {
	ClaimID    string
	ItemID     string
	ClaimantID string
	Quantity   int
	Message    string
	Status     string
	CreatedAt  string
	UpdatedAt  string
}

type ClaimRepository interface {
	GetClaim(ctx context.Context, claimID string) (ClaimRecord, error)
	ListClaimsForItem(ctx context.Context, itemID string) ([]ClaimRecord, error)
	ListClaimsByClaimant(ctx context.Context, claimantID string) ([]ClaimRecord, error)
	CreateClaim(ctx context.Context, claim ClaimRecord) error
	SetClaimStatus(ctx context.Context, claimID string, status string, updatedAt string) error
	CountClaimsByStatus(ctx context.Context, status string) (int64, error)
}
