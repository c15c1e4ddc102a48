package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tigawane/internal/errs"
	"tigawane/internal/infrastructure/persistence/sqlite/model"
	"tigawane/internal/ports"
)

type ClaimRepository struct {
	db *gorm.DB
}

var _ ports.ClaimRepository = (*ClaimRepository)(nil)

func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) GetClaim(ctx context.Context, claimID string) (ports.ClaimRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ClaimRecord{}, err
	}

	var row model.Claim
	if err := db.Where("claim_id = ?", claimID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ClaimRecord{}, ports.ErrClaimNotFound
		}
		return ports.ClaimRecord{}, errs.Wrap(err, "query claim by id")
	}
	return mapClaim(row), nil
}

func (r *ClaimRepository) ListClaimsForItem(ctx context.Context, itemID string) ([]ports.ClaimRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Claim
	if err := db.Where("item_id = ?", itemID).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query claims for item")
	}
	return mapClaims(rows), nil
}

func (r *ClaimRepository) ListClaimsByClaimant(ctx context.Context, claimantID string) ([]ports.ClaimRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Claim
	if err := db.Where("claimant_id = ?", claimantID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query claims by claimant")
	}
	return mapClaims(rows), nil
}

func (r *ClaimRepository) CreateClaim(ctx context.Context, claim ports.ClaimRecord) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.Claim{
		ClaimID:    claim.ClaimID,
		ItemID:     claim.ItemID,
		ClaimantID: claim.ClaimantID,
		Quantity:   claim.Quantity,
		Message:    claim.Message,
		Status:     claim.Status,
		CreatedAt:  claim.CreatedAt,
		UpdatedAt:  claim.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert claim")
	}
	return nil
}

func (r *ClaimRepository) SetClaimStatus(ctx context.Context, claimID string, status string, updatedAt string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&model.Claim{}).
		Where("claim_id = ?", claimID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update claim status")
	}
	if result.RowsAffected == 0 {
		return ports.ErrClaimNotFound
	}
	return nil
}

func (r *ClaimRepository) CountClaimsByStatus(ctx context.Context, status string) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.Claim{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, errs.Wrap(err, "count claims by status")
	}
	return count, nil
}

func mapClaims(rows []model.Claim) []ports.ClaimRecord {
	claims := make([]ports.ClaimRecord, 0, len(rows))
	for _, row := range rows {
		claims = append(claims, mapClaim(row))
	}
	return claims
}

func mapClaim(row model.Claim) ports.ClaimRecord {
	return ports.ClaimRecord{
		ClaimID:    row.ClaimID,
		ItemID:     row.ItemID,
		ClaimantID: row.ClaimantID,
		Quantity:   row.Quantity,
		Message:    row.Message,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
