package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tigawane/internal/errs"
	"tigawane/internal/infrastructure/persistence/sqlite/model"
	"tigawane/internal/ports"
)

type ProfileRepository struct {
	db *gorm.DB
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (ports.ProfileRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ProfileRecord{}, err
	}

	var row model.Profile
	if err := db.Where("user_id = ?", userID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProfileRecord{}, ports.ErrProfileNotFound
		}
		return ports.ProfileRecord{}, errs.Wrap(err, "query profile by user id")
	}

	return ports.ProfileRecord{
		UserID:      row.UserID,
		DisplayName: row.DisplayName,
		Location:    row.Location,
		Phone:       row.Phone,
		Bio:         row.Bio,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile ports.ProfileRecord) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.Profile{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		Location:    profile.Location,
		Phone:       profile.Phone,
		Bio:         profile.Bio,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"display_name": row.DisplayName,
			"location":     row.Location,
			"phone":        row.Phone,
			"bio":          row.Bio,
			"updated_at":   row.UpdatedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "upsert profile")
	}
	return nil
}

func (r *ProfileRepository) CountProfiles(ctx context.Context) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.Profile{}).Count(&count).Error; err != nil {
		return 0, errs.Wrap(err, "count profiles")
	}
	return count, nil
}
