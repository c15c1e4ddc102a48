package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tigawane/internal/errs"
	"tigawane/internal/infrastructure/persistence/sqlite/model"
	"tigawane/internal/ports"
)

type CollaborationRepository struct {
	db *gorm.DB
}

var _ ports.CollaborationRepository = (*CollaborationRepository)(nil)

func NewCollaborationRepository(db *gorm.DB) *CollaborationRepository {
	return &CollaborationRepository{db: db}
}

func (r *CollaborationRepository) GetRequest(ctx context.Context, requestID string) (ports.CollaborationRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.CollaborationRecord{}, err
	}

	var row model.CollaborationRequest
	if err := db.Where("request_id = ?", requestID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CollaborationRecord{}, ports.ErrCollaborationNotFound
		}
		return ports.CollaborationRecord{}, errs.Wrap(err, "query collaboration request")
	}
	return mapCollaboration(row), nil
}

func (r *CollaborationRepository) ListRequests(ctx context.Context, status string) ([]ports.CollaborationRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.CollaborationRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []model.CollaborationRequest
	if err := query.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query collaboration requests")
	}

	requests := make([]ports.CollaborationRecord, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, mapCollaboration(row))
	}
	return requests, nil
}

func (r *CollaborationRepository) CreateRequest(ctx context.Context, request ports.CollaborationRecord) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.CollaborationRequest{
		RequestID:   request.RequestID,
		GroupName:   request.GroupName,
		RequesterID: request.RequesterID,
		PartnerOrg:  request.PartnerOrg,
		Message:     request.Message,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert collaboration request")
	}
	return nil
}

func (r *CollaborationRepository) SetRequestStatus(ctx context.Context, requestID string, status string, updatedAt string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&model.CollaborationRequest{}).
		Where("request_id = ?", requestID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update collaboration status")
	}
	if result.RowsAffected == 0 {
		return ports.ErrCollaborationNotFound
	}
	return nil
}

func mapCollaboration(row model.CollaborationRequest) ports.CollaborationRecord {
	return ports.CollaborationRecord{
		RequestID:   row.RequestID,
		GroupName:   row.GroupName,
		RequesterID: row.RequesterID,
		PartnerOrg:  row.PartnerOrg,
		Message:     row.Message,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
