package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/infrastructure/persistence/sqlite/model"
	"tigawane/internal/ports"
)

type ItemRepository struct {
	db *gorm.DB
}

var _ ports.ItemRepository = (*ItemRepository)(nil)

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) ListItems(ctx context.Context, filter ports.ItemFilter) ([]ports.ItemRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Item{})
	if !filter.IncludeComplete {
		query = query.Where("status <> ?", sharing.ItemCompleted)
	}
	if owner := strings.TrimSpace(filter.OwnerID); owner != "" {
		query = query.Where("owner_id = ?", owner)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if itemType := strings.TrimSpace(filter.ItemType); itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []model.Item
	if err := query.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query items")
	}
	return mapItems(rows), nil
}

func (r *ItemRepository) GetItem(ctx context.Context, itemID string) (ports.ItemRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ItemRecord{}, err
	}

	var row model.Item
	if err := db.Where("item_id = ?", itemID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ItemRecord{}, ports.ErrItemNotFound
		}
		return ports.ItemRecord{}, errs.Wrap(err, "query item by id")
	}
	return mapItem(row), nil
}

func (r *ItemRepository) ListItemsInBounds(ctx context.Context, bounds ports.Bounds, status string) ([]ports.ItemRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Item{}).
		Where("latitude BETWEEN ? AND ?", bounds.MinLat, bounds.MaxLat).
		Where("longitude BETWEEN ? AND ?", bounds.MinLon, bounds.MaxLon)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []model.Item
	if err := query.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query items in bounds")
	}
	return mapItems(rows), nil
}

func (r *ItemRepository) CreateItem(ctx context.Context, item ports.ItemRecord) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := toItemModel(item)
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert item")
	}
	return nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item ports.ItemRecord) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := toItemModel(item)
	result := db.Model(&model.Item{}).Where("item_id = ?", item.ItemID).Updates(map[string]any{
		"title":            row.Title,
		"description":      row.Description,
		"category":         row.Category,
		"item_type":        row.ItemType,
		"quantity":         row.Quantity,
		"condition":        row.Condition,
		"expiry_date":      row.ExpiryDate,
		"pickup_address":   row.PickupAddress,
		"latitude":         row.Latitude,
		"longitude":        row.Longitude,
		"location_source":  row.LocationSource,
		"photo_url":        row.PhotoURL,
		"collaboration_id": row.CollaborationID,
		"updated_at":       row.UpdatedAt,
	})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update item")
	}
	if result.RowsAffected == 0 {
		return ports.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) SetItemStatus(ctx context.Context, itemID string, status string, updatedAt string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&model.Item{}).
		Where("item_id = ?", itemID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update item status")
	}
	if result.RowsAffected == 0 {
		return ports.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) DeleteItem(ctx context.Context, itemID string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("item_id = ?", itemID).Delete(&model.Item{}).Error; err != nil {
		return errs.Wrap(err, "delete item")
	}
	return nil
}

func (r *ItemRepository) CountItems(ctx context.Context) (ports.ItemStatusCounts, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ItemStatusCounts{}, err
	}

	var counts ports.ItemStatusCounts
	if err := db.Model(&model.Item{}).Count(&counts.Total).Error; err != nil {
		return ports.ItemStatusCounts{}, errs.Wrap(err, "count items")
	}
	if err := db.Model(&model.Item{}).Where("status = ?", sharing.ItemAvailable).Count(&counts.Available).Error; err != nil {
		return ports.ItemStatusCounts{}, errs.Wrap(err, "count available items")
	}
	if err := db.Model(&model.Item{}).Where("status = ?", sharing.ItemCompleted).Count(&counts.Completed).Error; err != nil {
		return ports.ItemStatusCounts{}, errs.Wrap(err, "count completed items")
	}
	if err := db.Model(&model.Item{}).Where("item_type = ?", sharing.ItemTypeFood).Count(&counts.FoodItems).Error; err != nil {
		return ports.ItemStatusCounts{}, errs.Wrap(err, "count food items")
	}
	return counts, nil
}

func mapItems(rows []model.Item) []ports.ItemRecord {
	items := make([]ports.ItemRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapItem(row))
	}
	return items
}

func mapItem(row model.Item) ports.ItemRecord {
	return ports.ItemRecord{
		ItemID:          row.ItemID,
		OwnerID:         row.OwnerID,
		Title:           row.Title,
		Description:     row.Description,
		Category:        row.Category,
		ItemType:        row.ItemType,
		Quantity:        row.Quantity,
		Condition:       row.Condition,
		ExpiryDate:      row.ExpiryDate,
		PickupAddress:   row.PickupAddress,
		Latitude:        row.Latitude,
		Longitude:       row.Longitude,
		LocationSource:  row.LocationSource,
		PhotoURL:        row.PhotoURL,
		Status:          row.Status,
		CollaborationID: row.CollaborationID,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func toItemModel(item ports.ItemRecord) model.Item {
	return model.Item{
		ItemID:          item.ItemID,
		OwnerID:         item.OwnerID,
		Title:           item.Title,
		Description:     item.Description,
		Category:        item.Category,
		ItemType:        item.ItemType,
		Quantity:        item.Quantity,
		Condition:       item.Condition,
		ExpiryDate:      item.ExpiryDate,
		PickupAddress:   item.PickupAddress,
		Latitude:        item.Latitude,
		Longitude:       item.Longitude,
		LocationSource:  item.LocationSource,
		PhotoURL:        item.PhotoURL,
		Status:          item.Status,
		CollaborationID: item.CollaborationID,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
