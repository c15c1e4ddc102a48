package ports

import (
	"context"
	"errors"
)

var ErrItemNotFound = errors.New("item not found")

type ItemFilter struct {
	OwnerID         string
	Category        string
	ItemType        string
	Status          string
	IncludeComplete bool
}

// Bounds is a latitude/longitude bounding box for nearby queries.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

type ItemRecord struct {
	ItemID          string
	OwnerID         string
	Title           string
	Description     string
	Category        string
	ItemType        string
	Quantity        int
	Condition       string
	ExpiryDate      *string
	PickupAddress   string
	Latitude        float64
	Longitude       float64
	LocationSource  string
	PhotoURL        string
	Status          string
	CollaborationID *string
	CreatedAt       string
	UpdatedAt       string
}

type ItemStatusCounts struct {
	Total     int64
	Available int64
	Completed int64
	FoodItems int64
}

type ItemRepository interface {
	ListItems(ctx context.Context, filter ItemFilter) ([]ItemRecord, error)
	GetItem(ctx context.Context, itemID string) (ItemRecord, error)
	ListItemsInBounds(ctx context.Context, bounds Bounds, status string) ([]ItemRecord, error)
	CreateItem(ctx context.Context, item ItemRecord) error
	UpdateItem(ctx context.Context, item ItemRecord) error
	SetItemStatus(ctx context.Context, itemID string, status string, updatedAt string) error
	DeleteItem(ctx context.Context, itemID string) error
	CountItems(ctx context.Context) (ItemStatusCounts, error)
}
