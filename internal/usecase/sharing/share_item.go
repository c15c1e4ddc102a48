package sharing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"

	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/domain/geo"
	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
	"tigawane/internal/usecase/location"
)

var (
	errOwnerRequired   = invalidInput("owner is required")
	errTitleRequired   = invalidInput("title is required")
	errAddressRequired = invalidInput("pickup address is required")
	errBadQuantity     = invalidInput("quantity must be at least 1")
	errBadItemType     = invalidInput("item type must be food or non-food")
	errUnknownCategory = invalidInput("unknown category for item type")
)

type ShareItemInput struct {
	OwnerID       string
	Title         string
	Description   string
	Category      string
	ItemType      string
	Quantity      int
	Condition     string
	ExpiryDate    string
	PickupAddress string

	// Location material for the resolution pipeline.
	LastKnown *geo.Coordinate
	Locator   ports.DeviceLocator

	// Optional photo. PhotoName supplies the file extension.
	Photo     io.Reader
	PhotoName string
}

// ShareItem publishes a new item. The pickup coordinate is resolved through
// the geocode/device pipeline; when that fails terminally the item is not
// created and the *location.ResolutionFailure carries the guidance message
// for the submitter, whose form input stays untouched.
func (s *Service) ShareItem(ctx context.Context, in ShareItemInput) (ItemView, error) {
	if err := validateShareItemInput(in); err != nil {
		return ItemView{}, err
	}
	if !s.catalog.Allows(in.Category, in.ItemType) {
		return ItemView{}, errUnknownCategory
	}

	resolved, err := s.resolver.Resolve(ctx, location.Input{
		Address:   strings.TrimSpace(in.PickupAddress),
		LastKnown: in.LastKnown,
		Locator:   in.Locator,
	})
	if err != nil {
		return ItemView{}, err
	}
	if !resolved.Coordinate.Valid() {
		return ItemView{}, &location.ResolutionFailure{}
	}

	itemID := s.newID()
	now := s.timestamp()

	photoURL := ""
	if in.Photo != nil {
		photoURL, err = s.uploadPhoto(ctx, itemID, in.PhotoName, in.Photo)
		if err != nil {
			return ItemView{}, errs.Wrap(err, "upload item photo")
		}
	}

	record := ports.ItemRecord{
		ItemID:         itemID,
		OwnerID:        in.OwnerID,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Category:       in.Category,
		ItemType:       in.ItemType,
		Quantity:       in.Quantity,
		Condition:      strings.TrimSpace(in.Condition),
		PickupAddress:  strings.TrimSpace(in.PickupAddress),
		Latitude:       resolved.Coordinate.Latitude,
		Longitude:      resolved.Coordinate.Longitude,
		LocationSource: string(resolved.Source),
		PhotoURL:       photoURL,
		Status:         domainsharing.ItemAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if expiry := strings.TrimSpace(in.ExpiryDate); expiry != "" {
		record.ExpiryDate = &expiry
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		return s.items.CreateItem(txCtx, record)
	}); err != nil {
		return ItemView{}, errs.Wrap(err, "create item")
	}

	logging.Info(ctx, "item shared",
		slog.String("item_id", itemID),
		slog.String("owner_id", in.OwnerID),
		slog.String("location_source", record.LocationSource))

	s.publishChange(ctx, "items", ports.OpInsert, itemID, map[string]any{
		"owner_id": record.OwnerID,
		"status":   record.Status,
		"category": record.Category,
	})
	s.invalidateItemCaches()

	return mapItemView(record), nil
}

func validateShareItemInput(in ShareItemInput) error {
	if strings.TrimSpace(in.OwnerID) == "" {
		return errOwnerRequired
	}
	if strings.TrimSpace(in.Title) == "" {
		return errTitleRequired
	}
	if strings.TrimSpace(in.PickupAddress) == "" {
		return errAddressRequired
	}
	if in.Quantity < 1 {
		return errBadQuantity
	}
	if !domainsharing.ValidItemType(in.ItemType) {
		return errBadItemType
	}
	return nil
}

func (s *Service) uploadPhoto(ctx context.Context, itemID, photoName string, photo io.Reader) (string, error) {
	if s.store == nil {
		return "", errors.New("object store is not configured")
	}
	ext := strings.ToLower(path.Ext(photoName))
	if ext == "" {
		ext = ".jpg"
	}
	return s.store.Upload(ctx, "items/"+itemID+ext, photo)
}
