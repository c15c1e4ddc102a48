package sharing

import (
	"context"
	"strings"

	"tigawane/internal/domain/geo"
	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
	"tigawane/internal/usecase/location"
)

type UpdateItemInput struct {
	ItemID      string
	ActorID     string
	Title       string
	Description string
	Category    string
	ItemType    string
	Quantity    int
	Condition   string
	ExpiryDate  string

	// A changed pickup address re-runs the resolution pipeline; an empty
	// address keeps the stored coordinate.
	PickupAddress string
	LastKnown     *geo.Coordinate
	Locator       ports.DeviceLocator
}

// UpdateItem lets the owner edit a listing. Editing the pickup address
// re-resolves the coordinate through the same pipeline as submission.
func (s *Service) UpdateItem(ctx context.Context, in UpdateItemInput) (ItemView, error) {
	record, err := s.items.GetItem(ctx, in.ItemID)
	if err != nil {
		return ItemView{}, err
	}
	if record.OwnerID != in.ActorID {
		return ItemView{}, domainsharing.ErrNotItemOwner
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		record.Title = title
	}
	if description := strings.TrimSpace(in.Description); description != "" {
		record.Description = description
	}
	if in.Quantity > 0 {
		record.Quantity = in.Quantity
	}
	if condition := strings.TrimSpace(in.Condition); condition != "" {
		record.Condition = condition
	}
	if expiry := strings.TrimSpace(in.ExpiryDate); expiry != "" {
		record.ExpiryDate = &expiry
	}
	if in.ItemType != "" || in.Category != "" {
		itemType := record.ItemType
		if in.ItemType != "" {
			if !domainsharing.ValidItemType(in.ItemType) {
				return ItemView{}, errBadItemType
			}
			itemType = in.ItemType
		}
		category := record.Category
		if in.Category != "" {
			category = in.Category
		}
		if !s.catalog.Allows(category, itemType) {
			return ItemView{}, errUnknownCategory
		}
		record.ItemType = itemType
		record.Category = category
	}

	if address := strings.TrimSpace(in.PickupAddress); address != "" && address != record.PickupAddress {
		resolved, err := s.resolver.Resolve(ctx, location.Input{
			Address:   address,
			LastKnown: in.LastKnown,
			Locator:   in.Locator,
		})
		if err != nil {
			return ItemView{}, err
		}
		record.PickupAddress = address
		record.Latitude = resolved.Coordinate.Latitude
		record.Longitude = resolved.Coordinate.Longitude
		record.LocationSource = string(resolved.Source)
	}

	record.UpdatedAt = s.timestamp()
	if err := s.items.UpdateItem(ctx, record); err != nil {
		return ItemView{}, errs.Wrap(err, "update item")
	}

	s.publishChange(ctx, "items", ports.OpUpdate, record.ItemID, map[string]any{
		"owner_id": record.OwnerID,
		"status":   record.Status,
	})
	s.invalidateItemCaches()

	return mapItemView(record), nil
}

// DeleteItem removes the owner's listing and tells pending claimants.
func (s *Service) DeleteItem(ctx context.Context, itemID, actorID string) error {
	record, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if record.OwnerID != actorID {
		return domainsharing.ErrNotItemOwner
	}
	return s.removeItem(ctx, record, "The item you claimed was removed by its owner: "+record.Title)
}

func (s *Service) removeItem(ctx context.Context, record ports.ItemRecord, notice string) error {
	now := s.timestamp()

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		claims, err := s.claims.ListClaimsForItem(txCtx, record.ItemID)
		if err != nil {
			return err
		}
		for _, claim := range claims {
			if !domainsharing.ClaimActive(claim.Status) {
				continue
			}
			if err := s.claims.SetClaimStatus(txCtx, claim.ClaimID, domainsharing.ClaimCancelled, now); err != nil {
				return err
			}
			if err := s.notifications.CreateNotification(txCtx, ports.NotificationRecord{
				NotificationID: s.newID(),
				RecipientID:    claim.ClaimantID,
				Kind:           "item_removed",
				Body:           notice,
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}
		return s.items.DeleteItem(txCtx, record.ItemID)
	}); err != nil {
		return errs.Wrap(err, "remove item")
	}

	s.publishChange(ctx, "items", ports.OpDelete, record.ItemID, map[string]any{
		"owner_id": record.OwnerID,
	})
	s.invalidateItemCaches()
	return nil
}
