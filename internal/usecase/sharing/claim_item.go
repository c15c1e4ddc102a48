package sharing

import (
	"context"
	"strings"

	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
)

type ClaimItemInput struct {
	ItemID     string
	ClaimantID string
	Quantity   int
	Message    string
}

// ClaimItem files a claim against an available item and moves the item to
// requested so other browsers see it is spoken for.
func (s *Service) ClaimItem(ctx context.Context, in ClaimItemInput) (ClaimView, error) {
	item, err := s.items.GetItem(ctx, in.ItemID)
	if err != nil {
		return ClaimView{}, err
	}
	if err := domainsharing.CheckClaim(item.OwnerID, in.ClaimantID, item.Status, in.Quantity, item.Quantity); err != nil {
		return ClaimView{}, err
	}

	now := s.timestamp()
	claim := ports.ClaimRecord{
		ClaimID:    s.newID(),
		ItemID:     item.ItemID,
		ClaimantID: in.ClaimantID,
		Quantity:   in.Quantity,
		Message:    strings.TrimSpace(in.Message),
		Status:     domainsharing.ClaimPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.claims.CreateClaim(txCtx, claim); err != nil {
			return err
		}
		if item.Status == domainsharing.ItemAvailable {
			if !domainsharing.CanTransitionItem(item.Status, domainsharing.ItemRequested) {
				return domainsharing.ErrBadItemTransition
			}
			if err := s.items.SetItemStatus(txCtx, item.ItemID, domainsharing.ItemRequested, now); err != nil {
				return err
			}
		}
		return s.notifications.CreateNotification(txCtx, ports.NotificationRecord{
			NotificationID: s.newID(),
			RecipientID:    item.OwnerID,
			Kind:           "claim_received",
			Body:           "New claim on your item: " + item.Title,
			CreatedAt:      now,
		})
	}); err != nil {
		return ClaimView{}, errs.Wrap(err, "create claim")
	}

	s.publishChange(ctx, "claims", ports.OpInsert, claim.ClaimID, map[string]any{
		"item_id":     claim.ItemID,
		"claimant_id": claim.ClaimantID,
		"status":      claim.Status,
	})
	s.publishChange(ctx, "items", ports.OpUpdate, item.ItemID, map[string]any{
		"owner_id": item.OwnerID,
		"status":   domainsharing.ItemRequested,
	})
	s.invalidateItemCaches()

	return mapClaimView(claim), nil
}
