package sharing

import (
	"context"

	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
)

type CompleteClaimInput struct {
	ClaimID string
	ActorID string
}

// CompleteClaim records the hand-over of a reserved item. Either party may
// confirm; the item becomes completed and counts toward community stats.
func (s *Service) CompleteClaim(ctx context.Context, in CompleteClaimInput) (ClaimView, error) {
	claim, err := s.claims.GetClaim(ctx, in.ClaimID)
	if err != nil {
		return ClaimView{}, err
	}
	item, err := s.items.GetItem(ctx, claim.ItemID)
	if err != nil {
		return ClaimView{}, err
	}
	if err := domainsharing.CheckComplete(item.OwnerID, claim.ClaimantID, in.ActorID, claim.Status); err != nil {
		return ClaimView{}, err
	}
	if !domainsharing.CanTransitionItem(item.Status, domainsharing.ItemCompleted) {
		return ClaimView{}, domainsharing.ErrBadItemTransition
	}

	now := s.timestamp()
	counterpart := item.OwnerID
	if in.ActorID == item.OwnerID {
		counterpart = claim.ClaimantID
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.claims.SetClaimStatus(txCtx, claim.ClaimID, domainsharing.ClaimCompleted, now); err != nil {
			return err
		}
		if err := s.items.SetItemStatus(txCtx, item.ItemID, domainsharing.ItemCompleted, now); err != nil {
			return err
		}
		return s.notifications.CreateNotification(txCtx, ports.NotificationRecord{
			NotificationID: s.newID(),
			RecipientID:    counterpart,
			Kind:           "claim_completed",
			Body:           "Hand-over confirmed: " + item.Title,
			CreatedAt:      now,
		})
	}); err != nil {
		return ClaimView{}, errs.Wrap(err, "complete claim")
	}

	claim.Status = domainsharing.ClaimCompleted
	claim.UpdatedAt = now

	s.publishChange(ctx, "claims", ports.OpUpdate, claim.ClaimID, map[string]any{
		"item_id": claim.ItemID,
		"status":  claim.Status,
	})
	s.publishChange(ctx, "items", ports.OpUpdate, item.ItemID, map[string]any{
		"owner_id": item.OwnerID,
		"status":   domainsharing.ItemCompleted,
	})
	s.invalidateItemCaches()

	return mapClaimView(claim), nil
}
