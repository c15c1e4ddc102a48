package sharing

import (
	"context"

	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
)

type CancelClaimInput struct {
	ClaimID string
	ActorID string
}

// CancelClaim withdraws a pending or approved claim. The item returns to
// the available pool unless another active claim still holds it.
func (s *Service) CancelClaim(ctx context.Context, in CancelClaimInput) (ClaimView, error) {
	claim, err := s.claims.GetClaim(ctx, in.ClaimID)
	if err != nil {
		return ClaimView{}, err
	}
	item, err := s.items.GetItem(ctx, claim.ItemID)
	if err != nil {
		return ClaimView{}, err
	}
	if err := domainsharing.CheckCancel(item.OwnerID, claim.ClaimantID, in.ActorID, claim.Status); err != nil {
		return ClaimView{}, err
	}

	now := s.timestamp()
	counterpart := item.OwnerID
	if in.ActorID == item.OwnerID {
		counterpart = claim.ClaimantID
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.claims.SetClaimStatus(txCtx, claim.ClaimID, domainsharing.ClaimCancelled, now); err != nil {
			return err
		}

		itemStatus, err := s.nextItemStatusLocked(txCtx, item, claim.ClaimID, false)
		if err != nil {
			return err
		}
		if itemStatus != item.Status {
			if !domainsharing.CanTransitionItem(item.Status, itemStatus) {
				return domainsharing.ErrBadItemTransition
			}
			if err := s.items.SetItemStatus(txCtx, item.ItemID, itemStatus, now); err != nil {
				return err
			}
		}

		return s.notifications.CreateNotification(txCtx, ports.NotificationRecord{
			NotificationID: s.newID(),
			RecipientID:    counterpart,
			Kind:           "claim_cancelled",
			Body:           "A claim was withdrawn: " + item.Title,
			CreatedAt:      now,
		})
	}); err != nil {
		return ClaimView{}, errs.Wrap(err, "cancel claim")
	}

	claim.Status = domainsharing.ClaimCancelled
	claim.UpdatedAt = now

	s.publishChange(ctx, "claims", ports.OpUpdate, claim.ClaimID, map[string]any{
		"item_id": claim.ItemID,
		"status":  claim.Status,
	})
	s.invalidateItemCaches()

	return mapClaimView(claim), nil
}
