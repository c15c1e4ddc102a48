package sharing

import (
	"context"

	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
)

type RespondToClaimInput struct {
	ClaimID string
	ActorID string
	Approve bool
}

// RespondToClaim lets the item owner approve or reject a pending claim.
// Approval reserves the item; rejection releases it back to available when
// no other active claim remains.
func (s *Service) RespondToClaim(ctx context.Context, in RespondToClaimInput) (ClaimView, error) {
	claim, err := s.claims.GetClaim(ctx, in.ClaimID)
	if err != nil {
		return ClaimView{}, err
	}
	item, err := s.items.GetItem(ctx, claim.ItemID)
	if err != nil {
		return ClaimView{}, err
	}
	if err := domainsharing.CheckRespond(item.OwnerID, in.ActorID, claim.Status); err != nil {
		return ClaimView{}, err
	}

	now := s.timestamp()
	claimStatus := domainsharing.ClaimRejected
	notificationKind := "claim_rejected"
	notice := "Your claim was declined: " + item.Title
	if in.Approve {
		claimStatus = domainsharing.ClaimApproved
		notificationKind = "claim_approved"
		notice = "Your claim was approved: " + item.Title
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.claims.SetClaimStatus(txCtx, claim.ClaimID, claimStatus, now); err != nil {
			return err
		}

		itemStatus, err := s.nextItemStatusLocked(txCtx, item, claim.ClaimID, in.Approve)
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
			RecipientID:    claim.ClaimantID,
			Kind:           notificationKind,
			Body:           notice,
			CreatedAt:      now,
		})
	}); err != nil {
		return ClaimView{}, errs.Wrap(err, "respond to claim")
	}

	claim.Status = claimStatus
	claim.UpdatedAt = now

	s.publishChange(ctx, "claims", ports.OpUpdate, claim.ClaimID, map[string]any{
		"item_id": claim.ItemID,
		"status":  claim.Status,
	})
	s.invalidateItemCaches()

	return mapClaimView(claim), nil
}

// nextItemStatusLocked decides where the item lands after a response or
// cancellation. Must run inside the same transaction that already updated
// the triggering claim.
func (s *Service) nextItemStatusLocked(ctx context.Context, item ports.ItemRecord, decidedClaimID string, approved bool) (string, error) {
	if approved {
		return domainsharing.ItemReserved, nil
	}

	claims, err := s.claims.ListClaimsForItem(ctx, item.ItemID)
	if err != nil {
		return "", err
	}
	for _, other := range claims {
		if other.ClaimID == decidedClaimID {
			continue
		}
		if domainsharing.ClaimActive(other.Status) {
			return item.Status, nil
		}
	}
	return domainsharing.ItemAvailable, nil
}
