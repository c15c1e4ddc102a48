package sharing

import (
	"context"
	"strings"

	"tigawane/internal/errs"
)

// AdminRemoveItem takes a listing down regardless of owner. Active
// claimants are told why their claim went away.
func (s *Service) AdminRemoveItem(ctx context.Context, itemID, reason string) error {
	record, err := s.items.GetItem(ctx, strings.TrimSpace(itemID))
	if err != nil {
		return err
	}

	notice := "Your claim was cancelled: the item was removed by a moderator"
	if reason = strings.TrimSpace(reason); reason != "" {
		notice += " (" + reason + ")"
	}
	if err := s.removeItem(ctx, record, notice); err != nil {
		return errs.Wrap(err, "admin remove item")
	}
	return nil
}
