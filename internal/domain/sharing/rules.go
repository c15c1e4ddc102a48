package sharing

import "errors"

var (
	ErrOwnClaim          = errors.New("cannot claim your own item")
	ErrItemNotClaimable  = errors.New("item is not open for claims")
	ErrBadClaimQuantity  = errors.New("claim quantity must be between 1 and the shared quantity")
	ErrNotItemOwner      = errors.New("only the item owner may do this")
	ErrNotClaimParty     = errors.New("only the claimant or the item owner may do this")
	ErrClaimNotPending   = errors.New("claim is not pending")
	ErrClaimNotApproved  = errors.New("claim is not approved")
	ErrClaimNotActive    = errors.New("claim is no longer active")
	ErrBadItemTransition = errors.New("item status transition not allowed")
)

// CheckClaim validates a new claim against the item it targets.
func CheckClaim(itemOwnerID, claimantID, itemStatus string, claimQuantity, itemQuantity int) error {
	if claimantID == itemOwnerID {
		return ErrOwnClaim
	}
	if itemStatus != ItemAvailable && itemStatus != ItemRequested {
		return ErrItemNotClaimable
	}
	if claimQuantity < 1 || claimQuantity > itemQuantity {
		return ErrBadClaimQuantity
	}
	return nil
}

// CheckRespond validates an owner approving or rejecting a claim.
func CheckRespond(itemOwnerID, actorID, claimStatus string) error {
	if actorID != itemOwnerID {
		return ErrNotItemOwner
	}
	if claimStatus != ClaimPending {
		return ErrClaimNotPending
	}
	return nil
}

// CheckComplete validates marking an approved claim as handed over. Either
// party may confirm completion.
func CheckComplete(itemOwnerID, claimantID, actorID, claimStatus string) error {
	if actorID != itemOwnerID && actorID != claimantID {
		return ErrNotClaimParty
	}
	if claimStatus != ClaimApproved {
		return ErrClaimNotApproved
	}
	return nil
}

// CheckCancel validates withdrawing a pending or approved claim.
func CheckCancel(itemOwnerID, claimantID, actorID, claimStatus string) error {
	if actorID != itemOwnerID && actorID != claimantID {
		return ErrNotClaimParty
	}
	if !ClaimActive(claimStatus) {
		return ErrClaimNotActive
	}
	return nil
}
