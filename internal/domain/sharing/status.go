package sharing

// Item lifecycle. An item is claimable while available or requested; a
// reserved item is promised to an approved claim; completed items are kept
// for history and stats.
const (
	ItemAvailable = "available"
	ItemRequested = "requested"
	ItemReserved  = "reserved"
	ItemCompleted = "completed"
)

// Claim lifecycle.
const (
	ClaimPending   = "pending"
	ClaimApproved  = "approved"
	ClaimRejected  = "rejected"
	ClaimCompleted = "completed"
	ClaimCancelled = "cancelled"
)

// Collaboration request lifecycle.
const (
	CollaborationPending  = "pending"
	CollaborationAccepted = "accepted"
	CollaborationDeclined = "declined"
)

// Item types.
const (
	ItemTypeFood    = "food"
	ItemTypeNonFood = "non-food"
)

var itemTransitions = map[string]map[string]struct{}{
	ItemAvailable: {ItemRequested: {}},
	ItemRequested: {ItemReserved: {}, ItemAvailable: {}},
	ItemReserved:  {ItemCompleted: {}, ItemAvailable: {}},
}

// CanTransitionItem reports whether an item may move from one status to
// another. Completed is terminal.
func CanTransitionItem(from, to string) bool {
	next, ok := itemTransitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

var claimTransitions = map[string]map[string]struct{}{
	ClaimPending:  {ClaimApproved: {}, ClaimRejected: {}, ClaimCancelled: {}},
	ClaimApproved: {ClaimCompleted: {}, ClaimCancelled: {}},
}

// CanTransitionClaim reports whether a claim may move from one status to
// another. Rejected, completed and cancelled are terminal.
func CanTransitionClaim(from, to string) bool {
	next, ok := claimTransitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// ClaimActive reports whether a claim still holds (or may come to hold) the
// item: pending and approved claims keep the item off the available pool.
func ClaimActive(status string) bool {
	return status == ClaimPending || status == ClaimApproved
}

func ValidItemType(itemType string) bool {
	return itemType == ItemTypeFood || itemType == ItemTypeNonFood
}
