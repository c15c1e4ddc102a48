package sharing

import (
	"errors"
	"testing"
)

func TestItemTransitions(t *testing.T) {
	allowed := [][2]string{
		{ItemAvailable, ItemRequested},
		{ItemRequested, ItemReserved},
		{ItemRequested, ItemAvailable},
		{ItemReserved, ItemCompleted},
		{ItemReserved, ItemAvailable},
	}
	for _, tr := range allowed {
		if !CanTransitionItem(tr[0], tr[1]) {
			t.Errorf("CanTransitionItem(%s, %s) = false, want true", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		{ItemAvailable, ItemReserved},
		{ItemAvailable, ItemCompleted},
		{ItemRequested, ItemCompleted},
		{ItemCompleted, ItemAvailable},
		{ItemCompleted, ItemRequested},
		{"", ItemAvailable},
	}
	for _, tr := range denied {
		if CanTransitionItem(tr[0], tr[1]) {
			t.Errorf("CanTransitionItem(%s, %s) = true, want false", tr[0], tr[1])
		}
	}
}

func TestClaimTransitions(t *testing.T) {
	if !CanTransitionClaim(ClaimPending, ClaimApproved) {
		t.Error("pending -> approved should be allowed")
	}
	if !CanTransitionClaim(ClaimApproved, ClaimCompleted) {
		t.Error("approved -> completed should be allowed")
	}
	if CanTransitionClaim(ClaimRejected, ClaimApproved) {
		t.Error("rejected is terminal")
	}
	if CanTransitionClaim(ClaimCompleted, ClaimCancelled) {
		t.Error("completed is terminal")
	}
}

func TestCheckClaim(t *testing.T) {
	if err := CheckClaim("owner", "claimant", ItemAvailable, 1, 3); err != nil {
		t.Fatalf("valid claim rejected: %v", err)
	}
	if err := CheckClaim("owner", "claimant", ItemRequested, 2, 3); err != nil {
		t.Fatalf("claim on requested item rejected: %v", err)
	}

	if err := CheckClaim("owner", "owner", ItemAvailable, 1, 3); !errors.Is(err, ErrOwnClaim) {
		t.Fatalf("err = %v, want ErrOwnClaim", err)
	}
	if err := CheckClaim("owner", "claimant", ItemReserved, 1, 3); !errors.Is(err, ErrItemNotClaimable) {
		t.Fatalf("err = %v, want ErrItemNotClaimable", err)
	}
	if err := CheckClaim("owner", "claimant", ItemAvailable, 0, 3); !errors.Is(err, ErrBadClaimQuantity) {
		t.Fatalf("err = %v, want ErrBadClaimQuantity", err)
	}
	if err := CheckClaim("owner", "claimant", ItemAvailable, 4, 3); !errors.Is(err, ErrBadClaimQuantity) {
		t.Fatalf("err = %v, want ErrBadClaimQuantity", err)
	}
}

func TestCheckRespondAndComplete(t *testing.T) {
	if err := CheckRespond("owner", "someone-else", ClaimPending); !errors.Is(err, ErrNotItemOwner) {
		t.Fatalf("err = %v, want ErrNotItemOwner", err)
	}
	if err := CheckRespond("owner", "owner", ClaimApproved); !errors.Is(err, ErrClaimNotPending) {
		t.Fatalf("err = %v, want ErrClaimNotPending", err)
	}
	if err := CheckRespond("owner", "owner", ClaimPending); err != nil {
		t.Fatalf("valid respond rejected: %v", err)
	}

	if err := CheckComplete("owner", "claimant", "claimant", ClaimApproved); err != nil {
		t.Fatalf("claimant completing approved claim rejected: %v", err)
	}
	if err := CheckComplete("owner", "claimant", "stranger", ClaimApproved); !errors.Is(err, ErrNotClaimParty) {
		t.Fatalf("err = %v, want ErrNotClaimParty", err)
	}
	if err := CheckComplete("owner", "claimant", "owner", ClaimPending); !errors.Is(err, ErrClaimNotApproved) {
		t.Fatalf("err = %v, want ErrClaimNotApproved", err)
	}
}

func TestCheckCancel(t *testing.T) {
	if err := CheckCancel("owner", "claimant", "claimant", ClaimPending); err != nil {
		t.Fatalf("claimant cancelling pending claim rejected: %v", err)
	}
	if err := CheckCancel("owner", "claimant", "owner", ClaimApproved); err != nil {
		t.Fatalf("owner cancelling approved claim rejected: %v", err)
	}
	if err := CheckCancel("owner", "claimant", "claimant", ClaimCompleted); !errors.Is(err, ErrClaimNotActive) {
		t.Fatalf("err = %v, want ErrClaimNotActive", err)
	}
}
