package adminconsole

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tigawane/internal/usecase/sharing"
)

func newTestModel() *adminModel {
	model := NewAdminModel(context.Background(), nil, Options{})
	return model.(*adminModel)
}

func TestMoveSelectionStaysInBounds(t *testing.T) {
	m := newTestModel()
	m.items = []sharing.ItemView{
		{ItemID: "item-1", Title: "First"},
		{ItemID: "item-2", Title: "Second"},
	}

	if _, _ = m.moveSelection(-1); m.selectedItem != 0 {
		t.Fatalf("selectedItem = %d, want 0 at top", m.selectedItem)
	}
	if _, _ = m.moveSelection(1); m.selectedItem != 1 {
		t.Fatalf("selectedItem = %d, want 1", m.selectedItem)
	}
	if _, _ = m.moveSelection(1); m.selectedItem != 1 {
		t.Fatalf("selectedItem = %d, want 1 at bottom", m.selectedItem)
	}
}

func TestTabSwitchesPane(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if updated.(*adminModel).pane != paneCollaborations {
		t.Fatal("tab should focus the collaboration pane")
	}
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyTab})
	if updated.(*adminModel).pane != paneItems {
		t.Fatal("second tab should focus the item pane again")
	}
}

func TestItemsLoadedClampsSelection(t *testing.T) {
	m := newTestModel()
	m.selectedItem = 5

	updated, _ := m.Update(itemsLoadedMsg{items: []sharing.ItemView{{ItemID: "item-1"}}})
	if updated.(*adminModel).selectedItem != 0 {
		t.Fatalf("selectedItem = %d, want clamped to 0", updated.(*adminModel).selectedItem)
	}
}

func TestViewRendersQueueAndAudit(t *testing.T) {
	m := newTestModel()
	m.items = []sharing.ItemView{{ItemID: "item-12345678", Title: "Maize flour", Status: "available", OwnerID: "owner-1"}}
	m.appendAuditLog("remove", "item-12345678", "Maize flour", nil)

	view := m.View()
	if !strings.Contains(view, "Maize flour") {
		t.Fatal("view should list the item title")
	}
	if !strings.Contains(view, "action=remove") {
		t.Fatal("view should show the audit line")
	}
	if !strings.Contains(view, "item-123") {
		t.Fatal("view should show the shortened item id")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abcdefghij"); got != "abcdefgh" {
		t.Fatalf("shortID = %q, want first 8 chars", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("shortID = %q, want unchanged", got)
	}
	if got := shortID("  "); got != "-" {
		t.Fatalf("shortID = %q, want dash for blank", got)
	}
}
