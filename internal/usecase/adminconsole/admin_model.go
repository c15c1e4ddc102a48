package adminconsole

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tigawane/internal/bootstrap/logging"
	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/usecase/sharing"
)

const maxShownClaims = 4
const maxAuditLines = 8

// Pane focus: item moderation or collaboration review.
const (
	paneItems = iota
	paneCollaborations
)

type Options struct {
	StatusFilter    string
	RefreshInterval time.Duration
}

type adminModel struct {
	ctx             context.Context
	service         *sharing.Service
	statusFilter    string
	refreshInterval time.Duration

	pane int

	items         []sharing.ItemView
	selectedItem  int
	detail        sharing.ItemDetail
	hasDetail     bool
	pendingReqs   []sharing.CollaborationView
	selectedReq   int
	stats         sharing.CommunityStats
	hasStats      bool
	statusMessage string
	auditLogs     []string
}

type itemsLoadedMsg struct {
	items []sharing.ItemView
	err   error
}

type itemDetailLoadedMsg struct {
	itemID string
	detail sharing.ItemDetail
	err    error
}

type collaborationsLoadedMsg struct {
	requests []sharing.CollaborationView
	err      error
}

type statsLoadedMsg struct {
	stats sharing.CommunityStats
	err   error
}

type tickMsg struct{}

type actionDoneMsg struct {
	action string
	target string
	result string
	err    error
}

func NewAdminModel(ctx context.Context, service *sharing.Service, options Options) tea.Model {
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &adminModel{
		ctx:             ctx,
		service:         service,
		statusFilter:    strings.TrimSpace(options.StatusFilter),
		refreshInterval: interval,
		statusMessage:   "loading",
	}
}

func (m *adminModel) Init() tea.Cmd {
	return tea.Batch(m.loadItemsCmd(), m.loadCollaborationsCmd(), m.loadStatsCmd(), m.tickCmd())
}

func (m *adminModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadItemsCmd(), m.loadCollaborationsCmd(), m.loadStatsCmd(), m.tickCmd())
	case itemsLoadedMsg:
		if msg.err != nil {
			m.statusMessage = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.items = msg.items
		if len(m.items) == 0 {
			m.selectedItem = 0
			m.hasDetail = false
			m.statusMessage = "no items"
			return m, nil
		}
		if m.selectedItem >= len(m.items) {
			m.selectedItem = len(m.items) - 1
		}
		if m.selectedItem < 0 {
			m.selectedItem = 0
		}
		m.statusMessage = fmt.Sprintf("refreshed, %d items", len(m.items))
		return m, m.loadSelectedDetailCmd()
	case itemDetailLoadedMsg:
		selected, ok := m.selectedItemView()
		if !ok || selected.ItemID != msg.itemID {
			return m, nil
		}
		if msg.err != nil {
			m.hasDetail = false
			m.statusMessage = "detail load failed: " + msg.err.Error()
			return m, nil
		}
		m.detail = msg.detail
		m.hasDetail = true
		return m, nil
	case collaborationsLoadedMsg:
		if msg.err != nil {
			m.statusMessage = "collaboration refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.pendingReqs = msg.requests
		if m.selectedReq >= len(m.pendingReqs) {
			m.selectedReq = len(m.pendingReqs) - 1
		}
		if m.selectedReq < 0 {
			m.selectedReq = 0
		}
		return m, nil
	case statsLoadedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.stats = msg.stats
		m.hasStats = true
		return m, nil
	case actionDoneMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			m.appendAuditLog(msg.action, msg.target, "", msg.err)
		} else {
			m.statusMessage = fmt.Sprintf("%s done: %s", msg.action, msg.result)
			m.appendAuditLog(msg.action, msg.target, msg.result, nil)
		}
		return m, tea.Batch(m.loadItemsCmd(), m.loadCollaborationsCmd(), m.loadStatsCmd())
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.pane == paneItems {
				m.pane = paneCollaborations
			} else {
				m.pane = paneItems
			}
			return m, nil
		case "g":
			m.statusMessage = "refreshing"
			return m, tea.Batch(m.loadItemsCmd(), m.loadCollaborationsCmd(), m.loadStatsCmd())
		case "up", "k":
			return m.moveSelection(-1)
		case "down", "j":
			return m.moveSelection(1)
		case "x":
			if m.pane == paneItems {
				return m, m.removeItemCmd()
			}
			return m, nil
		case "a":
			if m.pane == paneCollaborations {
				return m, m.respondCollaborationCmd(true)
			}
			return m, nil
		case "d":
			if m.pane == paneCollaborations {
				return m, m.respondCollaborationCmd(false)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *adminModel) moveSelection(delta int) (tea.Model, tea.Cmd) {
	if m.pane == paneCollaborations {
		next := m.selectedReq + delta
		if next >= 0 && next < len(m.pendingReqs) {
			m.selectedReq = next
		}
		return m, nil
	}
	next := m.selectedItem + delta
	if next >= 0 && next < len(m.items) {
		m.selectedItem = next
		return m, m.loadSelectedDetailCmd()
	}
	return m, nil
}

func (m *adminModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))
	focusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Tigawane Moderation Console"))
	builder.WriteString("\n")
	if m.hasStats {
		builder.WriteString(dimStyle.Render(fmt.Sprintf(
			"shared=%d available=%d completed=%d members=%d refresh=%s",
			m.stats.ItemsShared,
			m.stats.ItemsAvailable,
			m.stats.ItemsCompleted,
			m.stats.ActiveMembers,
			m.refreshInterval,
		)))
	}
	builder.WriteString("\n\n")

	itemsHeader := "Items"
	if m.pane == paneItems {
		itemsHeader = focusStyle.Render("Items *")
	} else {
		itemsHeader = sectionStyle.Render(itemsHeader)
	}
	builder.WriteString(itemsHeader)
	builder.WriteString("\n")
	if len(m.items) == 0 {
		builder.WriteString(dimStyle.Render("- no items"))
		builder.WriteString("\n\n")
	} else {
		for index, item := range m.items {
			line := fmt.Sprintf(
				"%s [%s] %s qty=%d owner=%s at=%s",
				shortID(item.ItemID),
				item.Status,
				item.Title,
				item.Quantity,
				item.OwnerID,
				item.PickupAddress,
			)
			if index == m.selectedItem && m.pane == paneItems {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + line)
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Detail"))
	builder.WriteString("\n")
	if !m.hasDetail {
		builder.WriteString(dimStyle.Render("- no detail"))
		builder.WriteString("\n\n")
	} else {
		builder.WriteString(fmt.Sprintf("Item: %s (%s/%s)\n", m.detail.Title, m.detail.Category, m.detail.ItemType))
		builder.WriteString(fmt.Sprintf("Status: %s\n", m.detail.Status))
		builder.WriteString(fmt.Sprintf("Pickup: %s (%.4f, %.4f, %s)\n",
			m.detail.PickupAddress, m.detail.Latitude, m.detail.Longitude, m.detail.LocationSource))
		builder.WriteString("Claims:\n")
		if len(m.detail.Claims) == 0 {
			builder.WriteString("- none\n")
		} else {
			claims := m.detail.Claims
			if len(claims) > maxShownClaims {
				claims = claims[len(claims)-maxShownClaims:]
			}
			for _, claim := range claims {
				builder.WriteString(fmt.Sprintf("- %s [%s] by=%s qty=%d\n",
					shortID(claim.ClaimID), claim.Status, claim.ClaimantID, claim.Quantity))
			}
		}
		builder.WriteString("\n")
	}

	collabHeader := "Pending Collaborations"
	if m.pane == paneCollaborations {
		collabHeader = focusStyle.Render("Pending Collaborations *")
	} else {
		collabHeader = sectionStyle.Render(collabHeader)
	}
	builder.WriteString(collabHeader)
	builder.WriteString("\n")
	if len(m.pendingReqs) == 0 {
		builder.WriteString(dimStyle.Render("- none"))
		builder.WriteString("\n\n")
	} else {
		for index, request := range m.pendingReqs {
			line := fmt.Sprintf("%s %s -> %s: %s",
				shortID(request.RequestID), request.GroupName, request.PartnerOrg, request.Message)
			if index == m.selectedReq && m.pane == paneCollaborations {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + line)
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + m.statusMessage)
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Audit Log"))
	builder.WriteString("\n")
	if len(m.auditLogs) == 0 {
		builder.WriteString(dimStyle.Render("- no actions"))
		builder.WriteString("\n\n")
	} else {
		for _, line := range m.auditLogs {
			builder.WriteString("- " + line)
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(dimStyle.Render("Keys: tab switch pane  ↑/k ↓/j move  g refresh  x remove item  a accept  d decline  q quit"))
	return builder.String()
}

func (m *adminModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *adminModel) loadItemsCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.service.ListItems(m.ctx, sharing.ListItemsInput{
			Status:          m.statusFilter,
			IncludeComplete: true,
		})
		if err != nil {
			return itemsLoadedMsg{err: err}
		}
		return itemsLoadedMsg{items: items}
	}
}

func (m *adminModel) loadSelectedDetailCmd() tea.Cmd {
	selected, ok := m.selectedItemView()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		detail, err := m.service.GetItem(m.ctx, selected.ItemID)
		if err != nil {
			return itemDetailLoadedMsg{itemID: selected.ItemID, err: err}
		}
		return itemDetailLoadedMsg{itemID: selected.ItemID, detail: detail}
	}
}

func (m *adminModel) loadCollaborationsCmd() tea.Cmd {
	return func() tea.Msg {
		requests, err := m.service.ListCollaborationRequests(m.ctx, domainsharing.CollaborationPending)
		if err != nil {
			return collaborationsLoadedMsg{err: err}
		}
		return collaborationsLoadedMsg{requests: requests}
	}
}

func (m *adminModel) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.service.GetCommunityStats(m.ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{stats: stats}
	}
}

func (m *adminModel) removeItemCmd() tea.Cmd {
	selected, ok := m.selectedItemView()
	if !ok {
		m.statusMessage = "no item selected"
		return nil
	}
	m.statusMessage = "removing item..."
	return func() tea.Msg {
		if err := m.service.AdminRemoveItem(m.ctx, selected.ItemID, "removed from moderation console"); err != nil {
			return actionDoneMsg{action: "remove", target: selected.ItemID, err: err}
		}
		return actionDoneMsg{action: "remove", target: selected.ItemID, result: selected.Title}
	}
}

func (m *adminModel) respondCollaborationCmd(accept bool) tea.Cmd {
	selected, ok := m.selectedRequest()
	if !ok {
		m.statusMessage = "no request selected"
		return nil
	}
	action := "decline"
	if accept {
		action = "accept"
	}
	m.statusMessage = "responding to request..."
	return func() tea.Msg {
		request, err := m.service.RespondToCollaboration(m.ctx, sharing.RespondToCollaborationInput{
			RequestID: selected.RequestID,
			Accept:    accept,
		})
		if err != nil {
			return actionDoneMsg{action: action, target: selected.RequestID, err: err}
		}
		return actionDoneMsg{action: action, target: selected.RequestID, result: request.Status}
	}
}

func (m *adminModel) selectedItemView() (sharing.ItemView, bool) {
	if m.selectedItem < 0 || m.selectedItem >= len(m.items) {
		return sharing.ItemView{}, false
	}
	return m.items[m.selectedItem], true
}

func (m *adminModel) selectedRequest() (sharing.CollaborationView, bool) {
	if m.selectedReq < 0 || m.selectedReq >= len(m.pendingReqs) {
		return sharing.CollaborationView{}, false
	}
	return m.pendingReqs[m.selectedReq], true
}

func (m *adminModel) appendAuditLog(action string, target string, result string, opErr error) {
	outcome := strings.TrimSpace(result)
	if opErr != nil {
		outcome = "error: " + opErr.Error()
	}
	if outcome == "" {
		outcome = "ok"
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	line := fmt.Sprintf("%s action=%s target=%s result=%s", timestamp, action, target, outcome)
	m.auditLogs = append([]string{line}, m.auditLogs...)
	if len(m.auditLogs) > maxAuditLines {
		m.auditLogs = m.auditLogs[:maxAuditLines]
	}

	logging.Info(m.ctx, "moderation console action",
		slog.String("time", timestamp),
		slog.String("action", action),
		slog.String("target", target),
		slog.String("result", outcome),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if strings.TrimSpace(id) == "" {
		return "-"
	}
	return id
}
