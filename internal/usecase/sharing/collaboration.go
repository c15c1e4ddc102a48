package sharing

import (
	"context"
	"errors"
	"strings"

	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
)

var (
	errGroupNameRequired  = invalidInput("group name is required")
	errPartnerOrgRequired = invalidInput("partner organization is required")
	errRequestDecided     = errors.New("collaboration request is already decided")
)

type RequestCollaborationInput struct {
	GroupName   string
	RequesterID string
	PartnerOrg  string
	Message     string
}

// RequestCollaboration records a community group asking a partner
// organization to co-host a sharing drive. Requests start pending and wait
// for a moderator decision.
func (s *Service) RequestCollaboration(ctx context.Context, in RequestCollaborationInput) (CollaborationView, error) {
	in.GroupName = strings.TrimSpace(in.GroupName)
	in.RequesterID = strings.TrimSpace(in.RequesterID)
	in.PartnerOrg = strings.TrimSpace(in.PartnerOrg)
	if in.GroupName == "" {
		return CollaborationView{}, errGroupNameRequired
	}
	if in.RequesterID == "" {
		return CollaborationView{}, errUserRequired
	}
	if in.PartnerOrg == "" {
		return CollaborationView{}, errPartnerOrgRequired
	}

	now := s.timestamp()
	record := ports.CollaborationRecord{
		RequestID:   s.newID(),
		GroupName:   in.GroupName,
		RequesterID: in.RequesterID,
		PartnerOrg:  in.PartnerOrg,
		Message:     strings.TrimSpace(in.Message),
		Status:      domainsharing.CollaborationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.collaborations.CreateRequest(ctx, record); err != nil {
		return CollaborationView{}, errs.Wrap(err, "create collaboration request")
	}

	s.publishChange(ctx, "collaborations", ports.OpInsert, record.RequestID, map[string]any{
		"group_name":  record.GroupName,
		"partner_org": record.PartnerOrg,
		"status":      record.Status,
	})
	return mapCollaborationView(record), nil
}

type RespondToCollaborationInput struct {
	RequestID string
	Accept    bool
}

// RespondToCollaboration decides a pending request and notifies the
// requester of the outcome.
func (s *Service) RespondToCollaboration(ctx context.Context, in RespondToCollaborationInput) (CollaborationView, error) {
	record, err := s.collaborations.GetRequest(ctx, strings.TrimSpace(in.RequestID))
	if err != nil {
		return CollaborationView{}, err
	}
	if record.Status != domainsharing.CollaborationPending {
		return CollaborationView{}, errRequestDecided
	}

	status := domainsharing.CollaborationDeclined
	kind := "collaboration_declined"
	if in.Accept {
		status = domainsharing.CollaborationAccepted
		kind = "collaboration_accepted"
	}

	now := s.timestamp()
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.collaborations.SetRequestStatus(txCtx, record.RequestID, status, now); err != nil {
			return err
		}
		return s.notifications.CreateNotification(txCtx, ports.NotificationRecord{
			NotificationID: s.newID(),
			RecipientID:    record.RequesterID,
			Kind:           kind,
			Body:           record.PartnerOrg + " " + status + " the request from " + record.GroupName,
			CreatedAt:      now,
		})
	}); err != nil {
		return CollaborationView{}, errs.Wrap(err, "respond to collaboration request")
	}

	record.Status = status
	record.UpdatedAt = now
	s.publishChange(ctx, "collaborations", ports.OpUpdate, record.RequestID, map[string]any{
		"status": status,
	})
	return mapCollaborationView(record), nil
}

// ListCollaborationRequests returns requests, optionally restricted to one
// status.
func (s *Service) ListCollaborationRequests(ctx context.Context, status string) ([]CollaborationView, error) {
	records, err := s.collaborations.ListRequests(ctx, strings.TrimSpace(status))
	if err != nil {
		return nil, errs.Wrap(err, "list collaboration requests")
	}
	views := make([]CollaborationView, 0, len(records))
	for _, record := range records {
		views = append(views, mapCollaborationView(record))
	}
	return views, nil
}
