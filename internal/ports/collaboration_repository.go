package ports

import (
	"context"
	"errors"
)

var ErrCollaborationNotFound = errors.New("collaboration request not found")

type CollaborationRecord struct {
	RequestID   string
	GroupName   string
	RequesterID string
	PartnerOrg  string
	Message     string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

type CollaborationRepository interface {
	GetRequest(ctx context.Context, requestID string) (CollaborationRecord, error)
	ListRequests(ctx context.Context, status string) ([]CollaborationRecord, error)
	CreateRequest(ctx context.Context, request CollaborationRecord) error
	SetRequestStatus(ctx context.Context, requestID string, status string, updatedAt string) error
}
