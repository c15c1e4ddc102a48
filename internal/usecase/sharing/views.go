package sharing

import "tigawane/internal/ports"

type ItemView struct {
	ItemID          string   `json:"item_id"`
	OwnerID         string   `json:"owner_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	ItemType        string   `json:"item_type"`
	Quantity        int      `json:"quantity"`
	Condition       string   `json:"condition,omitempty"`
	ExpiryDate      string   `json:"expiry_date,omitempty"`
	PickupAddress   string   `json:"pickup_address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	LocationSource  string   `json:"location_source"`
	PhotoURL        string   `json:"photo_url,omitempty"`
	Status          string   `json:"status"`
	CollaborationID string   `json:"collaboration_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type ClaimView struct {
	ClaimID    string `json:"claim_id"`
	ItemID     string `json:"item_id"`
	ClaimantID string `json:"claimant_id"`
	Quantity   int    `json:"quantity"`
	Message    string `json:"message,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type ItemDetail struct {
	ItemView
	Claims []ClaimView `json:"claims"`
}

type ProfileView struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Location    string `json:"location,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Bio         string `json:"bio,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type NotificationView struct {
	NotificationID string `json:"notification_id"`
	Kind           string `json:"kind"`
	Body           string `json:"body"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

type CollaborationView struct {
	RequestID   string `json:"request_id"`
	GroupName   string `json:"group_name"`
	RequesterID string `json:"requester_id"`
	PartnerOrg  string `json:"partner_org"`
	Message     string `json:"message,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CommunityStats struct {
	ItemsShared     int64 `json:"items_shared"`
	ItemsAvailable  int64 `json:"items_available"`
	ItemsCompleted  int64 `json:"items_completed"`
	FoodItems       int64 `json:"food_items"`
	CompletedClaims int64 `json:"completed_claims"`
	ActiveMembers   int64 `json:"active_members"`
}

func mapItemView(record ports.ItemRecord) ItemView {
	view := ItemView{
		ItemID:         record.ItemID,
		OwnerID:        record.OwnerID,
		Title:          record.Title,
		Description:    record.Description,
		Category:       record.Category,
		ItemType:       record.ItemType,
		Quantity:       record.Quantity,
		Condition:      record.Condition,
		PickupAddress:  record.PickupAddress,
		Latitude:       record.Latitude,
		Longitude:      record.Longitude,
		LocationSource: record.LocationSource,
		PhotoURL:       record.PhotoURL,
		Status:         record.Status,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
	if record.ExpiryDate != nil {
		view.ExpiryDate = *record.ExpiryDate
	}
	if record.CollaborationID != nil {
		view.CollaborationID = *record.CollaborationID
	}
	return view
}

func mapItemViews(records []ports.ItemRecord) []ItemView {
	views := make([]ItemView, 0, len(records))
	for _, record := range records {
		views = append(views, mapItemView(record))
	}
	return views
}

func mapClaimView(record ports.ClaimRecord) ClaimView {
	return ClaimView{
		ClaimID:    record.ClaimID,
		ItemID:     record.ItemID,
		ClaimantID: record.ClaimantID,
		Quantity:   record.Quantity,
		Message:    record.Message,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func mapProfileView(record ports.ProfileRecord) ProfileView {
	return ProfileView{
		UserID:      record.UserID,
		DisplayName: record.DisplayName,
		Location:    record.Location,
		Phone:       record.Phone,
		Bio:         record.Bio,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func mapCollaborationView(record ports.CollaborationRecord) CollaborationView {
	return CollaborationView{
		RequestID:   record.RequestID,
		GroupName:   record.GroupName,
		RequesterID: record.RequesterID,
		PartnerOrg:  record.PartnerOrg,
		Message:     record.Message,
		Status:      record.Status,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
