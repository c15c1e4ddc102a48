package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/domain/geo"
	domainsharing "tigawane/internal/domain/sharing"
	"tigawane/internal/ports"
	"tigawane/internal/usecase/location"
	"tigawane/internal/usecase/sharing"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError translates usecase errors into status codes. A terminal
// location resolution failure is the submitter's problem to fix, so it comes
// back as 422 with the guidance message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var failure *location.ResolutionFailure
	switch {
	case errors.As(err, &failure):
		writeError(w, http.StatusUnprocessableEntity, failure.Error())
	case errors.Is(err, sharing.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrItemNotFound),
		errors.Is(err, ports.ErrClaimNotFound),
		errors.Is(err, ports.ErrProfileNotFound),
		errors.Is(err, ports.ErrNotificationNotFound),
		errors.Is(err, ports.ErrCollaborationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domainsharing.ErrNotItemOwner),
		errors.Is(err, domainsharing.ErrNotClaimParty):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domainsharing.ErrOwnClaim),
		errors.Is(err, domainsharing.ErrItemNotClaimable),
		errors.Is(err, domainsharing.ErrBadClaimQuantity),
		errors.Is(err, domainsharing.ErrClaimNotPending),
		errors.Is(err, domainsharing.ErrClaimNotApproved),
		errors.Is(err, domainsharing.ErrClaimNotActive),
		errors.Is(err, domainsharing.ErrBadItemTransition):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logging.Error(r.Context(), "request failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	return json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(v)
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := userID(r)
	if id == "" {
		writeError(w, http.StatusUnauthorized, "X-User-ID header is required")
		return "", false
	}
	return id, true
}

// coordinatePayload accepts latitude/longitude either as JSON numbers or as
// strings, matching what browser geolocation handlers and form posts send.
type coordinatePayload struct {
	Latitude  any `json:"latitude"`
	Longitude any `json:"longitude"`
}

func (p *coordinatePayload) coordinate() (geo.Coordinate, error) {
	lat, err := coordText(p.Latitude)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := coordText(p.Longitude)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.ParseCoordinate(lat, lon)
}

func coordText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	default:
		return "", errors.New("latitude and longitude are required")
	}
}

type shareItemRequest struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	ItemType      string             `json:"item_type"`
	Quantity      int                `json:"quantity"`
	Condition     string             `json:"condition"`
	ExpiryDate    string             `json:"expiry_date"`
	PickupAddress string             `json:"pickup_address"`
	LastKnown     *coordinatePayload `json:"last_known"`
	Device        *coordinatePayload `json:"device"`
}

// locationMaterial converts the optional coordinate payloads into resolver
// inputs. A malformed cached coordinate is dropped rather than rejected: the
// pipeline treats it as absent and falls through.
func locationMaterial(lastKnown, device *coordinatePayload) (*geo.Coordinate, ports.DeviceLocator) {
	var cached *geo.Coordinate
	if lastKnown != nil {
		if c, err := lastKnown.coordinate(); err == nil {
			cached = &c
		}
	}
	var locator ports.DeviceLocator
	if device != nil {
		if c, err := device.coordinate(); err == nil {
			locator = location.StaticLocator{Position: c}
		}
	}
	return cached, locator
}

func (s *Server) handleShareItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	in := sharing.ShareItemInput{OwnerID: owner}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := s.fillShareInputFromForm(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		var req shareItemRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		in.Title = req.Title
		in.Description = req.Description
		in.Category = req.Category
		in.ItemType = req.ItemType
		in.Quantity = req.Quantity
		in.Condition = req.Condition
		in.ExpiryDate = req.ExpiryDate
		in.PickupAddress = req.PickupAddress
		in.LastKnown, in.Locator = locationMaterial(req.LastKnown, req.Device)
	}

	item, err := s.svc.ShareItem(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// fillShareInputFromForm reads a multipart submission, the shape the photo
// upload form posts.
func (s *Server) fillShareInputFromForm(r *http.Request, in *sharing.ShareItemInput) error {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return errors.New("invalid multipart form")
	}
	in.Title = r.FormValue("title")
	in.Description = r.FormValue("description")
	in.Category = r.FormValue("category")
	in.ItemType = r.FormValue("item_type")
	in.Condition = r.FormValue("condition")
	in.ExpiryDate = r.FormValue("expiry_date")
	in.PickupAddress = r.FormValue("pickup_address")
	if quantity := r.FormValue("quantity"); quantity != "" {
		n, err := strconv.Atoi(quantity)
		if err != nil {
			return errors.New("quantity must be an integer")
		}
		in.Quantity = n
	}

	lastKnown := formCoordinate(r, "last_known_latitude", "last_known_longitude")
	device := formCoordinate(r, "device_latitude", "device_longitude")
	in.LastKnown, in.Locator = locationMaterial(lastKnown, device)

	if file, header, err := r.FormFile("photo"); err == nil {
		in.Photo = file
		in.PhotoName = header.Filename
	}
	return nil
}

func formCoordinate(r *http.Request, latField, lonField string) *coordinatePayload {
	lat := strings.TrimSpace(r.FormValue(latField))
	lon := strings.TrimSpace(r.FormValue(lonField))
	if lat == "" || lon == "" {
		return nil
	}
	return &coordinatePayload{Latitude: lat, Longitude: lon}
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	items, err := s.svc.ListItems(r.Context(), sharing.ListItemsInput{
		OwnerID:         query.Get("owner"),
		Category:        query.Get("category"),
		ItemType:        query.Get("type"),
		Status:          query.Get("status"),
		IncludeComplete: query.Get("all") == "true",
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.GetItem(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListNearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	center, err := geo.ParseCoordinate(query.Get("lat"), query.Get("lon"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat and lon must be valid coordinates")
		return
	}

	radiusKm := 10.0
	if raw := query.Get("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			writeError(w, http.StatusBadRequest, "radius_km must be a positive number")
			return
		}
	}

	items, err := s.svc.ListNearbyItems(r.Context(), sharing.NearbyInput{Center: center, RadiusKm: radiusKm})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type updateItemRequest struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	ItemType      string             `json:"item_type"`
	Quantity      int                `json:"quantity"`
	Condition     string             `json:"condition"`
	ExpiryDate    string             `json:"expiry_date"`
	PickupAddress string             `json:"pickup_address"`
	LastKnown     *coordinatePayload `json:"last_known"`
	Device        *coordinatePayload `json:"device"`
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in := sharing.UpdateItemInput{
		ItemID:        chi.URLParam(r, "itemID"),
		ActorID:       actor,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		ItemType:      req.ItemType,
		Quantity:      req.Quantity,
		Condition:     req.Condition,
		ExpiryDate:    req.ExpiryDate,
		PickupAddress: req.PickupAddress,
	}
	in.LastKnown, in.Locator = locationMaterial(req.LastKnown, req.Device)

	item, err := s.svc.UpdateItem(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteItem(r.Context(), chi.URLParam(r, "itemID"), actor); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type claimItemRequest struct {
	Quantity int    `json:"quantity"`
	Message  string `json:"message"`
}

func (s *Server) handleClaimItem(w http.ResponseWriter, r *http.Request) {
	claimant, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req claimItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	claim, err := s.svc.ClaimItem(r.Context(), sharing.ClaimItemInput{
		ItemID:     chi.URLParam(r, "itemID"),
		ClaimantID: claimant,
		Quantity:   req.Quantity,
		Message:    req.Message,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

func (s *Server) handleListMyClaims(w http.ResponseWriter, r *http.Request) {
	claimant, ok := requireUser(w, r)
	if !ok {
		return
	}
	claims, err := s.svc.ListMyClaims(r.Context(), claimant)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

type respondClaimRequest struct {
	Approve bool `json:"approve"`
}

func (s *Server) handleRespondToClaim(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req respondClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	claim, err := s.svc.RespondToClaim(r.Context(), sharing.RespondToClaimInput{
		ClaimID: chi.URLParam(r, "claimID"),
		ActorID: actor,
		Approve: req.Approve,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

func (s *Server) handleCompleteClaim(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	claim, err := s.svc.CompleteClaim(r.Context(), sharing.CompleteClaimInput{
		ClaimID: chi.URLParam(r, "claimID"),
		ActorID: actor,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

func (s *Server) handleCancelClaim(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	claim, err := s.svc.CancelClaim(r.Context(), sharing.CancelClaimInput{
		ClaimID: chi.URLParam(r, "claimID"),
		ActorID: actor,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.GetProfile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Location    string `json:"location"`
	Phone       string `json:"phone"`
	Bio         string `json:"bio"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	target := chi.URLParam(r, "userID")
	if actor != target {
		writeError(w, http.StatusForbidden, "profiles can only be edited by their owner")
		return
	}
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	profile, err := s.svc.UpdateProfile(r.Context(), sharing.UpdateProfileInput{
		UserID:      target,
		DisplayName: req.DisplayName,
		Location:    req.Location,
		Phone:       req.Phone,
		Bio:         req.Bio,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type collaborationRequest struct {
	GroupName  string `json:"group_name"`
	PartnerOrg string `json:"partner_org"`
	Message    string `json:"message"`
}

func (s *Server) handleRequestCollaboration(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req collaborationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	request, err := s.svc.RequestCollaboration(r.Context(), sharing.RequestCollaborationInput{
		GroupName:   req.GroupName,
		RequesterID: requester,
		PartnerOrg:  req.PartnerOrg,
		Message:     req.Message,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

type respondCollaborationRequest struct {
	Accept bool `json:"accept"`
}

func (s *Server) handleRespondToCollaboration(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req respondCollaborationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	request, err := s.svc.RespondToCollaboration(r.Context(), sharing.RespondToCollaborationInput{
		RequestID: chi.URLParam(r, "requestID"),
		Accept:    req.Accept,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *Server) handleListCollaborations(w http.ResponseWriter, r *http.Request) {
	requests, err := s.svc.ListCollaborationRequests(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	recipient, ok := requireUser(w, r)
	if !ok {
		return
	}
	notifications, err := s.svc.ListNotifications(r.Context(), recipient, r.URL.Query().Get("unread") == "true")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if err := s.svc.MarkNotificationRead(r.Context(), chi.URLParam(r, "notificationID")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.GetCommunityStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
