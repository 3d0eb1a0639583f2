package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/resignation"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/user"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type ResignationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyActive(w http.ResponseWriter, r *http.Request)
	GetMyHistory(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type ResignationHandlerImpl struct {
	service resignation.Service
}

func NewResignationHandler(service resignation.Service) ResignationHandler {
	return &ResignationHandlerImpl{service: service}
}

// claimedIdentity extracts the acting identity from verified JWT claims.
// Handlers always pass it into the service explicitly; nothing below this
// layer reads ambient session state.
func claimedIdentity(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	identity, ok := claims["identity"].(string)
	return identity, ok && identity != ""
}

func claimedRole(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	return user.Role(roleStr), ok
}

// Submit implements ResignationHandler.
func (h *ResignationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := claimedIdentity(r)
	if !ok {
		response.Unauthorized(w, "identity claim is missing or invalid")
		return
	}

	var req resignation.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// The submitter can only resign for themselves
	req.Identity = identity

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.service.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Resignation request submitted successfully", created)
}

// GetMyActive implements ResignationHandler.
func (h *ResignationHandlerImpl) GetMyActive(w http.ResponseWriter, r *http.Request) {
	identity, ok := claimedIdentity(r)
	if !ok {
		response.Unauthorized(w, "identity claim is missing or invalid")
		return
	}

	req, active, err := h.service.FindActiveFor(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status := resignation.ActiveStatus{Active: active}
	if active {
		status.Request = &req
		status.Progress = resignation.ProgressSteps(req)
	}

	response.Success(w, status)
}

// GetMyHistory implements ResignationHandler.
func (h *ResignationHandlerImpl) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := claimedIdentity(r)
	if !ok {
		response.Unauthorized(w, "identity claim is missing or invalid")
		return
	}

	requests, err := h.service.History(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending implements ResignationHandler.
func (h *ResignationHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	role, ok := claimedRole(r)
	if !ok {
		response.HandleError(w, user.ErrApproverAccessRequired)
		return
	}

	stage := resignation.Stage(r.URL.Query().Get("stage"))
	if stage == "" {
		// Managers and hr default to their own queue
		switch role {
		case user.RoleManager:
			stage = resignation.StageManager
		case user.RoleHR:
			stage = resignation.StageHR
		}
	}

	if !stage.IsValid() {
		response.BadRequest(w, "stage must be one of: manager, hr", nil)
		return
	}
	if err := stageAllowedFor(role, stage); err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.service.ListPending(r.Context(), stage)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Decide implements ResignationHandler.
func (h *ResignationHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	identity, ok := claimedIdentity(r)
	if !ok {
		response.Unauthorized(w, "identity claim is missing or invalid")
		return
	}
	role, ok := claimedRole(r)
	if !ok {
		response.HandleError(w, user.ErrApproverAccessRequired)
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}
	stage := resignation.Stage(chi.URLParam(r, "stage"))

	var req resignation.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.RequestID = requestID
	req.Stage = stage
	req.DecidedBy = identity

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := stageAllowedFor(role, stage); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.service.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded successfully", updated)
}

// stageAllowedFor enforces "only the relevant actor for a given stage may
// act": managers write the manager stage, hr writes the hr stage, admins
// write either.
func stageAllowedFor(role user.Role, stage resignation.Stage) error {
	switch role {
	case user.RoleAdmin:
		return nil
	case user.RoleManager:
		if stage == resignation.StageManager {
			return nil
		}
	case user.RoleHR:
		if stage == resignation.StageHR {
			return nil
		}
	}
	return user.ErrStageNotAllowedForActor
}
