package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"govinda/internal/household/models"
	"govinda/internal/household/service"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
	"govinda/pkg/platform/httputil"
	"govinda/pkg/platform/paging"
	"govinda/pkg/requestcontext"
)

// HouseholdsPath is the public location of the household collection.
const HouseholdsPath = "/api/v1/masterdata/households"

// Service defines the household operations the handler exposes.
type Service interface {
	CreateHousehold(ctx context.Context, cmd service.CreateHouseholdCommand) (*models.Household, error)
	GetHousehold(ctx context.Context, tenantID id.TenantID, householdID id.HouseholdID) (*models.Household, error)
	ListHouseholds(ctx context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Household], error)
	GetHouseholdForPerson(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (*models.Household, error)
	RenameHousehold(ctx context.Context, cmd service.RenameHouseholdCommand) (*models.Household, error)
	AddMember(ctx context.Context, cmd service.AddMemberCommand) (*models.Household, *models.HouseholdMember, error)
	RemoveMember(ctx context.Context, cmd service.RemoveMemberCommand) (*models.Household, error)
	DeleteHousehold(ctx context.Context, cmd service.DeleteHouseholdCommand) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the household routes on the /api/v1/masterdata sub-router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/households", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/by-person/{personId}", h.handleGetForPerson)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleRename)
		r.Delete("/{id}", h.handleDelete)
		r.Post("/{id}/members", h.handleAddMember)
		r.Delete("/{id}/members/{personId}", h.handleRemoveMember)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateHouseholdRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	household, err := h.service.CreateHousehold(ctx, req.command(requestcontext.TenantID(ctx), requestcontext.UserID(ctx)))
	if err != nil {
		h.fail(w, r, "failed to create household", err)
		return
	}
	w.Header().Set("Location", HouseholdsPath+"/"+household.ID.String())
	httputil.WriteJSON(w, http.StatusCreated, toHouseholdResponse(household, requestcontext.Now(ctx)))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	householdID, ok := h.householdID(w, r)
	if !ok {
		return
	}
	household, err := h.service.GetHousehold(ctx, requestcontext.TenantID(ctx), householdID)
	if err != nil {
		h.fail(w, r, "failed to get household", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHouseholdResponse(household, requestcontext.Now(ctx)))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pageReq, err := paging.FromQuery(r.URL.Query(), "name", "name")
	if err != nil {
		httputil.WriteRequestError(w, r, err)
		return
	}
	page, err := h.service.ListHouseholds(ctx, requestcontext.TenantID(ctx), pageReq)
	if err != nil {
		h.fail(w, r, "failed to list households", err)
		return
	}
	today := requestcontext.Now(ctx)
	resp := paging.Map(page, func(household *models.Household) HouseholdResponse {
		return toHouseholdResponse(household, today)
	})
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPageResponse(resp))
}

func (h *Handler) handleGetForPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	household, err := h.service.GetHouseholdForPerson(ctx, requestcontext.TenantID(ctx), personID)
	if err != nil {
		h.fail(w, r, "failed to get household for person", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHouseholdResponse(household, requestcontext.Now(ctx)))
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	householdID, ok := h.householdID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RenameHouseholdRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	household, err := h.service.RenameHousehold(ctx, req.command(requestcontext.TenantID(ctx), requestcontext.UserID(ctx), householdID))
	if err != nil {
		h.fail(w, r, "failed to rename household", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHouseholdResponse(household, requestcontext.Now(ctx)))
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	householdID, ok := h.householdID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddMemberRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	household, _, err := h.service.AddMember(ctx, req.command(requestcontext.TenantID(ctx), requestcontext.UserID(ctx), householdID))
	if err != nil {
		h.fail(w, r, "failed to add household member", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHouseholdResponse(household, requestcontext.Now(ctx)))
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	householdID, ok := h.householdID(w, r)
	if !ok {
		return
	}
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	cmd := service.RemoveMemberCommand{
		TenantID:    requestcontext.TenantID(ctx),
		UserID:      requestcontext.UserID(ctx),
		HouseholdID: householdID,
		PersonID:    personID,
	}
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("valid_to")); raw != "" {
		validTo, err := id.ParseDate(raw)
		if err != nil {
			httputil.WriteRequestError(w, r, invalid("valid_to", "must be formatted as YYYY-MM-DD"))
			return
		}
		cmd.ValidTo = validTo
	}
	expected, ok := expectedVersion(w, r)
	if !ok {
		return
	}
	cmd.ExpectedVersion = expected

	household, err := h.service.RemoveMember(ctx, cmd)
	if err != nil {
		h.fail(w, r, "failed to remove household member", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHouseholdResponse(household, requestcontext.Now(ctx)))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	householdID, ok := h.householdID(w, r)
	if !ok {
		return
	}
	expected, ok := expectedVersion(w, r)
	if !ok {
		return
	}
	err := h.service.DeleteHousehold(ctx, service.DeleteHouseholdCommand{
		TenantID:        requestcontext.TenantID(ctx),
		UserID:          requestcontext.UserID(ctx),
		HouseholdID:     householdID,
		ExpectedVersion: expected,
	})
	if err != nil {
		h.fail(w, r, "failed to delete household", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// expectedVersion reads the optional expected_version query parameter.
func expectedVersion(w http.ResponseWriter, r *http.Request) (*int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("expected_version"))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		httputil.WriteRequestError(w, r, invalid("expected_version", "must be a non-negative integer"))
		return nil, false
	}
	return &v, true
}

func (h *Handler) householdID(w http.ResponseWriter, r *http.Request) (id.HouseholdID, bool) {
	householdID, err := id.ParseHouseholdID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteRequestError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid household id"))
		return id.HouseholdID{}, false
	}
	return householdID, true
}

func (h *Handler) personID(w http.ResponseWriter, r *http.Request) (id.PersonID, bool) {
	personID, err := id.ParsePersonID(chi.URLParam(r, "personId"))
	if err != nil {
		httputil.WriteRequestError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid person id"))
		return id.PersonID{}, false
	}
	return personID, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", requestcontext.TenantID(ctx).String(),
		"error", err,
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeTimeout:
		h.logger.ErrorContext(ctx, msg, attrs...)
	default:
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteRequestError(w, r, err)
}
