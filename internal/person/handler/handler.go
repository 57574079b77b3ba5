package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"govinda/internal/person/models"
	"govinda/internal/person/service"
	personstore "govinda/internal/person/store/person"
	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
	"govinda/pkg/platform/httputil"
	"govinda/pkg/platform/paging"
	"govinda/pkg/requestcontext"
)

// PersonsPath is the public location of the person collection.
const PersonsPath = "/api/v1/masterdata/persons"

// Service defines the person operations the handler exposes.
type Service interface {
	CreatePerson(ctx context.Context, cmd service.CreatePersonCommand) (*models.Person, error)
	GetPerson(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (*models.Person, error)
	GetPersonByAhv(ctx context.Context, tenantID id.TenantID, ahv id.AhvNumber) (*models.Person, error)
	ListPersons(ctx context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Person], error)
	SearchPersons(ctx context.Context, tenantID id.TenantID, criteria models.SearchCriteria, req paging.Request) (paging.Page[*models.Person], error)
	UpdatePerson(ctx context.Context, cmd service.UpdatePersonCommand) (*models.Person, error)
	ChangeName(ctx context.Context, cmd service.ChangeNameCommand) (*models.Person, error)
	ChangeMaritalStatus(ctx context.Context, cmd service.ChangeMaritalStatusCommand) (*models.Person, error)
	AddAddress(ctx context.Context, cmd service.AddAddressCommand) (*models.Person, *models.Address, error)
	GetPersonHistory(ctx context.Context, tenantID id.TenantID, personID id.PersonID) ([]*models.PersonHistoryEntry, error)
	GetPersonStateAt(ctx context.Context, tenantID id.TenantID, personID id.PersonID, date time.Time) (*models.PersonHistoryEntry, bool, error)
}

// Handler serves the person endpoints. Tenant and acting user come from the
// request context populated by the auth middleware.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the person routes on r. r is expected to be the
// /api/v1/masterdata sub-router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/persons", func(r chi.Router) {
		r.Get("/", h.handleListPersons)
		r.Post("/", h.handleCreatePerson)
		r.Get("/search", h.handleSearchPersons)
		r.Get("/by-ahv/{ahvNr}", h.handleGetPersonByAhv)
		r.Get("/{id}", h.handleGetPerson)
		r.Put("/{id}", h.handleUpdatePerson)
		r.Post("/{id}/name-change", h.handleChangeName)
		r.Post("/{id}/marital-status-change", h.handleChangeMaritalStatus)
		r.Post("/{id}/addresses", h.handleAddAddress)
		r.Get("/{id}/history", h.handleGetHistory)
		r.Get("/{id}/history/at/{date}", h.handleGetStateAt)
	})
}

func (h *Handler) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreatePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p, err := h.service.CreatePerson(ctx, req.command(requestcontext.TenantID(ctx), requestcontext.UserID(ctx)))
	if err != nil {
		h.fail(w, r, "failed to create person", err)
		return
	}

	w.Header().Set("Location", PersonsPath+"/"+p.ID.String())
	httputil.WriteJSON(w, http.StatusCreated, toPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetPerson(ctx, requestcontext.TenantID(ctx), personID)
	if err != nil {
		h.fail(w, r, "failed to get person", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleGetPersonByAhv(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ahv, err := id.ParseAhvNumber(chi.URLParam(r, "ahvNr"))
	if err != nil {
		httputil.WriteRequestError(w, r, err)
		return
	}
	p, err := h.service.GetPersonByAhv(ctx, requestcontext.TenantID(ctx), ahv)
	if err != nil {
		h.fail(w, r, "failed to get person by AHV number", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleListPersons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pageReq, err := paging.FromQuery(r.URL.Query(), personstore.SortLastName, personstore.SortKeys...)
	if err != nil {
		httputil.WriteRequestError(w, r, err)
		return
	}
	page, err := h.service.ListPersons(ctx, requestcontext.TenantID(ctx), pageReq)
	if err != nil {
		h.fail(w, r, "failed to list persons", err)
		return
	}
	h.writePersonPage(w, ctx, page)
}

func (h *Handler) handleSearchPersons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	pageReq, err := paging.FromQuery(q, personstore.SortLastName, personstore.SortKeys...)
	if err != nil {
		httputil.WriteRequestError(w, r, err)
		return
	}
	criteria := models.SearchCriteria{
		LastName:   strings.TrimSpace(q.Get("last_name")),
		FirstName:  strings.TrimSpace(q.Get("first_name")),
		AhvNumber:  strings.TrimSpace(q.Get("ahv_nr")),
		PostalCode: strings.TrimSpace(q.Get("postal_code")),
	}
	if raw := strings.TrimSpace(q.Get("date_of_birth")); raw != "" {
		dob, err := id.ParseDate(raw)
		if err != nil {
			httputil.WriteRequestError(w, r, dErrors.NewFields(dErrors.CodeInvalidInput, "request validation failed",
				[]dErrors.FieldError{{Field: "date_of_birth", Message: "must be formatted as YYYY-MM-DD"}}))
			return
		}
		criteria.DateOfBirth = &dob
	}

	page, err := h.service.SearchPersons(ctx, requestcontext.TenantID(ctx), criteria, pageReq)
	if err != nil {
		h.fail(w, r, "failed to search persons", err)
		return
	}
	h.writePersonPage(w, ctx, page)
}

func (h *Handler) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdatePersonRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	p, err := h.service.UpdatePerson(ctx, req.command(requestcontext.TenantID(ctx), requestcontext.UserID(ctx), personID))
	if err != nil {
		h.fail(w, r, "failed to update person", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleChangeName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ChangeNameRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	p, err := h.service.ChangeName(ctx, req.command(requestcontext.TenantID(ctx), requestcontext.UserID(ctx), personID))
	if err != nil {
		h.fail(w, r, "failed to change name", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleChangeMaritalStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ChangeMaritalStatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	p, err := h.service.ChangeMaritalStatus(ctx, req.command(requestcontext.TenantID(ctx), requestcontext.UserID(ctx), personID))
	if err != nil {
		h.fail(w, r, "failed to change marital status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleAddAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddAddressRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	_, address, err := h.service.AddAddress(ctx, req.command(requestcontext.TenantID(ctx), requestcontext.UserID(ctx), personID))
	if err != nil {
		h.fail(w, r, "failed to add address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAddressResponse(address))
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	entries, err := h.service.GetPersonHistory(ctx, requestcontext.TenantID(ctx), personID)
	if err != nil {
		h.fail(w, r, "failed to get person history", err)
		return
	}
	resp := make([]PersonHistoryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toHistoryResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetStateAt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, ok := h.personID(w, r)
	if !ok {
		return
	}
	date, err := id.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		httputil.WriteRequestError(w, r, err)
		return
	}
	entry, found, err := h.service.GetPersonStateAt(ctx, requestcontext.TenantID(ctx), personID, date)
	if err != nil {
		h.fail(w, r, "failed to get person state", err)
		return
	}
	if !found {
		httputil.WriteRequestError(w, r, dErrors.Newf(dErrors.CodeNotFound,
			"no history entry for person %s on %s", personID, date.Format(id.DateLayout)))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHistoryResponse(entry))
}

func (h *Handler) writePersonPage(w http.ResponseWriter, ctx context.Context, page paging.Page[*models.Person]) {
	today := requestcontext.Now(ctx)
	resp := paging.Map(page, func(p *models.Person) PersonResponse {
		return toPersonResponse(p, today)
	})
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPageResponse(resp))
}

func (h *Handler) personID(w http.ResponseWriter, r *http.Request) (id.PersonID, bool) {
	personID, err := id.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteRequestError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid person id"))
		return id.PersonID{}, false
	}
	return personID, true
}

// fail logs err at a level matching its code and writes the error response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", requestcontext.TenantID(ctx).String(),
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal || dErrors.CodeOf(err) == dErrors.CodeTimeout {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteRequestError(w, r, err)
}
