package openings

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// OpeningForm is the inbound create/update payload.
type OpeningForm struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	DepartmentID   int64  `json:"department_id"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
}

// TransitionForm carries a lifecycle change request.
type TransitionForm struct {
	Status string `json:"status"`
}

// Handler serves the openings endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers openings routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/transition", h.Transition)
}

// List serves the paginated openings list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := shared.ParsePagination(r)
	filters := ListFilters{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
		Location: r.URL.Query().Get("location"),
		Status:   r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("department_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.DepartmentID = &id
		}
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list openings failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Opening{}
	}

	p := shared.NewPagination(page, pageSize, total)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse[Opening]{
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Items:      items,
	})
}

// Show serves a single opening.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid opening id")
		return
	}
	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

// Create stores a new draft opening.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var form OpeningForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	created, err := h.service.Create(r.Context(), form.toOpening())
	if err != nil {
		h.logger.Error("create opening failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update replaces mutable opening fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid opening id")
		return
	}
	var form OpeningForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.service.Update(r.Context(), id, form.toOpening()); err != nil {
		h.logger.Error("update opening failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Transition changes an opening's lifecycle status.
func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid opening id")
		return
	}
	var form TransitionForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.service.Transition(r.Context(), id, form.Status); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f OpeningForm) toOpening() Opening {
	return Opening{
		Title:          f.Title,
		Description:    f.Description,
		DepartmentID:   f.DepartmentID,
		Location:       f.Location,
		EmploymentType: f.EmploymentType,
	}
}
