package applications

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// ApplicationForm is the inbound submission payload.
type ApplicationForm struct {
	OpeningID      int64  `json:"opening_id" validate:"required,gt=0"`
	CandidateName  string `json:"candidate_name" validate:"required"`
	CandidateEmail string `json:"candidate_email" validate:"required,email"`
	ResumeURL      string `json:"resume_url" validate:"omitempty,url"`
	Source         string `json:"source" validate:"required,oneof=portal referral agency"`
}

// AdvanceForm carries a pipeline change request.
type AdvanceForm struct {
	Status string `json:"status" validate:"required,oneof=screening interview offer hired rejected"`
}

// Handler serves the application endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers application routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Submit)
	r.Get("/track/{reference}", h.Track)
	r.Get("/{id}", h.Show)
	r.Post("/{id}/advance", h.Advance)
}

// List serves the paginated applications list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := shared.ParsePagination(r)
	filters := ListFilters{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		Source:   r.URL.Query().Get("source"),
	}
	if raw := r.URL.Query().Get("opening_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.OpeningID = &id
		}
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list applications failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Application{}
	}

	p := shared.NewPagination(page, pageSize, total)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse[Application]{
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Items:      items,
	})
}

// Show serves a single application.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid application id")
		return
	}
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// Track serves the candidate-facing lookup by reference code.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Track(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// Submit stores a new application.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var form ApplicationForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		detail := "invalid payload"
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			detail = fieldErrs[0].Error()
		}
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", detail)
		return
	}

	created, err := h.service.Submit(r.Context(), Application{
		OpeningID:      form.OpeningID,
		CandidateName:  form.CandidateName,
		CandidateEmail: form.CandidateEmail,
		ResumeURL:      form.ResumeURL,
		Source:         form.Source,
	})
	if err != nil {
		h.logger.Error("submit application failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Advance moves an application through the pipeline.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid application id")
		return
	}
	var form AdvanceForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown status value")
		return
	}
	if err := h.service.Advance(r.Context(), id, form.Status); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
