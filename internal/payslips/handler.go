package payslips

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// PayslipForm is the inbound create payload.
type PayslipForm struct {
	EmployeeID     int64  `json:"employee_id"`
	Period         string `json:"period"`
	Currency       string `json:"currency"`
	GrossCents     int64  `json:"gross_cents"`
	DeductionCents int64  `json:"deduction_cents"`
}

// Handler serves the payslip endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers payslip routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Post("/{id}/issue", h.Issue)
	r.Post("/{id}/pay", h.MarkPaid)
}

// List serves the paginated payslips list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := shared.ParsePagination(r)
	filters := ListFilters{
		Page:     page,
		PageSize: pageSize,
		Period:   r.URL.Query().Get("period"),
		Status:   r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.EmployeeID = &id
		}
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list payslips failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Payslip{}
	}

	p := shared.NewPagination(page, pageSize, total)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse[Payslip]{
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Items:      items,
	})
}

// Show serves a single payslip.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payslip id")
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Create stores a new draft payslip.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var form PayslipForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	created, err := h.service.Create(r.Context(), Payslip{
		EmployeeID:     form.EmployeeID,
		Period:         form.Period,
		Currency:       form.Currency,
		GrossCents:     form.GrossCents,
		DeductionCents: form.DeductionCents,
	})
	if err != nil {
		h.logger.Error("create payslip failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Issue publishes a draft payslip.
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.Issue)
}

// MarkPaid finalizes an issued payslip.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.MarkPaid)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payslip id")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
