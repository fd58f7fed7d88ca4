package attendance

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// RecordForm is the inbound payload for recording attendance.
type RecordForm struct {
	EmployeeID int64  `json:"employee_id"`
	Day        string `json:"day"`
	Status     string `json:"status"`
	Note       string `json:"note"`
}

// Handler serves the attendance endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers attendance routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Record)
	r.Get("/summary/{employeeID}/{month}", h.Summary)
}

// List serves the paginated attendance list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := shared.ParsePagination(r)
	filters := ListFilters{
		Page:     page,
		PageSize: pageSize,
		Status:   r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.EmployeeID = &id
		}
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		if day, err := time.Parse("2006-01-02", raw); err == nil {
			filters.From = &day
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if day, err := time.Parse("2006-01-02", raw); err == nil {
			filters.To = &day
		}
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list attendance failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Record{}
	}

	p := shared.NewPagination(page, pageSize, total)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse[Record]{
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Items:      items,
	})
}

// Record stores one attendance entry.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var form RecordForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	day, err := time.Parse("2006-01-02", form.Day)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "day must be YYYY-MM-DD")
		return
	}

	created, err := h.service.Record(r.Context(), Record{
		EmployeeID: form.EmployeeID,
		Day:        day,
		Status:     form.Status,
		Note:       form.Note,
	})
	if err != nil {
		h.logger.Error("record attendance failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Summary serves the cached monthly summary for one employee.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid employee id")
		return
	}
	summary, err := h.service.MonthlySummary(r.Context(), employeeID, chi.URLParam(r, "month"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
