package goals

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// GoalForm is the inbound create payload.
type GoalForm struct {
	EmployeeID  int64  `json:"employee_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// ProgressForm carries a progress update.
type ProgressForm struct {
	Progress *int `json:"progress" validate:"required,gte=0,lte=100"`
}

// Handler serves the goal endpoints.
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

// MountRoutes registers goal routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Post("/{id}/progress", h.UpdateProgress)
	r.Post("/{id}/cancel", h.Cancel)
}

// List serves the paginated goals list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := shared.ParsePagination(r)
	filters := ListFilters{
		Page:     page,
		PageSize: pageSize,
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.EmployeeID = &id
		}
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list goals failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Goal{}
	}

	p := shared.NewPagination(page, pageSize, total)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse[Goal]{
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Items:      items,
	})
}

// Show serves a single goal.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.goalID(w, r)
	if !ok {
		return
	}
	g, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, g)
}

// Create stores a new goal.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var form GoalForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fieldErrs[0].Error())
			return
		}
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid payload")
		return
	}

	dueDate, _ := time.Parse("2006-01-02", form.DueDate)
	created, err := h.service.Create(r.Context(), Goal{
		EmployeeID:  form.EmployeeID,
		Title:       form.Title,
		Category:    form.Category,
		Description: form.Description,
		DueDate:     dueDate,
	})
	if err != nil {
		h.logger.Error("create goal failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// UpdateProgress moves a goal to a new progress value.
func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.goalID(w, r)
	if !ok {
		return
	}
	var form ProgressForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "progress must be between 0 and 100")
		return
	}

	updated, err := h.service.UpdateProgress(r.Context(), id, *form.Progress)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Cancel abandons an active goal.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.goalID(w, r)
	if !ok {
		return
	}
	if err := h.service.Cancel(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) goalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid goal id")
		return 0, false
	}
	return id, true
}
