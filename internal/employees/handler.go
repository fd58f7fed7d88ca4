package employees

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

// EmployeeForm is the inbound create/update payload.
type EmployeeForm struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Position        string `json:"position" validate:"required"`
	DepartmentID    int64  `json:"department_id" validate:"required,gt=0"`
	Location        string `json:"location"`
	IsActive        bool   `json:"is_active"`
	HiredAt         string `json:"hired_at" validate:"omitempty,datetime=2006-01-02"`
	InitialPassword string `json:"initial_password" validate:"omitempty,min=12"`
}

// Handler serves the directory endpoints.
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

// MountRoutes registers directory routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Deactivate)
}

// List serves the paginated directory.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := shared.ParsePagination(r)
	filters := ListFilters{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
		Location: r.URL.Query().Get("location"),
	}
	if raw := r.URL.Query().Get("department_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.DepartmentID = &id
		}
	}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active := raw == "true"
		filters.IsActive = &active
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list employees failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Employee{}
	}

	p := shared.NewPagination(page, pageSize, total)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse[Employee]{
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Items:      items,
	})
}

// Show serves a single employee.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid employee id")
		return
	}
	emp, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, emp)
}

// Create stores a new employee.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), form.toEmployee(), form.InitialPassword)
	if err != nil {
		h.logger.Error("create employee failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update replaces an employee record.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid employee id")
		return
	}
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	if err := h.service.Update(r.Context(), id, form.toEmployee()); err != nil {
		h.logger.Error("update employee failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Deactivate marks an employee inactive.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid employee id")
		return
	}
	if err := h.service.Deactivate(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request) (EmployeeForm, bool) {
	var form EmployeeForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return form, false
	}
	if err := h.validator.Struct(form); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fieldErrs[0].Error())
			return form, false
		}
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid payload")
		return form, false
	}
	return form, true
}

func (f EmployeeForm) toEmployee() Employee {
	hiredAt, _ := time.Parse("2006-01-02", f.HiredAt)
	return Employee{
		FullName:     f.FullName,
		Email:        f.Email,
		Position:     f.Position,
		DepartmentID: f.DepartmentID,
		Location:     f.Location,
		IsActive:     f.IsActive,
		HiredAt:      hiredAt,
	}
}
