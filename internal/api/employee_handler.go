package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/service"
)

// MsgInvalidEmployeeID is returned when the {id} path segment is not an integer.
const MsgInvalidEmployeeID = "Invalid employee id"

// EmployeeHandler handles employee-related HTTP requests
type EmployeeHandler struct {
	employeeService service.EmployeeService
	logger          *slog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	if employeeService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("employeeService cannot be nil for EmployeeHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EmployeeHandler")
	}
	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          logger.With(slog.String("component", "employee_handler")),
	}
}

// ListEmployees handles GET /employees
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, employeesToResponses(employees))
}

// GetEmployee handles GET /employees/{id}
func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}

	employee, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, employeeToResponse(employee))
}

// SearchEmployees handles GET /employees/search?name=
// A missing name parameter searches for the empty string, which matches nothing.
func (h *EmployeeHandler) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, employeesToResponses(employees))
}

// CreateEmployees handles POST /employees
// The body is one object or an array of objects. The response is always the
// array of created records; a one-element request also gets a Location header.
func (h *EmployeeHandler) CreateEmployees(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := shared.ReadJSONBody(w, r)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}

	drafts, err := decodeCreateBatch(body)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}
	log.Debug("creating employees", slog.Int("batch_size", len(drafts)))

	employees, err := h.employeeService.Create(r.Context(), drafts)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}

	if len(employees) == 1 {
		w.Header().Set("Location", fmt.Sprintf("/employees/%d", employees[0].ID))
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, employeesToResponses(employees))
}

// UpdateEmployee handles PUT /employees/{id}
// Only the fields present in the body change; an explicit null clears a
// nullable field.
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}

	body, err := shared.ReadJSONBody(w, r)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}
	patch, err := decodePatch(body)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}

	employee, err := h.employeeService.Update(r.Context(), id, patch)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, employeeToResponse(employee))
}

// DeleteEmployee handles DELETE /employees/{id}
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

// getPathID parses an integer id from the chi path parameter paramName.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewBadRequestError(MsgInvalidEmployeeID, fmt.Errorf("parse %s %q: %w", paramName, raw, err))
	}
	return id, nil
}
