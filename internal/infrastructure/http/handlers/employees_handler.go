package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/employee"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/http/middleware"
)

// EmployeesHandler handles /employees/*. Requires JWT auth; the principal
// comes from the context.
type EmployeesHandler struct {
	create     *employee.Create
	directory  *employee.Directory
	update     *employee.Update
	setStatus  *employee.SetStatus
	deactivate *employee.Deactivate
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewEmployeesHandler(create *employee.Create, directory *employee.Directory, update *employee.Update, setStatus *employee.SetStatus, deactivate *employee.Deactivate, log zerolog.Logger) *EmployeesHandler {
	return &EmployeesHandler{
		create:     create,
		directory:  directory,
		update:     update,
		setStatus:  setStatus,
		deactivate: deactivate,
		validate:   validator.New(),
		log:        log,
	}
}

// EmployeeResponse is the JSON shape of a directory record. The password
// hash and any pending OTP state never leave the server.
type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	PhoneNumber  string  `json:"phone_number,omitempty"`
	Role         string  `json:"role"`
	Department   string  `json:"department"`
	Designation  string  `json:"designation"`
	Status       string  `json:"status"`
	ManagerID    *string `json:"manager_id,omitempty"`
	TeamLeaderID *string `json:"team_leader_id,omitempty"`
	HireDate     string  `json:"hire_date"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toEmployeeResponse(e *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.Key.String(),
		EmployeeID:  e.EmployeeID,
		Email:       e.Email,
		FullName:    e.FullName,
		PhoneNumber: e.PhoneNumber,
		Role:        string(e.Role),
		Department:  e.Department,
		Designation: e.Designation,
		Status:      string(e.Status),
		HireDate:    e.HireDate.Format(time.RFC3339),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
	if e.ManagerKey != nil {
		s := e.ManagerKey.String()
		resp.ManagerID = &s
	}
	if e.TeamLeaderKey != nil {
		s := e.TeamLeaderKey.String()
		resp.TeamLeaderID = &s
	}
	return resp
}

const defaultListLimit = 20
const maxListLimit = 100

// List returns directory records matching the query filters. Non-privileged
// requesters are scoped to their own department by the use case.
func (h *EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	q := r.URL.Query()
	filter := ports.ListFilter{
		Department: q.Get("department"),
		Role:       domain.Role(q.Get("role")),
		Status:     domain.Status(q.Get("status")),
		Limit:      defaultListLimit,
	}
	if filter.Role != "" && !filter.Role.Valid() {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid role filter")
		return
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid status filter")
		return
	}
	if l := q.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			filter.Limit = n
			if filter.Limit > maxListLimit {
				filter.Limit = maxListLimit
			}
		}
	}
	if o := q.Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	employees, err := h.directory.List(r.Context(), principal, filter)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("list employees failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	items := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, toEmployeeResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"employees": items})
}

// Create onboards a new employee. The generated password is mailed, never
// returned in the response.
func (h *EmployeesHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	var body struct {
		Email        string `json:"email" validate:"required,email,max=254"`
		FullName     string `json:"full_name" validate:"required,max=128"`
		PhoneNumber  string `json:"phone_number" validate:"omitempty,max=32"`
		Role         string `json:"role" validate:"required"`
		Department   string `json:"department" validate:"required,max=64"`
		Designation  string `json:"designation" validate:"required,max=64"`
		ManagerID    string `json:"manager_id" validate:"omitempty,uuid"`
		TeamLeaderID string `json:"team_leader_id" validate:"omitempty,uuid"`
		Password     string `json:"password" validate:"omitempty,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	role := domain.Role(body.Role)
	if !role.Valid() {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid role")
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email")
		return
	}
	input := employee.CreateInput{
		Email:       email,
		FullName:    body.FullName,
		PhoneNumber: body.PhoneNumber,
		Role:        role,
		Department:  body.Department,
		Designation: body.Designation,
		Password:    SanitizePassword(body.Password),
	}
	if body.ManagerID != "" {
		id, err := uuid.Parse(body.ManagerID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid manager id")
			return
		}
		k := domain.NewEmployeeKey(id)
		input.ManagerKey = &k
	}
	if body.TeamLeaderID != "" {
		id, err := uuid.Parse(body.TeamLeaderID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid team leader id")
			return
		}
		k := domain.NewEmployeeKey(id)
		input.TeamLeaderKey = &k
	}
	created, err := h.create.Execute(r.Context(), principal, input)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("create employee failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "employee.create", created.EmployeeID, true, "")
	writeJSON(w, http.StatusCreated, toEmployeeResponse(created))
}

// Me returns the principal's own record.
func (h *EmployeesHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(principal))
}

// Get returns one record, subject to the view policy.
func (h *EmployeesHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	key, ok := parseKey(w, r)
	if !ok {
		return
	}
	e, err := h.directory.Get(r.Context(), principal, key)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("get employee failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(e))
}

// Update applies a partial update to a record (hr/admin/super_admin).
func (h *EmployeesHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	key, ok := parseKey(w, r)
	if !ok {
		return
	}
	var body struct {
		Email        *string `json:"email" validate:"omitempty,email,max=254"`
		FullName     *string `json:"full_name" validate:"omitempty,max=128"`
		PhoneNumber  *string `json:"phone_number" validate:"omitempty,max=32"`
		Role         *string `json:"role"`
		Department   *string `json:"department" validate:"omitempty,max=64"`
		Designation  *string `json:"designation" validate:"omitempty,max=64"`
		ManagerID    *string `json:"manager_id" validate:"omitempty,uuid"`
		TeamLeaderID *string `json:"team_leader_id" validate:"omitempty,uuid"`
		Status       *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	var input employee.UpdateInput
	if body.Email != nil {
		email := SanitizeEmail(*body.Email)
		if email == "" {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email")
			return
		}
		input.Email = &email
	}
	input.FullName = body.FullName
	input.PhoneNumber = body.PhoneNumber
	input.Department = body.Department
	input.Designation = body.Designation
	if body.Role != nil {
		role := domain.Role(*body.Role)
		if !role.Valid() {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid role")
			return
		}
		input.Role = &role
	}
	if body.Status != nil {
		status := domain.Status(*body.Status)
		if !status.Valid() {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid status")
			return
		}
		input.Status = &status
	}
	if body.ManagerID != nil {
		id, err := uuid.Parse(*body.ManagerID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid manager id")
			return
		}
		k := domain.NewEmployeeKey(id)
		input.ManagerKey = &k
	}
	if body.TeamLeaderID != nil {
		id, err := uuid.Parse(*body.TeamLeaderID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid team leader id")
			return
		}
		k := domain.NewEmployeeKey(id)
		input.TeamLeaderKey = &k
	}
	updated, err := h.update.Execute(r.Context(), principal, key, input)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("update employee failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "employee.update", updated.EmployeeID, true, "")
	writeJSON(w, http.StatusOK, toEmployeeResponse(updated))
}

// SetStatus changes only the lifecycle status (hr/admin/super_admin).
func (h *EmployeesHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	key, ok := parseKey(w, r)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	status := domain.Status(body.Status)
	if !status.Valid() {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid status")
		return
	}
	if err := h.setStatus.Execute(r.Context(), principal, key, status); err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("set employee status failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "employee.set_status", key.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

// Delete soft-deletes a record: the row stays, its status flips to inactive.
// Super admin only.
func (h *EmployeesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	key, ok := parseKey(w, r)
	if !ok {
		return
	}
	if err := h.deactivate.Execute(r.Context(), principal, key); err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("deactivate employee failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "employee.deactivate", key.String(), true, "")
	w.WriteHeader(http.StatusNoContent)
}

// Departments lists the distinct departments on file.
func (h *EmployeesHandler) Departments(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	departments, err := h.directory.Departments(r.Context(), principal)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("list departments failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if departments == nil {
		departments = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"departments": departments})
}

// Hierarchy returns the reporting neighborhood of one employee: the record,
// its manager and team leader edges, and the subordinates reverse query.
func (h *EmployeesHandler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	key, ok := parseKey(w, r)
	if !ok {
		return
	}
	result, err := h.directory.Hierarchy(r.Context(), principal, key)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("employee hierarchy failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	resp := map[string]interface{}{
		"employee": toEmployeeResponse(result.Employee),
	}
	if result.Manager != nil {
		resp["manager"] = toEmployeeResponse(result.Manager)
	}
	if result.TeamLeader != nil {
		resp["team_leader"] = toEmployeeResponse(result.TeamLeader)
	}
	subordinates := make([]EmployeeResponse, 0, len(result.Subordinates))
	for _, s := range result.Subordinates {
		subordinates = append(subordinates, toEmployeeResponse(s))
	}
	resp["subordinates"] = subordinates
	writeJSON(w, http.StatusOK, resp)
}

func parseKey(w http.ResponseWriter, r *http.Request) (domain.EmployeeKey, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid employee id")
		return domain.EmployeeKey{}, false
	}
	return domain.NewEmployeeKey(id), true
}
