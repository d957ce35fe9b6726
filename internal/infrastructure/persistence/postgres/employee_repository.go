package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/persistence/db"
)

const employeeColumns = `id, employee_id, email, full_name, password_hash, phone_number,
	role, department, designation, status, manager_key, team_leader_key,
	hire_date, created_at, updated_at, otp_code, otp_expires_at`

const (
	insertEmployeeSQL = `INSERT INTO employees (
		id, employee_id, email, full_name, password_hash, phone_number,
		role, department, designation, status, manager_key, team_leader_key,
		hire_date, created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

	updateEmployeeSQL = `UPDATE employees SET
		email = $1, full_name = $2, phone_number = $3, role = $4,
		department = $5, designation = $6, status = $7,
		manager_key = $8, team_leader_key = $9, updated_at = NOW()
	WHERE id = $10`

	setStatusSQL = `UPDATE employees SET status = $1, updated_at = NOW() WHERE id = $2`

	// The OTP pair is always written and cleared as one statement so a reader
	// can never observe a code without its expiry.
	setOTPSQL   = `UPDATE employees SET otp_code = $1, otp_expires_at = $2, updated_at = NOW() WHERE employee_id = $3`
	clearOTPSQL = `UPDATE employees SET otp_code = NULL, otp_expires_at = NULL, updated_at = NOW() WHERE employee_id = $1`

	// Secret rotation consumes the pending challenge in the same statement.
	resetSecretSQL = `UPDATE employees SET password_hash = $1, otp_code = NULL, otp_expires_at = NULL, updated_at = NOW() WHERE employee_id = $2`

	subordinatesSQL = `SELECT ` + employeeColumns + ` FROM employees
		WHERE manager_key = $1 OR team_leader_key = $1 ORDER BY employee_id`

	departmentsSQL = `SELECT DISTINCT department FROM employees ORDER BY department`
)

// EmployeeRepository implements ports.EmployeeRepository on pgx.
type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	row := domainToRow(e)
	_, err := r.pool.Exec(ctx, insertEmployeeSQL,
		row.ID, row.EmployeeID, row.Email, row.FullName, row.PasswordHash, row.PhoneNumber,
		row.Role, row.Department, row.Designation, row.Status, row.ManagerKey, row.TeamLeaderKey,
		row.HireDate, row.CreatedAt, row.UpdatedAt,
	)
	return err
}

func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return r.findOne(ctx, "employee_id = $1", employeeID)
}

func (r *EmployeeRepository) FindByKey(ctx context.Context, key domain.EmployeeKey) (*domain.Employee, error) {
	return r.findOne(ctx, "id = $1", key.UUID)
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *EmployeeRepository) findOne(ctx context.Context, where string, arg any) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where
	var row db.Employee
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&row.ID, &row.EmployeeID, &row.Email, &row.FullName, &row.PasswordHash, &row.PhoneNumber,
		&row.Role, &row.Department, &row.Designation, &row.Status, &row.ManagerKey, &row.TeamLeaderKey,
		&row.HireDate, &row.CreatedAt, &row.UpdatedAt, &row.OTPCode, &row.OTPExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return rowToDomain(row), nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Employee, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Department != "" {
		add("department = $%d", filter.Department)
	}
	if filter.Role != "" {
		add("role = $%d", string(filter.Role))
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY employee_id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	row := domainToRow(e)
	_, err := r.pool.Exec(ctx, updateEmployeeSQL,
		row.Email, row.FullName, row.PhoneNumber, row.Role,
		row.Department, row.Designation, row.Status,
		row.ManagerKey, row.TeamLeaderKey, row.ID,
	)
	return err
}

func (r *EmployeeRepository) SetStatus(ctx context.Context, key domain.EmployeeKey, status domain.Status) error {
	_, err := r.pool.Exec(ctx, setStatusSQL, string(status), key.UUID)
	return err
}

func (r *EmployeeRepository) SetOTP(ctx context.Context, employeeID, code string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, setOTPSQL, code, expiresAt, employeeID)
	return err
}

func (r *EmployeeRepository) ClearOTP(ctx context.Context, employeeID string) error {
	_, err := r.pool.Exec(ctx, clearOTPSQL, employeeID)
	return err
}

func (r *EmployeeRepository) ResetSecret(ctx context.Context, employeeID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, resetSecretSQL, passwordHash, employeeID)
	return err
}

func (r *EmployeeRepository) Subordinates(ctx context.Context, key domain.EmployeeKey) ([]*domain.Employee, error) {
	rows, err := r.pool.Query(ctx, subordinatesSQL, key.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *EmployeeRepository) Departments(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, departmentsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func collect(rows pgx.Rows) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for rows.Next() {
		var row db.Employee
		if err := rows.Scan(
			&row.ID, &row.EmployeeID, &row.Email, &row.FullName, &row.PasswordHash, &row.PhoneNumber,
			&row.Role, &row.Department, &row.Designation, &row.Status, &row.ManagerKey, &row.TeamLeaderKey,
			&row.HireDate, &row.CreatedAt, &row.UpdatedAt, &row.OTPCode, &row.OTPExpiresAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rowToDomain(row))
	}
	return out, rows.Err()
}

func domainToRow(e *domain.Employee) db.Employee {
	row := db.Employee{
		ID:           e.Key.UUID,
		EmployeeID:   e.EmployeeID,
		Email:        e.Email,
		FullName:     e.FullName,
		PasswordHash: e.PasswordHash,
		Role:         string(e.Role),
		Department:   e.Department,
		Designation:  e.Designation,
		Status:       string(e.Status),
		HireDate:     e.HireDate,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.PhoneNumber != "" {
		row.PhoneNumber = pgtype.Text{String: e.PhoneNumber, Valid: true}
	}
	if e.ManagerKey != nil {
		row.ManagerKey = pgtype.UUID{Bytes: e.ManagerKey.UUID, Valid: true}
	}
	if e.TeamLeaderKey != nil {
		row.TeamLeaderKey = pgtype.UUID{Bytes: e.TeamLeaderKey.UUID, Valid: true}
	}
	return row
}

func rowToDomain(row db.Employee) *domain.Employee {
	e := &domain.Employee{
		Key:          domain.NewEmployeeKey(row.ID),
		EmployeeID:   row.EmployeeID,
		Email:        row.Email,
		FullName:     row.FullName,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		Department:   row.Department,
		Designation:  row.Designation,
		Status:       domain.Status(row.Status),
		HireDate:     row.HireDate,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.PhoneNumber.Valid {
		e.PhoneNumber = row.PhoneNumber.String
	}
	if row.ManagerKey.Valid {
		k := domain.NewEmployeeKey(uuid.UUID(row.ManagerKey.Bytes))
		e.ManagerKey = &k
	}
	if row.TeamLeaderKey.Valid {
		k := domain.NewEmployeeKey(uuid.UUID(row.TeamLeaderKey.Bytes))
		e.TeamLeaderKey = &k
	}
	if row.OTPCode.Valid {
		c := row.OTPCode.String
		e.OTPCode = &c
	}
	if row.OTPExpiresAt.Valid {
		t := row.OTPExpiresAt.Time
		e.OTPExpiresAt = &t
	}
	return e
}

var _ ports.EmployeeRepository = (*EmployeeRepository)(nil)
