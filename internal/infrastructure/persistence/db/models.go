package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Employee is the row shape of the employees table.
type Employee struct {
	ID            uuid.UUID
	EmployeeID    string
	Email         string
	FullName      string
	PasswordHash  string
	PhoneNumber   pgtype.Text
	Role          string
	Department    string
	Designation   string
	Status        string
	ManagerKey    pgtype.UUID
	TeamLeaderKey pgtype.UUID
	HireDate      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	OTPCode       pgtype.Text
	OTPExpiresAt  pgtype.Timestamptz
}
