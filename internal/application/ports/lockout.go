package ports

import "context"

// LoginLockoutStore tracks failed login attempts per employee ID and locks
// the account for a cooldown once the attempt limit is reached.
type LoginLockoutStore interface {
	IsLocked(ctx context.Context, employeeID string) (locked bool, retryAfterSeconds int)
	RecordFailure(ctx context.Context, employeeID string)
	RecordSuccess(ctx context.Context, employeeID string)
}
