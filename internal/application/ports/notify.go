package ports

import "context"

// Notifier delivers credentials and OTP codes out of band. Delivery is
// fire-and-forget: callers log errors and never fail the state transition
// that already stored the code.
type Notifier interface {
	DeliverOTPEmail(ctx context.Context, email, code, fullName string) error
	DeliverOTPSMS(ctx context.Context, phoneNumber, code string) error
	DeliverCredentials(ctx context.Context, email, employeeID, password, fullName string) error
}
