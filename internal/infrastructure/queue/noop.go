package queue

import (
	"context"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
)

// NoopNotifier is used when Redis/Asynq is not configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (NoopNotifier) DeliverOTPEmail(ctx context.Context, email, code, fullName string) error {
	return nil
}

func (NoopNotifier) DeliverOTPSMS(ctx context.Context, phoneNumber, code string) error {
	return nil
}

func (NoopNotifier) DeliverCredentials(ctx context.Context, email, employeeID, password, fullName string) error {
	return nil
}

var _ ports.Notifier = (*NoopNotifier)(nil)
