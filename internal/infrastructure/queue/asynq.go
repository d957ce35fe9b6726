package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
)

const (
	TypeSendOTPEmail    = "email:otp"
	TypeSendOTPSMS      = "sms:otp"
	TypeSendCredentials = "email:credentials"
)

// Notifier enqueues delivery tasks on Asynq. Enqueueing is the only part of
// delivery the auth flows wait for; the worker sends asynchronously.
type Notifier struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqNotifier(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Notifier {
	return &Notifier{client: asynq.NewClient(redisOpt), log: log}
}

func (q *Notifier) Close() error {
	return q.client.Close()
}

func (q *Notifier) DeliverOTPEmail(ctx context.Context, email, code, fullName string) error {
	payload, _ := json.Marshal(otpEmailPayload{Email: email, Code: code, FullName: fullName})
	task := asynq.NewTask(TypeSendOTPEmail, payload)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue OTP email failed")
		return err
	}
	return nil
}

func (q *Notifier) DeliverOTPSMS(ctx context.Context, phoneNumber, code string) error {
	payload, _ := json.Marshal(otpSMSPayload{PhoneNumber: phoneNumber, Code: code})
	task := asynq.NewTask(TypeSendOTPSMS, payload)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Msg("enqueue OTP SMS failed")
		return err
	}
	return nil
}

func (q *Notifier) DeliverCredentials(ctx context.Context, email, employeeID, password, fullName string) error {
	payload, _ := json.Marshal(credentialsPayload{Email: email, EmployeeID: employeeID, Password: password, FullName: fullName})
	task := asynq.NewTask(TypeSendCredentials, payload)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue credentials email failed")
		return err
	}
	return nil
}

var _ ports.Notifier = (*Notifier)(nil)
