package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// otpEmailPayload matches the JSON enqueued by Notifier.DeliverOTPEmail.
type otpEmailPayload struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`
}

// otpSMSPayload matches the JSON enqueued by Notifier.DeliverOTPSMS.
type otpSMSPayload struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

// credentialsPayload matches the JSON enqueued by Notifier.DeliverCredentials.
type credentialsPayload struct {
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
}

// Worker runs Asynq task handlers for outbound notifications. Call Run() to start.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeSendOTPEmail, w.handleSendOTPEmail)
	mux.HandleFunc(TypeSendOTPSMS, w.handleSendOTPSMS)
	mux.HandleFunc(TypeSendCredentials, w.handleSendCredentials)
	return w
}

// Run blocks until Shutdown.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handleSendOTPEmail(ctx context.Context, t *asynq.Task) error {
	var p otpEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("OTP email task payload invalid")
		return err
	}
	// Dev: log the delivery; production wires SMTP here. The code itself is
	// never logged.
	w.log.Info().
		Str("email", p.Email).
		Str("full_name", p.FullName).
		Msg("OTP email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleSendOTPSMS(ctx context.Context, t *asynq.Task) error {
	var p otpSMSPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("OTP SMS task payload invalid")
		return err
	}
	w.log.Info().
		Str("phone_number", p.PhoneNumber).
		Msg("OTP SMS (log only; configure an SMS gateway for real delivery)")
	return nil
}

func (w *Worker) handleSendCredentials(ctx context.Context, t *asynq.Task) error {
	var p credentialsPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("credentials task payload invalid")
		return err
	}
	w.log.Info().
		Str("email", p.Email).
		Str("employee_id", p.EmployeeID).
		Msg("welcome credentials email (log only; configure SMTP for real email)")
	return nil
}
