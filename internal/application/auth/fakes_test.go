package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/persistence/memory"
)

// fakeHasher avoids argon2 cost in flow tests; the real hasher has its own tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

type fakeIssuer struct{}

func (fakeIssuer) Issue(employeeID string) (string, int64, error) {
	return "token-for-" + employeeID, 1800, nil
}
func (fakeIssuer) Verify(token string) (string, error) { return "", errors.New("not implemented") }

// seqGenerator returns predictable OTPs ("100000", "100001", ...) so tests can
// tell a fresh code from a stale one.
type seqGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqGenerator) RandomOTP() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return string([]byte{'1', '0', '0', '0', '0', byte('0' + (g.n-1)%10)}), nil
}

func (g *seqGenerator) RandomPassword(length int) (string, error) { return "Xy7!pass", nil }

// recordingNotifier captures deliveries; failEmail/failSMS simulate transport outages.
type recordingNotifier struct {
	mu        sync.Mutex
	emails    []string // codes delivered by email
	sms       []string // codes delivered by SMS
	failEmail bool
	failSMS   bool
}

func (n *recordingNotifier) DeliverOTPEmail(ctx context.Context, email, code, fullName string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failEmail {
		return errors.New("smtp unavailable")
	}
	n.emails = append(n.emails, code)
	return nil
}

func (n *recordingNotifier) DeliverOTPSMS(ctx context.Context, phoneNumber, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failSMS {
		return errors.New("sms gateway unavailable")
	}
	n.sms = append(n.sms, code)
	return nil
}

func (n *recordingNotifier) DeliverCredentials(ctx context.Context, email, employeeID, password, fullName string) error {
	return nil
}

func newTestEmployee(employeeID string, role domain.Role, phone string) *domain.Employee {
	return &domain.Employee{
		Key:          domain.NewEmployeeKey(uuid.New()),
		EmployeeID:   employeeID,
		Email:        employeeID + "@example.com",
		FullName:     "Test Employee",
		PasswordHash: "hashed:correct-password",
		PhoneNumber:  phone,
		Role:         role,
		Department:   "Technology",
		Designation:  "Engineer",
		Status:       domain.StatusActive,
	}
}

type testEnv struct {
	repo     *memory.EmployeeRepository
	notifier *recordingNotifier
	stepUp   *StepUp
	login    *Login
	reqOTP   *RequestOTP
	reset    *ResetPassword
}

func newTestEnv() *testEnv {
	repo := memory.NewEmployeeRepository()
	notifier := &recordingNotifier{}
	stepUp := NewStepUp(repo, &seqGenerator{}, notifier, zerolog.Nop(), 0, nil)
	return &testEnv{
		repo:     repo,
		notifier: notifier,
		stepUp:   stepUp,
		login:    NewLogin(repo, fakeHasher{}, fakeIssuer{}, stepUp, nil),
		reqOTP:   NewRequestOTP(repo, stepUp),
		reset:    NewResetPassword(repo, fakeHasher{}, stepUp),
	}
}

// pendingOTP reads the stored challenge straight from the repository.
func (env *testEnv) pendingOTP(employeeID string) (code string, expiresAt time.Time, ok bool) {
	e, _ := env.repo.FindByEmployeeID(context.Background(), employeeID)
	if e == nil || e.OTPCode == nil || e.OTPExpiresAt == nil {
		return "", time.Time{}, false
	}
	return *e.OTPCode, *e.OTPExpiresAt, true
}
