package employee

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/persistence/memory"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/security"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

type credentialMail struct {
	email      string
	employeeID string
	password   string
}

type recordingNotifier struct {
	mu          sync.Mutex
	credentials []credentialMail
}

func (n *recordingNotifier) DeliverOTPEmail(ctx context.Context, email, code, fullName string) error {
	return nil
}
func (n *recordingNotifier) DeliverOTPSMS(ctx context.Context, phoneNumber, code string) error {
	return nil
}
func (n *recordingNotifier) DeliverCredentials(ctx context.Context, email, employeeID, password, fullName string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.credentials = append(n.credentials, credentialMail{email: email, employeeID: employeeID, password: password})
	return nil
}

func seed(t *testing.T, repo *memory.EmployeeRepository, employeeID string, role domain.Role, department string) *domain.Employee {
	t.Helper()
	e := &domain.Employee{
		Key:          domain.NewEmployeeKey(uuid.New()),
		EmployeeID:   employeeID,
		Email:        employeeID + "@example.com",
		FullName:     "Seeded " + employeeID,
		PasswordHash: "hashed:pw",
		Role:         role,
		Department:   department,
		Designation:  "Staff",
		Status:       domain.StatusActive,
	}
	if err := repo.Create(context.Background(), e); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return e
}

func TestCreateGeneratesAndMailsCredentials(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	notifier := &recordingNotifier{}
	uc := NewCreate(repo, fakeHasher{}, security.NewGenerator(), notifier, zerolog.Nop())
	hr := seed(t, repo, "HR26010001", domain.RoleHR, "HR")

	created, err := uc.Execute(context.Background(), hr, CreateInput{
		Email:       "new.hire@example.com",
		FullName:    "New Hire",
		Role:        domain.RoleTech,
		Department:  "Technology",
		Designation: "Engineer",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if created.Status != domain.StatusActive {
		t.Errorf("new employees start active, got %s", created.Status)
	}
	if len(created.EmployeeID) < 7 {
		t.Errorf("suspicious employee ID %q", created.EmployeeID)
	}
	if len(notifier.credentials) != 1 {
		t.Fatalf("expected one credentials mail, got %d", len(notifier.credentials))
	}
	mail := notifier.credentials[0]
	if mail.employeeID != created.EmployeeID || mail.email != "new.hire@example.com" {
		t.Errorf("credentials mailed to wrong recipient: %+v", mail)
	}
	if len(mail.password) != generatedPasswordLength {
		t.Errorf("generated password length %d, want %d", len(mail.password), generatedPasswordLength)
	}
	// The stored hash matches the mailed password.
	stored, _ := repo.FindByEmployeeID(context.Background(), created.EmployeeID)
	if !(fakeHasher{}).Verify(mail.password, stored.PasswordHash) {
		t.Error("stored hash does not verify the mailed password")
	}
}

func TestCreateRejections(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	uc := NewCreate(repo, fakeHasher{}, security.NewGenerator(), &recordingNotifier{}, zerolog.Nop())
	hr := seed(t, repo, "HR26010001", domain.RoleHR, "HR")
	tech := seed(t, repo, "TEC26010002", domain.RoleTech, "Technology")

	input := CreateInput{Email: "someone@example.com", FullName: "X", Role: domain.RoleIntern, Department: "Sales", Designation: "Intern"}

	if _, err := uc.Execute(context.Background(), tech, input); !errors.Is(err, domerrors.ErrForbidden) {
		t.Errorf("tech requester: got %v, want ErrForbidden", err)
	}
	if _, err := uc.Execute(context.Background(), nil, input); !errors.Is(err, domerrors.ErrUnauthenticated) {
		t.Errorf("nil requester: got %v, want ErrUnauthenticated", err)
	}

	input.Email = hr.Email
	if _, err := uc.Execute(context.Background(), hr, input); !errors.Is(err, domerrors.ErrEmailExists) {
		t.Errorf("duplicate email: got %v, want ErrEmailExists", err)
	}
}

func TestListScopesNonPrivilegedToOwnDepartment(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	d := NewDirectory(repo)
	seed(t, repo, "TEC26010001", domain.RoleTech, "Technology")
	seed(t, repo, "SAL26010002", domain.RoleIntern, "Sales")
	hr := seed(t, repo, "HR26010003", domain.RoleHR, "HR")
	tech := seed(t, repo, "TEC26010004", domain.RoleTech, "Technology")

	all, err := d.List(context.Background(), hr, ports.ListFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("privileged list: got %d records, want 4", len(all))
	}

	scoped, err := d.List(context.Background(), tech, ports.ListFilter{Department: "Sales"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	for _, e := range scoped {
		if e.Department != "Technology" {
			t.Errorf("non-privileged requester saw %s record %s", e.Department, e.EmployeeID)
		}
	}
}

func TestGetEnforcesCanView(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	d := NewDirectory(repo)
	target := seed(t, repo, "TEC26010001", domain.RoleTech, "Technology")
	outsider := seed(t, repo, "SAL26010002", domain.RoleIntern, "Sales")
	colleague := seed(t, repo, "TEC26010003", domain.RoleTech, "Technology")

	if _, err := d.Get(context.Background(), colleague, target.Key); err != nil {
		t.Errorf("same department: %v", err)
	}
	if _, err := d.Get(context.Background(), outsider, target.Key); !errors.Is(err, domerrors.ErrForbidden) {
		t.Errorf("cross department: got %v, want ErrForbidden", err)
	}
	if _, err := d.Get(context.Background(), colleague, domain.NewEmployeeKey(uuid.New())); !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("missing record: got %v, want ErrNotFound", err)
	}
}

func TestHierarchyUsesReverseIndex(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	d := NewDirectory(repo)
	manager := seed(t, repo, "ADM26010001", domain.RoleAdmin, "Technology")
	lead := seed(t, repo, "TEC26010002", domain.RoleTech, "Technology")

	dev := seed(t, repo, "TEC26010003", domain.RoleTech, "Technology")
	dev.ManagerKey = &manager.Key
	dev.TeamLeaderKey = &lead.Key
	_ = repo.Update(context.Background(), dev)

	reportee := seed(t, repo, "TEC26010004", domain.RoleTech, "Technology")
	reportee.ManagerKey = &dev.Key
	_ = repo.Update(context.Background(), reportee)

	res, err := d.Hierarchy(context.Background(), manager, dev.Key)
	if err != nil {
		t.Fatalf("Hierarchy error: %v", err)
	}
	if res.Manager == nil || res.Manager.Key != manager.Key {
		t.Error("manager edge not resolved")
	}
	if res.TeamLeader == nil || res.TeamLeader.Key != lead.Key {
		t.Error("team leader edge not resolved")
	}
	if len(res.Subordinates) != 1 || res.Subordinates[0].Key != reportee.Key {
		t.Errorf("subordinates reverse query: got %d", len(res.Subordinates))
	}
}

func TestUpdateAndStatusAuthz(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	update := NewUpdate(repo)
	setStatus := NewSetStatus(repo)
	deactivate := NewDeactivate(repo)
	ctx := context.Background()

	hr := seed(t, repo, "HR26010001", domain.RoleHR, "HR")
	admin := seed(t, repo, "ADM26010002", domain.RoleAdmin, "Admin")
	super := seed(t, repo, "ADM26010003", domain.RoleSuperAdmin, "Admin")
	target := seed(t, repo, "TEC26010004", domain.RoleTech, "Technology")

	name := "Renamed Employee"
	updated, err := update.Execute(ctx, hr, target.Key, UpdateInput{FullName: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.FullName != name {
		t.Errorf("full name not updated: %q", updated.FullName)
	}

	if _, err := update.Execute(ctx, target, target.Key, UpdateInput{FullName: &name}); !errors.Is(err, domerrors.ErrForbidden) {
		t.Errorf("tech update: got %v, want ErrForbidden", err)
	}

	if err := setStatus.Execute(ctx, hr, target.Key, domain.StatusSuspended); err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	got, _ := repo.FindByKey(ctx, target.Key)
	if got.Status != domain.StatusSuspended {
		t.Errorf("status not applied: %s", got.Status)
	}

	if err := deactivate.Execute(ctx, admin, target.Key); !errors.Is(err, domerrors.ErrForbidden) {
		t.Errorf("admin deactivate: got %v, want ErrForbidden", err)
	}
	if err := deactivate.Execute(ctx, super, target.Key); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	got, _ = repo.FindByKey(ctx, target.Key)
	if got.Status != domain.StatusInactive {
		t.Errorf("soft delete: status %s, want inactive", got.Status)
	}
}
