package command

import (
	"bytes"
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/employee-directory/internal/auth"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/events"
	"github.com/spec-kit/employee-directory/internal/security/fieldcrypt"
	"github.com/spec-kit/employee-directory/internal/service"
	"github.com/spec-kit/employee-directory/pkg/util"
)

type stubEmployeeRepo struct {
	byID    map[int64]*domain.Employee
	byEmail map[string]*domain.Employee
	subs    []domain.Employee

	takenEmails  map[string]bool
	takenIndexes map[string]bool

	emailLookups int
	indexLookups int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{
		byID:         make(map[int64]*domain.Employee),
		byEmail:      make(map[string]*domain.Employee),
		takenEmails:  make(map[string]bool),
		takenIndexes: make(map[string]bool),
	}
}

func (s *stubEmployeeRepo) put(e *domain.Employee) {
	s.byID[e.ID] = e
	s.byEmail[e.Email] = e
}

func (s *stubEmployeeRepo) Add(_ context.Context, e *domain.Employee) error {
	e.ID = int64(len(s.byID) + 1)
	s.put(e)
	return nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	s.put(e)
	return nil
}

func (s *stubEmployeeRepo) Delete(_ context.Context, id int64) error {
	delete(s.byID, id)
	return nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *e
	return &copied, nil
}

func (s *stubEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	e, ok := s.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *e
	return &copied, nil
}

func (s *stubEmployeeRepo) ListByManager(_ context.Context, _ int64) ([]domain.Employee, error) {
	return s.subs, nil
}

func (s *stubEmployeeRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := s.byID[id]
	return ok, nil
}

func (s *stubEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.emailLookups++
	return s.takenEmails[email], nil
}

func (s *stubEmployeeRepo) ExistsByDocumentIndex(_ context.Context, index string) (bool, error) {
	s.indexLookups++
	return s.takenIndexes[index], nil
}

type stubPhoneRepo struct {
	phones map[int64][]domain.Phone
}

func (s *stubPhoneRepo) ListByEmployeeID(_ context.Context, employeeID int64) ([]domain.Phone, error) {
	return s.phones[employeeID], nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

type busFixture struct {
	bus        *Bus
	employees  *stubEmployeeRepo
	phones     *stubPhoneRepo
	dispatcher *recordingDispatcher
}

func newBusFixture(t *testing.T) *busFixture {
	t.Helper()

	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, 32))
	cipher, err := fieldcrypt.New(key)
	require.NoError(t, err)

	employees := newStubEmployeeRepo()
	phones := &stubPhoneRepo{phones: make(map[int64][]domain.Phone)}
	dispatcher := &recordingDispatcher{}

	svc := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo: employees,
		PhoneRepo:    phones,
		Cipher:       cipher,
		BcryptCost:   bcrypt.MinCost,
	})

	bus := NewBus(BusDependencies{
		EmployeeService: svc,
		EmployeeRepo:    employees,
		TokenManager:    auth.NewTokenManager("test-secret", 60),
		Dispatcher:      dispatcher,
		Logger:          zap.NewNop(),
	})

	return &busFixture{bus: bus, employees: employees, phones: phones, dispatcher: dispatcher}
}

func adminContext() context.Context {
	return auth.ContextWithIdentity(context.Background(),
		auth.Identity{Role: domain.RoleAdmin, EmployeeID: 1})
}

func validCreateCommand() CreateEmployeeCommand {
	return CreateEmployeeCommand{
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane.doe@company.com",
		DocumentNumber: "12345678900",
		Password:       "Secret@123",
		BirthDate:      time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		Role:           domain.RoleUser,
		Phones:         []PhoneInput{{Number: "+5511999990000", Type: domain.PhoneTypeMobile}},
	}
}

func TestCreateEmployeeFlow(t *testing.T) {
	f := newBusFixture(t)

	result, err := f.bus.CreateEmployee(adminContext(), validCreateCommand())
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NotZero(t, result.EmployeeID)

	stored := f.employees.byID[result.EmployeeID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "12345678900", stored.DocumentNumber)
	require.NotNil(t, stored.ManagerID)
	assert.Equal(t, int64(1), *stored.ManagerID)

	published := f.dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventEmployeeCreated, published[0].Type)
	assert.Equal(t, result.EmployeeID, published[0].EmployeeID)
	require.NotNil(t, published[0].Actor)
	assert.Equal(t, int64(1), published[0].Actor.EmployeeID)
}

func TestCreateEmployeeWithoutIdentity(t *testing.T) {
	f := newBusFixture(t)

	result, err := f.bus.CreateEmployee(context.Background(), validCreateCommand())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, util.KindUserUnauthorized, result.ErrorKind)
	assert.Empty(t, f.employees.byID, "nothing may be persisted")
	assert.Empty(t, f.dispatcher.published())
	assert.Zero(t, f.employees.indexLookups, "validation must not run")
}

func TestCreateEmployeeHigherPermission(t *testing.T) {
	f := newBusFixture(t)
	ctx := auth.ContextWithIdentity(context.Background(),
		auth.Identity{Role: domain.RoleLeader, EmployeeID: 3})

	cmd := validCreateCommand()
	cmd.Role = domain.RoleDirector

	_, err := f.bus.CreateEmployee(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, util.KindHigherPermission, util.KindOf(err))
	assert.Empty(t, f.dispatcher.published())
}

func TestUpdateEmployeeFlow(t *testing.T) {
	f := newBusFixture(t)
	managerID := int64(1)
	f.employees.put(&domain.Employee{
		ID: 5, Email: "old@company.com", Role: domain.RoleUser, ManagerID: &managerID,
	})

	cmd := UpdateEmployeeCommand{
		EmployeeID:     5,
		FirstName:      "Janet",
		LastName:       "Doe",
		Email:          "janet.doe@company.com",
		DocumentNumber: "98765432100",
		BirthDate:      time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC),
		Phones:         []PhoneInput{{Number: "+5511999990000", Type: domain.PhoneTypeMobile}},
	}

	result, err := f.bus.UpdateEmployee(adminContext(), cmd)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "Janet", result.Employee.FirstName)

	published := f.dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventEmployeeUpdated, published[0].Type)
}

func TestDeleteEmployeeFlow(t *testing.T) {
	f := newBusFixture(t)
	managerID := int64(1)
	f.employees.put(&domain.Employee{ID: 5, Role: domain.RoleUser, ManagerID: &managerID})

	result, err := f.bus.DeleteEmployee(adminContext(), DeleteEmployeeCommand{EmployeeID: 5})
	require.NoError(t, err)
	require.True(t, result.Success)

	_, stillThere := f.employees.byID[5]
	assert.False(t, stillThere)

	published := f.dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventEmployeeDeleted, published[0].Type)
}

func TestDeleteUnknownEmployeeFailsValidation(t *testing.T) {
	f := newBusFixture(t)

	_, err := f.bus.DeleteEmployee(adminContext(), DeleteEmployeeCommand{EmployeeID: 999})
	require.Error(t, err)
	assert.Equal(t, util.KindEmployeeNotFound, util.KindOf(err))
}

func TestGetEmployeeDecryptsDocument(t *testing.T) {
	f := newBusFixture(t)

	created, err := f.bus.CreateEmployee(adminContext(), validCreateCommand())
	require.NoError(t, err)
	require.True(t, created.Success)
	f.phones.phones[created.EmployeeID] = []domain.Phone{
		{ID: 1, EmployeeID: created.EmployeeID, Number: "+5511999990000", Type: domain.PhoneTypeMobile},
	}

	result, err := f.bus.GetEmployee(adminContext(), GetEmployeeCommand{EmployeeID: created.EmployeeID})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "12345678900", result.DocumentNumber)
	require.Len(t, result.Employee.Phones, 1)
}

func TestListSubordinatesFlow(t *testing.T) {
	f := newBusFixture(t)
	f.employees.subs = []domain.Employee{{ID: 2}, {ID: 3}}

	result, err := f.bus.ListSubordinates(adminContext(), ListSubordinatesCommand{})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Len(t, result.Employees, 2)
}

func TestLoginFlow(t *testing.T) {
	f := newBusFixture(t)

	hash, err := auth.HashPassword("Secret@123", bcrypt.MinCost)
	require.NoError(t, err)
	f.employees.put(&domain.Employee{
		ID: 5, Email: "jane.doe@company.com", PasswordHash: hash, Role: domain.RoleLeader,
	})

	// Login is the one operation that needs no identity.
	result, err := f.bus.Login(context.Background(), LoginCommand{
		Email:    "jane.doe@company.com",
		Password: "Secret@123",
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := auth.NewTokenManager("test-secret", 60).ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "5", claims.Subject)
	assert.Equal(t, "Leader", claims.Role)

	published := f.dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventEmployeeLogin, published[0].Type)
	assert.Nil(t, published[0].Actor)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newBusFixture(t)

	_, err := f.bus.Login(context.Background(), LoginCommand{
		Email:    "nobody@company.com",
		Password: "Secret@123",
	})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalidCredentials, util.KindOf(err))
	assert.Empty(t, f.dispatcher.published())
}
