package command

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/auth"
	"github.com/spec-kit/employee-directory/internal/events"
	"github.com/spec-kit/employee-directory/internal/repository"
	"github.com/spec-kit/employee-directory/internal/service"
)

// Bus routes every inbound operation through the pipeline and into its body.
type Bus struct {
	svc        *service.EmployeeService
	employees  repository.EmployeeRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// BusDependencies encapsulates collaborators for the bus.
type BusDependencies struct {
	EmployeeService *service.EmployeeService
	EmployeeRepo    repository.EmployeeRepository
	TokenManager    *auth.TokenManager
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewBus builds the command bus.
func NewBus(deps BusDependencies) *Bus {
	return &Bus{
		svc:        deps.EmployeeService,
		employees:  deps.EmployeeRepo,
		tokens:     deps.TokenManager,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateEmployee dispatches the create operation.
func (b *Bus) CreateEmployee(ctx context.Context, cmd CreateEmployeeCommand) (CreateEmployeeResult, error) {
	return Dispatch(ctx, cmd, b.validateCreate, b.handleCreate)
}

func (b *Bus) handleCreate(ctx context.Context, cmd CreateEmployeeCommand) (CreateEmployeeResult, error) {
	employee, err := b.svc.Create(service.CreateEmployeeInput{
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		Email:          strings.TrimSpace(cmd.Email),
		DocumentNumber: cmd.DocumentNumber,
		Password:       cmd.Password,
		BirthDate:      cmd.BirthDate,
		Role:           cmd.Role,
		Phones:         phonesFromInput(cmd.Phones),
	}, cmd.Caller.Role, cmd.Caller.EmployeeID)
	if err != nil {
		return CreateEmployeeResult{}, err
	}

	if err := b.employees.Add(ctx, employee); err != nil {
		return CreateEmployeeResult{}, err
	}

	b.publish(ctx, events.EventEmployeeCreated, employee.ID, &cmd.Caller,
		events.EmployeeCreatedPayload{Email: employee.Email, Role: employee.Role})

	return CreateEmployeeResult{Success: true, EmployeeID: employee.ID}, nil
}

// UpdateEmployee dispatches the update operation.
func (b *Bus) UpdateEmployee(ctx context.Context, cmd UpdateEmployeeCommand) (UpdateEmployeeResult, error) {
	return Dispatch(ctx, cmd, b.validateUpdate, b.handleUpdate)
}

func (b *Bus) handleUpdate(ctx context.Context, cmd UpdateEmployeeCommand) (UpdateEmployeeResult, error) {
	employee, err := b.svc.Update(ctx, cmd.EmployeeID, service.UpdateEmployeeInput{
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		Email:          strings.TrimSpace(cmd.Email),
		DocumentNumber: cmd.DocumentNumber,
		BirthDate:      cmd.BirthDate,
		Phones:         phonesFromInput(cmd.Phones),
	}, cmd.Caller.Role)
	if err != nil {
		return UpdateEmployeeResult{}, err
	}

	if err := b.employees.Update(ctx, employee); err != nil {
		return UpdateEmployeeResult{}, err
	}

	b.publish(ctx, events.EventEmployeeUpdated, employee.ID, &cmd.Caller,
		events.EmployeeUpdatedPayload{Email: employee.Email})

	return UpdateEmployeeResult{Success: true, Employee: employee}, nil
}

// DeleteEmployee dispatches the delete operation.
func (b *Bus) DeleteEmployee(ctx context.Context, cmd DeleteEmployeeCommand) (DeleteEmployeeResult, error) {
	return Dispatch(ctx, cmd, b.validateDelete, b.handleDelete)
}

func (b *Bus) handleDelete(ctx context.Context, cmd DeleteEmployeeCommand) (DeleteEmployeeResult, error) {
	employee, err := b.svc.Delete(ctx, cmd.EmployeeID, cmd.Caller.Role)
	if err != nil {
		return DeleteEmployeeResult{}, err
	}

	if err := b.employees.Delete(ctx, employee.ID); err != nil {
		return DeleteEmployeeResult{}, err
	}

	b.publish(ctx, events.EventEmployeeDeleted, employee.ID, &cmd.Caller,
		events.EmployeeDeletedPayload{Email: employee.Email})

	return DeleteEmployeeResult{Success: true}, nil
}

// GetEmployee dispatches the single-employee read.
func (b *Bus) GetEmployee(ctx context.Context, cmd GetEmployeeCommand) (GetEmployeeResult, error) {
	return Dispatch(ctx, cmd, b.validateGet, b.handleGet)
}

func (b *Bus) handleGet(ctx context.Context, cmd GetEmployeeCommand) (GetEmployeeResult, error) {
	employee, err := b.svc.GetByID(ctx, cmd.EmployeeID, cmd.Caller.Role)
	if err != nil {
		return GetEmployeeResult{}, err
	}

	documentNumber, err := b.svc.DecryptDocumentNumber(employee)
	if err != nil {
		return GetEmployeeResult{}, err
	}

	return GetEmployeeResult{Success: true, Employee: employee, DocumentNumber: documentNumber}, nil
}

// ListSubordinates dispatches the manager listing.
func (b *Bus) ListSubordinates(ctx context.Context, cmd ListSubordinatesCommand) (ListSubordinatesResult, error) {
	return Dispatch(ctx, cmd, nil, b.handleList)
}

func (b *Bus) handleList(ctx context.Context, cmd ListSubordinatesCommand) (ListSubordinatesResult, error) {
	employees, err := b.svc.ListSubordinates(ctx, cmd.Caller.Role, cmd.Caller.EmployeeID)
	if err != nil {
		return ListSubordinatesResult{}, err
	}
	return ListSubordinatesResult{Success: true, Employees: employees}, nil
}

// Login dispatches credential authentication and token issuance.
func (b *Bus) Login(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	return Dispatch(ctx, cmd, b.validateLogin, b.handleLogin)
}

func (b *Bus) handleLogin(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	employee, err := b.svc.AuthenticateByCredentials(ctx, cmd.Email, cmd.Password)
	if err != nil {
		return LoginResult{}, err
	}

	token, expiresAt, err := b.tokens.GenerateToken(employee)
	if err != nil {
		return LoginResult{}, err
	}

	b.publish(ctx, events.EventEmployeeLogin, employee.ID, nil,
		events.EmployeeLoginPayload{Email: employee.Email})

	return LoginResult{Success: true, Employee: employee, Token: token, ExpiresAt: expiresAt}, nil
}

func (b *Bus) publish(ctx context.Context, eventType events.EventType, employeeID int64,
	actor *auth.Identity, payload interface{}) {
	if b.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
	if actor != nil {
		event.Actor = &events.Actor{EmployeeID: actor.EmployeeID, Role: actor.Role}
	}
	b.dispatcher.Publish(ctx, event)
	if b.logger != nil {
		b.logger.Debug("event published",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(eventType)),
			zap.Int64("employee_id", employeeID))
	}
}
