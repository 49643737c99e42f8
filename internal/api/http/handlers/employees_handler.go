package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-directory/internal/api/dto"
	"github.com/spec-kit/employee-directory/internal/command"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/pkg/util"
)

// EmployeesHandler exposes the employee CRUD endpoints.
type EmployeesHandler struct {
	bus *command.Bus
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(bus *command.Bus) *EmployeesHandler {
	return &EmployeesHandler{bus: bus}
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	birthDate, ok := dto.ParseBirthDate(req.BirthDate)
	if !ok {
		return util.NewFieldError(util.KindInvalidInput, "birthDate", "Birth date must use format "+dto.BirthDateLayout+".")
	}

	cmd := command.CreateEmployeeCommand{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		DocumentNumber: req.DocumentNumber,
		Password:       req.Password,
		BirthDate:      birthDate,
		Role:           domain.ParseRole(req.Role),
		Phones:         phonesFromRequest(req.Phones),
	}

	result, err := h.bus.CreateEmployee(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	if !result.Success {
		return util.NewDomainError(result.ErrorKind, result.ErrorMessage)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"id": result.EmployeeID},
	})
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	birthDate, ok := dto.ParseBirthDate(req.BirthDate)
	if !ok {
		return util.NewFieldError(util.KindInvalidInput, "birthDate", "Birth date must use format "+dto.BirthDateLayout+".")
	}

	cmd := command.UpdateEmployeeCommand{
		EmployeeID:     id,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		DocumentNumber: req.DocumentNumber,
		BirthDate:      birthDate,
		Phones:         phonesFromRequest(req.Phones),
	}

	result, err := h.bus.UpdateEmployee(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	if !result.Success {
		return util.NewDomainError(result.ErrorKind, result.ErrorMessage)
	}

	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(result.Employee)})
}

// Delete handles DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	result, err := h.bus.DeleteEmployee(c.UserContext(), command.DeleteEmployeeCommand{EmployeeID: id})
	if err != nil {
		return err
	}
	if !result.Success {
		return util.NewDomainError(result.ErrorKind, result.ErrorMessage)
	}

	return c.SendStatus(http.StatusNoContent)
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	result, err := h.bus.GetEmployee(c.UserContext(), command.GetEmployeeCommand{EmployeeID: id})
	if err != nil {
		return err
	}
	if !result.Success {
		return util.NewDomainError(result.ErrorKind, result.ErrorMessage)
	}

	resp := dto.NewEmployeeResponse(result.Employee)
	resp.DocumentNumber = result.DocumentNumber
	return c.JSON(fiber.Map{"data": resp})
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	result, err := h.bus.ListSubordinates(c.UserContext(), command.ListSubordinatesCommand{})
	if err != nil {
		return err
	}
	if !result.Success {
		return util.NewDomainError(result.ErrorKind, result.ErrorMessage)
	}

	responses := make([]dto.EmployeeResponse, 0, len(result.Employees))
	for i := range result.Employees {
		responses = append(responses, dto.NewEmployeeResponse(&result.Employees[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

func employeeID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, util.NewFieldError(util.KindInvalidInput, "employeeId", "Invalid employee id.")
	}
	return id, nil
}

func phonesFromRequest(phones []dto.PhoneRequest) []command.PhoneInput {
	inputs := make([]command.PhoneInput, 0, len(phones))
	for _, phone := range phones {
		inputs = append(inputs, command.PhoneInput{
			Number: phone.Number,
			Type:   domain.PhoneType(phone.Type),
		})
	}
	return inputs
}
