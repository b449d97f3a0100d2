package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests for the ledger's employee directory.
type employeeHandler struct {
	employeeService portssvc.EmployeeDirectorySvc
}

func newEmployeeHandler(employeeService portssvc.EmployeeDirectorySvc) *employeeHandler {
	return &employeeHandler{employeeService: employeeService}
}

// RegisterEmployeeRoutes registers the employee directory routes.
func RegisterEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeDirectorySvc) {
	h := newEmployeeHandler(employeeService)

	employees := rg.Group("/employees")
	{
		employees.POST("", middleware.RequireRole(domain.RoleAdmin), h.registerEmployee)
		employees.GET("/:employeeID", h.getEmployee)
	}
}

// registerEmployee godoc
// @Summary Register an employee
// @Description Registers or updates an employee known to the ledger. Administrators only.
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee body dto.RegisterEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Failed to register employee"
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) registerEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "RegisterEmployee", err)
		return
	}

	employee, err := h.employeeService.RegisterEmployee(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to register employee")
		return
	}

	logger.Info("Employee registered via API", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// getEmployee godoc
// @Summary Get an employee
// @Description Retrieves an employee. Cashiers may only look themselves up.
// @Tags employees
// @Produce  json
// @Param   employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve employee"
// @Security BearerAuth
// @Router /employees/{employeeID} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("employeeID"), actor)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}
