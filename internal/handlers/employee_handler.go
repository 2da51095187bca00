package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salescrm/internal/export"
	"salescrm/internal/models"
	"salescrm/internal/services"
)

type EmployeeHandler struct {
	Users       services.UserService
	Assignments *services.AssignmentService
}

func NewEmployeeHandler(users services.UserService, assignments *services.AssignmentService) *EmployeeHandler {
	return &EmployeeHandler{Users: users, Assignments: assignments}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	employees, err := h.Users.ListEmployees(size, (page-1)*size)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	user, err := h.Users.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *EmployeeHandler) UpdateProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body models.User
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body.ID = id

	updated, err := h.Users.UpdateProfile(&body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UnassignedLeads lists the pool an admin can assign from.
func (h *EmployeeHandler) UnassignedLeads(c *gin.Context) {
	leads, err := h.Assignments.UnassignedLeads()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

type assignLeadsRequest struct {
	EmployeeID int   `json:"employee_id" binding:"required"`
	LeadIDs    []int `json:"lead_ids" binding:"required"`
}

// @Summary      Assign a batch of leads to an employee
// @Description  All-or-nothing: if any lead is already assigned the whole batch fails
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        assignment  body      assignLeadsRequest  true  "Assignment"
// @Success      200         {object}  map[string]interface{}
// @Failure      409         {object}  map[string]string
// @Failure      422         {object}  map[string]string
// @Router       /employees/assign-leads [post]
func (h *EmployeeHandler) AssignLeads(c *gin.Context) {
	var req assignLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.Assignments.AssignLeads(req.EmployeeID, req.LeadIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "leads assigned", "assigned": count})
}

func (h *EmployeeHandler) ExportCSV(c *gin.Context) {
	employees, err := h.Users.ListAllEmployees()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="employees.csv"`)
	if err := export.WriteEmployeesCSV(c.Writer, employees); err != nil {
		respondServiceError(c, err)
	}
}
