package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salescrm/internal/export"
	"salescrm/internal/models"
	"salescrm/internal/pdf"
	"salescrm/internal/services"
)

type LeadHandler struct {
	Service      *services.LeadService
	QuotationGen pdf.Generator
}

func NewLeadHandler(service *services.LeadService, quotationGen pdf.Generator) *LeadHandler {
	return &LeadHandler{Service: service, QuotationGen: quotationGen}
}

// @Summary      Create a lead
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      models.Lead  true  "Lead data"
// @Success      201   {object}  models.Lead
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// new leads always start unassigned and unconverted, whatever the payload says
	lead.ID = 0
	lead.EmployeeID = nil
	lead.IsConverted = false
	lead.ConvertedAt = nil
	lead.CustomerID = nil

	if err := h.Service.Create(&lead); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body models.Lead
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body.ID = id

	updated, err := h.Service.Update(&body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	userID, role := getUserAndRole(c)
	lead, err := h.Service.GetByID(id, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// List returns all live leads for admins and only the assigned ones for
// employees.
func (h *LeadHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	offset := (page - 1) * size

	userID, role := getUserAndRole(c)

	var leads []*models.Lead
	var err error
	if role.IsAdmin() {
		leads, err = h.Service.List(size, offset)
	} else {
		leads, err = h.Service.ListMy(userID, size, offset)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) ListTrashed(c *gin.Context) {
	page, size := pageParams(c)
	leads, err := h.Service.ListTrashed(size, (page-1)*size)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LeadHandler) Restore(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.Restore(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lead restored"})
}

func (h *LeadHandler) ForceDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.ForceDelete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus serves both the admin status route and the employee
// update-status route; the service checks ownership for employees.
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, role := getUserAndRole(c)
	lead, err := h.Service.UpdateStatus(id, req.Status, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

type updateRemarkRequest struct {
	Remark string `json:"remark" binding:"required"`
}

func (h *LeadHandler) UpdateRemark(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, role := getUserAndRole(c)
	lead, err := h.Service.UpdateRemark(id, req.Remark, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// @Summary      Convert a confirmed lead into a customer
// @Tags         Leads
// @Produce      json
// @Param        id   path      int  true  "Lead ID"
// @Success      201  {object}  models.Customer
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /leads/{id}/convert [post]
func (h *LeadHandler) Convert(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	userID, role := getUserAndRole(c)
	customer, err := h.Service.ConvertToCustomer(id, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *LeadHandler) ExportCSV(c *gin.Context) {
	leads, err := h.Service.Repo.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="leads.csv"`)
	if err := export.WriteLeadsCSV(c.Writer, leads); err != nil {
		respondServiceError(c, err)
	}
}

func (h *LeadHandler) Quotation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	userID, role := getUserAndRole(c)
	lead, err := h.Service.GetByID(id, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	products := make([]pdf.ProductLine, 0, len(lead.Products))
	for _, p := range lead.Products {
		products = append(products, pdf.ProductLine{Product: p.Product, Quantity: p.Quantity})
	}
	path, err := h.QuotationGen.GenerateQuotation(pdf.QuotationData{
		LeadID:      lead.ID,
		CompanyName: lead.CompanyName,
		City:        lead.City,
		Address:     lead.Address,
		PhoneNo:     lead.PhoneNo,
		Email:       lead.Email,
		Quotation:   lead.Quotation,
		Products:    products,
		CreatedAt:   lead.CreatedAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.FileAttachment(path, fmt.Sprintf("quotation_lead_%d.pdf", lead.ID))
}

func pageParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", "100"))
	if err != nil || size < 1 {
		size = 100
	}
	return page, size
}
