package handlers

import (
	"net/http"

	"job_order/internal/logger"
	"job_order/internal/orderform"
	"job_order/internal/services"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the lookup lists and health check.
type APIHandler struct {
	lookupService services.LookupService
	log           logger.Logger
}

func NewAPIHandler(lookupService services.LookupService, log logger.Logger) *APIHandler {
	return &APIHandler{lookupService: lookupService, log: log}
}

type createProductRequest struct {
	ProductName string `json:"ProductName" binding:"required,max=255"`
	Description string `json:"Description"`
}

type createCustomerRequest struct {
	CustomerName string `json:"CustomerName" binding:"required,max=255"`
	MobileNo     string `json:"MobileNo" binding:"max=20"`
	Address      string `json:"Address"`
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Status": "ok"})
}

func (h *APIHandler) GetProducts(c *gin.Context) {
	products, err := h.lookupService.Products(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"Status": orderform.StatusSuccess, "Products": products})
}

func (h *APIHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Product name is required", err)
		return
	}

	product, err := h.lookupService.CreateProduct(c.Request.Context(), req.ProductName, req.Description)
	if err != nil {
		respondError(c, h.log, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Status":    orderform.StatusSuccess,
		"Message":   "Product created successfully",
		"ProductId": product.ProductId,
	})
}

func (h *APIHandler) GetCustomers(c *gin.Context) {
	customers, err := h.lookupService.Customers(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"Status": orderform.StatusSuccess, "Customers": customers})
}

func (h *APIHandler) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Customer name is required", err)
		return
	}

	customer, err := h.lookupService.CreateCustomer(c.Request.Context(), req.CustomerName, req.MobileNo, req.Address)
	if err != nil {
		respondError(c, h.log, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Status":     orderform.StatusSuccess,
		"Message":    "Customer created successfully",
		"CustomerId": customer.CustomerId,
	})
}

func (h *APIHandler) GetMeasurements(c *gin.Context) {
	measurements, err := h.lookupService.Measurements(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch measurements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"Status": orderform.StatusSuccess, "Measurements": measurements})
}
