package handlers

import (
	"net/http"
	"strings"

	"job_order/internal/logger"
	"job_order/internal/orderform"
	"job_order/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	log          logger.Logger
}

func NewOrderHandler(orderService services.OrderService, log logger.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, log: log}
}

type saveOrderRequest struct {
	OrderHead   *orderform.WireHead    `json:"OrderHead" binding:"required"`
	OrderDetail []orderform.WireDetail `json:"OrderDetail" binding:"required"`
}

func (r *saveOrderRequest) payload() *orderform.WirePayload {
	return &orderform.WirePayload{OrderHead: *r.OrderHead, OrderDetail: r.OrderDetail}
}

type statusRequest struct {
	Event string `json:"Event" binding:"required,oneof=start complete cancel reopen"`
}

// GetOrders returns one order when ?orderNo= is given, else the latest 100.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	ctx := c.Request.Context()

	if orderNo := strings.TrimSpace(c.Query("orderNo")); orderNo != "" {
		p, err := h.orderService.GetOrder(ctx, orderNo)
		if err != nil {
			respondError(c, h.log, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"Status":      orderform.StatusSuccess,
			"OrderHead":   p.OrderHead,
			"OrderDetail": p.OrderDetail,
		})
		return
	}

	orders, err := h.orderService.ListOrders(ctx)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Status": orderform.StatusSuccess,
		"Orders": orders,
	})
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req saveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	res, err := h.orderService.SaveOrder(c.Request.Context(), req.payload(), false)
	if err != nil {
		respondError(c, h.log, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req saveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data or missing OrderNo", err)
		return
	}
	p := req.payload()
	if !p.IsUpdate() {
		fail(c, http.StatusBadRequest, "Invalid request data or missing OrderNo")
		return
	}

	res, err := h.orderService.SaveOrder(c.Request.Context(), p, true)
	if err != nil {
		respondError(c, h.log, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	next, err := h.orderService.TransitionStatus(c.Request.Context(), c.Param("orderNo"), req.Event)
	if err != nil {
		respondError(c, h.log, err, "Failed to update job status")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Status":    orderform.StatusSuccess,
		"OrderNo":   c.Param("orderNo"),
		"JobStatus": next,
	})
}
