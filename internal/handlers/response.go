package handlers

import (
	"errors"
	"net/http"

	"job_order/internal/logger"
	"job_order/internal/orderform"
	"job_order/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  string        `json:"Status"`
	Message string        `json:"Message"`
	Missing []string      `json:"Missing,omitempty"`
	Details []ErrorDetail `json:"Details,omitempty"`
}

type ErrorDetail struct {
	Field string `json:"Field"`
	Info  string `json:"Info"`
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Status: orderform.StatusError, Message: message})
}

// badRequest reports a body that could not be bound, with per-field details
// when the validator rejected it.
func badRequest(c *gin.Context, message string, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, ErrorDetail{Field: fe.Field(), Info: validationMessage(fe)})
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Status: orderform.StatusError, Message: message, Details: details})
		return
	}
	fail(c, http.StatusBadRequest, message)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// respondError maps a service error to a status code. Storage failures get
// the generic message; the cause is only logged.
func respondError(c *gin.Context, log logger.Logger, err error, generic string) {
	ctx := c.Request.Context()

	var verr *orderform.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  orderform.StatusError,
			Message: "Please fill in all required fields",
			Missing: verr.Missing,
		})
	case errors.Is(err, services.ErrOrderNotFound):
		fail(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrInvalidOrderNo):
		fail(c, http.StatusBadRequest, "Invalid order number")
	case errors.Is(err, services.ErrInvalidPayload):
		fail(c, http.StatusBadRequest, "Invalid request data")
	case errors.Is(err, services.ErrNameRequired):
		fail(c, http.StatusBadRequest, "Name is required")
	case errors.Is(err, services.ErrSaveLocked), errors.Is(err, services.ErrSaveInProgress):
		fail(c, http.StatusConflict, "Order is already being saved")
	case errors.Is(err, orderform.ErrIllegalTransition):
		fail(c, http.StatusConflict, err.Error())
	default:
		log.Errorf(ctx, "%s: %v", generic, err)
		fail(c, http.StatusInternalServerError, generic)
	}
}
