package handlers

import (
	"net/http"
	"strings"
	"time"

	"job_order/internal/logger"
	"job_order/internal/orderform"
	"job_order/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	entrySessionHeader = "X-Entry-Session"
	isoDateLayout      = "2006-01-02"
)

// EntryHandler exposes the order entry form: per-cell checks, the derived
// weight and submission.
type EntryHandler struct {
	entry  *services.EntryService
	guards *services.GuardRegistry
	log    logger.Logger
}

func NewEntryHandler(entry *services.EntryService, log logger.Logger) *EntryHandler {
	return &EntryHandler{entry: entry, guards: &services.GuardRegistry{}, log: log}
}

type fieldRequest struct {
	Field string `json:"Field" binding:"required"`
	Value string `json:"Value"`
}

type requiredWeightRequest struct {
	Width  string `json:"Width"`
	Length string `json:"Length"`
	Gauge  string `json:"Gauge"`
	Pieces string `json:"Pieces"`
}

type entryRow struct {
	AutoIncrement int64  `json:"autoIncrement"`
	Product       string `json:"product"`
	Width         string `json:"width"`
	Length        string `json:"length"`
	Flop          string `json:"flop"`
	Gauge         string `json:"gauge"`
	BColor        string `json:"bColor"`
	FColor        string `json:"fColor"`
	Remarks       string `json:"remarks"`
	Pieces        string `json:"pieces"`
	Weight        string `json:"weight"`
	ReqWgt        string `json:"reqWgt,omitempty"`
	RateFor       string `json:"rateFor"`
	Rate          string `json:"rate"`
}

type entryForm struct {
	OrderNo        string     `json:"orderNo"`
	OrderDate      string     `json:"orderDate"`
	Customer       string     `json:"customer"`
	CustomerMobile string     `json:"customerMobile"`
	PONo           string     `json:"poNo"`
	PODate         string     `json:"poDate"`
	DueDate        string     `json:"dueDate"`
	Measurement    string     `json:"measurement" binding:"omitempty,oneof=INCH CM MM METER"`
	Remarks        string     `json:"remarks"`
	JobStatus      string     `json:"jobStatus"`
	Rows           []entryRow `json:"rows"`
	TotalPieces    string     `json:"totalPieces,omitempty"`
	TotalWeight    string     `json:"totalWeight,omitempty"`
}

func parseISODate(s string) *time.Time {
	t, err := time.Parse(isoDateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}

func formatISODate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(isoDateLayout)
}

// fill copies the submitted form into the session, cell by cell, so every
// value passes the same checks as typed input.
func (f *entryForm) fill(s *services.Session) error {
	form := s.Form
	form.Header.OrderNo = strings.TrimSpace(f.OrderNo)
	form.Header.CustomerName = f.Customer
	form.Header.CustomerMobile = f.CustomerMobile
	form.Header.PONumber = f.PONo
	form.Header.Measurement = f.Measurement
	form.Header.Remarks = f.Remarks
	form.Header.JobStatus = f.JobStatus
	form.Dates = orderform.Dates{
		OrderDate: parseISODate(f.OrderDate),
		PODate:    parseISODate(f.PODate),
		DueDate:   parseISODate(f.DueDate),
	}

	for i, r := range f.Rows {
		if i >= len(form.Rows) {
			form.AddRow()
		}
		form.Rows[i].AutoIncrement = r.AutoIncrement
		cells := []struct{ field, value string }{
			{orderform.FieldProduct, r.Product},
			{orderform.FieldWidth, r.Width},
			{orderform.FieldLength, r.Length},
			{orderform.FieldFlop, r.Flop},
			{orderform.FieldGauge, r.Gauge},
			{orderform.FieldBColor, r.BColor},
			{orderform.FieldFColor, r.FColor},
			{orderform.FieldRemarks, r.Remarks},
			{orderform.FieldPieces, r.Pieces},
			{orderform.FieldWeight, r.Weight},
			{orderform.FieldRateFor, r.RateFor},
			{orderform.FieldRate, r.Rate},
		}
		for _, cell := range cells {
			if _, err := form.SetCell(i, cell.field, cell.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func formView(form *orderform.Form) entryForm {
	rows := make([]entryRow, 0, len(form.Rows))
	for _, r := range form.Rows {
		rows = append(rows, entryRow{
			AutoIncrement: r.AutoIncrement,
			Product:       r.Product,
			Width:         r.Width,
			Length:        r.Length,
			Flop:          r.Flop,
			Gauge:         r.Gauge,
			BColor:        r.BColor,
			FColor:        r.FColor,
			Remarks:       r.Remarks,
			Pieces:        r.Pieces,
			Weight:        r.Weight,
			ReqWgt:        r.ReqWgt,
			RateFor:       r.RateFor,
			Rate:          r.Rate,
		})
	}
	pieces, weight := form.Totals()
	return entryForm{
		OrderNo:        form.Header.OrderNo,
		OrderDate:      formatISODate(form.Dates.OrderDate),
		Customer:       form.Header.CustomerName,
		CustomerMobile: form.Header.CustomerMobile,
		PONo:           form.Header.PONumber,
		PODate:         formatISODate(form.Dates.PODate),
		DueDate:        formatISODate(form.Dates.DueDate),
		Measurement:    form.Header.Measurement,
		Remarks:        form.Header.Remarks,
		JobStatus:      form.Header.JobStatus,
		Rows:           rows,
		TotalPieces:    orderform.FormatPieces(pieces),
		TotalWeight:    weight,
	}
}

func (h *EntryHandler) ValidateField(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Field": req.Field,
		"Value": orderform.Validate(orderform.KindOf(req.Field), req.Value),
	})
}

func (h *EntryHandler) RequiredWeight(c *gin.Context) {
	var req requiredWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"RequiredWeight": orderform.RequiredWeight(req.Width, req.Length, req.Gauge, req.Pieces),
	})
}

// Submit validates and saves a whole form. Requests carrying the same
// X-Entry-Session header share one in-flight flag.
func (h *EntryHandler) Submit(c *gin.Context) {
	var req entryForm
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	sessionID := c.GetHeader(entrySessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	guard := h.guards.Get(sessionID)
	defer h.guards.Done(sessionID, guard)

	s := h.entry.NewSessionWithGuard(guard)
	if err := req.fill(s); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	res, err := h.entry.Save(c.Request.Context(), s)
	if err != nil {
		respondError(c, h.log, err, "Failed to save order")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetForm loads a stored order as the entry grid would show it.
func (h *EntryHandler) GetForm(c *gin.Context) {
	s := h.entry.NewSession()
	if err := h.entry.Open(c.Request.Context(), s, c.Param("orderNo")); err != nil {
		respondError(c, h.log, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Status": orderform.StatusSuccess,
		"Form":   formView(s.Form),
	})
}
