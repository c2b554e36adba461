package orderform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString is a JSON value that may arrive as a string, a number or null.
// Stored rows and older clients disagree on which they send.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex string: unsupported value %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// WireHead is the order head as exchanged with the persistence API.
type WireHead struct {
	OrderNo          FlexString `json:"OrderNo"`
	OrderDate        string     `json:"OrderDate"`
	CustomerName     string     `json:"CustomerName"`
	CustomerMobileNo string     `json:"CustomerMobileNo"`
	PartyOrderNo     string     `json:"PartyOrderNo"`
	PartyOrderDate   string     `json:"PartyOrderDate"`
	DueDate          string     `json:"DueDate"`
	Measurement      string     `json:"Measurement"`
	Remarks          string     `json:"Remarks"`
	TotalOrderPiece  float64    `json:"TotalOrderPiece"`
	TotalOrderWeight FlexString `json:"TotalOrderWeight"`
	JobStatus        string     `json:"JobStatus"`
	ModuleEntryCode  string     `json:"ModuleEntryCode"`
	CompanyId        int        `json:"CompanyId"`
	FinancialPeriod  string     `json:"FinancialPeriod"`
	UserIdUserHead   int        `json:"UserId_UserHead"`
}

// WireDetail is one order_detail row on the wire.
type WireDetail struct {
	AutoIncrement   int64      `json:"AutoIncrement"`
	Sno             int        `json:"Sno"`
	ProductName     string     `json:"ProductName"`
	Width           FlexString `json:"Width"`
	Length          FlexString `json:"Length"`
	Flop            FlexString `json:"Flop"`
	Gauge           FlexString `json:"Gauge"`
	NoOfBackColors  FlexString `json:"NoOfBackColors"`
	NoOfFrontColors FlexString `json:"NoOfFrontColors"`
	Remarks         string     `json:"Remarks"`
	OrderPiece      FlexString `json:"OrderPiece"`
	OrderWeight     FlexString `json:"OrderWeight"`
	RequiredWeight  FlexString `json:"RequiredWeight"`
	RateFor         string     `json:"RateFor"`
	Rate            FlexString `json:"Rate"`
}

// WirePayload is the body of a save request and of a fetch response.
type WirePayload struct {
	OrderHead   WireHead     `json:"OrderHead"`
	OrderDetail []WireDetail `json:"OrderDetail"`
}

// IsUpdate reports whether saving p should update an existing order.
func (p WirePayload) IsUpdate() bool {
	no := strings.TrimSpace(p.OrderHead.OrderNo.String())
	return no != "" && no != NewOrderNo
}

// SaveResult is the persistence API reply to a save.
type SaveResult struct {
	Status  string     `json:"Status"`
	Message string     `json:"Message,omitempty"`
	OrderNo FlexString `json:"OrderNo,omitempty"`
}

const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// ToWire converts the in-memory order into its wire form. Rows without a
// product are dropped and the rest are renumbered from 1. Blank numerics are
// written as zero and required weight is recomputed.
func ToWire(h Header, d Dates, items []LineItem) WirePayload {
	orderNo := strings.TrimSpace(h.OrderNo)
	if orderNo == "" {
		orderNo = NewOrderNo
	}

	details := make([]WireDetail, 0, len(items))
	kept := make([]LineItem, 0, len(items))
	for _, it := range items {
		if isBlank(it.Product) {
			continue
		}
		kept = append(kept, it)
		details = append(details, WireDetail{
			AutoIncrement:   it.AutoIncrement,
			Sno:             len(details) + 1,
			ProductName:     strings.TrimSpace(it.Product),
			Width:           FlexString(orZero(it.Width, "0")),
			Length:          FlexString(orZero(it.Length, "0")),
			Flop:            FlexString(orZero(it.Flop, "0")),
			Gauge:           FlexString(orZero(it.Gauge, "0")),
			NoOfBackColors:  FlexString(strings.TrimSpace(it.BColor)),
			NoOfFrontColors: FlexString(strings.TrimSpace(it.FColor)),
			Remarks:         it.Remarks,
			OrderPiece:      FlexString(orZero(it.Pieces, "0")),
			OrderWeight:     FlexString(orZero(it.Weight, zeroWeight)),
			RequiredWeight:  FlexString(RequiredWeight(it.Width, it.Length, it.Gauge, it.Pieces)),
			RateFor:         wireRateFor(it.RateFor),
			Rate:            FlexString(orZero(it.Rate, "0")),
		})
	}

	pieces, weight := AggregateTotals(kept)
	return WirePayload{
		OrderHead: WireHead{
			OrderNo:          FlexString(orderNo),
			OrderDate:        FormatWireDate(d.OrderDate),
			CustomerName:     strings.TrimSpace(h.CustomerName),
			CustomerMobileNo: strings.TrimSpace(h.CustomerMobile),
			PartyOrderNo:     strings.TrimSpace(h.PONumber),
			PartyOrderDate:   FormatWireDate(d.PODate),
			DueDate:          FormatWireDate(d.DueDate),
			Measurement:      strings.TrimSpace(h.Measurement),
			Remarks:          h.Remarks,
			TotalOrderPiece:  pieces,
			TotalOrderWeight: FlexString(weight),
			JobStatus:        h.JobStatus,
			ModuleEntryCode:  h.Admin.ModuleEntryCode,
			CompanyId:        h.Admin.CompanyID,
			FinancialPeriod:  h.Admin.FinancialPeriod,
			UserIdUserHead:   h.Admin.UserID,
		},
		OrderDetail: details,
	}
}

// FromWire converts a fetched order back to its in-memory form. The rows
// are padded with blank template rows up to MinGridRows.
func FromWire(p WirePayload) (Header, Dates, []LineItem) {
	head := p.OrderHead
	orderNo := head.OrderNo.String()
	if orderNo == NewOrderNo {
		orderNo = ""
	}
	h := Header{
		OrderNo:        orderNo,
		CustomerName:   head.CustomerName,
		CustomerMobile: head.CustomerMobileNo,
		PONumber:       head.PartyOrderNo,
		Measurement:    head.Measurement,
		Remarks:        head.Remarks,
		JobStatus:      head.JobStatus,
		Admin: AdminFields{
			ModuleEntryCode: head.ModuleEntryCode,
			CompanyID:       head.CompanyId,
			FinancialPeriod: head.FinancialPeriod,
			UserID:          head.UserIdUserHead,
		},
	}
	d := Dates{
		OrderDate: ParseStoredDate(head.OrderDate),
		PODate:    ParseStoredDate(head.PartyOrderDate),
		DueDate:   ParseStoredDate(head.DueDate),
	}

	items := make([]LineItem, 0, max(len(p.OrderDetail), MinGridRows))
	for i, det := range p.OrderDetail {
		items = append(items, LineItem{
			Sno:           i + 1,
			AutoIncrement: det.AutoIncrement,
			Product:       det.ProductName,
			Width:         det.Width.String(),
			Length:        det.Length.String(),
			Flop:          det.Flop.String(),
			Gauge:         det.Gauge.String(),
			BColor:        det.NoOfBackColors.String(),
			FColor:        det.NoOfFrontColors.String(),
			Remarks:       det.Remarks,
			Pieces:        det.OrderPiece.String(),
			Weight:        det.OrderWeight.String(),
			ReqWgt:        RequiredWeight(det.Width.String(), det.Length.String(), det.Gauge.String(), det.OrderPiece.String()),
			RateFor:       displayRateFor(det.RateFor),
			Rate:          det.Rate.String(),
		})
	}
	return h, d, padRows(items)
}

func padRows(items []LineItem) []LineItem {
	for len(items) < MinGridRows {
		items = append(items, BlankRow(len(items)+1))
	}
	return items
}

func orZero(s, zero string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return zero
	}
	return s
}

func wireRateFor(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return strings.ToUpper(RateForPiece)
	}
	return s
}

func displayRateFor(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WEIGHT":
		return RateForWeight
	case "PIECE", "":
		return RateForPiece
	default:
		return s
	}
}

// FormatPieces renders a pieces total without a trailing ".000" for whole
// numbers.
func FormatPieces(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
