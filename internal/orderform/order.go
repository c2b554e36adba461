package orderform

import "time"

// MinGridRows is the number of rows the entry grid always shows.
const MinGridRows = 7

// NewOrderNo marks an order that has not been persisted yet.
const NewOrderNo = "NEW"

// Measurement units offered by the header dropdown.
var Measurements = []string{"INCH", "CM", "MM", "METER"}

// AdminFields are carried through to storage without interpretation.
type AdminFields struct {
	ModuleEntryCode string
	CompanyID       int
	FinancialPeriod string
	UserID          int
}

// Header is the authored part of an order head. Totals are not stored here;
// they are always derived from the rows.
type Header struct {
	OrderNo        string
	CustomerName   string
	CustomerMobile string
	PONumber       string
	Measurement    string
	Remarks        string
	JobStatus      string
	Admin          AdminFields
}

// Dates holds the three header dates. A nil value means "not set".
type Dates struct {
	OrderDate *time.Time
	PODate    *time.Time
	DueDate   *time.Time
}

// LineItem is one row of the detail grid. Numeric columns stay as the
// strings the user typed.
type LineItem struct {
	Sno           int
	AutoIncrement int64
	Product       string
	Width         string
	Length        string
	Flop          string
	Gauge         string
	BColor        string
	FColor        string
	Remarks       string
	Pieces        string
	Weight        string
	ReqWgt        string
	RateFor       string
	Rate          string
}

// BlankRow returns an unfilled template row.
func BlankRow(sno int) LineItem {
	return LineItem{Sno: sno, RateFor: RateForPiece}
}

// Rate basis display values.
const (
	RateForPiece  = "Piece"
	RateForWeight = "Weight"
)
