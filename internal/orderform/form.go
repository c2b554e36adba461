package orderform

import (
	"errors"
	"fmt"
)

var (
	ErrRowOutOfRange = errors.New("row out of range")
	ErrUnknownField  = errors.New("unknown field")
)

// Form is the in-memory order being edited in one entry session.
type Form struct {
	Header Header
	Dates  Dates
	Rows   []LineItem

	admin AdminFields
}

// NewForm returns an empty order with the template grid.
func NewForm(admin AdminFields) *Form {
	f := &Form{admin: admin}
	f.Reset()
	return f
}

// Reset discards the current order and starts a new one.
func (f *Form) Reset() {
	f.Header = Header{Admin: f.admin}
	f.Dates = Dates{}
	f.Rows = padRows(make([]LineItem, 0, MinGridRows))
}

// Load replaces the form with a fetched order.
func (f *Form) Load(p WirePayload) {
	f.Header, f.Dates, f.Rows = FromWire(p)
}

// SetOrderNo records the number assigned by the store after an insert.
func (f *Form) SetOrderNo(no string) {
	f.Header.OrderNo = no
}

// SetCell stores a value typed into the grid and returns what was kept.
// Input failing the column grammar is stored as "".
func (f *Form) SetCell(row int, field, value string) (string, error) {
	if row < 0 || row >= len(f.Rows) {
		return "", fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	accepted := Validate(KindOf(field), value)
	it := &f.Rows[row]

	switch field {
	case FieldProduct:
		it.Product = accepted
	case FieldWidth:
		it.Width = accepted
	case FieldLength:
		it.Length = accepted
	case FieldFlop:
		it.Flop = accepted
	case FieldGauge:
		it.Gauge = accepted
	case FieldBColor:
		it.BColor = accepted
	case FieldFColor:
		it.FColor = accepted
	case FieldRemarks:
		it.Remarks = accepted
	case FieldPieces:
		it.Pieces = accepted
	case FieldWeight:
		it.Weight = accepted
	case FieldRateFor:
		it.RateFor = displayRateFor(accepted)
		accepted = it.RateFor
	case FieldRate:
		it.Rate = accepted
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	switch field {
	case FieldWidth, FieldLength, FieldGauge, FieldPieces:
		it.ReqWgt = RequiredWeight(it.Width, it.Length, it.Gauge, it.Pieces)
	}
	return accepted, nil
}

// AddRow appends a template row and returns its index.
func (f *Form) AddRow() int {
	f.Rows = append(f.Rows, BlankRow(len(f.Rows)+1))
	return len(f.Rows) - 1
}

// Totals returns total pieces and total weight over the grid.
func (f *Form) Totals() (float64, string) {
	return AggregateTotals(f.Rows)
}

// Validate checks the form for submission.
func (f *Form) Validate() ValidationResult {
	return ValidateOrder(f.Header, f.Dates, f.Rows)
}

// Payload serializes the form for the store.
func (f *Form) Payload() WirePayload {
	return ToWire(f.Header, f.Dates, f.Rows)
}
