package orderform

import "regexp"

// FieldKind selects the grammar a grid cell is checked against.
type FieldKind int

const (
	FreeText FieldKind = iota
	Decimal2
	IntegerOnly
	Decimal3
)

var (
	decimal2Pattern    = regexp.MustCompile(`^\d*(\.\d{0,2})?$`)
	integerOnlyPattern = regexp.MustCompile(`^\d*$`)
	decimal3Pattern    = regexp.MustCompile(`^\d*(\.\d{0,3})?$`)
)

// Grid column keys.
const (
	FieldProduct = "Product"
	FieldWidth   = "Width"
	FieldLength  = "Length"
	FieldFlop    = "Flop"
	FieldGauge   = "Gauge"
	FieldBColor  = "BColor"
	FieldFColor  = "FColor"
	FieldRemarks = "Remarks"
	FieldPieces  = "Pieces"
	FieldWeight  = "Weight"
	FieldRateFor = "RateFor"
	FieldRate    = "Rate"
)

var fieldKinds = map[string]FieldKind{
	FieldWidth:   Decimal2,
	FieldLength:  Decimal2,
	FieldFlop:    Decimal2,
	FieldRate:    Decimal2,
	FieldGauge:   IntegerOnly,
	FieldPieces:  IntegerOnly,
	FieldWeight:  Decimal3,
	FieldProduct: FreeText,
	FieldRemarks: FreeText,
	FieldRateFor: FreeText,
}

// KindOf returns the grammar for a grid column. Unknown columns are free text.
func KindOf(field string) FieldKind {
	if k, ok := fieldKinds[field]; ok {
		return k
	}
	return FreeText
}

// Validate returns raw when it fully matches the grammar for kind and ""
// otherwise. Partial input such as "12." is accepted so it can be typed.
func Validate(kind FieldKind, raw string) string {
	var p *regexp.Regexp
	switch kind {
	case Decimal2:
		p = decimal2Pattern
	case IntegerOnly:
		p = integerOnlyPattern
	case Decimal3:
		p = decimal3Pattern
	default:
		return raw
	}
	if p.MatchString(raw) {
		return raw
	}
	return ""
}
