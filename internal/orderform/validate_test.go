package orderform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDates() Dates {
	d := time.Date(2025, time.August, 5, 0, 0, 0, 0, time.UTC)
	return Dates{OrderDate: &d, PODate: &d, DueDate: &d}
}

func TestValidateOrderMissingCustomer(t *testing.T) {
	h := Header{CustomerName: "", PONumber: "254", Measurement: "INCH"}
	res := ValidateOrder(h, allDates(), []LineItem{{Product: "Box"}})

	assert.False(t, res.Valid)
	assert.Equal(t, []string{MissingCustomer}, res.Missing)
}

func TestValidateOrderNoProduct(t *testing.T) {
	h := Header{CustomerName: "AATREYA EXPORT", PONumber: "254", Measurement: "INCH"}
	rows := []LineItem{BlankRow(1), {Sno: 2, Product: "   "}}
	res := ValidateOrder(h, allDates(), rows)

	assert.False(t, res.Valid)
	assert.Equal(t, []string{MissingProduct}, res.Missing)
}

func TestValidateOrderReportsEveryFailureInOrder(t *testing.T) {
	res := ValidateOrder(Header{CustomerName: " ", Measurement: "\t"}, Dates{}, nil)

	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		MissingCustomer,
		MissingPONumber,
		MissingMeasurement,
		MissingOrderDate,
		MissingPODate,
		MissingDueDate,
		MissingProduct,
	}, res.Missing)

	var verr *ValidationError
	require.True(t, errors.As(res.Err(), &verr))
	assert.Len(t, verr.Missing, 7)
}

func TestValidateOrderValid(t *testing.T) {
	h := Header{CustomerName: "ABARNA EXPORTS", PONumber: "PO-1", Measurement: "CM"}
	res := ValidateOrder(h, allDates(), []LineItem{BlankRow(1), {Product: "ZIPPER POUCH"}})

	assert.True(t, res.Valid)
	assert.Empty(t, res.Missing)
	assert.NoError(t, res.Err())
}
