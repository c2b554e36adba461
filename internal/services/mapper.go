package services

import (
	"errors"
	"strconv"
	"strings"

	"job_order/internal/models"
	"job_order/internal/orderform"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

var errSrcType = errors.New("src type not matching")

// converters bridge the loosely typed wire fields and the storage columns.
var converters = []copier.TypeConverter{
	{
		SrcType: orderform.FlexString(""),
		DstType: copier.String,
		Fn: func(src any) (any, error) {
			s, ok := src.(orderform.FlexString)
			if !ok {
				return nil, errSrcType
			}
			return strings.TrimSpace(s.String()), nil
		},
	},
	{
		SrcType: copier.String,
		DstType: orderform.FlexString(""),
		Fn: func(src any) (any, error) {
			s, ok := src.(string)
			if !ok {
				return nil, errSrcType
			}
			return orderform.FlexString(s), nil
		},
	},
	{
		SrcType: orderform.FlexString(""),
		DstType: decimal.Decimal{},
		Fn: func(src any) (any, error) {
			s, ok := src.(orderform.FlexString)
			if !ok {
				return nil, errSrcType
			}
			v := strings.TrimSpace(s.String())
			if v == "" {
				return decimal.Zero, nil
			}
			return decimal.NewFromString(v)
		},
	},
	{
		SrcType: decimal.Decimal{},
		DstType: orderform.FlexString(""),
		Fn: func(src any) (any, error) {
			d, ok := src.(decimal.Decimal)
			if !ok {
				return nil, errSrcType
			}
			return orderform.FlexString(d.StringFixed(3)), nil
		},
	},
	{
		SrcType: float64(0),
		DstType: decimal.Decimal{},
		Fn: func(src any) (any, error) {
			f, ok := src.(float64)
			if !ok {
				return nil, errSrcType
			}
			return decimal.NewFromFloat(f).Round(3), nil
		},
	},
	{
		SrcType: decimal.Decimal{},
		DstType: float64(0),
		Fn: func(src any) (any, error) {
			d, ok := src.(decimal.Decimal)
			if !ok {
				return nil, errSrcType
			}
			return d.InexactFloat64(), nil
		},
	},
}

func copyWithConverters(to, from any) error {
	return copier.CopyWithOption(to, from, copier.Option{Converters: converters})
}

// payloadToModel maps a save request onto storage rows. Totals and required
// weights are derived again here; the client's values are not trusted.
func payloadToModel(p *orderform.WirePayload) (*models.OrderHead, error) {
	var head models.OrderHead
	if err := copyWithConverters(&head, &p.OrderHead); err != nil {
		return nil, err
	}

	head.Details = make([]models.OrderDetail, 0, len(p.OrderDetail))
	items := make([]orderform.LineItem, 0, len(p.OrderDetail))
	for i := range p.OrderDetail {
		src := &p.OrderDetail[i]
		var d models.OrderDetail
		if err := copyWithConverters(&d, src); err != nil {
			return nil, err
		}
		d.Sno = i + 1
		d.RequiredWeight = decimal.RequireFromString(orderform.RequiredWeight(
			src.Width.String(), src.Length.String(), src.Gauge.String(), src.OrderPiece.String()))
		head.Details = append(head.Details, d)
		items = append(items, orderform.LineItem{Pieces: src.OrderPiece.String(), Weight: src.OrderWeight.String()})
	}

	pieces, weight := orderform.AggregateTotals(items)
	head.TotalOrderPiece = decimal.NewFromFloat(pieces).Round(3)
	head.TotalOrderWeight = decimal.RequireFromString(weight)
	return &head, nil
}

// modelToPayload is the inverse of payloadToModel for a fetched order.
func modelToPayload(head *models.OrderHead) (*orderform.WirePayload, error) {
	p := &orderform.WirePayload{OrderDetail: make([]orderform.WireDetail, 0, len(head.Details))}
	if err := copyWithConverters(&p.OrderHead, head); err != nil {
		return nil, err
	}
	p.OrderHead.OrderNo = orderform.FlexString(strconv.FormatUint(uint64(head.OrderNo), 10))

	for i := range head.Details {
		var d orderform.WireDetail
		if err := copyWithConverters(&d, &head.Details[i]); err != nil {
			return nil, err
		}
		p.OrderDetail = append(p.OrderDetail, d)
	}
	return p, nil
}

func parseOrderNo(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || n == 0 {
		return 0, ErrInvalidOrderNo
	}
	return uint(n), nil
}
