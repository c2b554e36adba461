package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetail is one line item of an order, stored in order_detail.
type OrderDetail struct {
	AutoIncrement   int64           `json:"AutoIncrement" gorm:"column:AutoIncrement;primaryKey;autoIncrement"`
	OrderNo         uint            `json:"OrderNo" gorm:"column:OrderNo;index"`
	Sno             int             `json:"Sno" gorm:"column:Sno"`
	ProductName     string          `json:"ProductName" gorm:"column:ProductName;size:255"`
	Width           string          `json:"Width" gorm:"column:Width;size:20"`
	Length          string          `json:"Length" gorm:"column:Length;size:20"`
	Flop            string          `json:"Flop" gorm:"column:Flop;size:20"`
	Gauge           string          `json:"Gauge" gorm:"column:Gauge;size:20"`
	NoOfBackColors  string          `json:"NoOfBackColors" gorm:"column:NoOfBackColors;size:50"`
	NoOfFrontColors string          `json:"NoOfFrontColors" gorm:"column:NoOfFrontColors;size:50"`
	Remarks         string          `json:"Remarks" gorm:"column:Remarks;type:text"`
	OrderPiece      string          `json:"OrderPiece" gorm:"column:OrderPiece;size:20"`
	OrderWeight     string          `json:"OrderWeight" gorm:"column:OrderWeight;size:20"`
	RequiredWeight  decimal.Decimal `json:"RequiredWeight" gorm:"column:RequiredWeight;type:decimal(10,3)"`
	RateFor         string          `json:"RateFor" gorm:"column:RateFor;size:20"`
	Rate            string          `json:"Rate" gorm:"column:Rate;size:20"`
	CreatedAt       time.Time       `json:"-" gorm:"column:CreatedAt"`
	UpdatedAt       time.Time       `json:"-" gorm:"column:UpdatedAt"`
}

func (OrderDetail) TableName() string {
	return "order_detail"
}
