package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderHead is one row of order_head.
type OrderHead struct {
	OrderNo          uint            `json:"OrderNo" gorm:"column:OrderNo;primaryKey;autoIncrement" copier:"-"`
	OrderDate        string          `json:"OrderDate" gorm:"column:OrderDate;size:20"`
	CustomerName     string          `json:"CustomerName" gorm:"column:CustomerName;size:255"`
	CustomerMobileNo string          `json:"CustomerMobileNo" gorm:"column:CustomerMobileNo;size:20"`
	PartyOrderNo     string          `json:"PartyOrderNo" gorm:"column:PartyOrderNo;size:100"`
	PartyOrderDate   string          `json:"PartyOrderDate" gorm:"column:PartyOrderDate;size:20"`
	DueDate          string          `json:"DueDate" gorm:"column:DueDate;size:20"`
	Measurement      string          `json:"Measurement" gorm:"column:Measurement;size:10"`
	Remarks          string          `json:"Remarks" gorm:"column:Remarks;type:text"`
	TotalOrderPiece  decimal.Decimal `json:"TotalOrderPiece" gorm:"column:TotalOrderPiece;type:decimal(10,3)"` // pieces may be fractional
	TotalOrderWeight decimal.Decimal `json:"TotalOrderWeight" gorm:"column:TotalOrderWeight;type:decimal(10,3)"`
	JobStatus        string          `json:"JobStatus" gorm:"column:JobStatus;size:50"`
	ModuleEntryCode  string          `json:"ModuleEntryCode" gorm:"column:ModuleEntryCode;size:50"`
	CompanyId        int             `json:"CompanyId" gorm:"column:CompanyId"`
	FinancialPeriod  string          `json:"FinancialPeriod" gorm:"column:FinancialPeriod;size:10"`
	UserIdUserHead   int             `json:"UserId_UserHead" gorm:"column:UserId_UserHead"`
	CreatedAt        time.Time       `json:"CreatedAt" gorm:"column:CreatedAt"`
	UpdatedAt        time.Time       `json:"UpdatedAt" gorm:"column:UpdatedAt"`

	Details []OrderDetail `json:"-" gorm:"foreignKey:OrderNo;references:OrderNo;constraint:OnDelete:CASCADE" copier:"-"`
}

func (OrderHead) TableName() string {
	return "order_head"
}

// OrderSummary is the projection used by the order list.
type OrderSummary struct {
	OrderNo          uint            `json:"OrderNo" gorm:"column:OrderNo"`
	OrderDate        string          `json:"OrderDate" gorm:"column:OrderDate"`
	CustomerName     string          `json:"CustomerName" gorm:"column:CustomerName"`
	PartyOrderNo     string          `json:"PartyOrderNo" gorm:"column:PartyOrderNo"`
	TotalOrderPiece  decimal.Decimal `json:"TotalOrderPiece" gorm:"column:TotalOrderPiece"`
	TotalOrderWeight decimal.Decimal `json:"TotalOrderWeight" gorm:"column:TotalOrderWeight"`
	JobStatus        string          `json:"JobStatus" gorm:"column:JobStatus"`
}
