package models

import "time"

type Product struct {
	ProductId   uint      `json:"ProductId" gorm:"column:ProductId;primaryKey;autoIncrement"`
	ProductName string    `json:"ProductName" gorm:"column:ProductName;size:255;uniqueIndex"`
	Description string    `json:"Description" gorm:"column:Description;type:text"`
	IsActive    bool      `json:"IsActive" gorm:"column:IsActive;default:true"`
	CreatedAt   time.Time `json:"-" gorm:"column:CreatedAt"`
	UpdatedAt   time.Time `json:"-" gorm:"column:UpdatedAt"`
}

func (Product) TableName() string {
	return "products"
}

type Customer struct {
	CustomerId   uint      `json:"CustomerId" gorm:"column:CustomerId;primaryKey;autoIncrement"`
	CustomerName string    `json:"CustomerName" gorm:"column:CustomerName;size:255"`
	MobileNo     string    `json:"MobileNo" gorm:"column:MobileNo;size:20"`
	Address      string    `json:"Address" gorm:"column:Address;type:text"`
	IsActive     bool      `json:"IsActive" gorm:"column:IsActive;default:true"`
	CreatedAt    time.Time `json:"-" gorm:"column:CreatedAt"`
	UpdatedAt    time.Time `json:"-" gorm:"column:UpdatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

type Measurement struct {
	MeasurementId   uint   `json:"MeasurementId" gorm:"column:MeasurementId;primaryKey;autoIncrement"`
	MeasurementName string `json:"MeasurementName" gorm:"column:MeasurementName;size:50;uniqueIndex"`
	IsActive        bool   `json:"IsActive" gorm:"column:IsActive;default:true"`
}

func (Measurement) TableName() string {
	return "measurements"
}

// All returns every model managed by migrations, parents first.
func All() []interface{} {
	return []interface{}{
		&OrderHead{},
		&OrderDetail{},
		&Product{},
		&Customer{},
		&Measurement{},
	}
}
