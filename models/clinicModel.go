package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID          string        `gorm:"primaryKey;column:id" json:"id"`
	Name        string        `gorm:"column:name;not null;index" json:"name"`
	Sex         string        `gorm:"column:sex;check:sex IN ('Male', 'Female', 'Other');not null" json:"sex"`
	DateOfBirth string        `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Phone       string        `gorm:"column:phone" json:"phone"`
	Address     string        `gorm:"column:address" json:"address"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Sessions    []CareSession `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Doctor model
type Doctor struct {
	ID        string        `gorm:"primaryKey;column:id" json:"id"`
	Username  string        `gorm:"column:username;not null;unique;index" json:"username"`
	Name      string        `gorm:"column:name;not null;index" json:"name"`
	Specialty string        `gorm:"column:specialty" json:"specialty"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Sessions  []CareSession `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Room model
type Room struct {
	ID       uint          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name     string        `gorm:"column:name;unique;not null" json:"name"`
	Sessions []CareSession `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}

func (Room) TableName() string {
	return "room"
}

// Drug is a pharmacy catalog entry. Its price is copied onto drug orders at
// order time.
type Drug struct {
	ID    uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name  string  `gorm:"column:name;unique;not null;index" json:"name"`
	Unit  string  `gorm:"column:unit;not null" json:"unit"`
	Stock int     `gorm:"column:stock;not null;default:0" json:"stock"`
	Price float64 `gorm:"column:price;not null" json:"price"`
}

func (Drug) TableName() string {
	return "drug"
}

// TreatmentCatalog is a billable procedure. Its price is copied onto session
// treatments at application time.
type TreatmentCatalog struct {
	ID    uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name  string  `gorm:"column:name;unique;not null;index" json:"name"`
	Price float64 `gorm:"column:price;not null" json:"price"`
}

func (TreatmentCatalog) TableName() string {
	return "treatment_catalog"
}

// Invoice is the billing aggregation persisted when a session's payment is
// settled.
type Invoice struct {
	ID             string      `gorm:"primaryKey;column:id" json:"id"`
	SessionID      uint        `gorm:"column:session_id;not null;uniqueIndex" json:"session_id"`
	TreatmentTotal float64     `gorm:"column:treatment_total;not null" json:"treatment_total"`
	DrugTotal      float64     `gorm:"column:drug_total;not null" json:"drug_total"`
	GrandTotal     float64     `gorm:"column:grand_total;not null" json:"grand_total"`
	PaidAmount     float64     `gorm:"column:paid_amount;not null" json:"paid_amount"`
	CreatedAt      time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Session        CareSession `gorm:"foreignKey:SessionID;references:ID" json:"-"`
}

func (Invoice) TableName() string {
	return "invoice"
}
