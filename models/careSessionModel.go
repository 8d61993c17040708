package models

import (
	"time"
)

// Care session statuses. "ACTIVE" is a filter alias meaning "not COMPLETED"
// and is never stored.
const (
	StatusWaitingConsultation = "WAITING_CONSULTATION"
	StatusInConsultation      = "IN_CONSULTATION"
	StatusWaitingMedication   = "WAITING_MEDICATION"
	StatusWaitingPayment      = "WAITING_PAYMENT"
	StatusCompleted           = "COMPLETED"

	StatusFilterActive = "ACTIVE"
)

// SessionStatuses lists every storable status value.
var SessionStatuses = []string{
	StatusWaitingConsultation,
	StatusInConsultation,
	StatusWaitingMedication,
	StatusWaitingPayment,
	StatusCompleted,
}

// IsValidSessionStatus reports whether s is a storable status value.
func IsValidSessionStatus(s string) bool {
	for _, status := range SessionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CareSession is one patient visit from registration to completion.
type CareSession struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	QueueNumber string    `gorm:"column:queue_number;size:4;not null;uniqueIndex:idx_day_ticket" json:"queue_number"`
	QueueDate   string    `gorm:"column:queue_date;size:10;not null;uniqueIndex:idx_day_ticket" json:"queue_date"`
	Status      string    `gorm:"column:status;not null;index;default:WAITING_CONSULTATION" json:"status"`
	Complaints  string    `gorm:"column:complaints;type:text;not null" json:"complaints"`
	Diagnosis   string    `gorm:"column:diagnosis;type:text" json:"diagnosis"`
	PatientID   string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID    string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	RoomID      uint      `gorm:"column:room_id;not null;index" json:"room_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Patient    Patient            `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor     Doctor             `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Room       Room               `gorm:"foreignKey:RoomID;references:ID" json:"room"`
	VitalSign  *VitalSign         `gorm:"foreignKey:SessionID;references:ID" json:"vital_sign,omitempty"`
	Diagnoses  []SessionDiagnosis `gorm:"foreignKey:SessionID;references:ID" json:"diagnoses"`
	Treatments []SessionTreatment `gorm:"foreignKey:SessionID;references:ID" json:"treatments"`
	DrugOrders []DrugOrder        `gorm:"foreignKey:SessionID;references:ID" json:"drug_orders"`
}

func (CareSession) TableName() string {
	return "care_session"
}

// HasVitalSign reports whether a vital-sign record is attached.
func (s *CareSession) HasVitalSign() bool {
	return s.VitalSign != nil
}

// HasDrugOrder reports whether at least one drug order is attached.
func (s *CareSession) HasDrugOrder() bool {
	return len(s.DrugOrders) > 0
}

// HasDiagnosisAndTreatment reports whether at least one diagnosis and one
// treatment are attached.
func (s *CareSession) HasDiagnosisAndTreatment() bool {
	return len(s.Diagnoses) > 0 && len(s.Treatments) > 0
}

// VitalSign holds the measurements recorded before consultation. At most one
// per session.
type VitalSign struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	SessionID    uint      `gorm:"column:session_id;not null;uniqueIndex" json:"session_id"`
	Height       float64   `gorm:"column:height" json:"height"`
	Weight       float64   `gorm:"column:weight" json:"weight"`
	Systolic     int       `gorm:"column:systolic" json:"systolic"`
	Diastolic    int       `gorm:"column:diastolic" json:"diastolic"`
	Temperature  float64   `gorm:"column:temperature" json:"temperature"`
	Pulse        int       `gorm:"column:pulse" json:"pulse"`
	RespiryRate  int       `gorm:"column:respiratory_rate" json:"respiratory_rate"`
	OxygenSatPct float64   `gorm:"column:oxygen_saturation" json:"oxygen_saturation"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (VitalSign) TableName() string {
	return "vital_sign"
}

// SessionDiagnosis links a coded diagnosis to a session.
type SessionDiagnosis struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	SessionID uint      `gorm:"column:session_id;not null;index" json:"session_id"`
	Code      string    `gorm:"column:code;size:20;not null" json:"code"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SessionDiagnosis) TableName() string {
	return "session_diagnosis"
}

// SessionTreatment links an applied treatment to a session. Price is a
// snapshot of the catalog price at time of application and is never
// retroactively updated.
type SessionTreatment struct {
	ID          uint             `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	SessionID   uint             `gorm:"column:session_id;not null;index" json:"session_id"`
	TreatmentID uint             `gorm:"column:treatment_id;not null;index" json:"treatment_id"`
	Quantity    int              `gorm:"column:quantity;not null" json:"quantity"`
	Price       float64          `gorm:"column:price;not null" json:"price"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Treatment   TreatmentCatalog `gorm:"foreignKey:TreatmentID;references:ID" json:"treatment"`
}

func (SessionTreatment) TableName() string {
	return "session_treatment"
}

// DrugOrder links an ordered drug to a session. Price is a snapshot of the
// catalog price at time of order.
type DrugOrder struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	SessionID uint      `gorm:"column:session_id;not null;index" json:"session_id"`
	DrugID    uint      `gorm:"column:drug_id;not null;index" json:"drug_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	Dose      string    `gorm:"column:dose;not null" json:"dose"`
	Price     float64   `gorm:"column:price;not null" json:"price"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Drug      Drug      `gorm:"foreignKey:DrugID;references:ID" json:"drug"`
}

func (DrugOrder) TableName() string {
	return "drug_order"
}
