package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"
)

// Notifier pushes payload-less queue-changed events to connected observers.
// Calls are fire-and-forget: the caller never fails because a broadcast did.
type Notifier interface {
	NotifyWaitingQueue()
	NotifyCalledQueue()
}

// statusGate is the precondition a session must satisfy before it may enter a
// target status. Target statuses without a gate only require the session to
// exist.
type statusGate struct {
	satisfied func(*models.CareSession) bool
	message   string
}

// statusGates is the transition table of the care-session state machine.
// Adding a new gated status is one new entry here.
var statusGates = map[string]statusGate{
	models.StatusInConsultation: {
		satisfied: (*models.CareSession).HasVitalSign,
		message:   "complete vital sign data before starting consultation",
	},
	models.StatusWaitingMedication: {
		satisfied: (*models.CareSession).HasDrugOrder,
		message:   "complete drug order data before medication pickup",
	},
	models.StatusWaitingPayment: {
		satisfied: (*models.CareSession).HasDiagnosisAndTreatment,
		message:   "complete diagnosis and treatment data before payment",
	},
}

// CreateSessionInput registers a patient visit. Either PatientID references
// an existing patient or PatientData describes a walk-in to register inline.
type CreateSessionInput struct {
	DoctorID    string            `json:"doctor_id"`
	RoomID      uint              `json:"room_id"`
	Complaints  string            `json:"complaints"`
	PatientID   string            `json:"patient_id"`
	PatientData *PatientDataInput `json:"patient_data"`
}

type PatientDataInput struct {
	Name        string `json:"name"`
	Sex         string `json:"sex"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// UpdateSessionInput is the whitelisted partial update: a status transition
// and/or the free-text diagnosis summary.
type UpdateSessionInput struct {
	Status    string `json:"status"`
	Diagnosis string `json:"diagnosis"`
}

type CareSessionService struct {
	sessions repositories.CareSessionRepository
	patients *repositories.PatientRepository
	doctors  *repositories.DoctorRepository
	rooms    *repositories.RoomRepository
	catalog  *repositories.CatalogRepository
	notifier Notifier
}

func NewCareSessionService(
	sessions repositories.CareSessionRepository,
	patients *repositories.PatientRepository,
	doctors *repositories.DoctorRepository,
	rooms *repositories.RoomRepository,
	catalog *repositories.CatalogRepository,
	notifier Notifier,
) *CareSessionService {
	return &CareSessionService{
		sessions: sessions,
		patients: patients,
		doctors:  doctors,
		rooms:    rooms,
		catalog:  catalog,
		notifier: notifier,
	}
}

// Create registers a new care session at the tail of today's queue. The
// queue number is assigned inside the repository's locked count-and-insert
// unit.
func (s *CareSessionService) Create(ctx context.Context, input CreateSessionInput) (*models.CareSession, error) {
	if err := utils.ValidateSessionInput(input.Complaints, input.DoctorID, input.PatientID, input.PatientData != nil); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := s.doctors.GetByID(ctx, input.DoctorID); err != nil {
		return nil, err
	}
	if _, err := s.rooms.GetByID(ctx, input.RoomID); err != nil {
		return nil, err
	}

	patientID := input.PatientID
	if input.PatientData != nil {
		patient := &models.Patient{
			Name:        input.PatientData.Name,
			Sex:         input.PatientData.Sex,
			DateOfBirth: input.PatientData.DateOfBirth,
			Phone:       input.PatientData.Phone,
			Address:     input.PatientData.Address,
		}
		if err := utils.ValidatePatientData(patient); err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		if err := s.patients.Create(ctx, patient); err != nil {
			return nil, err
		}
		patientID = patient.ID
	} else if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	session := &models.CareSession{
		Complaints: input.Complaints,
		PatientID:  patientID,
		DoctorID:   input.DoctorID,
		RoomID:     input.RoomID,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.notifier.NotifyWaitingQueue()
	return s.sessions.GetByID(ctx, session.ID)
}

func (s *CareSessionService) GetByID(ctx context.Context, id uint) (*models.CareSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// UpdateStatus applies a requested status transition after checking the gate
// table against the session's eagerly loaded clinical data. Persistence
// commits before the queue broadcast goes out.
func (s *CareSessionService) UpdateStatus(ctx context.Context, id uint, input UpdateSessionInput) (*models.CareSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Status != "" {
		if !models.IsValidSessionStatus(input.Status) {
			return nil, apperrors.Validation("unknown session status: " + input.Status)
		}
		if session.Status == models.StatusCompleted {
			return nil, apperrors.PreconditionFailed("session is already completed")
		}
		if gate, ok := statusGates[input.Status]; ok && !gate.satisfied(session) {
			return nil, apperrors.PreconditionFailed(gate.message)
		}
		fields["status"] = input.Status
	}
	if input.Diagnosis != "" {
		fields["diagnosis"] = input.Diagnosis
	}
	if len(fields) == 0 {
		return session, nil
	}

	updated, err := s.sessions.UpdateStatus(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyWaitingQueue()
	return updated, nil
}

// RecordVitalSign attaches the session's single vital-sign record.
func (s *CareSessionService) RecordVitalSign(ctx context.Context, sessionID uint, vitalSign *models.VitalSign) (*models.CareSession, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	vitalSign.SessionID = sessionID
	if err := s.sessions.AddVitalSign(ctx, vitalSign); err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, sessionID)
}

// AddDiagnosis attaches a coded diagnosis to the session.
func (s *CareSessionService) AddDiagnosis(ctx context.Context, sessionID uint, diagnosis *models.SessionDiagnosis) (*models.CareSession, error) {
	if diagnosis.Code == "" || diagnosis.Name == "" {
		return nil, apperrors.Validation("diagnosis code and name are required")
	}
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	diagnosis.SessionID = sessionID
	if err := s.sessions.AddDiagnosis(ctx, diagnosis); err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, sessionID)
}

// AddTreatment attaches a catalog treatment, snapshotting its current price.
func (s *CareSessionService) AddTreatment(ctx context.Context, sessionID uint, treatmentID uint, quantity int) (*models.CareSession, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("treatment quantity must be at least 1")
	}
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	treatment, err := s.catalog.GetTreatmentByID(ctx, treatmentID)
	if err != nil {
		return nil, err
	}
	record := &models.SessionTreatment{
		SessionID:   sessionID,
		TreatmentID: treatment.ID,
		Quantity:    quantity,
		Price:       treatment.Price,
	}
	if err := s.sessions.AddTreatment(ctx, record); err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, sessionID)
}

// AddDrugOrder attaches a drug order, snapshotting the catalog price.
func (s *CareSessionService) AddDrugOrder(ctx context.Context, sessionID uint, drugID uint, quantity int, dose string) (*models.CareSession, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("drug order quantity must be at least 1")
	}
	if dose == "" {
		return nil, apperrors.Validation("drug order dose is required")
	}
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	drug, err := s.catalog.GetDrugByID(ctx, drugID)
	if err != nil {
		return nil, err
	}
	order := &models.DrugOrder{
		SessionID: sessionID,
		DrugID:    drug.ID,
		Quantity:  quantity,
		Dose:      dose,
		Price:     drug.Price,
	}
	if err := s.sessions.AddDrugOrder(ctx, order); err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, sessionID)
}
