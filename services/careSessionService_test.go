package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionRepo serves sessions from memory so the state machine can be
// exercised without a database.
type fakeSessionRepo struct {
	sessions      map[uint]*models.CareSession
	updatedFields map[string]interface{}
}

func newFakeSessionRepo(sessions ...*models.CareSession) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: make(map[uint]*models.CareSession)}
	for _, session := range sessions {
		repo.sessions[session.ID] = session
	}
	return repo
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.CareSession) error {
	session.ID = uint(len(f.sessions) + 1)
	session.Status = models.StatusWaitingConsultation
	session.QueueNumber = repositories.FormatQueueNumber(len(f.sessions) + 1)
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id uint) (*models.CareSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("care session not found")
	}
	return session, nil
}

func (f *fakeSessionRepo) UpdateStatus(ctx context.Context, id uint, fields map[string]interface{}) (*models.CareSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("care session not found")
	}
	f.updatedFields = fields
	if status, ok := fields["status"].(string); ok {
		session.Status = status
	}
	if diagnosis, ok := fields["diagnosis"].(string); ok {
		session.Diagnosis = diagnosis
	}
	return session, nil
}

func (f *fakeSessionRepo) List(ctx context.Context, filter repositories.SessionFilter) ([]models.CareSession, int64, error) {
	return nil, 0, nil
}

func (f *fakeSessionRepo) AddVitalSign(ctx context.Context, vitalSign *models.VitalSign) error {
	f.sessions[vitalSign.SessionID].VitalSign = vitalSign
	return nil
}

func (f *fakeSessionRepo) AddDiagnosis(ctx context.Context, diagnosis *models.SessionDiagnosis) error {
	session := f.sessions[diagnosis.SessionID]
	session.Diagnoses = append(session.Diagnoses, *diagnosis)
	return nil
}

func (f *fakeSessionRepo) AddTreatment(ctx context.Context, treatment *models.SessionTreatment) error {
	session := f.sessions[treatment.SessionID]
	session.Treatments = append(session.Treatments, *treatment)
	return nil
}

func (f *fakeSessionRepo) AddDrugOrder(ctx context.Context, order *models.DrugOrder) error {
	session := f.sessions[order.SessionID]
	session.DrugOrders = append(session.DrugOrders, *order)
	return nil
}

type fakeNotifier struct {
	waitingCalls int
	calledCalls  int
}

func (f *fakeNotifier) NotifyWaitingQueue() { f.waitingCalls++ }
func (f *fakeNotifier) NotifyCalledQueue()  { f.calledCalls++ }

func newGateTestService(sessions ...*models.CareSession) (*CareSessionService, *fakeSessionRepo, *fakeNotifier) {
	repo := newFakeSessionRepo(sessions...)
	notifier := &fakeNotifier{}
	service := &CareSessionService{sessions: repo, notifier: notifier}
	return service, repo, notifier
}

func TestUpdateStatusConsultationRequiresVitalSign(t *testing.T) {
	service, _, notifier := newGateTestService(&models.CareSession{
		ID:     1,
		Status: models.StatusWaitingConsultation,
	})

	_, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: models.StatusInConsultation})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "vital sign")
	assert.Zero(t, notifier.waitingCalls)
}

func TestUpdateStatusConsultationWithVitalSign(t *testing.T) {
	service, _, notifier := newGateTestService(&models.CareSession{
		ID:        1,
		Status:    models.StatusWaitingConsultation,
		VitalSign: &models.VitalSign{SessionID: 1, Temperature: 36.8},
	})

	updated, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: models.StatusInConsultation})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInConsultation, updated.Status)
	assert.Equal(t, 1, notifier.waitingCalls)
}

func TestUpdateStatusMedicationRequiresDrugOrder(t *testing.T) {
	service, _, _ := newGateTestService(&models.CareSession{
		ID:     1,
		Status: models.StatusInConsultation,
	})

	_, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: models.StatusWaitingMedication})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "drug order")
}

func TestUpdateStatusMedicationWithDrugOrder(t *testing.T) {
	service, _, _ := newGateTestService(&models.CareSession{
		ID:         1,
		Status:     models.StatusInConsultation,
		DrugOrders: []models.DrugOrder{{SessionID: 1, DrugID: 3, Quantity: 10}},
	})

	updated, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: models.StatusWaitingMedication})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitingMedication, updated.Status)
}

func TestUpdateStatusPaymentRequiresDiagnosisAndTreatment(t *testing.T) {
	// A diagnosis alone is not enough; the treatment must be recorded too.
	service, _, _ := newGateTestService(&models.CareSession{
		ID:        1,
		Status:    models.StatusWaitingMedication,
		Diagnoses: []models.SessionDiagnosis{{SessionID: 1, Code: "J06.9", Name: "Acute URI"}},
	})

	_, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: models.StatusWaitingPayment})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "diagnosis and treatment")
}

func TestUpdateStatusPaymentWithDiagnosisAndTreatment(t *testing.T) {
	service, _, _ := newGateTestService(&models.CareSession{
		ID:         1,
		Status:     models.StatusWaitingMedication,
		Diagnoses:  []models.SessionDiagnosis{{SessionID: 1, Code: "J06.9", Name: "Acute URI"}},
		Treatments: []models.SessionTreatment{{SessionID: 1, TreatmentID: 2, Quantity: 1, Price: 50}},
	})

	updated, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: models.StatusWaitingPayment})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitingPayment, updated.Status)
}

func TestUpdateStatusCompletedIsTerminal(t *testing.T) {
	service, _, notifier := newGateTestService(&models.CareSession{
		ID:     1,
		Status: models.StatusCompleted,
	})

	_, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: models.StatusWaitingConsultation})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "already completed")
	assert.Zero(t, notifier.waitingCalls)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	service, _, _ := newGateTestService(&models.CareSession{
		ID:     1,
		Status: models.StatusWaitingConsultation,
	})

	_, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: "DISCHARGED"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestUpdateStatusRejectsActiveFilterAlias(t *testing.T) {
	// ACTIVE is a list filter, never a storable status.
	service, _, _ := newGateTestService(&models.CareSession{
		ID:     1,
		Status: models.StatusWaitingConsultation,
	})

	_, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Status: models.StatusFilterActive})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestUpdateStatusNotFound(t *testing.T) {
	service, _, _ := newGateTestService()

	_, err := service.UpdateStatus(context.Background(), 42, UpdateSessionInput{Status: models.StatusInConsultation})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateStatusEmptyInputIsNoop(t *testing.T) {
	service, repo, notifier := newGateTestService(&models.CareSession{
		ID:     1,
		Status: models.StatusWaitingConsultation,
	})

	updated, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitingConsultation, updated.Status)
	assert.Nil(t, repo.updatedFields)
	assert.Zero(t, notifier.waitingCalls)
}

func TestUpdateStatusDiagnosisOnly(t *testing.T) {
	// A diagnosis summary alone never touches the status and needs no gate.
	service, repo, _ := newGateTestService(&models.CareSession{
		ID:     1,
		Status: models.StatusInConsultation,
	})

	updated, err := service.UpdateStatus(context.Background(), 1, UpdateSessionInput{Diagnosis: "acute pharyngitis"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInConsultation, updated.Status)
	assert.Equal(t, "acute pharyngitis", updated.Diagnosis)
	_, hasStatus := repo.updatedFields["status"]
	assert.False(t, hasStatus)
}

func TestRecordVitalSignAttachesToSession(t *testing.T) {
	service, repo, _ := newGateTestService(&models.CareSession{
		ID:     1,
		Status: models.StatusWaitingConsultation,
	})

	updated, err := service.RecordVitalSign(context.Background(), 1, &models.VitalSign{Temperature: 37.2, Pulse: 80})
	require.NoError(t, err)
	require.NotNil(t, updated.VitalSign)
	assert.Equal(t, uint(1), updated.VitalSign.SessionID)
	assert.True(t, repo.sessions[1].HasVitalSign())
}

func TestAddDiagnosisRequiresCodeAndName(t *testing.T) {
	service, _, _ := newGateTestService(&models.CareSession{ID: 1})

	_, err := service.AddDiagnosis(context.Background(), 1, &models.SessionDiagnosis{Name: "Acute URI"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
