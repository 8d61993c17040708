package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billableSession() *models.CareSession {
	return &models.CareSession{
		ID:          1,
		QueueNumber: "U004",
		Status:      models.StatusWaitingPayment,
		Patient:     models.Patient{Name: "Jane Roe"},
		Treatments: []models.SessionTreatment{
			{Quantity: 1, Price: 150, Treatment: models.TreatmentCatalog{Name: "Consultation"}},
			{Quantity: 2, Price: 75, Treatment: models.TreatmentCatalog{Name: "Wound dressing"}},
		},
		DrugOrders: []models.DrugOrder{
			{Quantity: 10, Price: 2.5, Dose: "3x1", Drug: models.Drug{Name: "Paracetamol 500mg"}},
		},
	}
}

func TestComputeBillAggregatesSnapshots(t *testing.T) {
	summary := ComputeBill(billableSession())

	assert.Equal(t, uint(1), summary.SessionID)
	assert.Equal(t, "U004", summary.QueueNumber)
	assert.Equal(t, "Jane Roe", summary.PatientName)

	require.Len(t, summary.TreatmentLines, 2)
	assert.Equal(t, float64(150), summary.TreatmentLines[0].LineTotal)
	assert.Equal(t, float64(150), summary.TreatmentLines[1].LineTotal)
	assert.Equal(t, float64(300), summary.TreatmentTotal)

	require.Len(t, summary.DrugLines, 1)
	assert.Equal(t, "Paracetamol 500mg (3x1)", summary.DrugLines[0].Description)
	assert.Equal(t, float64(25), summary.DrugTotal)

	assert.Equal(t, float64(325), summary.GrandTotal)
}

func TestComputeBillEmptySession(t *testing.T) {
	summary := ComputeBill(&models.CareSession{ID: 2, QueueNumber: "U001"})

	assert.NotNil(t, summary.TreatmentLines)
	assert.NotNil(t, summary.DrugLines)
	assert.Zero(t, summary.GrandTotal)
}

func TestComputeBillIgnoresCurrentCatalogPrice(t *testing.T) {
	// The bill is built from the snapshot price, not the live catalog row.
	session := billableSession()
	session.Treatments = []models.SessionTreatment{
		{Quantity: 1, Price: 100, Treatment: models.TreatmentCatalog{Name: "Consultation", Price: 999}},
	}
	session.DrugOrders = nil

	summary := ComputeBill(session)
	assert.Equal(t, float64(100), summary.GrandTotal)
}

func TestSettlePaymentRequiresWaitingPayment(t *testing.T) {
	session := billableSession()
	session.Status = models.StatusInConsultation
	repo := newFakeSessionRepo(session)
	service := &BillingService{sessions: repo, notifier: &fakeNotifier{}}

	_, err := service.SettlePayment(context.Background(), 1, 1000)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))
}

func TestSettlePaymentRejectsUnderpayment(t *testing.T) {
	repo := newFakeSessionRepo(billableSession())
	service := &BillingService{sessions: repo, notifier: &fakeNotifier{}}

	_, err := service.SettlePayment(context.Background(), 1, 324.99)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
