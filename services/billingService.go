package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"fmt"
)

// BillLine is one priced item on a session's bill.
type BillLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// BillSummary aggregates everything billable on a session from the price
// snapshots captured at attachment time.
type BillSummary struct {
	SessionID      uint       `json:"session_id"`
	QueueNumber    string     `json:"queue_number"`
	PatientName    string     `json:"patient_name"`
	TreatmentLines []BillLine `json:"treatment_lines"`
	DrugLines      []BillLine `json:"drug_lines"`
	TreatmentTotal float64    `json:"treatment_total"`
	DrugTotal      float64    `json:"drug_total"`
	GrandTotal     float64    `json:"grand_total"`
}

type BillingService struct {
	sessions repositories.CareSessionRepository
	invoices *repositories.InvoiceRepository
	notifier Notifier
}

func NewBillingService(sessions repositories.CareSessionRepository, invoices *repositories.InvoiceRepository, notifier Notifier) *BillingService {
	return &BillingService{sessions: sessions, invoices: invoices, notifier: notifier}
}

// ComputeBill builds the bill from the session's snapshot prices. Catalog
// price changes after attachment never affect the result.
func ComputeBill(session *models.CareSession) BillSummary {
	summary := BillSummary{
		SessionID:      session.ID,
		QueueNumber:    session.QueueNumber,
		PatientName:    session.Patient.Name,
		TreatmentLines: []BillLine{},
		DrugLines:      []BillLine{},
	}
	for _, treatment := range session.Treatments {
		line := BillLine{
			Description: treatment.Treatment.Name,
			Quantity:    treatment.Quantity,
			UnitPrice:   treatment.Price,
			LineTotal:   treatment.Price * float64(treatment.Quantity),
		}
		summary.TreatmentLines = append(summary.TreatmentLines, line)
		summary.TreatmentTotal += line.LineTotal
	}
	for _, order := range session.DrugOrders {
		line := BillLine{
			Description: fmt.Sprintf("%s (%s)", order.Drug.Name, order.Dose),
			Quantity:    order.Quantity,
			UnitPrice:   order.Price,
			LineTotal:   order.Price * float64(order.Quantity),
		}
		summary.DrugLines = append(summary.DrugLines, line)
		summary.DrugTotal += line.LineTotal
	}
	summary.GrandTotal = summary.TreatmentTotal + summary.DrugTotal
	return summary
}

// GetBill returns the running bill for a session.
func (s *BillingService) GetBill(ctx context.Context, sessionID uint) (*BillSummary, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := ComputeBill(session)
	return &summary, nil
}

// SettlePayment persists the invoice and completes the session. Only a
// session awaiting payment can be settled.
func (s *BillingService) SettlePayment(ctx context.Context, sessionID uint, paidAmount float64) (*models.Invoice, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusWaitingPayment {
		return nil, apperrors.PreconditionFailed("session is not awaiting payment")
	}

	summary := ComputeBill(session)
	if paidAmount < summary.GrandTotal {
		return nil, apperrors.Validation("paid amount is less than the bill total")
	}

	invoice := &models.Invoice{
		SessionID:      session.ID,
		TreatmentTotal: summary.TreatmentTotal,
		DrugTotal:      summary.DrugTotal,
		GrandTotal:     summary.GrandTotal,
		PaidAmount:     paidAmount,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if _, err := s.sessions.UpdateStatus(ctx, session.ID, map[string]interface{}{
		"status": models.StatusCompleted,
	}); err != nil {
		return nil, err
	}

	s.notifier.NotifyWaitingQueue()
	return invoice, nil
}

// ListInvoices returns all settled invoices, newest first.
func (s *BillingService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return s.invoices.GetAll(ctx)
}
