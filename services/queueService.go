package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
	"time"
)

// PageMeta is the shared pagination block on list responses. TotalPage is nil
// when the listing was unpaginated; PreviousPage/NextPage are nil at the
// respective boundaries.
type PageMeta struct {
	CurrentPage  int   `json:"current_page"`
	PreviousPage *int  `json:"previous_page"`
	NextPage     *int  `json:"next_page"`
	TotalPage    *int  `json:"total_page"`
	TotalData    int64 `json:"total_data"`
}

// QueueEntry is the compact projection used for upcoming queue items.
type QueueEntry struct {
	ID          uint   `json:"id"`
	QueueNumber string `json:"queue_number"`
}

// QueueView is the role-specific "who is up, who is next" projection.
type QueueView struct {
	Current    *models.CareSession `json:"current"`
	NextQueues []QueueEntry        `json:"next_queues"`
}

// ListParams are the query parameters of the session list endpoint. A zero
// PageSize means unpaginated.
type ListParams struct {
	Page      int
	PageSize  int
	Search    string
	Status    string
	RoomID    uint
	DoctorID  string
	DateStart *time.Time
	DateEnd   *time.Time
}

type QueueService struct {
	sessions repositories.CareSessionRepository
	doctors  *repositories.DoctorRepository
}

func NewQueueService(sessions repositories.CareSessionRepository, doctors *repositories.DoctorRepository) *QueueService {
	return &QueueService{sessions: sessions, doctors: doctors}
}

// BuildPageMeta computes the pagination block for a paginated listing.
// page must already be clamped to >= 1.
func BuildPageMeta(page, pageSize int, total int64) PageMeta {
	totalPage := int((total + int64(pageSize) - 1) / int64(pageSize))
	meta := PageMeta{
		CurrentPage: page,
		TotalPage:   &totalPage,
		TotalData:   total,
	}
	if page > 1 {
		previous := page - 1
		meta.PreviousPage = &previous
	}
	if page < totalPage {
		next := page + 1
		meta.NextPage = &next
	}
	return meta
}

// UnpaginatedMeta is the meta block for a listing returned in full. The nil
// TotalPage is the "unpaginated" sentinel.
func UnpaginatedMeta(total int64) PageMeta {
	return PageMeta{CurrentPage: 1, TotalData: total}
}

// List returns sessions matching params in FIFO order together with the
// pagination meta block.
func (s *QueueService) List(ctx context.Context, params ListParams) ([]models.CareSession, PageMeta, error) {
	if params.Status != "" && params.Status != models.StatusFilterActive && !models.IsValidSessionStatus(params.Status) {
		return nil, PageMeta{}, apperrors.Validation("unknown session status: " + params.Status)
	}

	filter := repositories.SessionFilter{
		Status:    params.Status,
		Search:    params.Search,
		DoctorID:  params.DoctorID,
		RoomID:    params.RoomID,
		DateStart: params.DateStart,
		DateEnd:   params.DateEnd,
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	if params.PageSize > 0 {
		filter.Offset = (page - 1) * params.PageSize
		filter.Limit = params.PageSize
	}

	sessions, total, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, PageMeta{}, err
	}

	if params.PageSize <= 0 {
		return sessions, UnpaginatedMeta(total), nil
	}
	return sessions, BuildPageMeta(page, params.PageSize, total), nil
}

// MainQueue is the flat FIFO list of every non-completed session.
func (s *QueueService) MainQueue(ctx context.Context) ([]models.CareSession, error) {
	sessions, _, err := s.sessions.List(ctx, repositories.SessionFilter{Status: models.StatusFilterActive})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// PharmacyQueue projects the medication queue: the oldest waiting order is
// current, the rest are upcoming.
func (s *QueueService) PharmacyQueue(ctx context.Context) (*QueueView, error) {
	sessions, _, err := s.sessions.List(ctx, repositories.SessionFilter{Status: models.StatusWaitingMedication})
	if err != nil {
		return nil, err
	}
	return splitQueue(sessions), nil
}

// DoctorQueue projects a doctor's queue: the session currently in
// consultation plus that doctor's waiting list, in arrival order.
func (s *QueueService) DoctorQueue(ctx context.Context, doctorID string) (*QueueView, error) {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}

	inConsultation, _, err := s.sessions.List(ctx, repositories.SessionFilter{
		Status:   models.StatusInConsultation,
		DoctorID: doctorID,
	})
	if err != nil {
		return nil, err
	}
	waiting, _, err := s.sessions.List(ctx, repositories.SessionFilter{
		Status:   models.StatusWaitingConsultation,
		DoctorID: doctorID,
	})
	if err != nil {
		return nil, err
	}

	view := &QueueView{NextQueues: toQueueEntries(waiting)}
	if len(inConsultation) > 0 {
		current := inConsultation[0]
		view.Current = &current
	}
	return view, nil
}

// splitQueue takes FIFO-ordered sessions and splits them into the head
// ("current") and the compact upcoming list.
func splitQueue(sessions []models.CareSession) *QueueView {
	view := &QueueView{NextQueues: []QueueEntry{}}
	if len(sessions) == 0 {
		return view
	}
	current := sessions[0]
	view.Current = &current
	view.NextQueues = toQueueEntries(sessions[1:])
	return view
}

func toQueueEntries(sessions []models.CareSession) []QueueEntry {
	entries := make([]QueueEntry, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, QueueEntry{ID: session.ID, QueueNumber: session.QueueNumber})
	}
	return entries
}
