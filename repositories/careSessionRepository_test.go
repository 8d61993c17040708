package repositories

import (
	"ClinicFlow/apperrors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatQueueNumber(t *testing.T) {
	assert.Equal(t, "U001", FormatQueueNumber(1))
	assert.Equal(t, "U042", FormatQueueNumber(42))
	assert.Equal(t, "U999", FormatQueueNumber(MaxDailyTickets))
}

func TestNextDailyTicketSequence(t *testing.T) {
	// Five same-day registrations get U001 through U005 in arrival order.
	for count, expected := range []string{"U001", "U002", "U003", "U004", "U005"} {
		ticket, err := NextDailyTicket(int64(count))
		require.NoError(t, err)
		assert.Equal(t, expected, ticket)
	}
}

func TestNextDailyTicketAtCapacity(t *testing.T) {
	ticket, err := NextDailyTicket(MaxDailyTickets - 1)
	require.NoError(t, err)
	assert.Equal(t, "U999", ticket)

	_, err = NextDailyTicket(MaxDailyTickets)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	at := time.Date(2026, time.March, 14, 15, 9, 26, 0, loc)

	start, end := DayBounds(at)

	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, loc), end)
}

func TestDayBoundsAtMidnight(t *testing.T) {
	at := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	start, end := DayBounds(at)

	assert.Equal(t, at, start)
	assert.Equal(t, at.AddDate(0, 0, 1), end)
}
