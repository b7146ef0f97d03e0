package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(DateLayout)
}

func validSession(t *testing.T) *Session {
	t.Helper()
	sess := NewSession()
	sess.SetDestination("Goa")
	require.NoError(t, sess.SetStartDate(futureDate(30)))
	require.NoError(t, sess.SetDurationDays(5))
	require.NoError(t, sess.SetBudget(30000))
	return sess
}

func TestBuildItineraryRequest(t *testing.T) {
	sess := validSession(t)
	profile := models.TripProfile{
		UserID:       "user-1",
		Interests:    []string{"beaches", "food"},
		TravelerType: "family",
	}

	req, err := BuildItineraryRequest(sess, profile)
	require.NoError(t, err)

	assert.Equal(t, "Goa", req.Destination)
	assert.Equal(t, 5, req.DurationDays)
	assert.Equal(t, 30000, req.Budget)
	assert.Equal(t, futureDate(30), req.StartDate)
	assert.Equal(t, []string{"beaches", "food"}, req.Interests)
	assert.Equal(t, "family", req.TravelerType)
	assert.Equal(t, "user-1", req.UserID)
}

func TestBuildItineraryRequestValidationOrder(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(t *testing.T) *Session
		expectedField string
	}{
		{
			name: "Missing destination",
			setup: func(t *testing.T) *Session {
				sess := validSession(t)
				sess.SetDestination("")
				return sess
			},
			expectedField: "destination",
		},
		{
			name: "Missing start date",
			setup: func(t *testing.T) *Session {
				sess := validSession(t)
				require.NoError(t, sess.SetStartDate(""))
				return sess
			},
			expectedField: "start_date",
		},
		{
			name: "Start date yesterday",
			setup: func(t *testing.T) *Session {
				sess := validSession(t)
				require.NoError(t, sess.SetStartDate(futureDate(-1)))
				return sess
			},
			expectedField: "start_date",
		},
		{
			name: "Destination checked before start date",
			setup: func(t *testing.T) *Session {
				sess := validSession(t)
				sess.SetDestination("")
				require.NoError(t, sess.SetStartDate(""))
				return sess
			},
			expectedField: "destination",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildItineraryRequest(tt.setup(t), models.TripProfile{})
			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.expectedField, validationErr.Field)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestBuildItineraryRequestDurationOutOfRange(t *testing.T) {
	sess := validSession(t)
	// Setters refuse out-of-range values, so reach in directly to prove the
	// builder re-validates its snapshot.
	sess.mu.Lock()
	sess.durationDays = 31
	sess.mu.Unlock()

	_, err := BuildItineraryRequest(sess, models.TripProfile{})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "duration_days", validationErr.Field)
}

func TestBuildItineraryRequestTodayIsAllowed(t *testing.T) {
	sess := validSession(t)
	require.NoError(t, sess.SetStartDate(futureDate(0)))

	_, err := BuildItineraryRequest(sess, models.TripProfile{})
	assert.NoError(t, err)
}

func TestBuildItineraryRequestProfileDefaults(t *testing.T) {
	sess := validSession(t)

	req, err := BuildItineraryRequest(sess, models.TripProfile{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"general"}, req.Interests)
	assert.Equal(t, "solo", req.TravelerType)
}
