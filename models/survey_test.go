package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSurveyIsClosed(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name   string
		survey Survey
		closed bool
	}{
		{"active without closing date", Survey{Status: SurveyActive}, false},
		{"active closing in the future", Survey{Status: SurveyActive, ClosingDate: &future}, false},
		{"active past its closing date", Survey{Status: SurveyActive, ClosingDate: &past}, true},
		{"completed without closing date", Survey{Status: SurveyCompleted}, true},
		{"completed closing in the future", Survey{Status: SurveyCompleted, ClosingDate: &future}, true},
		{"draft past its closing date", Survey{Status: SurveyDraft, ClosingDate: &past}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.closed, test.survey.IsClosed(now))
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(SurveyActive))
	assert.True(t, ValidStatus(SurveyDraft))
	assert.True(t, ValidStatus(SurveyCompleted))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("archived"))
}

func TestParticipantValid(t *testing.T) {
	userID := uuid.New()
	anonymousID := "anon_" + uuid.NewString()

	assert.False(t, (&Participant{}).Valid())
	assert.False(t, (&Participant{UserID: &userID, AnonymousID: &anonymousID}).Valid())
	assert.True(t, (&Participant{UserID: &userID}).Valid())
	assert.True(t, (&Participant{AnonymousID: &anonymousID}).Valid())
}
