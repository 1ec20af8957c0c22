package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestion(t *testing.T) {
	content := "```json\n" +
		`{"question": "Name a reason to call in sick", "answers": [
  {"text": "Flu", "points": 45}, {"text": "Hangover", "points": 30}, {"text": "Dentist", "points": 15}]}` +
		"\n```"

	question, err := parseSuggestion(content)
	require.NoError(t, err)
	assert.Equal(t, "Name a reason to call in sick", question.Text)
	require.Len(t, question.Answers, 3)
	assert.Equal(t, 1, question.Answers[0].ID)
	assert.Equal(t, 45, question.Answers[0].Points)
}

func TestParseSuggestion_rejectsEmptyAnswers(t *testing.T) {
	_, err := parseSuggestion(`{"question": "Name a thing", "answers": []}`)
	require.Error(t, err)
}

func TestParseSuggestion_rejectsProse(t *testing.T) {
	_, err := parseSuggestion("Sure! Here's a question about pizza.")
	require.Error(t, err)
}
