package importexport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jvirtane/barfeud/internal/game"
	"github.com/jvirtane/barfeud/internal/importexport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	csvText := `Question,Category,Answer1,Points1,Answer2,Points2,Answer3,Points3
"Name something people forget at the bar","General","Phone",40,"Wallet",30,"Keys",20
too,short
"Name a reason to leave a party early","General","Tired",50,"",,
"Only blanks","General","","","",""
`
	questions, err := importexport.ParseCSV(strings.NewReader(csvText))
	require.NoError(t, err)

	// The short row and all-blank row are skipped.
	require.Len(t, questions, 2)

	assert.Equal(t, "Name something people forget at the bar", questions[0].Text)
	assert.Equal(t, "General", questions[0].Category)
	require.Len(t, questions[0].Answers, 3)
	assert.Equal(t, game.Answer{ID: 1, Text: "Phone", Points: 40, Revealed: false}, questions[0].Answers[0])
	assert.Equal(t, game.Answer{ID: 3, Text: "Keys", Points: 20, Revealed: false}, questions[0].Answers[2])

	assert.Equal(t, "Name a reason to leave a party early", questions[1].Text)
	require.Len(t, questions[1].Answers, 1)
}

func TestParseCSV_badPointsBecomeZero(t *testing.T) {
	csvText := "Question,Category,Answer1,Points1\nWhat,General,Something,notanumber\n"
	questions, err := importexport.ParseCSV(strings.NewReader(csvText))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 0, questions[0].Answers[0].Points)
}

func TestCSVRoundTrip(t *testing.T) {
	questions := []game.Question{
		{
			ID:       "q1",
			Text:     "Name something you find in a kitchen drawer",
			Category: "Home",
			Answers: []game.Answer{
				{ID: 1, Text: "Spoons", Points: 45},
				{ID: 2, Text: "Scissors", Points: 30},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, importexport.WriteCSV(&buf, questions))

	parsed, err := importexport.ParseCSV(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, questions[0].Text, parsed[0].Text)
	assert.Equal(t, questions[0].Category, parsed[0].Category)
	assert.Equal(t, questions[0].Answers, parsed[0].Answers)
}

func TestParseJSON(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		jsonText := `[
  {"question": "Name a pizza topping", "category": "Food",
   "answers": [{"text": "Pepperoni", "points": 40}, {"text": "Cheese", "points": 25}]}
]`
		questions, err := importexport.ParseJSON([]byte(jsonText))
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.NotEmpty(t, questions[0].ID)
		assert.Equal(t, "Name a pizza topping", questions[0].Text)
		require.Len(t, questions[0].Answers, 2)
		assert.Equal(t, 1, questions[0].Answers[0].ID)
		assert.Equal(t, 2, questions[0].Answers[1].ID)
		assert.False(t, questions[0].Answers[0].Revealed)
	})

	t.Run("exported set", func(t *testing.T) {
		jsonText := `{"name": "trivia-night", "createdAt": "2026-08-20T19:30:00Z", "questions":
  [{"id": "q7", "question": "Name a farm animal", "answers": [{"text": "Cow", "points": 35}]}]}`
		questions, err := importexport.ParseJSON([]byte(jsonText))
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "q7", questions[0].ID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := importexport.ParseJSON([]byte("not json"))
		require.Error(t, err)
	})
}

func TestJSONRoundTrip(t *testing.T) {
	questions := []game.Question{
		{
			ID:       "q1",
			Text:     "Name something you take to the beach",
			Category: "Leisure",
			Answers: []game.Answer{
				{ID: 1, Text: "Sunscreen", Points: 30},
				{ID: 2, Text: "Towel", Points: 25},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, importexport.WriteJSON(&buf, "beach-pack", questions))
	assert.Contains(t, buf.String(), `"name": "beach-pack"`)

	parsed, err := importexport.ParseJSON(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, questions[0], parsed[0])
}

func TestFastMoneyJSONRoundTrip(t *testing.T) {
	questions := []game.FastMoneyQuestion{
		{
			ID:   "fm1",
			Text: "Name a popular pizza topping",
			Answers: []game.BankEntry{
				{Text: "Pepperoni", Points: 40},
				{Text: "Cheese", Points: 25},
				{Text: "Mushrooms", Points: 15},
				{Text: "Sausage", Points: 12},
				{Text: "Onions", Points: 8},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, importexport.WriteFastMoneyJSON(&buf, "fast-money", questions))

	parsed, err := importexport.ParseFastMoneyJSON(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, questions[0], parsed[0])
}

func TestParseFastMoneyJSON_generatesMissingIDs(t *testing.T) {
	jsonText := `[{"question": "Name something you do before bed", "answers": [{"text": "Read", "points": 15}]}]`
	questions, err := importexport.ParseFastMoneyJSON([]byte(jsonText))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.NotEmpty(t, questions[0].ID)
}
