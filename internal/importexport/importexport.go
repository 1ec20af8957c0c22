// Package importexport reads and writes question packs in the interchange
// formats hosts share with each other: a spreadsheet-friendly CSV with
// answer/points column pairs, and a JSON question set with a name and
// creation timestamp.
package importexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/game"
)

// maxCSVAnswers bounds the answer column pairs written on export.
const maxCSVAnswers = 7

// questionDoc is the on-disk shape of a board question. The question text
// lives under the "question" key, unlike the runtime state snapshots.
type questionDoc struct {
	ID       string      `json:"id,omitempty"`
	Question string      `json:"question"`
	Category string      `json:"category,omitempty"`
	Answers  []answerDoc `json:"answers"`
}

type answerDoc struct {
	ID     int    `json:"id,omitempty"`
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// questionSetDoc wraps an exported set with its name and creation time.
type questionSetDoc struct {
	Name      string        `json:"name"`
	Questions []questionDoc `json:"questions"`
	CreatedAt time.Time     `json:"createdAt"`
}

type fastMoneyDoc struct {
	ID       string      `json:"id,omitempty"`
	Question string      `json:"question"`
	Answers  []answerDoc `json:"answers"`
}

type fastMoneySetDoc struct {
	Name      string         `json:"name"`
	Questions []fastMoneyDoc `json:"questions"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ParseCSV reads board questions from CSV. The first row is a header. Each
// data row is question text, category, then answer/points column pairs.
// Rows with fewer than four columns and answer pairs with a blank cell are
// skipped, so hosts can leave gaps in a spreadsheet without breaking the
// import. Questions that end up with no answers are dropped.
func ParseCSV(r io.Reader) ([]game.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return nil, nil
	}

	now := time.Now().UnixMilli()
	var questions []game.Question
	for i, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		var answers []game.Answer
		for j := 2; j+1 < len(record); j += 2 {
			text := strings.TrimSpace(record[j])
			pointsField := strings.TrimSpace(record[j+1])
			if text == "" || pointsField == "" {
				continue
			}
			points, parseErr := strconv.Atoi(pointsField)
			if parseErr != nil {
				points = 0
			}
			answers = append(answers, game.Answer{
				ID:       len(answers) + 1,
				Text:     text,
				Points:   points,
				Revealed: false,
			})
		}
		if len(answers) == 0 {
			continue
		}
		questions = append(questions, game.Question{
			ID:       fmt.Sprintf("%d-%d", now, i+1),
			Text:     strings.TrimSpace(record[0]),
			Category: strings.TrimSpace(record[1]),
			Answers:  answers,
		})
	}
	return questions, nil
}

// WriteCSV writes board questions in the same column layout ParseCSV reads.
func WriteCSV(w io.Writer, questions []game.Question) error {
	writer := csv.NewWriter(w)

	header := []string{"Question", "Category"}
	for i := 1; i <= maxCSVAnswers; i++ {
		header = append(header, fmt.Sprintf("Answer%d", i), fmt.Sprintf("Points%d", i))
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "write csv header")
	}

	for _, q := range questions {
		row := []string{q.Text, q.Category}
		for i, a := range q.Answers {
			if i == maxCSVAnswers {
				break
			}
			row = append(row, a.Text, strconv.Itoa(a.Points))
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "write csv row", slog.String("questionID", q.ID))
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}

// ParseJSON reads board questions from either a bare question array or a
// full exported question set. Missing ids are generated, answer ids are
// renumbered from one, and all answers start hidden.
func ParseJSON(data []byte) ([]game.Question, error) {
	var docs []questionDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		var set questionSetDoc
		if setErr := json.Unmarshal(data, &set); setErr != nil {
			return nil, errors.Wrap(err, "parse question json")
		}
		docs = set.Questions
	}

	now := time.Now().UnixMilli()
	questions := make([]game.Question, 0, len(docs))
	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			id = fmt.Sprintf("%d-%d", now, i+1)
		}
		answers := make([]game.Answer, 0, len(doc.Answers))
		for j, a := range doc.Answers {
			answers = append(answers, game.Answer{
				ID:       j + 1,
				Text:     a.Text,
				Points:   a.Points,
				Revealed: false,
			})
		}
		questions = append(questions, game.Question{
			ID:       id,
			Text:     doc.Question,
			Category: doc.Category,
			Answers:  answers,
		})
	}
	return questions, nil
}

// WriteJSON writes an exported question set document.
func WriteJSON(w io.Writer, name string, questions []game.Question) error {
	docs := make([]questionDoc, 0, len(questions))
	for _, q := range questions {
		answers := make([]answerDoc, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, answerDoc{ID: a.ID, Text: a.Text, Points: a.Points})
		}
		docs = append(docs, questionDoc{
			ID:       q.ID,
			Question: q.Text,
			Category: q.Category,
			Answers:  answers,
		})
	}
	set := questionSetDoc{
		Name:      name,
		Questions: docs,
		CreatedAt: time.Now().UTC(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(set), "encode question set")
}

// ParseFastMoneyJSON reads a fast money pack from either a bare prompt
// array or a full exported set.
func ParseFastMoneyJSON(data []byte) ([]game.FastMoneyQuestion, error) {
	var docs []fastMoneyDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		var set fastMoneySetDoc
		if setErr := json.Unmarshal(data, &set); setErr != nil {
			return nil, errors.Wrap(err, "parse fast money json")
		}
		docs = set.Questions
	}

	now := time.Now().UnixMilli()
	questions := make([]game.FastMoneyQuestion, 0, len(docs))
	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			id = fmt.Sprintf("%d-%d", now, i+1)
		}
		bank := make([]game.BankEntry, 0, len(doc.Answers))
		for _, a := range doc.Answers {
			bank = append(bank, game.BankEntry{Text: a.Text, Points: a.Points})
		}
		questions = append(questions, game.FastMoneyQuestion{
			ID:      id,
			Text:    doc.Question,
			Answers: bank,
		})
	}
	return questions, nil
}

// WriteFastMoneyJSON writes an exported fast money set document.
func WriteFastMoneyJSON(w io.Writer, name string, questions []game.FastMoneyQuestion) error {
	docs := make([]fastMoneyDoc, 0, len(questions))
	for _, q := range questions {
		answers := make([]answerDoc, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, answerDoc{Text: a.Text, Points: a.Points})
		}
		docs = append(docs, fastMoneyDoc{ID: q.ID, Question: q.Text, Answers: answers})
	}
	set := fastMoneySetDoc{
		Name:      name,
		Questions: docs,
		CreatedAt: time.Now().UTC(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(set), "encode fast money set")
}
