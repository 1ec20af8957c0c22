// Package ai drafts survey-style questions with ranked answer banks so
// hosts don't have to invent a pack from scratch. Suggestions always go
// through host review before they reach the board.
package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/game"
	"github.com/sashabaranov/go-openai"
)

const maxTokens = 1024

const systemPrompt = `You write survey questions for a bar trivia game in the style of Family Feud.
Given a topic, respond with a JSON object only, no prose:
{"question": "...", "answers": [{"text": "...", "points": N}, ...]}
Give 4 to 7 answers with points between 1 and 50, highest first, summing to roughly 100.`

type completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Client struct {
	client completer
}

func NewClient(apiKey string) Client {
	return Client{
		client: openai.NewClient(apiKey),
	}
}

// SuggestQuestion asks the model for a question about the given topic and
// parses the reply into a validated board question.
func (c *Client) SuggestQuestion(ctx context.Context, topic string) (game.Question, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     openai.GPT3Dot5Turbo1106,
			MaxTokens: maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: topic},
			},
		},
	)
	if err != nil {
		return game.Question{}, errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return game.Question{}, errors.New("completion has no choices")
	}
	return parseSuggestion(completion.Choices[0].Message.Content)
}

type suggestionDoc struct {
	Question string `json:"question"`
	Answers  []struct {
		Text   string `json:"text"`
		Points int    `json:"points"`
	} `json:"answers"`
}

func parseSuggestion(content string) (game.Question, error) {
	// Models sometimes wrap the JSON in a markdown fence despite instructions.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var doc suggestionDoc
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &doc); err != nil {
		return game.Question{}, errors.Wrap(err, "parse suggestion")
	}

	question := game.Question{
		ID:      "suggested",
		Text:    doc.Question,
		Answers: make([]game.Answer, 0, len(doc.Answers)),
	}
	for i, a := range doc.Answers {
		question.Answers = append(question.Answers, game.Answer{
			ID:     i + 1,
			Text:   a.Text,
			Points: a.Points,
		})
	}
	if err := game.ValidateQuestion(question); err != nil {
		return game.Question{}, errors.Wrap(err, "validate suggestion")
	}
	return question, nil
}
