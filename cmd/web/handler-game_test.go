package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jvirtane/barfeud/internal/e2etest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRound(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()
	host := server.Client()

	// Creating a game lands the host on the console.
	console, err := host.SubmitForm(ctx, "/", "/games", nil)
	require.NoError(t, err)
	assert.Contains(t, console.Text(), "Host console")
	code := gameCode(t, console)
	require.Len(t, code, 6)

	// Put the seeded beer question on the board.
	console, err = host.SubmitForm(ctx,
		fmt.Sprintf("/games/%s/console", code),
		fmt.Sprintf("/games/%s/select-question", code),
		url.Values{"question_id": {"q1"}})
	require.NoError(t, err)
	assert.Contains(t, console.Text(), "Name a popular beer brand")

	// Reveal the top answer and award the pot.
	console, err = host.SubmitForm(ctx,
		fmt.Sprintf("/games/%s/console", code),
		fmt.Sprintf("/games/%s/reveal-answer", code),
		url.Values{"answer_id": {"1"}})
	require.NoError(t, err)
	assert.Contains(t, console.Text(), "Budweiser")

	console, err = host.SubmitForm(ctx,
		fmt.Sprintf("/games/%s/console", code),
		fmt.Sprintf("/games/%s/award-points", code),
		url.Values{"team": {"1"}})
	require.NoError(t, err)
	assert.Contains(t, console.Text(), "Team 1: 35")

	// A wrong answer earns a strike.
	console, err = host.SubmitForm(ctx,
		fmt.Sprintf("/games/%s/console", code),
		fmt.Sprintf("/games/%s/add-strike", code),
		nil)
	require.NoError(t, err)
	assert.Contains(t, console.Text(), "Strikes: 1")
}

func TestBoardIsPublicButConsoleIsNot(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()

	console, err := server.Client().SubmitForm(ctx, "/", "/games", nil)
	require.NoError(t, err)
	code := gameCode(t, console)

	viewer, err := e2etest.NewClient(server.URL())
	require.NoError(t, err)

	// Anyone with the code can watch the board.
	doc, err := viewer.GetDoc(ctx, fmt.Sprintf("/games/%s", code))
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), code)

	// Only the creating session gets the console.
	resp, err := viewer.Get(ctx, fmt.Sprintf("/games/%s/console", code))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBoardStream(t *testing.T) {
	server := startTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	host := server.Client()

	console, err := host.SubmitForm(ctx, "/", "/games", nil)
	require.NoError(t, err)
	code := gameCode(t, console)

	viewer, err := e2etest.NewClient(server.URL())
	require.NoError(t, err)
	events, err := viewer.StreamEvents(ctx, fmt.Sprintf("/games/%s/stream", code))
	require.NoError(t, err)

	// The stream opens with the latest snapshot.
	first := <-events
	assert.Contains(t, first, fmt.Sprintf(`"code":"%s"`, code))

	_, err = host.SubmitForm(ctx,
		fmt.Sprintf("/games/%s/console", code),
		fmt.Sprintf("/games/%s/add-strike", code),
		nil)
	require.NoError(t, err)

	// The strike shows up on the stream.
	for event := range events {
		if strings.Contains(event, `"strikes":1`) {
			return
		}
	}
	t.Fatal("never saw the strike on the stream")
}
