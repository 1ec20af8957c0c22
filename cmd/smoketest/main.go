package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jvirtane/barfeud/internal/e2etest"
	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/logging"
)

// TestHostFlow creates a game, puts a question on the board, and reveals an
// answer, exercising the whole host path against a deployed server.
func TestHostFlow(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	console, err := client.SubmitForm(ctx, "/", "/games", nil)
	if err != nil {
		return errors.Wrap(err, "create game")
	}
	href, ok := console.Find("a[href^='/games/']").First().Attr("href")
	if !ok {
		return errors.New("no board link on console page")
	}
	code := strings.TrimPrefix(href, "/games/")

	consolePath := "/games/" + code + "/console"
	if console, err = client.SubmitForm(ctx, consolePath, "/games/"+code+"/select-question",
		url.Values{"question_id": {"q1"}}); err != nil {
		return errors.Wrap(err, "select question")
	}
	if console, err = client.SubmitForm(ctx, consolePath, "/games/"+code+"/reveal-answer",
		url.Values{"answer_id": {"1"}}); err != nil {
		return errors.Wrap(err, "reveal answer")
	}
	if !strings.Contains(console.Text(), "Strikes: 0") {
		return errors.New("console did not render board state")
	}

	if _, err = client.SubmitForm(ctx, consolePath, "/games/"+code+"/end-session", nil); err != nil {
		return errors.Wrap(err, "end session")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname  = os.Args[1]
		serverURL = "https://" + hostname
		client    *e2etest.Client
		err       error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", serverURL))

	if client, err = e2etest.NewClient(serverURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestHostFlow(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing host flow", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
