package main

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()

	doc, err := server.Client().GetDoc(ctx, "/")
	require.NoError(t, err)

	assert.Equal(t, "Barfeud", doc.Find("h1").First().Text())
	assert.Equal(t, 1, doc.Find("form[action='/games']").Length())
	assert.Contains(t, doc.Text(), "starter-pack")
}

func TestHealthy(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()

	resp, err := server.Client().Get(ctx, "/api/healthy")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

// gameCode digs the join code out of the console page.
func gameCode(t *testing.T, console *goquery.Document) string {
	t.Helper()
	href, ok := console.Find("a[href^='/games/']").First().Attr("href")
	require.True(t, ok, "no board link on console page")
	return strings.TrimPrefix(href, "/games/")
}
