package web_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playGame runs a one-round game where bob or alice guesses the word, then drains the archive
func (ts *webTestServer) playGame() {
	ts.t.Helper()
	ctx := context.Background()

	roomID := ts.createRoom("ROOM01", "Salon", 1)
	alice := ts.join(roomID, "alice", "Alice")
	bob := ts.join(roomID, "bob", "Bob")

	ts.app.MockRandom.QueueString("GAME01")
	started, err := ts.app.Orchestrator.StartGame(ctx, roomID)
	require.NoError(ts.t, err)

	guesser := bob
	if started.Round.DrawerID == bob.ID {
		guesser = alice
	}
	result, err := ts.app.Orchestrator.SubmitGuess(ctx, roomID, guesser.ID, "lune")
	require.NoError(ts.t, err)
	require.True(ts.t, result.GameEnded)

	ts.app.Archive.Close()
}

func TestLeaderboardEmpty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/leaderboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, ".empty-state")
	assertNotContainsElement(t, doc, "#recent-games")
}

func TestLeaderboardAfterGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.playGame()

	doc := parseHTML(ts.get("/leaderboard").Body)

	assert.Equal(t, 1, doc.Find("#leaderboard .entry").Length())
	assertContainsText(t, doc, "#leaderboard .rank", "1")
	assertContainsText(t, doc, "#leaderboard .points", "100")

	link := doc.Find("#recent-games a")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "/games/GAME01", href)
}

func TestGamePage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.playGame()

	rr := ts.get("/games/GAME01")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 2, doc.Find("#final-scores .standing").Length())
	assert.Equal(t, 1, doc.Find("#final-scores .winner").Length())
	assertContainsText(t, doc, "#rounds .word", "lune")
	assertContainsElement(t, doc, "#rounds .round-guessed")
}

func TestGamePageNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/NOPE")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), ".error-title", "Game not found")
}
