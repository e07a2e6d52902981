package web_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeEmptyState(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, ".empty-state")
	assertNotContainsElement(t, doc, "#room-list")
	assertNotContainsElement(t, doc, "#create-room")
}

func TestHomeListsRooms(t *testing.T) {
	ts := newWebTestServer(t)
	roomID := ts.createRoom("ROOM01", "Les Artistes", 3)
	ts.join(roomID, "alice", "Alice")
	ts.join(roomID, "bob", "Bob")

	doc := parseHTML(ts.get("/").Body)

	assert.Equal(t, 1, doc.Find("#room-list .room-row").Length())
	assertContainsText(t, doc, ".room-code", "ROOM01")
	assertContainsText(t, doc, ".room-name", "Les Artistes")
	assertContainsText(t, doc, ".room-players", "2/6")
	assertContainsText(t, doc, ".room-status", "lobby")
}

func TestHomeEscapesRoomNames(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createRoom("ROOM01", "<script>x</script>", 3)

	rr := ts.get("/")
	assert.NotContains(t, rr.Body.String(), "<script>x</script>")

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".room-name", "<script>x</script>")
}

func TestSignedInUserSeesCreateForm(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("alice", "Alice")

	doc := parseHTML(ts.get("/").Body)
	assertContainsElement(t, doc, "#create-room")
	assertContainsText(t, doc, ".nav-user", "Alice")
}

func TestInvalidTokenIsIgnored(t *testing.T) {
	ts := newWebTestServer(t)
	ts.cookies.cookies["token"] = &http.Cookie{Name: "token", Value: "garbage"}

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertNotContainsElement(t, doc, ".nav-user")
	assertNotContainsElement(t, doc, "#create-room")
}

func TestCreateRoomRequiresSignIn(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"name": {"Salon"}, "max_players": {"4"}, "round_duration": {"60"}}
	rr := ts.post("/rooms", form)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, ".flash-error")
	assert.Empty(t, ts.app.Orchestrator.ListRooms(context.Background()))
}

func TestCreateRoomFromForm(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("alice", "Alice")
	ts.app.MockRandom.QueueString("ROOM01")

	form := url.Values{"name": {"Salon"}, "max_players": {"4"}, "round_duration": {"60"}, "total_rounds": {"2"}}
	rr := ts.post("/rooms", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/rooms/ROOM01", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "ROOM01")
	assertContainsText(t, doc, ".room-code", "ROOM01")
	assertContainsText(t, doc, ".room-progress", "of 2")

	// The flash is shown once
	doc = parseHTML(ts.get("/rooms/ROOM01").Body)
	assertNotContainsElement(t, doc, ".flash")
}

func TestCreateRoomInvalidForm(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("alice", "Alice")

	form := url.Values{"name": {"Salon"}, "max_players": {"40"}, "round_duration": {"60"}}
	rr := ts.post("/rooms", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "invalid room configuration")
}

func TestRoomPageHidesWord(t *testing.T) {
	ts := newWebTestServer(t)
	roomID := ts.createRoom("ROOM01", "Salon", 3)
	ts.join(roomID, "alice", "Alice")
	ts.join(roomID, "bob", "Bob")

	started, err := ts.app.Orchestrator.StartGame(context.Background(), roomID)
	require.NoError(t, err)
	require.True(t, started.Started)

	rr := ts.get("/rooms/ROOM01")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "lune")

	doc := parseHTML(rr.Body)
	assert.Equal(t, 2, doc.Find("#player-list .player").Length())
	assert.Equal(t, 1, doc.Find("#player-list .player.drawing").Length())
	assertContainsText(t, doc, "#round .revealed", "____")
}

func TestRoomPageNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/rooms/NOPE00")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error-title", "Room not found")
}

func TestNavShowsActiveRoom(t *testing.T) {
	ts := newWebTestServer(t)
	roomID := ts.createRoom("ROOM01", "Salon", 3)
	ts.join(roomID, "bob", "Bob")
	ts.signIn("bob", "Bob")

	doc := parseHTML(ts.get("/leaderboard").Body)
	link := doc.Find("a.active-room")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "/rooms/ROOM01", href)
}

func TestUnknownPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), ".error-title", "Not Found")
}
