package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaelVB/Drawsyn-sub000/internal/api"
	"github.com/MaelVB/Drawsyn-sub000/internal/factory"
	"github.com/MaelVB/Drawsyn-sub000/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(projectRoot, "bin", "drawsyn-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/drawsyn")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = cliEnv()
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = cliEnv()
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// mint signs a token with the development secret the test server uses
func (r *cliRunner) mint(t *testing.T, userID, name string) string {
	t.Helper()

	output, err := r.run("token", "mint", "--user", userID, "--name", name)
	require.NoError(t, err, "output: %s", output)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// cliEnv drops DRAWSYN_* variables from the caller's environment
func cliEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "DRAWSYN_") {
			env = append(env, kv)
		}
	}
	return env
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *api.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	projectRoot := findProjectRoot(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := factory.New(factory.Config{
		WordsPath: filepath.Join(projectRoot, "data/words.txt"),
		Logger:    logger,
	})
	require.NoError(t, err)

	appCtx, stopApp := context.WithCancel(context.Background())
	app.Start(appCtx)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		Orchestrator: app.Orchestrator,
		Verifier:     app.Verifier,
		Storage:      app.Storage,
		Games:        app.Games,
		Gateway:      app.Gateway,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:       logger,
		Orchestrator: app.Orchestrator,
		Verifier:     app.Verifier,
		Storage:      app.Storage,
		Games:        app.Games,
		Gateway:      app.Gateway,
		StaticDir:    filepath.Join(projectRoot, "internal/web/static"),
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/ws", apiRouter)
	mux.Handle("/", webRouter)

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = "127.0.0.1"
	serverCfg.Port = 0
	server := api.NewServer(mux, serverCfg, logger)
	require.NoError(t, server.Listen())

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			stopApp()
			_ = app.Close(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type tokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type roomResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	HostUserID  string `json:"host_user_id"`
	MaxPlayers  int    `json:"max_players"`
	TotalRounds int    `json:"total_rounds"`
	Status      string `json:"status"`
	Players     []struct {
		ID string `json:"id"`
	} `json:"players"`
}

type roomListResponse struct {
	Rooms []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		PlayerCount int    `json:"player_count"`
	} `json:"rooms"`
}

type healthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

type socketEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Rooms)
}

func TestCLI_TokenMintSave(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("token", "mint", "--user", "alice", "--name", "Alice", "--save")
	require.NoError(t, err, "output: %s", output)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "alice", resp.UserID)

	saved, err := os.ReadFile(cli.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, resp.Token, string(saved))

	// The saved token is picked up from the token file
	output, err = cli.run("rooms", "create", "--name", "Salon")
	require.NoError(t, err, "output: %s", output)

	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Equal(t, "alice", room.HostUserID)
}

func TestCLI_RoomCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	token := cli.mint(t, "alice", "Alice")

	// Create room
	output, err := cli.runWithToken(token, "rooms", "create", "--name", "Salon", "--max-players", "4", "--rounds", "2")
	require.NoError(t, err, "output: %s", output)

	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Len(t, room.ID, 6)
	assert.Equal(t, "Salon", room.Name)
	assert.Equal(t, 4, room.MaxPlayers)
	assert.Equal(t, 2, room.TotalRounds)
	assert.Equal(t, "lobby", room.Status)
	assert.Empty(t, room.Players)

	// List rooms
	output, err = cli.run("rooms", "list")
	require.NoError(t, err, "output: %s", output)

	var list roomListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, room.ID, list.Rooms[0].ID)

	// Get room
	output, err = cli.run("rooms", "get", room.ID)
	require.NoError(t, err, "output: %s", output)

	var got roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, room.ID, got.ID)
}

func TestCLI_WatchJoinsRoom(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	token := cli.mint(t, "bob", "Bob")

	output, err := cli.runWithToken(token, "rooms", "create", "--name", "Salon")
	require.NoError(t, err, "output: %s", output)
	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))

	// room:list on connect, then room:joined
	output, err = cli.runWithToken(token, "watch", room.ID, "--json", "--count", "2")
	require.NoError(t, err, "output: %s", output)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2, "output: %s", output)

	var first, second socketEvent
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "room:list", first.Type)
	assert.Equal(t, "room:joined", second.Type)
	assert.Contains(t, string(second.Payload), "Bob")
}

func TestCLI_ArchiveCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("games", "list")
	require.NoError(t, err, "output: %s", output)
	assert.JSONEq(t, `{"games":[]}`, output)

	output, err = cli.run("leaderboard")
	require.NoError(t, err, "output: %s", output)
	assert.JSONEq(t, `{"entries":[]}`, output)

	output, err = cli.run("presence", "nobody")
	require.NoError(t, err, "output: %s", output)
	assert.JSONEq(t, `{"user_id":"nobody","online":false,"rooms":[]}`, output)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create without a token
	output, err := cli.run("rooms", "create", "--name", "Salon")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Non-existent room
	output, err = cli.run("rooms", "get", "NOPE42")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Invalid configuration
	token := cli.mint(t, "alice", "Alice")
	output, err = cli.runWithToken(token, "rooms", "create", "--name", "Salon", "--max-players", "1")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_CONFIG")

	// Socket without a token
	output, err = cli.run("watch", "--json")
	assert.Error(t, err)
	assert.Contains(t, output, "auth:error")
}
