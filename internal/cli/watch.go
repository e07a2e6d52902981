package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

func newWatchCmd() *cobra.Command {
	var (
		jsonOutput  bool
		interactive bool
		count       int
	)

	cmd := &cobra.Command{
		Use:   "watch [room-id]",
		Short: "Stream live socket events",
		Long: `Open a socket to the server and print every event it sends.

With a room id the socket joins that room first. Events include:
  - room:list: Rooms available to join
  - room:joined / room:state: Room snapshots
  - round:started / round:word / round:ended: Round lifecycle
  - guess:submitted: Wrong guesses from other players
  - game:ended: Final standings

With --interactive, each line read from stdin is sent as a guess for the
joined room. "/join <room-id>" joins a room, "/start" starts the game and
"/leave" leaves the room.

Press Ctrl+C to disconnect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var roomID string
			if len(args) == 1 {
				roomID = args[0]
			}
			return watch(roomID, jsonOutput, interactive, count)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Send stdin lines as guesses")
	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many events (0 streams until interrupted)")

	return cmd
}

// SocketEvent is one received frame as printed by watch
type SocketEvent struct {
	Time    time.Time       `json:"time"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// socket serializes writes; gorilla allows one concurrent writer
type socket struct {
	mu     sync.Mutex
	ws     *websocket.Conn
	roomID model.RoomID // last room confirmed by room:joined
}

func (s *socket) room() model.RoomID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *socket) setRoom(id model.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = id
}

func (s *socket) send(eventType model.EventType, payload any) error {
	env := model.Envelope{Type: eventType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		env.Payload = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.WriteJSON(env)
}

func (s *socket) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	_ = s.ws.Close()
}

func watch(roomID string, jsonOutput, interactive bool, count int) error {
	socketURL, err := client.SocketURL()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	dialCtx, dialCancel := context.WithTimeout(ctx, 10*time.Second)
	ws, resp, err := websocket.DefaultDialer.DialContext(dialCtx, socketURL, http.Header{})
	dialCancel()
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	sock := &socket{ws: ws, roomID: model.RoomID(roomID)}

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
		sock.close()
	}()

	if !jsonOutput {
		fmt.Println("Connected")
	}

	if roomID != "" {
		if err := sock.send(model.EventRoomJoin, model.RoomJoinPayload{RoomID: model.RoomID(roomID)}); err != nil {
			return fmt.Errorf("failed to join: %w", err)
		}
	}

	if interactive {
		go sendInput(sock)
	}

	received := 0
	for {
		var env model.Envelope
		if err := ws.ReadJSON(&env); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || errors.Is(ctx.Err(), context.Canceled) {
				break
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return fmt.Errorf("server closed the connection: %s", closeErr.Text)
			}
			return fmt.Errorf("stream error: %w", err)
		}

		printEvent(env, jsonOutput)

		if env.Type == model.EventAuthError {
			return fmt.Errorf("authentication rejected")
		}
		sock.observe(env)

		received++
		if count > 0 && received >= count {
			cancel()
		}
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

// observe tracks the bound room so guesses carry the id the server expects
func (s *socket) observe(env model.Envelope) {
	switch env.Type {
	case model.EventRoomJoined:
		var joined model.RoomJoinedPayload
		if json.Unmarshal(env.Payload, &joined) == nil {
			s.setRoom(joined.Room.ID)
		}
	case model.EventRoomClosed:
		var closed model.RoomClosedPayload
		if json.Unmarshal(env.Payload, &closed) == nil && closed.RoomID == s.room() {
			s.setRoom("")
		}
	}
}

// inputEvent turns one stdin line into the event to send. ok is false for blank lines.
func inputEvent(line string, roomID model.RoomID) (eventType model.EventType, payload any, ok bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return "", nil, false
	case line == "/start":
		return model.EventGameStart, nil, true
	case line == "/leave":
		return model.EventRoomLeave, nil, true
	case strings.HasPrefix(line, "/join "):
		id := strings.TrimSpace(strings.TrimPrefix(line, "/join "))
		return model.EventRoomJoin, model.RoomJoinPayload{RoomID: model.RoomID(id)}, true
	default:
		return model.EventGuessSubmit, model.GuessSubmitPayload{RoomID: roomID, Text: line}, true
	}
}

func sendInput(sock *socket) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		eventType, payload, ok := inputEvent(scanner.Text(), sock.room())
		if !ok {
			continue
		}
		if err := sock.send(eventType, payload); err != nil {
			return
		}
		if eventType == model.EventRoomLeave {
			sock.setRoom("")
		}
	}
}

func printEvent(env model.Envelope, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		data, _ := json.Marshal(SocketEvent{Time: now, Type: string(env.Type), Payload: env.Payload})
		fmt.Println(string(data))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	display := string(env.Payload)
	if len(display) > 100 {
		display = display[:100] + "..."
	}
	fmt.Printf("[%s] %s: %s\n", timestamp, env.Type, display)
}
