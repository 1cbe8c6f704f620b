// Family Jackbox Bluff Game
//
// One host screen drives a shared round sequence; phone browsers join as
// players, submit fake answers to a question, then vote on which option
// is the real one.
//
// Features:
// - Single session per process: /bluff (host), /bluff/play (players), /bluff/ws
// - Host writes questions (truth plus optional house lies) in the lobby
// - 60s bluff phase, cut short once every connected player has submitted
// - Lies matching the truth are rejected so the author can resubmit
// - 30s voting phase over the shuffled truth/player-lie/house-lie options
// - Players receive option text only; the kind/author discriminator stays
//   on the host payload so the wire never gives the truth away
// - Reveal awards 500 per fooled player and 1000 per truth vote, truth last
// - Players identified by cookie (uuid), so a reload keeps name and score
// - Disconnects never block a round; sleepers get a placeholder lie
// - In-browser QR code to share the player URL, backed by go-qrcode

package main

import (
	_ "embed"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Messages coming from clients
type ClientMessage struct {
	Type      string   `json:"type"`                 // "host_login", "join_game", "add_question", "start_game", "submit_lie", "submit_vote", "next_round"
	Name      string   `json:"name,omitempty"`       // join_game
	Question  string   `json:"question,omitempty"`   // add_question
	Answer    string   `json:"answer,omitempty"`     // add_question
	HouseLies []string `json:"house_lies,omitempty"` // add_question
	Lie       string   `json:"lie,omitempty"`        // submit_lie
	Vote      string   `json:"vote,omitempty"`       // submit_vote
}

// Messages sent to clients
type HostStateMessage struct {
	Type string `json:"type"` // "state_update"
	HostView
}

type PlayerStateMessage struct {
	Type string `json:"type"` // "state_update"
	PlayerView
}

type TimerMessage struct {
	Type     string `json:"type"` // "timer_update"
	TimeLeft int    `json:"time_left"`
}

type QuestionAddedMessage struct {
	Type     string   `json:"type"` // "question_added"
	Question Question `json:"question"`
	Total    int      `json:"total"`
}

// AckMessage acknowledges a single client's action
// ("joined_success", "submitted_success", "voted_success").
type AckMessage struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// SessionInfoMessage is sent on connect so the client knows its role
// and where players should be pointed.
type SessionInfoMessage struct {
	Type       string `json:"type"` // "session_info"
	IsHost     bool   `json:"is_host"`
	PlayerPath string `json:"player_path"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
	host     bool
	joined   bool
}

type clientRequest struct {
	client *Client
	msg    ClientMessage
}

// Hub fans projections out to the connected clients and feeds inbound
// actions into the game core one at a time.
type Hub struct {
	game *Game
	path string

	register chan *Client
	unreg    chan *Client
	inbound  chan clientRequest

	mu      sync.RWMutex
	clients map[*Client]bool
}

func newHub(path string) *Hub {
	h := &Hub{
		path:     path,
		register: make(chan *Client),
		unreg:    make(chan *Client),
		inbound:  make(chan clientRequest),
		clients:  make(map[*Client]bool),
	}
	h.game = NewGame(h)
	return h
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			// Snapshot outside the clients lock; the game lock is
			// always taken first.
			_, playerView := h.game.Views()

			h.mu.Lock()
			h.clients[c] = true
			h.sendLocked(c, SessionInfoMessage{
				Type:       "session_info",
				IsHost:     false,
				PlayerPath: h.path + "/play",
			})
			h.sendLocked(c, PlayerStateMessage{Type: "state_update", PlayerView: playerView})
			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			joined := c.joined
			h.mu.Unlock()

			if joined {
				h.game.Disconnect(c.playerID)
			}

		case req := <-h.inbound:
			h.dispatch(cfg, req)
		}
	}
}

func (h *Hub) dispatch(cfg *Config, req clientRequest) {
	c := req.client
	msg := req.msg

	switch msg.Type {
	case "host_login":
		hostView, _ := h.game.Views()

		h.mu.Lock()
		c.host = true
		h.sendLocked(c, SessionInfoMessage{
			Type:       "session_info",
			IsHost:     true,
			PlayerPath: h.path + "/play",
		})
		h.sendLocked(c, HostStateMessage{Type: "state_update", HostView: hostView})
		h.mu.Unlock()

	case "join_game":
		if !h.game.Join(c.playerID, msg.Name) {
			return
		}
		c.joined = true
		logf(cfg, "GAMES: Player %q joined", msg.Name)

		h.mu.Lock()
		h.sendLocked(c, AckMessage{Type: "joined_success", Name: msg.Name})
		h.mu.Unlock()

	case "add_question":
		q, ok := h.game.AddQuestion(msg.Question, msg.Answer, msg.HouseLies)
		if !ok {
			return
		}
		logf(cfg, "GAMES: Question added (%d in bank)", h.game.QuestionCount())

		// The payload contains the truth, so only host screens get it.
		added := QuestionAddedMessage{
			Type:     "question_added",
			Question: q,
			Total:    h.game.QuestionCount(),
		}
		h.mu.Lock()
		for client := range h.clients {
			if client.host {
				h.sendLocked(client, added)
			}
		}
		h.mu.Unlock()

	case "start_game":
		h.game.StartGame()

	case "submit_lie":
		if err := h.game.SubmitLie(c.playerID, msg.Lie); err != nil {
			h.mu.Lock()
			h.sendLocked(c, ErrorMessage{
				Type:    "error",
				Message: "Too close to the Truth! Try again.",
			})
			h.mu.Unlock()
			return
		}
		h.mu.Lock()
		h.sendLocked(c, AckMessage{Type: "submitted_success"})
		h.mu.Unlock()

	case "submit_vote":
		h.game.SubmitVote(c.playerID, msg.Vote)
		h.mu.Lock()
		h.sendLocked(c, AckMessage{Type: "voted_success"})
		h.mu.Unlock()

	case "next_round":
		h.game.NextRound()

	default:
		// ignore unknown types
	}
}

// sendLocked assumes h.mu is already held. Clients that cannot keep up
// are dropped rather than allowed to stall the session.
func (h *Hub) sendLocked(c *Client, msg any) {
	if !h.clients[c] {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

// BroadcastState implements Broadcaster. Called by the game core with
// its lock held; host screens get the full view, players the stripped one.
func (h *Hub) BroadcastState(host HostView, player PlayerView) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if c.host {
			h.sendLocked(c, HostStateMessage{Type: "state_update", HostView: host})
		} else {
			h.sendLocked(c, PlayerStateMessage{Type: "state_update", PlayerView: player})
		}
	}
}

// BroadcastTimer implements Broadcaster.
func (h *Hub) BroadcastTimer(timeLeft int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := TimerMessage{Type: "timer_update", TimeLeft: timeLeft}
	for c := range h.clients {
		h.sendLocked(c, msg)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "family_jackbox_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func serveWS(h *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		h.register <- client

		go client.writePump()
		client.readPump(h)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		h.inbound <- clientRequest{
			client: c,
			msg:    msg,
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the player join URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at $path/qr; the QR points players at $path/play.
	base := strings.TrimSuffix(r.URL.Path, "/qr")
	url := scheme + "://" + r.Host + base + "/play"

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Static file paths ----

//go:embed bluff/host.html
var hostHTML []byte

//go:embed bluff/player.html
var playerHTML []byte

//go:embed bluff/app.css
var bluffCSS []byte

//go:embed bluff/host.js
var hostJS []byte

//go:embed bluff/player.js
var playerJS []byte

func staticHandler(cfg *Config, contentType string, data []byte) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(data)
	}
}

// registerBluffGame sets up routes so that:
//   - $path          → host screen
//   - $path/play     → player client
//   - $path/ws       → shared WebSocket
//   - $path/qr       → PNG QR code pointing at $path/play
func registerBluffGame(cfg *Config, path string, mux *httprouter.Router) {
	hub := newHub(cfg.prefix + path)
	go hub.run(cfg)

	mux.GET(cfg.prefix+path, staticHandler(cfg, "text/html; charset=utf-8", hostHTML))
	mux.GET(cfg.prefix+path+"/play", staticHandler(cfg, "text/html; charset=utf-8", playerHTML))

	// Shared assets
	mux.GET(cfg.prefix+"/assets/bluff/app.css", staticHandler(cfg, "text/css; charset=utf-8", bluffCSS))
	mux.GET(cfg.prefix+"/assets/bluff/host.js", staticHandler(cfg, "application/javascript; charset=utf-8", hostJS))
	mux.GET(cfg.prefix+"/assets/bluff/player.js", staticHandler(cfg, "application/javascript; charset=utf-8", playerJS))

	mux.GET(cfg.prefix+path+"/ws", serveWS(hub))

	mux.GET(cfg.prefix+path+"/qr", qrHandler)
}
