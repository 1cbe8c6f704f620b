package main

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Phase is one state of the round state machine.
type Phase string

const (
	PhaseLobby      Phase = "LOBBY"
	PhaseBluffInput Phase = "BLUFF_INPUT"
	PhaseVoting     Phase = "VOTING"
	PhaseReveal     Phase = "REVEAL"
	PhaseScoreboard Phase = "SCOREBOARD"
)

// OptionKind discriminates the options shown during voting.
type OptionKind string

const (
	KindTruth     OptionKind = "TRUTH"
	KindPlayerLie OptionKind = "PLAYER_LIE"
	KindHouseLie  OptionKind = "HOUSE_LIE"
)

const (
	bluffSeconds = 60
	voteSeconds  = 30

	truthPoints = 1000
	bluffPoints = 500

	// Author sentinels for options not written by a player.
	houseAuthor = "HOUSE"
	truthAuthor = "THE TRUTH"
)

var errLieMatchesTruth = errors.New("lie matches the truth")

// Question is immutable once appended to the bank.
type Question struct {
	Text      string   `json:"text"`
	Truth     string   `json:"truth"`
	HouseLies []string `json:"house_lies"`
}

// Player is never removed; disconnecting only flips Connected so the
// score and leaderboard standing survive.
type Player struct {
	ID        string
	Name      string
	Score     int
	Connected bool
}

// Option is one voting choice. Author holds a player ID for PLAYER_LIE
// options and the houseAuthor sentinel otherwise.
type Option struct {
	Text   string
	Kind   OptionKind
	Author string
}

// RevealEvent is one step of the reveal sequence. Author here is a
// display label, not a player ID.
type RevealEvent struct {
	Text   string     `json:"text"`
	Kind   OptionKind `json:"kind"`
	Author string     `json:"author"`
	Voters []string   `json:"voters"`
}

// round holds everything scoped to a single question. A fresh value is
// swapped in whenever BLUFF_INPUT begins, so stale submissions or votes
// can never leak into the next round.
type round struct {
	submissions map[string]string // player ID -> lie text
	votes       map[string]string // player ID -> chosen option text
	options     []Option          // shuffled once at VOTING entry, then frozen
	reveal      []RevealEvent     // computed once at REVEAL entry
}

func newRound() *round {
	return &round{
		submissions: make(map[string]string),
		votes:       make(map[string]string),
	}
}

// Broadcaster delivers projections to whatever transport is attached.
// The game core only produces plain data and never performs I/O itself.
type Broadcaster interface {
	BroadcastState(host HostView, player PlayerView)
	BroadcastTimer(timeLeft int)
}

// Game is a single bluff-the-truth session. All mutations happen under
// mu, so inbound actions and timer ticks interleave but never overlap.
type Game struct {
	mu   sync.Mutex
	sink Broadcaster

	phase         Phase
	players       []*Player // arrival order, used for stable leaderboard ties
	questions     []Question
	questionIndex int
	round         *round

	timeLeft int
	timerGen int
	tick     time.Duration

	rng *rand.Rand
}

func NewGame(sink Broadcaster) *Game {
	return &Game{
		sink:  sink,
		phase: PhaseLobby,
		round: newRound(),
		tick:  time.Second,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// QuestionCount reports the size of the question bank.
func (g *Game) QuestionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.questions)
}

// Views returns the current host and player projections.
func (g *Game) Views() (HostView, PlayerView) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.viewsLocked()
}

// Join registers a new player or reconnects a returning one. Valid in
// any phase; a rejoining ID keeps its score.
func (g *Game) Join(id, name string) bool {
	if id == "" || strings.TrimSpace(name) == "" {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if p := g.playerLocked(id); p != nil {
		p.Name = name
		p.Connected = true
	} else {
		g.players = append(g.players, &Player{
			ID:        id,
			Name:      name,
			Connected: true,
		})
	}

	g.broadcastLocked()
	return true
}

// Disconnect flips the player's connected flag. Quorum is re-evaluated
// so a ghost player never blocks the round from advancing.
func (g *Game) Disconnect(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.playerLocked(id)
	if p == nil {
		return
	}
	p.Connected = false

	if g.connectedLocked() > 0 {
		switch {
		case g.phase == PhaseBluffInput && g.quorumLocked(g.round.submissions):
			g.enterVotingLocked()
			return
		case g.phase == PhaseVoting && g.quorumLocked(g.round.votes):
			g.enterRevealLocked()
			return
		}
	}

	g.broadcastLocked()
}

// AddQuestion appends a question to the bank. Only allowed in LOBBY;
// empty house lies are filtered at creation.
func (g *Game) AddQuestion(text, truth string, houseLies []string) (Question, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseLobby || strings.TrimSpace(text) == "" || strings.TrimSpace(truth) == "" {
		return Question{}, false
	}

	lies := make([]string, 0, len(houseLies))
	for _, lie := range houseLies {
		if strings.TrimSpace(lie) != "" {
			lies = append(lies, lie)
		}
	}

	q := Question{
		Text:      text,
		Truth:     truth,
		HouseLies: lies,
	}
	g.questions = append(g.questions, q)

	return q, true
}

// StartGame begins the first round. A start with an empty question bank
// is a silent no-op, as are starts outside LOBBY.
func (g *Game) StartGame() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseLobby || len(g.questions) == 0 {
		return
	}

	g.questionIndex = 0
	g.enterBluffInputLocked()
}

// SubmitLie records the player's lie for this round. A lie matching the
// truth (case-insensitive, whitespace-trimmed) is rejected so the
// caller can resubmit. Submissions outside BLUFF_INPUT are ignored.
func (g *Game) SubmitLie(id, lie string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseBluffInput || g.playerLocked(id) == nil || strings.TrimSpace(lie) == "" {
		return nil
	}

	truth := g.questions[g.questionIndex].Truth
	if strings.EqualFold(strings.TrimSpace(lie), strings.TrimSpace(truth)) {
		return errLieMatchesTruth
	}

	g.round.submissions[id] = lie

	if g.quorumLocked(g.round.submissions) {
		g.enterVotingLocked()
		return nil
	}

	g.broadcastLocked()
	return nil
}

// SubmitVote records the player's vote. Votes outside VOTING are ignored.
func (g *Game) SubmitVote(id, choice string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseVoting || g.playerLocked(id) == nil || choice == "" {
		return
	}

	g.round.votes[id] = choice

	if g.quorumLocked(g.round.votes) {
		g.enterRevealLocked()
		return
	}

	g.broadcastLocked()
}

// NextRound advances past the reveal: either into the next question's
// BLUFF_INPUT, or into the terminal SCOREBOARD when the bank runs out.
func (g *Game) NextRound() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseReveal {
		return
	}

	g.questionIndex++
	if g.questionIndex < len(g.questions) {
		g.enterBluffInputLocked()
		return
	}

	g.phase = PhaseScoreboard
	g.stopTimerLocked()
	g.broadcastLocked()
}

func (g *Game) playerLocked(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) connectedLocked() int {
	count := 0
	for _, p := range g.players {
		if p.Connected {
			count++
		}
	}
	return count
}

// quorumLocked reports whether every connected player appears in acted.
// Disconnected players never block a transition.
func (g *Game) quorumLocked(acted map[string]string) bool {
	for _, p := range g.players {
		if !p.Connected {
			continue
		}
		if _, ok := acted[p.ID]; !ok {
			return false
		}
	}
	return true
}

func (g *Game) enterBluffInputLocked() {
	g.phase = PhaseBluffInput
	g.round = newRound()
	g.startTimerLocked(bluffSeconds, g.finishBluffInputLocked)
	g.broadcastLocked()
}

// finishBluffInputLocked is the timer expiry action for BLUFF_INPUT:
// every connected player without a submission gets a placeholder lie.
func (g *Game) finishBluffInputLocked() {
	for _, p := range g.players {
		if !p.Connected {
			continue
		}
		if _, ok := g.round.submissions[p.ID]; !ok {
			g.round.submissions[p.ID] = p.Name + " fell asleep"
		}
	}
	g.enterVotingLocked()
}

// enterVotingLocked builds the option set exactly once: the truth, one
// option per player lie, one per house lie, shuffled and then frozen
// for the rest of the round.
func (g *Game) enterVotingLocked() {
	g.phase = PhaseVoting

	q := g.questions[g.questionIndex]

	options := make([]Option, 0, 1+len(g.round.submissions)+len(q.HouseLies))
	options = append(options, Option{Text: q.Truth, Kind: KindTruth, Author: houseAuthor})
	for _, p := range g.players {
		if lie, ok := g.round.submissions[p.ID]; ok {
			options = append(options, Option{Text: lie, Kind: KindPlayerLie, Author: p.ID})
		}
	}
	for _, lie := range q.HouseLies {
		options = append(options, Option{Text: lie, Kind: KindHouseLie, Author: houseAuthor})
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	g.round.options = options

	g.startTimerLocked(voteSeconds, g.enterRevealLocked)
	g.broadcastLocked()
}

// enterRevealLocked runs the scoring engine exactly once and stores the
// reveal sequence. No timer runs here; the host advances explicitly.
func (g *Game) enterRevealLocked() {
	g.phase = PhaseReveal
	g.stopTimerLocked()
	g.round.reveal = scoreRound(g.round.options, g.round.votes, g.players)
	g.broadcastLocked()
}

func (g *Game) broadcastLocked() {
	host, player := g.viewsLocked()
	g.sink.BroadcastState(host, player)
}
