package main

import "sort"

// Projections broadcast after every state-affecting event.
//
// The host screen is trusted with the full picture; the payload routed
// to players strips each option down to its text, since carrying the
// kind/author discriminator on the wire would make the truth trivially
// identifiable from devtools.

type PlayerSummary struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
}

// HostOption carries the full discriminator, host view only.
type HostOption struct {
	Text   string     `json:"text"`
	Kind   OptionKind `json:"kind"`
	Author string     `json:"author"`
}

type HostView struct {
	Phase         Phase           `json:"phase"`
	TimeLeft      int             `json:"time_left"`
	Players       []PlayerSummary `json:"players"`
	QuestionCount int             `json:"question_count,omitempty"`
	Question      string          `json:"question,omitempty"`
	Submitted     []string        `json:"submitted_players,omitempty"`
	Options       []HostOption    `json:"options,omitempty"`
	Reveal        []RevealEvent   `json:"reveal_sequence,omitempty"`
	Truth         string          `json:"truth,omitempty"`
	Leaderboard   []PlayerSummary `json:"leaderboard,omitempty"`
}

type PlayerView struct {
	Phase       Phase           `json:"phase"`
	TimeLeft    int             `json:"time_left"`
	Question    string          `json:"question,omitempty"`
	Options     []string        `json:"options,omitempty"`
	Reveal      []RevealEvent   `json:"reveal_sequence,omitempty"`
	Truth       string          `json:"truth,omitempty"`
	Leaderboard []PlayerSummary `json:"leaderboard,omitempty"`
}

func (g *Game) viewsLocked() (HostView, PlayerView) {
	host := HostView{
		Phase:    g.phase,
		TimeLeft: g.timeLeft,
		Players:  g.rosterLocked(),
	}
	player := PlayerView{
		Phase:    g.phase,
		TimeLeft: g.timeLeft,
	}

	switch g.phase {
	case PhaseLobby:
		host.QuestionCount = len(g.questions)

	case PhaseBluffInput:
		q := g.questions[g.questionIndex]
		host.Question = q.Text
		player.Question = q.Text

		// Names only; lie texts stay server-side until the reveal.
		submitted := make([]string, 0, len(g.round.submissions))
		for _, p := range g.players {
			if _, ok := g.round.submissions[p.ID]; ok {
				submitted = append(submitted, p.Name)
			}
		}
		host.Submitted = submitted

	case PhaseVoting:
		q := g.questions[g.questionIndex]
		host.Question = q.Text
		player.Question = q.Text

		hostOptions := make([]HostOption, 0, len(g.round.options))
		playerOptions := make([]string, 0, len(g.round.options))
		for _, option := range g.round.options {
			hostOptions = append(hostOptions, HostOption{
				Text:   option.Text,
				Kind:   option.Kind,
				Author: authorLabel(option, g.players),
			})
			playerOptions = append(playerOptions, option.Text)
		}
		host.Options = hostOptions
		player.Options = playerOptions

	case PhaseReveal:
		q := g.questions[g.questionIndex]
		host.Question = q.Text
		host.Truth = q.Truth
		host.Reveal = g.round.reveal
		player.Question = q.Text
		player.Truth = q.Truth
		player.Reveal = g.round.reveal

	case PhaseScoreboard:
		leaderboard := g.rosterLocked()
		sort.SliceStable(leaderboard, func(i, j int) bool {
			return leaderboard[i].Score > leaderboard[j].Score
		})
		host.Leaderboard = leaderboard
		player.Leaderboard = leaderboard
	}

	return host, player
}

// rosterLocked snapshots the players in arrival order, which doubles as
// the stable tiebreak for the scoreboard.
func (g *Game) rosterLocked() []PlayerSummary {
	roster := make([]PlayerSummary, 0, len(g.players))
	for _, p := range g.players {
		roster = append(roster, PlayerSummary{
			Name:      p.Name,
			Score:     p.Score,
			Connected: p.Connected,
		})
	}
	return roster
}
