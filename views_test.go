package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLobbyViewsCarryRoster(t *testing.T) {
	g, _ := newTestGame(t)
	g.Join("p1", "Alice")
	g.Join("p2", "Bob")
	g.Disconnect("p2")

	host, player := g.Views()

	assert.Equal(t, PhaseLobby, host.Phase)
	assert.Equal(t, PhaseLobby, player.Phase)
	require.Len(t, host.Players, 2)
	assert.Equal(t, "Alice", host.Players[0].Name)
	assert.True(t, host.Players[0].Connected)
	assert.False(t, host.Players[1].Connected)
}

func TestBluffViewShowsSubmitterNamesNeverLieTexts(t *testing.T) {
	g, _ := newTestGame(t)
	g.Join("p1", "Alice")
	g.Join("p2", "Bob")
	addQuestion(t, g, "Capital of France?", "Paris")
	g.StartGame()
	require.NoError(t, g.SubmitLie("p1", "Berlin"))

	host, player := g.Views()

	assert.Equal(t, "Capital of France?", host.Question)
	assert.Equal(t, []string{"Alice"}, host.Submitted)
	assert.Equal(t, "Capital of France?", player.Question)

	// The lie text must not appear anywhere in either payload.
	assert.NotContains(t, host.Submitted, "Berlin")
	assert.Empty(t, player.Options)
	assert.Empty(t, player.Reveal)
}

func TestVotingViewStripsDiscriminatorForPlayers(t *testing.T) {
	g, _ := newTestGame(t)
	g.Join("p1", "Alice")
	g.Join("p2", "Bob")
	addQuestion(t, g, "Capital of France?", "Paris", "Lyon")
	g.StartGame()
	require.NoError(t, g.SubmitLie("p1", "Berlin"))
	require.NoError(t, g.SubmitLie("p2", "Madrid"))

	host, player := g.Views()

	require.Equal(t, PhaseVoting, host.Phase)
	require.Len(t, host.Options, 4)
	require.Len(t, player.Options, 4)

	// Same order, text only on the player side.
	for i, o := range host.Options {
		assert.Equal(t, o.Text, player.Options[i])
		assert.NotEmpty(t, o.Kind)
		assert.NotEmpty(t, o.Author)
	}
}

func TestRevealViewSharedByBothAudiences(t *testing.T) {
	g, _ := newTestGame(t)
	g.Join("p1", "Alice")
	addQuestion(t, g, "Q?", "Truth")
	g.StartGame()
	require.NoError(t, g.SubmitLie("p1", "Lie"))
	g.SubmitVote("p1", "Truth")

	host, player := g.Views()

	require.Equal(t, PhaseReveal, host.Phase)
	assert.Equal(t, "Truth", host.Truth)
	assert.Equal(t, "Truth", player.Truth)
	assert.Equal(t, host.Reveal, player.Reveal)
	require.NotEmpty(t, player.Reveal)
	assert.Equal(t, KindTruth, player.Reveal[len(player.Reveal)-1].Kind)
}

func TestScoreboardSortsByScoreWithStableTies(t *testing.T) {
	g, _ := newTestGame(t)
	g.Join("p1", "Alice")
	g.Join("p2", "Bob")
	g.Join("p3", "Carol")
	addQuestion(t, g, "Q?", "Truth")
	g.StartGame()

	require.NoError(t, g.SubmitLie("p1", "LieOne"))
	require.NoError(t, g.SubmitLie("p2", "LieTwo"))
	require.NoError(t, g.SubmitLie("p3", "LieThree"))

	// Bob finds the truth; Alice and Carol stay tied on zero.
	g.SubmitVote("p1", "LieTwo")
	g.SubmitVote("p2", "Truth")
	g.SubmitVote("p3", "LieTwo")
	require.Equal(t, PhaseReveal, g.snapshotPhase())

	g.NextRound()
	require.Equal(t, PhaseScoreboard, g.snapshotPhase())

	host, player := g.Views()

	require.Len(t, host.Leaderboard, 3)
	assert.Equal(t, "Bob", host.Leaderboard[0].Name)
	assert.Equal(t, "Alice", host.Leaderboard[1].Name)
	assert.Equal(t, "Carol", host.Leaderboard[2].Name)
	assert.Equal(t, host.Leaderboard, player.Leaderboard)
}

func TestViewsCarryTimeLeft(t *testing.T) {
	g, _ := newTestGame(t)
	g.Join("p1", "Alice")
	addQuestion(t, g, "Q?", "Truth")
	g.StartGame()

	host, player := g.Views()

	assert.Equal(t, bluffSeconds, host.TimeLeft)
	assert.Equal(t, bluffSeconds, player.TimeLeft)
}
