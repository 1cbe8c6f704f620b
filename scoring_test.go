package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoringPlayers() []*Player {
	return []*Player{
		{ID: "p1", Name: "Alice", Connected: true},
		{ID: "p2", Name: "Bob", Connected: true},
		{ID: "p3", Name: "Carol", Connected: true},
	}
}

func TestScoreRoundAwardsTruthVoters(t *testing.T) {
	players := scoringPlayers()
	options := []Option{
		{Text: "Paris", Kind: KindTruth, Author: houseAuthor},
		{Text: "Berlin", Kind: KindPlayerLie, Author: "p1"},
	}
	votes := map[string]string{
		"p2": "Paris",
		"p3": "Paris",
	}

	scoreRound(options, votes, players)

	assert.Equal(t, 0, players[0].Score)
	assert.Equal(t, truthPoints, players[1].Score)
	assert.Equal(t, truthPoints, players[2].Score)
}

func TestScoreRoundAwardsLieAuthorPerVictim(t *testing.T) {
	players := scoringPlayers()
	options := []Option{
		{Text: "Paris", Kind: KindTruth, Author: houseAuthor},
		{Text: "Berlin", Kind: KindPlayerLie, Author: "p1"},
	}
	votes := map[string]string{
		"p2": "Berlin",
		"p3": "Berlin",
	}

	scoreRound(options, votes, players)

	assert.Equal(t, 2*bluffPoints, players[0].Score)
	assert.Equal(t, 0, players[1].Score)
	assert.Equal(t, 0, players[2].Score)
}

func TestScoreRoundIgnoresOwnLieVote(t *testing.T) {
	players := scoringPlayers()
	options := []Option{
		{Text: "Paris", Kind: KindTruth, Author: houseAuthor},
		{Text: "Berlin", Kind: KindPlayerLie, Author: "p1"},
	}
	votes := map[string]string{
		"p1": "Berlin",
	}

	events := scoreRound(options, votes, players)

	for _, p := range players {
		assert.Equal(t, 0, p.Score)
	}

	// The self-vote still shows up in the reveal.
	require.Len(t, events, 2)
	assert.Equal(t, []string{"Alice"}, events[0].Voters)
}

func TestScoreRoundHouseLiesAwardNothing(t *testing.T) {
	players := scoringPlayers()
	options := []Option{
		{Text: "Paris", Kind: KindTruth, Author: houseAuthor},
		{Text: "Lyon", Kind: KindHouseLie, Author: houseAuthor},
	}
	votes := map[string]string{
		"p1": "Lyon",
		"p2": "Lyon",
	}

	events := scoreRound(options, votes, players)

	for _, p := range players {
		assert.Equal(t, 0, p.Score)
	}

	require.Len(t, events, 2)
	assert.Equal(t, KindHouseLie, events[0].Kind)
	assert.Equal(t, houseAuthor, events[0].Author)
	assert.Equal(t, []string{"Alice", "Bob"}, events[0].Voters)
}

func TestRevealSequenceKeepsOptionOrderTruthLast(t *testing.T) {
	players := scoringPlayers()
	options := []Option{
		{Text: "Lyon", Kind: KindHouseLie, Author: houseAuthor},
		{Text: "Paris", Kind: KindTruth, Author: houseAuthor},
		{Text: "Berlin", Kind: KindPlayerLie, Author: "p1"},
		{Text: "Madrid", Kind: KindPlayerLie, Author: "p2"},
	}

	events := scoreRound(options, map[string]string{}, players)

	require.Len(t, events, 4)
	assert.Equal(t, "Lyon", events[0].Text)
	assert.Equal(t, "Berlin", events[1].Text)
	assert.Equal(t, "Madrid", events[2].Text)

	last := events[3]
	assert.Equal(t, KindTruth, last.Kind)
	assert.Equal(t, "Paris", last.Text)
	assert.Equal(t, truthAuthor, last.Author)
	assert.Empty(t, last.Voters)
}

func TestRevealAuthorsAreDisplayNames(t *testing.T) {
	players := scoringPlayers()
	options := []Option{
		{Text: "Paris", Kind: KindTruth, Author: houseAuthor},
		{Text: "Berlin", Kind: KindPlayerLie, Author: "p2"},
	}

	events := scoreRound(options, map[string]string{}, players)

	require.Len(t, events, 2)
	assert.Equal(t, "Bob", events[0].Author)
}

func TestVoterNamesFollowArrivalOrder(t *testing.T) {
	players := scoringPlayers()
	options := []Option{
		{Text: "Paris", Kind: KindTruth, Author: houseAuthor},
		{Text: "Berlin", Kind: KindPlayerLie, Author: "p1"},
	}
	votes := map[string]string{
		"p3": "Berlin",
		"p2": "Berlin",
	}

	events := scoreRound(options, votes, players)

	require.Len(t, events, 2)
	assert.Equal(t, []string{"Bob", "Carol"}, events[0].Voters)
}
