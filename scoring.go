package main

// scoreRound awards points for a finished round and produces the reveal
// sequence: every non-truth option first, in the frozen option order,
// with the truth entry last.
//
// A player whose lie fools another player earns bluffPoints per victim;
// voting for your own lie awards nobody. House lies never award points.
// Each player who voted for the truth earns truthPoints directly.
func scoreRound(options []Option, votes map[string]string, players []*Player) []RevealEvent {
	events := make([]RevealEvent, 0, len(options))

	var truth Option
	for _, option := range options {
		if option.Kind == KindTruth {
			truth = option
			continue
		}

		voters := make([]string, 0)
		for _, p := range players {
			vote, ok := votes[p.ID]
			if !ok || vote != option.Text {
				continue
			}
			voters = append(voters, p.Name)

			if option.Kind == KindPlayerLie && p.ID != option.Author {
				if author := findPlayer(players, option.Author); author != nil {
					author.Score += bluffPoints
				}
			}
		}

		events = append(events, RevealEvent{
			Text:   option.Text,
			Kind:   option.Kind,
			Author: authorLabel(option, players),
			Voters: voters,
		})
	}

	truthVoters := make([]string, 0)
	for _, p := range players {
		if vote, ok := votes[p.ID]; ok && vote == truth.Text {
			truthVoters = append(truthVoters, p.Name)
			p.Score += truthPoints
		}
	}

	events = append(events, RevealEvent{
		Text:   truth.Text,
		Kind:   KindTruth,
		Author: truthAuthor,
		Voters: truthVoters,
	})

	return events
}

func findPlayer(players []*Player, id string) *Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// authorLabel maps an option to the display name shown at reveal.
func authorLabel(option Option, players []*Player) string {
	if option.Kind != KindPlayerLie {
		return houseAuthor
	}
	if p := findPlayer(players, option.Author); p != nil {
		return p.Name
	}
	return houseAuthor
}
