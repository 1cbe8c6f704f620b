package main

import "time"

// Countdown timers for the bluff and voting phases.
//
// A single countdown is active per game. Every start or stop bumps the
// generation counter, and each tick re-checks its generation under the
// game lock before touching anything, so a countdown whose phase has
// already moved on is a guaranteed no-op rather than a best-effort kill.

// startTimerLocked invalidates any previous countdown and begins a new
// one. expire runs with the game lock held once timeLeft reaches zero,
// making it atomic with any inbound action.
func (g *Game) startTimerLocked(seconds int, expire func()) {
	g.timerGen++
	g.timeLeft = seconds

	go g.countdown(g.timerGen, expire)
}

// stopTimerLocked invalidates the active countdown, if any.
func (g *Game) stopTimerLocked() {
	g.timerGen++
	g.timeLeft = 0
}

func (g *Game) countdown(gen int, expire func()) {
	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	for range ticker.C {
		g.mu.Lock()

		if gen != g.timerGen {
			// A newer countdown (or an early transition) superseded
			// this one; discard the tick.
			g.mu.Unlock()
			return
		}

		g.timeLeft--
		g.sink.BroadcastTimer(g.timeLeft)

		if g.timeLeft <= 0 {
			expire()
			g.mu.Unlock()
			return
		}

		g.mu.Unlock()
	}
}
