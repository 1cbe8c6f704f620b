// Package games holds design notes for each game shipped by the server.
package games

// Bluff ("bluff the truth with lies"):
// The host writes questions in the lobby, each with the true answer and
// optional pre-authored "house" lies. Phones join via QR code.
//
// Round flow:
// - BLUFF_INPUT: everyone writes a fake answer (60s, or until all have
//   submitted). A lie too close to the truth is bounced back.
// - VOTING: truth + player lies + house lies, shuffled once, 30s.
//   Players only ever see the option text; the host screen sees which
//   one is the truth and who wrote what.
// - REVEAL: lies first in frozen order, truth last. 500 points per
//   player fooled by your lie, 1000 for finding the truth. Voting for
//   your own lie scores nothing, and house lies score nothing.
// - Host advances to the next question, or to the final scoreboard.
//
// Implementation details:
// - Players identified by cookie, so a refresh keeps score and name
// - Disconnected players never block the round; quorum counts only
//   connected players, and sleepers get a placeholder lie on timeout
// - One session per process; the lobby doubles as the question editor
