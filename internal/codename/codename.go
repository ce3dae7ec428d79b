// Package codename produces the human-readable labels and randomized
// figures attached to gadgets at creation time. Everything here is pure:
// no I/O, no state beyond the shared random source. Codename collisions
// are expected and handled by the caller against the store's unique index.
package codename

import (
  "math/rand"
  "strings"
)

var prefixes = []string{"The", "Operation"}

var nouns = []string{
  "Nightingale", "Kraken", "Phoenix", "Shadow",
  "Phantom", "Raven", "Dragon", "Titan",
}

const confirmationAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ConfirmationCodeLength is the length of self-destruct confirmation codes.
const ConfirmationCodeLength = 6

// Generate returns a two-part codename, e.g. "Operation Kraken".
func Generate() string {
  prefix := prefixes[rand.Intn(len(prefixes))]
  noun := nouns[rand.Intn(len(nouns))]
  return prefix + " " + noun
}

// MissionProbability returns a mission success probability in [0, 100].
// It is drawn once at creation and never recomputed.
func MissionProbability() int {
  return rand.Intn(101)
}

// ConfirmationCode returns a short lowercase alphanumeric token. The code
// is informational only: it authorizes nothing and is never persisted.
func ConfirmationCode() string {
  var b strings.Builder
  b.Grow(ConfirmationCodeLength)
  for i := 0; i < ConfirmationCodeLength; i++ {
    b.WriteByte(confirmationAlphabet[rand.Intn(len(confirmationAlphabet))])
  }
  return b.String()
}
