package sim

import (
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/tomz197/oranges/internal/physics"
	"github.com/tomz197/oranges/internal/storage"
)

// Storage keys. The claims counter survives resets; the score key only
// exists so a closed session can resume its progress.
const (
	keyClaims = "claims"
	keyScore  = "score"
)

// Score converts smash/bounce credits into the externally visible score.
// Credits buffer in a pending counter and flush on a fixed interval so
// per-frame juggling cannot thrash the visible value; no credited point is
// ever dropped, only delayed.
type Score struct {
	raw         int
	required    int
	pending     int
	flushMs     float64
	lastFlushAt float64
	claims      int

	store  storage.Store
	logger *log.Logger
}

func newScore(required int, flushMs float64, store storage.Store, logger *log.Logger) *Score {
	s := &Score{
		required: required,
		flushMs:  flushMs,
		store:    store,
		logger:   logger,
	}
	s.raw = s.loadInt(keyScore)
	s.claims = s.loadInt(keyClaims)
	return s
}

func (s *Score) loadInt(key string) int {
	if s.store == nil {
		return 0
	}
	v, ok := s.store.Get(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		if s.logger != nil {
			s.logger.Debug("ignoring bad stored value", "key", key, "value", v)
		}
		return 0
	}
	return n
}

func (s *Score) persist(key string, value int) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(key, strconv.Itoa(value)); err != nil && s.logger != nil {
		// Storage is best-effort: keep playing on the in-memory value.
		s.logger.Debug("score persist failed", "key", key, "err", err)
	}
}

// Credit adds n points to the pending buffer. Safe to call every frame.
func (s *Score) Credit(n int) {
	if n <= 0 {
		return
	}
	s.pending += n
}

// tick flushes pending credits once per flush interval.
func (s *Score) tick(now float64) {
	if now-s.lastFlushAt < s.flushMs {
		return
	}
	s.lastFlushAt = now
	s.Flush()
}

// Flush moves all pending credits into the visible score immediately.
func (s *Score) Flush() {
	if s.pending == 0 {
		return
	}
	s.raw += s.pending
	s.pending = 0
	s.persist(keyScore, s.raw)
}

// Claim consumes the full score when the requirement is met. On success the
// raw score resets to zero and the lifetime claims counter, which never
// resets, increments by one.
func (s *Score) Claim() bool {
	if s.raw < s.required {
		return false
	}
	s.raw = 0
	s.claims++
	s.persist(keyScore, s.raw)
	s.persist(keyClaims, s.claims)
	return true
}

// Raw returns the current visible score.
func (s *Score) Raw() int {
	return s.raw
}

// Required returns the score needed for a claim.
func (s *Score) Required() int {
	return s.required
}

// Claims returns the lifetime claims counter.
func (s *Score) Claims() int {
	return s.claims
}

// FillPct returns raw/required clamped to [0, 1].
func (s *Score) FillPct() float64 {
	if s.required <= 0 {
		return 0
	}
	return physics.Clamp(float64(s.raw)/float64(s.required), 0, 1)
}
