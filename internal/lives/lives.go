// Package lives implements the lives gate: a capped pool of attempts that
// refills one life per regeneration period.
package lives

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoLives is returned by Consume when the pool is empty.
var ErrNoLives = errors.New("no lives left")

// Store persists the pool per player.
type Store interface {
	LoadLives(player string) (n int, updated time.Time, ok bool, err error)
	SaveLives(player string, n int, updated time.Time) error
}

// Status is a snapshot of the pool.
type Status struct {
	Lives    int
	Max      int
	NextLife time.Duration // Time until the next life; zero when full
}

// Full reports whether the pool is at its cap.
func (s Status) Full() bool {
	return s.Lives >= s.Max
}

// Gate tracks one player's lives.
type Gate struct {
	mu     sync.Mutex
	store  Store
	player string
	max    int
	regen  time.Duration
	now    func() time.Time
	lives  int
	anchor time.Time // Start of the current regeneration period
	loaded bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// WithStore persists the pool for player. Without a store the pool lives
// in memory only.
func WithStore(s Store, player string) Option {
	return func(g *Gate) {
		g.store = s
		g.player = player
	}
}

// New creates a gate with limit lives regenerating every regen.
func New(limit int, regen time.Duration, opts ...Option) *Gate {
	if limit <= 0 {
		limit = 1
	}
	if regen <= 0 {
		regen = time.Minute
	}
	g := &Gate{
		max:   limit,
		regen: regen,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Status returns the current pool after applying regeneration.
func (g *Gate) Status() (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.sync(); err != nil {
		return Status{}, err
	}
	return g.status(), nil
}

// Consume takes one life. It returns ErrNoLives when none are left.
func (g *Gate) Consume() (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.sync(); err != nil {
		return Status{}, err
	}
	if g.lives <= 0 {
		return g.status(), ErrNoLives
	}
	if g.lives >= g.max {
		// Regeneration starts when the pool leaves full.
		g.anchor = g.now()
	}
	g.lives--
	if err := g.save(); err != nil {
		return Status{}, err
	}
	return g.status(), nil
}

// Refund gives back one life, up to the cap.
func (g *Gate) Refund() (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.sync(); err != nil {
		return Status{}, err
	}
	if g.lives < g.max {
		g.lives++
		if err := g.save(); err != nil {
			return Status{}, err
		}
	}
	return g.status(), nil
}

// sync loads the pool on first use and applies elapsed regeneration.
func (g *Gate) sync() error {
	now := g.now()
	if !g.loaded {
		g.lives, g.anchor = g.max, now
		if g.store != nil {
			n, updated, ok, err := g.store.LoadLives(g.player)
			if err != nil {
				return fmt.Errorf("lives: %w", err)
			}
			if ok {
				g.lives, g.anchor = n, updated
			}
		}
		g.loaded = true
	}

	if g.lives >= g.max {
		g.lives = g.max
		return nil
	}
	elapsed := now.Sub(g.anchor)
	if elapsed < g.regen {
		return nil
	}
	gained := int(elapsed / g.regen)
	g.lives += gained
	g.anchor = g.anchor.Add(time.Duration(gained) * g.regen)
	if g.lives >= g.max {
		g.lives = g.max
		g.anchor = now
	}
	return g.save()
}

func (g *Gate) save() error {
	if g.store == nil {
		return nil
	}
	if err := g.store.SaveLives(g.player, g.lives, g.anchor); err != nil {
		return fmt.Errorf("lives: %w", err)
	}
	return nil
}

func (g *Gate) status() Status {
	st := Status{Lives: g.lives, Max: g.max}
	if g.lives < g.max {
		st.NextLife = g.regen - g.now().Sub(g.anchor)
		if st.NextLife < 0 {
			st.NextLife = 0
		}
	}
	return st
}
