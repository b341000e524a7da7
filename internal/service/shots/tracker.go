package shots

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dilzzzz/bagdag/internal/model/shot"
)

var ErrInvalidShot = errors.New("invalid shot")

// Tracker keeps the manually logged shots in memory and computes the
// aggregate figures the stats cards show.
type Tracker struct {
	mu    sync.RWMutex
	shots []shot.Shot
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{shots: make([]shot.Shot, 0, 16)}
}

// Log validates and records a shot, returning it with id and timestamp set.
func (t *Tracker) Log(club string, distance int, result string) (shot.Shot, error) {
	if !shot.ValidClub(club) {
		return shot.Shot{}, fmt.Errorf("%w: unknown club %q", ErrInvalidShot, club)
	}
	if !shot.ValidResult(result) {
		return shot.Shot{}, fmt.Errorf("%w: unknown result %q", ErrInvalidShot, result)
	}
	if distance <= 0 {
		return shot.Shot{}, fmt.Errorf("%w: distance must be positive", ErrInvalidShot)
	}

	s := shot.Shot{
		ID:        uuid.NewString(),
		Club:      club,
		Distance:  distance,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	t.mu.Lock()
	t.shots = append(t.shots, s)
	t.mu.Unlock()

	return s, nil
}

// List returns the logged shots, newest first.
func (t *Tracker) List() []shot.Shot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]shot.Shot, len(t.shots))
	for i, s := range t.shots {
		out[len(t.shots)-1-i] = s
	}
	return out
}

// Stats aggregates the log: total count, and average distance plus
// fairway-hit percentage over driver shots.
func (t *Tracker) Stats() shot.Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := shot.Stats{TotalShots: len(t.shots)}

	var driverTotal, fairwayHits int
	for _, s := range t.shots {
		if s.Club != "Driver" {
			continue
		}
		stats.DriverShots++
		driverTotal += s.Distance
		if s.Result == "Fairway Hit" {
			fairwayHits++
		}
	}

	if stats.DriverShots > 0 {
		stats.AvgDrivingDistance = float64(driverTotal) / float64(stats.DriverShots)
		stats.FairwayHitPct = float64(fairwayHits) / float64(stats.DriverShots) * 100
	}

	return stats
}
