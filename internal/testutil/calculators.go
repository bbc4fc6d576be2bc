package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/results"
)

// StubCalculator returns a fixed result or error and remembers what it was sent.
type StubCalculator struct {
	mu     sync.Mutex
	Result results.MatchResult
	Err    error
	Calls  int
	Teams  []ratings.Teams
}

func (s *StubCalculator) TeamWin(ctx context.Context, teams ratings.Teams) (results.MatchResult, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.Teams = append(s.Teams, teams)
	return s.Result, s.Err
}

// CallCount returns the number of TeamWin calls so far.
func (s *StubCalculator) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// BlockingCalculator waits for Release (or ctx) before answering.
type BlockingCalculator struct {
	Result  results.MatchResult
	Started chan struct{}
	Release chan struct{}
}

func (b *BlockingCalculator) TeamWin(ctx context.Context, teams ratings.Teams) (results.MatchResult, error) {
	_ = teams
	if b.Started != nil {
		select {
		case b.Started <- struct{}{}:
		default:
		}
	}
	select {
	case <-ctx.Done():
		return results.MatchResult{}, ctx.Err()
	case <-b.Release:
		return b.Result, nil
	}
}
