package location

import (
	"context"
	"fmt"
	"rapid-response-sim/internal/domain"
	"sync"
	"time"
)

// MockFix is one scripted Locate result.
type MockFix struct {
	Coordinate domain.Coordinate
	Err        error
	// Delay before the result is returned. Locate honours ctx while waiting.
	Delay time.Duration
}

// MockProvider replays scripted fixes in order; the last one repeats.
type MockProvider struct {
	mu    sync.Mutex
	fixes []MockFix
	calls int
}

func NewMockProvider(fixes ...MockFix) *MockProvider {
	return &MockProvider{fixes: fixes}
}

func (p *MockProvider) Locate(ctx context.Context) (domain.Coordinate, error) {
	p.mu.Lock()
	if len(p.fixes) == 0 {
		p.mu.Unlock()
		return domain.Coordinate{}, fmt.Errorf("mock locate: %w: no scripted fix", domain.ErrLocationUnavailable)
	}
	i := p.calls
	if i >= len(p.fixes) {
		i = len(p.fixes) - 1
	}
	fix := p.fixes[i]
	p.calls++
	p.mu.Unlock()

	if fix.Delay > 0 {
		t := time.NewTimer(fix.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.Coordinate{}, ctx.Err()
		case <-t.C:
		}
	}

	if fix.Err != nil {
		return domain.Coordinate{}, fix.Err
	}
	return fix.Coordinate, nil
}

// Calls reports how many times Locate was invoked.
func (p *MockProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls
}
