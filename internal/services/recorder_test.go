package services

import (
	"fmt"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
	"strings"
	"sync"
)

// recorder captures presenter events as short strings.
type recorder struct {
	mu     sync.Mutex
	events []string

	ambulance *domain.RankedCandidate
	eta       int
	hospital  *domain.RankedCandidate
	fix       domain.LocationFix
	guidance  []domain.GuidanceStep
}

var _ ports.Presenter = (*recorder)(nil)

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Index returns the position of the first event with the given prefix, or -1.
func (r *recorder) Index(prefix string) int {
	for i, e := range r.Events() {
		if strings.HasPrefix(e, prefix) {
			return i
		}
	}
	return -1
}

func (r *recorder) Count(prefix string) int {
	n := 0
	for _, e := range r.Events() {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func (r *recorder) Notify(message string) { r.add("notify:%s", message) }

func (r *recorder) StatusChanged(step ports.StatusStep, done bool) {
	r.add("status:%s:%t", step, done)
}

func (r *recorder) LocationResolved(fix domain.LocationFix) {
	r.mu.Lock()
	r.fix = fix
	r.mu.Unlock()
	r.add("location:%t", fix.Approximate)
}

func (r *recorder) AmbulanceConfirmed(match *domain.RankedCandidate, etaMinutes int) {
	r.mu.Lock()
	r.ambulance, r.eta = match, etaMinutes
	r.mu.Unlock()
	r.add("ambulance:%t", match != nil)
}

func (r *recorder) HospitalConfirmed(match *domain.RankedCandidate) {
	r.mu.Lock()
	r.hospital = match
	r.mu.Unlock()
	r.add("hospital:%t", match != nil)
}

func (r *recorder) SystemMessage(text string) { r.add("system:%s", text) }
func (r *recorder) UserMessage(text string)   { r.add("user:%s", text) }
func (r *recorder) Typing(active bool)        { r.add("typing:%t", active) }
func (r *recorder) Hint(text string)          { r.add("hint:%s", text) }

func (r *recorder) QuestionAsked(q domain.Question) { r.add("question:%s", q.ID) }

func (r *recorder) GuidanceReady(steps []domain.GuidanceStep) {
	r.mu.Lock()
	r.guidance = append([]domain.GuidanceStep(nil), steps...)
	r.mu.Unlock()
	r.add("guidance:%d", len(steps))
}
