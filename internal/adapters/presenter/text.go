// Package presenter renders dispatch and guidance events for a terminal.
package presenter

import (
	"fmt"
	"io"
	"log"
	"rapid-response-sim/internal/adapters/osm"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
	"strings"
	"sync"
)

var stepLabels = map[ports.StatusStep]string{
	ports.StepRequest:   "Request sent",
	ports.StepAmbulance: "Ambulance assigned",
	ports.StepHospital:  "Hospital notified",
}

// TextPresenter writes one human-readable line per event. Safe for use from
// timer callbacks.
type TextPresenter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ ports.Presenter = (*TextPresenter)(nil)

func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

func (p *TextPresenter) println(lines ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, l := range lines {
		if _, err := io.WriteString(p.w, l+"\n"); err != nil {
			log.Printf("write failed: presenter=text err=%v", err)
			return
		}
	}
}

func (p *TextPresenter) Notify(message string) {
	p.println("[toast] " + message)
}

func (p *TextPresenter) StatusChanged(step ports.StatusStep, done bool) {
	icon := "⏳"
	if done {
		icon = "✅"
	}
	label, ok := stepLabels[step]
	if !ok {
		label = string(step)
	}
	p.println(fmt.Sprintf("[status] %s %s", icon, label))
}

func (p *TextPresenter) LocationResolved(fix domain.LocationFix) {
	text := "Detected location: " + fix.Coordinate.String()
	if fix.Approximate {
		text += " (approx.)"
	}
	links := osm.Links(fix.Coordinate)
	p.println(text, "Map: "+links.EmbedURL, "Open full map: "+links.FullURL)
}

func (p *TextPresenter) AmbulanceConfirmed(match *domain.RankedCandidate, etaMinutes int) {
	if match == nil {
		p.println(
			"Ambulance: No ambulance found",
			"Distance: -- km",
			"ETA: -- minutes",
			"Call driver: unavailable",
		)
		return
	}

	lines := []string{
		"Ambulance: " + match.Name,
		fmt.Sprintf("Distance: %.1f km (approx.)", match.DistanceKm),
		fmt.Sprintf("ETA: %d minutes (estimated)", etaMinutes),
	}
	if match.Contact != "" {
		lines = append(lines,
			"Driver phone: "+match.Contact,
			"Call driver: "+TelURI(match.Contact),
		)
	}
	p.println(lines...)
}

func (p *TextPresenter) HospitalConfirmed(match *domain.RankedCandidate) {
	if match == nil {
		p.println("Hospital: No hospital found")
		return
	}
	p.println("Hospital: " + match.Name)
}

func (p *TextPresenter) SystemMessage(text string) {
	p.println("system: " + text)
}

func (p *TextPresenter) UserMessage(text string) {
	p.println("you: " + text)
}

func (p *TextPresenter) Typing(active bool) {
	if active {
		p.println("system: typing…")
	}
}

func (p *TextPresenter) Hint(text string) {
	p.println("hint: " + text)
}

func (p *TextPresenter) QuestionAsked(q domain.Question) {
	lines := make([]string, 0, len(q.Options)+1)
	lines = append(lines, "system: "+q.Prompt)
	for i, o := range q.Options {
		lines = append(lines, fmt.Sprintf("  [%d] %s", i+1, o.Label))
	}
	p.println(lines...)
}

func (p *TextPresenter) GuidanceReady(steps []domain.GuidanceStep) {
	lines := make([]string, 0, len(steps)+2)
	lines = append(lines, "system: Here are your first-aid steps:")
	for _, s := range steps {
		lines = append(lines, "  • "+string(s))
	}
	lines = append(lines, "system: Follow these steps until the ambulance team takes over.")
	p.println(lines...)
}

// TelURI builds a tel: link with all whitespace removed from the number.
func TelURI(phone string) string {
	return "tel:" + strings.Join(strings.Fields(phone), "")
}
