package presenter

import (
	"encoding/json"
	"io"
	"log"
	"math"
	"rapid-response-sim/internal/adapters/osm"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
	"sync"
)

// JSONPresenter writes one JSON object per event (JSON Lines).
type JSONPresenter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

var _ ports.Presenter = (*JSONPresenter)(nil)

func NewJSONPresenter(w io.Writer) *JSONPresenter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONPresenter{enc: enc}
}

func (p *JSONPresenter) writeEvent(event string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.enc.Encode(EventResponse{Event: event, Data: data}); err != nil {
		log.Printf("encode failed: presenter=json event=%s err=%v", event, err)
	}
}

func (p *JSONPresenter) Notify(message string) {
	p.writeEvent("notify", MessageResponse{Text: message})
}

func (p *JSONPresenter) StatusChanged(step ports.StatusStep, done bool) {
	p.writeEvent("status", StatusResponse{Step: string(step), Done: done})
}

func (p *JSONPresenter) LocationResolved(fix domain.LocationFix) {
	links := osm.Links(fix.Coordinate)
	p.writeEvent("location", LocationResponse{
		Lat:         fix.Coordinate.Lat,
		Lon:         fix.Coordinate.Lon,
		Approximate: fix.Approximate,
		EmbedURL:    links.EmbedURL,
		FullMapURL:  links.FullURL,
	})
}

func (p *JSONPresenter) AmbulanceConfirmed(match *domain.RankedCandidate, etaMinutes int) {
	resp := toCandidateResponse(match)
	if match != nil {
		resp.ETAMinutes = etaMinutes
	}
	p.writeEvent("ambulance_confirmed", resp)
}

func (p *JSONPresenter) HospitalConfirmed(match *domain.RankedCandidate) {
	p.writeEvent("hospital_confirmed", toCandidateResponse(match))
}

func (p *JSONPresenter) SystemMessage(text string) {
	p.writeEvent("system_message", MessageResponse{Text: text})
}

func (p *JSONPresenter) UserMessage(text string) {
	p.writeEvent("user_message", MessageResponse{Text: text})
}

func (p *JSONPresenter) Typing(active bool) {
	p.writeEvent("typing", TypingResponse{Active: active})
}

func (p *JSONPresenter) Hint(text string) {
	p.writeEvent("hint", MessageResponse{Text: text})
}

func (p *JSONPresenter) QuestionAsked(q domain.Question) {
	resp := QuestionResponse{
		ID:      string(q.ID),
		Prompt:  q.Prompt,
		Options: make([]OptionResponse, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		resp.Options = append(resp.Options, OptionResponse{Value: o.Value, Label: o.Label})
	}
	p.writeEvent("question", resp)
}

func (p *JSONPresenter) GuidanceReady(steps []domain.GuidanceStep) {
	resp := GuidanceResponse{Steps: make([]string, 0, len(steps))}
	for _, s := range steps {
		resp.Steps = append(resp.Steps, string(s))
	}
	p.writeEvent("guidance", resp)
}

func toCandidateResponse(m *domain.RankedCandidate) CandidateResponse {
	if m == nil {
		return CandidateResponse{Found: false}
	}

	resp := CandidateResponse{
		Found:   true,
		Kind:    string(m.Kind),
		Name:    m.Name,
		Lat:     m.Coordinate.Lat,
		Lon:     m.Coordinate.Lon,
		Contact: m.Contact,
	}
	// encoding/json rejects NaN and infinities.
	if !math.IsNaN(m.DistanceKm) && !math.IsInf(m.DistanceKm, 0) {
		d := m.DistanceKm
		resp.DistanceKm = &d
	}
	if m.Contact != "" {
		resp.TelURI = TelURI(m.Contact)
	}
	return resp
}
