package presenter

type EventResponse struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type MessageResponse struct {
	Text string `json:"text"`
}

type StatusResponse struct {
	Step string `json:"step"`
	Done bool   `json:"done"`
}

type TypingResponse struct {
	Active bool `json:"active"`
}

type LocationResponse struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Approximate bool    `json:"approximate"`
	EmbedURL    string  `json:"embed_url"`
	FullMapURL  string  `json:"full_map_url"`
}

// CandidateResponse describes a confirmed responder. When Found is false the
// remaining fields are zero and carry no meaning. DistanceKm is null when the
// distance is not a finite number.
type CandidateResponse struct {
	Found      bool     `json:"found"`
	Kind       string   `json:"kind,omitempty"`
	Name       string   `json:"name,omitempty"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	DistanceKm *float64 `json:"distance_km"`
	ETAMinutes int      `json:"eta_minutes,omitempty"`
	Contact    string   `json:"contact,omitempty"`
	TelURI     string   `json:"tel_uri,omitempty"`
}

type OptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type QuestionResponse struct {
	ID      string           `json:"id"`
	Prompt  string           `json:"prompt"`
	Options []OptionResponse `json:"options"`
}

type GuidanceResponse struct {
	Steps []string `json:"steps"`
}
