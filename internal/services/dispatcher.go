package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/geo"
	"rapid-response-sim/internal/platform/obs"
	"rapid-response-sim/internal/ports"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FallbackCoordinate is used whenever the location provider cannot produce a fix.
var FallbackCoordinate = domain.Coordinate{Lat: 28.6139, Lon: 77.2090}

const (
	msgDetecting         = "Trying to detect your location…"
	msgLocationMissing   = "Location not available. Using approximate location."
	msgLocationFailed    = "Unable to get exact location. Using approximate location."
	msgResponderNotified = "Ambulance and hospital notified. Start first-aid guidance."
)

// ErrDispatchSuperseded is returned by Start when a newer emergency was
// started (or the dispatcher cancelled) while the location was being resolved.
var ErrDispatchSuperseded = errors.New("dispatch superseded")

type DispatchConfig struct {
	Fallback       domain.Coordinate
	AmbulanceFleet geo.FleetSpec
	HospitalFleet  geo.FleetSpec
	// Delays are measured from Start. HospitalDelay must not be shorter than AmbulanceDelay.
	AmbulanceDelay time.Duration
	HospitalDelay  time.Duration
}

func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		Fallback:       FallbackCoordinate,
		AmbulanceFleet: geo.DefaultAmbulanceFleet(),
		HospitalFleet:  geo.DefaultHospitalFleet(),
		AmbulanceDelay: 900 * time.Millisecond,
		HospitalDelay:  1500 * time.Millisecond,
	}
}

// Emergency is one dispatch: where it happened, the generated responders and
// the nearest match of each kind. A nil match means the candidate set was empty.
type Emergency struct {
	ID         string
	StartedAt  time.Time
	Fix        domain.LocationFix
	Ambulances []domain.Candidate
	Hospitals  []domain.Candidate

	Ambulance  *domain.RankedCandidate
	ETAMinutes int // 0 when no ambulance was found
	Hospital   *domain.RankedCandidate

	AmbulanceConfirmed bool
	HospitalConfirmed  bool
}

// Dispatcher runs the simulated emergency timeline: locate the caller, pick the
// nearest ambulance and hospital, then confirm them one after the other.
//
// Starting a new emergency invalidates every task of the previous one, so a
// stale confirmation can never overwrite the current emergency.
type Dispatcher struct {
	cfg       DispatchConfig
	locator   ports.LocationProvider
	rng       ports.RandomSource
	scheduler ports.Scheduler
	observer  ports.DispatchObserver

	mu         sync.Mutex
	generation uint64
	pending    ports.Task
	current    *Emergency
}

// NewDispatcher wires a dispatcher. A nil locator behaves like a device without
// location support; a nil observer discards events.
func NewDispatcher(
	cfg DispatchConfig,
	locator ports.LocationProvider,
	rng ports.RandomSource,
	scheduler ports.Scheduler,
	observer ports.DispatchObserver,
) (*Dispatcher, error) {
	if rng == nil {
		return nil, errors.New("new dispatcher: random source must be non-nil")
	}
	if scheduler == nil {
		return nil, errors.New("new dispatcher: scheduler must be non-nil")
	}
	if cfg.AmbulanceDelay < 0 || cfg.HospitalDelay < cfg.AmbulanceDelay {
		return nil, fmt.Errorf(
			"new dispatcher: delays must satisfy 0 <= ambulance (%s) <= hospital (%s)",
			cfg.AmbulanceDelay, cfg.HospitalDelay,
		)
	}
	if err := cfg.Fallback.Validate(); err != nil {
		return nil, fmt.Errorf("new dispatcher: fallback: %w", err)
	}
	if observer == nil {
		observer = nopPresenter{}
	}

	return &Dispatcher{
		cfg:       cfg,
		locator:   locator,
		rng:       rng,
		scheduler: scheduler,
		observer:  observer,
	}, nil
}

// Start begins a new emergency and cancels the previous one.
//
// The location is resolved synchronously (falling back to the configured
// coordinate), responders are generated and matched, and the confirmations
// are scheduled. The returned Emergency has not been confirmed yet.
func (d *Dispatcher) Start(ctx context.Context) (_ Emergency, err error) {
	id := uuid.NewString()
	ctx = obs.WithSessionID(ctx, id)
	defer obs.Time(ctx, "dispatch.start")(&err)

	d.mu.Lock()
	d.invalidateLocked()
	gen := d.generation
	d.mu.Unlock()

	d.observer.StatusChanged(ports.StepRequest, false)
	d.observer.StatusChanged(ports.StepAmbulance, false)
	d.observer.StatusChanged(ports.StepHospital, false)
	d.observer.Notify(msgDetecting)

	fix := d.resolveLocation(ctx)
	if err := ctx.Err(); err != nil {
		return Emergency{}, fmt.Errorf("dispatch start: %w", err)
	}

	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		return Emergency{}, fmt.Errorf("dispatch start: %w", ErrDispatchSuperseded)
	}

	em := &Emergency{
		ID:         id,
		StartedAt:  time.Now(),
		Fix:        fix,
		Ambulances: d.cfg.AmbulanceFleet.Generate(d.rng, fix.Coordinate),
		Hospitals:  d.cfg.HospitalFleet.Generate(d.rng, fix.Coordinate),
	}
	em.Ambulance = Nearest(fix.Coordinate, em.Ambulances)
	if em.Ambulance != nil {
		em.ETAMinutes = ETAMinutes(em.Ambulance.DistanceKm)
	}
	em.Hospital = Nearest(fix.Coordinate, em.Hospitals)

	d.current = em
	snapshot := *em
	d.mu.Unlock()

	logMatch(ctx, domain.KindAmbulance, em.Ambulance)
	logMatch(ctx, domain.KindHospital, em.Hospital)

	d.observer.LocationResolved(fix)
	d.observer.StatusChanged(ports.StepRequest, true)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.generation {
		return snapshot, fmt.Errorf("dispatch start: %w", ErrDispatchSuperseded)
	}
	d.pending = d.scheduler.AfterFunc(d.cfg.AmbulanceDelay, func() { d.confirmAmbulance(ctx, gen) })

	return snapshot, nil
}

func (d *Dispatcher) resolveLocation(ctx context.Context) domain.LocationFix {
	var (
		coord domain.Coordinate
		err   error
	)

	if d.locator == nil {
		err = domain.ErrLocationUnsupported
	} else {
		coord, err = d.locator.Locate(ctx)
		if err == nil {
			if verr := coord.Validate(); verr != nil {
				err = fmt.Errorf("%w: %w", domain.ErrLocationUnavailable, verr)
			}
		}
	}

	if err == nil {
		return domain.LocationFix{Coordinate: coord}
	}

	msg := msgLocationFailed
	if errors.Is(err, domain.ErrLocationUnsupported) {
		msg = msgLocationMissing
	}
	log.Printf("session_id=%s op=dispatch.locate fallback=%q err=%v", obs.SessionID(ctx), d.cfg.Fallback, err)
	d.observer.Notify(msg)

	return domain.LocationFix{Coordinate: d.cfg.Fallback, Approximate: true}
}

func logMatch(ctx context.Context, kind domain.CandidateKind, m *domain.RankedCandidate) {
	if m == nil {
		log.Printf("session_id=%s op=dispatch.match kind=%s err=%v", obs.SessionID(ctx), kind, domain.ErrEmptyCandidateSet)
		return
	}
	log.Printf("session_id=%s op=dispatch.match kind=%s name=%q distance_km=%.2f", obs.SessionID(ctx), kind, m.Name, m.DistanceKm)
}

// confirmAmbulance publishes the ambulance and only then schedules the
// hospital, so the hospital can never be confirmed first.
func (d *Dispatcher) confirmAmbulance(ctx context.Context, gen uint64) {
	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		log.Printf("session_id=%s op=dispatch.confirm kind=ambulance stale=true", obs.SessionID(ctx))
		return
	}
	d.current.AmbulanceConfirmed = true
	match, eta := d.current.Ambulance, d.current.ETAMinutes
	d.pending = nil
	d.mu.Unlock()

	d.observer.AmbulanceConfirmed(match, eta)
	d.observer.StatusChanged(ports.StepAmbulance, true)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.generation {
		return
	}
	d.pending = d.scheduler.AfterFunc(d.cfg.HospitalDelay-d.cfg.AmbulanceDelay, func() { d.confirmHospital(ctx, gen) })
}

func (d *Dispatcher) confirmHospital(ctx context.Context, gen uint64) {
	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		log.Printf("session_id=%s op=dispatch.confirm kind=hospital stale=true", obs.SessionID(ctx))
		return
	}
	d.current.HospitalConfirmed = true
	match := d.current.Hospital
	d.pending = nil
	d.mu.Unlock()

	d.observer.HospitalConfirmed(match)
	d.observer.StatusChanged(ports.StepHospital, true)
	d.observer.Notify(msgResponderNotified)
}

// Cancel invalidates the pending confirmations of the current emergency.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.invalidateLocked()
}

func (d *Dispatcher) invalidateLocked() {
	d.generation++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

// Current returns a copy of the latest emergency, if any.
func (d *Dispatcher) Current() (Emergency, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return Emergency{}, false
	}
	return *d.current, true
}
