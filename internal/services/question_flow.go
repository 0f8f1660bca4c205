package services

import (
	"fmt"
	"log"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
	"sync"
	"time"

	"github.com/google/uuid"
)

type FlowState int

const (
	FlowAwaitingAnswer FlowState = iota
	FlowComplete
)

func (s FlowState) String() string {
	switch s {
	case FlowAwaitingAnswer:
		return "awaiting_answer"
	case FlowComplete:
		return "complete"
	default:
		return fmt.Sprintf("FlowState(%d)", int(s))
	}
}

const (
	introMessage    = "We will ask a few quick questions to match the right first-aid steps."
	reassureMessage = "Stay calm. Help is already on the way."
)

// GuidanceEngine turns a completed answer state into first-aid steps.
// *Rulebook implements it.
type GuidanceEngine interface {
	Generate(state *domain.AnswerState) ([]domain.GuidanceStep, error)
}

type FlowOptions struct {
	// Defaults to DefaultRulebook().
	Engine GuidanceEngine
	// Acknowledgement ("typing") delay between an accepted answer and the
	// next question. Zero, or a nil Scheduler, acknowledges synchronously.
	AckDelay  time.Duration
	Scheduler ports.Scheduler
	Observer  ports.GuidanceObserver
}

// Read-only view of a QuestionFlow.
type FlowSnapshot struct {
	SessionID string
	State     FlowState
	Index     int
	Busy      bool
	Answers   map[domain.QuestionID]string
	Guidance  []domain.GuidanceStep
}

// QuestionFlow steps through the fixed question catalog, one answer at a time.
//
// It owns exactly one AnswerState and one index. The guidance engine runs once,
// when the last answer moves the flow to FlowComplete. Further answers are
// rejected until Reset.
type QuestionFlow struct {
	questions []domain.Question
	engine    GuidanceEngine
	scheduler ports.Scheduler
	ackDelay  time.Duration
	observer  ports.GuidanceObserver

	mu         sync.Mutex
	sessionID  string
	answers    *domain.AnswerState
	index      int
	busy       bool
	pending    ports.Task
	generation uint64
	guidance   []domain.GuidanceStep
}

// NewQuestionFlow returns a flow in its initial state. Nothing is emitted
// until the first Reset.
func NewQuestionFlow(opts FlowOptions) *QuestionFlow {
	if opts.Engine == nil {
		opts.Engine = DefaultRulebook()
	}
	if opts.Observer == nil {
		opts.Observer = nopPresenter{}
	}

	return &QuestionFlow{
		questions: domain.Questions(),
		engine:    opts.Engine,
		scheduler: opts.Scheduler,
		ackDelay:  opts.AckDelay,
		observer:  opts.Observer,
		sessionID: uuid.NewString(),
		answers:   domain.NewAnswerState(),
	}
}

// Reset starts a fresh guidance session from any state: answers are cleared,
// the index returns to 0 and a pending acknowledgement is cancelled.
func (f *QuestionFlow) Reset() {
	f.mu.Lock()
	f.invalidateLocked()
	f.sessionID = uuid.NewString()
	f.answers.Reset()
	f.index = 0
	f.guidance = nil
	first := f.questions[0]
	sessionID := f.sessionID
	f.mu.Unlock()

	log.Printf("session_id=%s op=flow.reset", sessionID)

	f.observer.SystemMessage(introMessage)
	f.observer.SystemMessage(reassureMessage)
	f.observer.QuestionAsked(first)
}

// Close cancels any pending acknowledgement without starting a new session.
func (f *QuestionFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.invalidateLocked()
}

func (f *QuestionFlow) invalidateLocked() {
	f.generation++
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	f.busy = false
}

func (f *QuestionFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stateLocked()
}

func (f *QuestionFlow) stateLocked() FlowState {
	if f.index >= len(f.questions) {
		return FlowComplete
	}
	return FlowAwaitingAnswer
}

// Current returns the question awaiting an answer. ok is false once complete.
func (f *QuestionFlow) Current() (domain.Question, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stateLocked() == FlowComplete {
		return domain.Question{}, false
	}
	return f.questions[f.index], true
}

// Guidance returns the generated steps once the flow is complete.
func (f *QuestionFlow) Guidance() ([]domain.GuidanceStep, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.guidance == nil {
		return nil, false
	}
	return append([]domain.GuidanceStep(nil), f.guidance...), true
}

func (f *QuestionFlow) Snapshot() FlowSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return FlowSnapshot{
		SessionID: f.sessionID,
		State:     f.stateLocked(),
		Index:     f.index,
		Busy:      f.busy,
		Answers:   f.answers.Map(),
		Guidance:  append([]domain.GuidanceStep(nil), f.guidance...),
	}
}

// Submit records the answer for the current question and advances the flow.
//
// It fails without touching the answer state when the flow is still
// acknowledging the previous answer (domain.ErrFlowBusy), when id is not the
// current question or the flow is complete (domain.ErrInvalidTransition), or
// when value is not one of the question's options (domain.ErrUnknownOption).
func (f *QuestionFlow) Submit(id domain.QuestionID, value string) error {
	f.mu.Lock()

	if err := f.validateLocked(id, value); err != nil {
		sessionID := f.sessionID
		f.mu.Unlock()
		log.Printf("session_id=%s op=flow.submit question=%s value=%q err=%v", sessionID, id, value, err)
		return err
	}

	q := f.questions[f.index]
	opt, _ := q.Option(value)

	if err := f.answers.Set(id, value); err != nil {
		f.mu.Unlock()
		return fmt.Errorf("submit answer: %w", err)
	}
	f.index++

	var genErr error
	if f.stateLocked() == FlowComplete {
		// The only engine invocation of this session.
		f.guidance, genErr = f.engine.Generate(f.answers.Clone())
		if genErr != nil {
			genErr = fmt.Errorf("submit answer: %w", genErr)
		}
	}

	sessionID := f.sessionID
	index := f.index
	gen := f.generation
	deferred := f.scheduler != nil && f.ackDelay > 0
	if deferred {
		f.busy = true
	}
	f.mu.Unlock()

	log.Printf("session_id=%s op=flow.submit question=%s value=%q index=%d", sessionID, id, value, index)

	f.observer.UserMessage(opt.Label)
	if !deferred {
		f.acknowledge(gen)
		return genErr
	}

	// The echo and the typing indicator are out before the acknowledgement
	// can run, whatever the delay.
	f.observer.Typing(true)
	f.scheduleAcknowledge(gen)

	return genErr
}

// scheduleAcknowledge arms the typing delay outside the lock, so a scheduler
// that fires inline cannot deadlock. The task is kept only while it still
// belongs to the current, busy session.
func (f *QuestionFlow) scheduleAcknowledge(gen uint64) {
	task := f.scheduler.AfterFunc(f.ackDelay, func() { f.acknowledge(gen) })

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen == f.generation && f.busy {
		f.pending = task
	}
}

func (f *QuestionFlow) validateLocked(id domain.QuestionID, value string) error {
	if f.busy {
		return fmt.Errorf("submit answer: %w", domain.ErrFlowBusy)
	}

	if f.stateLocked() == FlowComplete {
		return fmt.Errorf("submit answer: %w", &domain.TransitionError{Got: id})
	}

	q := f.questions[f.index]
	if q.ID != id {
		return fmt.Errorf("submit answer: %w", &domain.TransitionError{Expected: q.ID, Got: id})
	}

	if _, ok := q.Option(value); !ok {
		return fmt.Errorf("submit answer: %w: %q for %q", domain.ErrUnknownOption, value, id)
	}

	return nil
}

// acknowledge ends the typing delay and presents the next question, or the
// guidance when the flow is complete. Callbacks from an older session are dropped.
func (f *QuestionFlow) acknowledge(gen uint64) {
	f.mu.Lock()
	if gen != f.generation {
		sessionID := f.sessionID
		f.mu.Unlock()
		log.Printf("session_id=%s op=flow.acknowledge stale=true", sessionID)
		return
	}

	wasBusy := f.busy
	f.busy = false
	f.pending = nil

	complete := f.stateLocked() == FlowComplete
	var next domain.Question
	if !complete {
		next = f.questions[f.index]
	}
	steps := append([]domain.GuidanceStep(nil), f.guidance...)
	f.mu.Unlock()

	if wasBusy {
		f.observer.Typing(false)
	}
	if complete {
		f.observer.GuidanceReady(steps)
		return
	}
	f.observer.QuestionAsked(next)
}
