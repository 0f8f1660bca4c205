package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"rapid-response-sim/internal/adapters/location"
	"rapid-response-sim/internal/adapters/presenter"
	"rapid-response-sim/internal/adapters/scheduler"
	"rapid-response-sim/internal/config"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
	"rapid-response-sim/internal/services"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const usage = "commands: <n> answer with option n, r restart questions, e new emergency, q quit"

// main is the application composition root.
// It wires the location, scheduler and presenter adapters behind ports and
// runs one interactive emergency session on stdin.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, p, err := newSession(cfg, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	if err := run(ctx, session, p, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// newSession returns the session and the presenter it reports to. Everything
// written to out goes through that presenter.
func newSession(cfg config.Config, out io.Writer) (*services.Session, ports.Presenter, error) {
	var p ports.Presenter
	switch cfg.Presenter {
	case config.PresenterJSON:
		p = presenter.NewJSONPresenter(out)
	default:
		p = presenter.NewTextPresenter(out)
	}

	// Without a configured position the device behaves as if it had no location support.
	var locator ports.LocationProvider = location.UnavailableProvider{}
	if cfg.Location != nil {
		locator = location.NewStaticProvider(*cfg.Location)
	}
	locator = location.NewTimeoutProvider(locator, cfg.LocationTimeout)

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("simulator starting presenter=%s seed=%d", cfg.Presenter, seed)

	dispatchCfg := services.DefaultDispatchConfig()
	dispatchCfg.Fallback = cfg.Fallback
	dispatchCfg.AmbulanceDelay = cfg.AmbulanceDelay
	dispatchCfg.HospitalDelay = cfg.HospitalDelay

	sched := scheduler.TimerScheduler{}
	dispatcher, err := services.NewDispatcher(dispatchCfg, locator, rand.New(rand.NewPCG(seed, seed)), sched, p)
	if err != nil {
		return nil, nil, fmt.Errorf("new session: %w", err)
	}

	flow := services.NewQuestionFlow(services.FlowOptions{
		AckDelay:  cfg.TypingDelay,
		Scheduler: sched,
		Observer:  p,
	})

	return services.NewSession(dispatcher, flow), p, nil
}

// run triggers an emergency and then feeds stdin commands into the session
// until EOF, "q" or ctx is cancelled.
func run(ctx context.Context, s *services.Session, p ports.Presenter, in io.Reader) error {
	if _, err := s.Trigger(ctx); err != nil {
		return err
	}
	p.Hint(usage)

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := handleCommand(ctx, s, p, strings.TrimSpace(line))
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

func handleCommand(ctx context.Context, s *services.Session, p ports.Presenter, cmd string) (quit bool, err error) {
	switch cmd {
	case "":
		return false, nil
	case "q":
		return true, nil
	case "r":
		s.ResetGuidance()
		return false, nil
	case "e":
		_, err := s.Trigger(ctx)
		return false, err
	}

	n, convErr := strconv.Atoi(cmd)
	if convErr != nil {
		p.Hint(usage)
		return false, nil
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		p.Hint("All questions answered. Press r to start over.")
		return false, nil
	}
	if n < 1 || n > len(q.Options) {
		p.Hint(fmt.Sprintf("Choose an option between 1 and %d.", len(q.Options)))
		return false, nil
	}

	err = s.Answer(q.ID, q.Options[n-1].Value)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrFlowBusy):
		p.Hint("Please wait for the next question.")
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrUnknownOption):
		log.Printf("answer rejected: %v", err)
	default:
		return false, err
	}
	return false, nil
}
