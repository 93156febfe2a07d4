package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/clock"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// contactController runs the submission state machine for one page session
type contactController struct {
	mu      sync.Mutex
	state   domain.ContactState
	changed chan struct{}
	revert  clock.Timer

	relay       domain.RelayConfig
	sender      domain.MailSender
	clock       clock.Clock
	revertDelay time.Duration
	validate    *validator.Validate
	log         *zap.SugaredLogger
	inflight    *sync.WaitGroup
}

func newContactController(opts ContactOptions, inflight *sync.WaitGroup, log *zap.SugaredLogger) *contactController {
	return &contactController{
		state:       domain.NewContactState(),
		changed:     make(chan struct{}),
		relay:       opts.Relay,
		sender:      opts.Sender,
		clock:       opts.Clock,
		revertDelay: opts.RevertDelay,
		validate:    opts.Validate,
		log:         log,
		inflight:    inflight,
	}
}

// Submit accepts a submission and starts delivery in the background.
// The returned state is the one right after acceptance, before delivery
// can change it. An error means the submission was not accepted.
func (c *contactController) Submit(ctx context.Context, req *domain.ContactRequest) (domain.ContactState, error) {
	trimmed := req.Trimmed()
	if err := c.validate.StructCtx(ctx, &trimmed); err != nil {
		contactSubmissions.WithLabelValues(outcomeInvalid).Inc()
		return c.State(), err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.apply(domain.ContactEvent{Kind: domain.EventSubmit, Form: domain.FormFromRequest(req)}) {
		contactSubmissions.WithLabelValues(outcomeInFlight).Inc()
		return c.state, domain.ErrSubmissionInFlight
	}
	seq := c.state.Seq

	// A newer submission supersedes any revert scheduled by an older success
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}

	if missing := c.relay.MissingKeys(); len(missing) > 0 {
		c.log.Warnw("Contact relay not configured", "missing", missing, "seq", seq)
		c.apply(domain.ContactEvent{Kind: domain.EventConfigInvalid, Seq: seq})
		contactSubmissions.WithLabelValues(outcomeNotConfigured).Inc()
		return c.state, nil
	}

	params := domain.MailParams{
		ServiceID:  c.relay.ServiceID,
		TemplateID: c.relay.TemplateID,
		PublicKey:  c.relay.PublicKey,
		PrivateKey: c.relay.PrivateKey,
		Fields:     domain.TemplateParamsFromRequest(req),
	}

	contactSubmissions.WithLabelValues(outcomeAccepted).Inc()
	c.inflight.Add(1)
	go c.deliver(context.WithoutCancel(ctx), seq, params)
	return c.state, nil
}

func (c *contactController) deliver(ctx context.Context, seq uint64, params domain.MailParams) {
	defer c.inflight.Done()

	start := time.Now()
	err := c.sender.Send(ctx, params)
	relayLatencySeconds.Observe(time.Since(start).Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		contactSubmissions.WithLabelValues(outcomeFailed).Inc()
		c.log.Errorw("Contact message delivery failed", "error", err, "seq", seq)
		c.apply(domain.ContactEvent{Kind: domain.EventDeliveryFailed, Seq: seq})
		return
	}

	contactSubmissions.WithLabelValues(outcomeDelivered).Inc()
	c.log.Infow("Contact message delivered", "seq", seq)
	if c.apply(domain.ContactEvent{Kind: domain.EventDelivered, Seq: seq}) {
		c.revert = c.clock.AfterFunc(c.revertDelay, func() { c.revertTo(seq) })
	}
}

func (c *contactController) revertTo(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.apply(domain.ContactEvent{Kind: domain.EventRevert, Seq: seq}) {
		c.revert = nil
	}
}

// apply must be called with mu held
func (c *contactController) apply(ev domain.ContactEvent) bool {
	next, ok := c.state.Apply(ev)
	if !ok {
		c.log.Debugw("Contact event ignored", "event", ev.Kind.String(), "event_seq", ev.Seq, "status", c.state.Status, "seq", c.state.Seq)
		return false
	}
	c.state = next
	close(c.changed)
	c.changed = make(chan struct{})
	return true
}

func (c *contactController) State() domain.ContactState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Await blocks until the state is no longer pending or ctx is done
func (c *contactController) Await(ctx context.Context) domain.ContactState {
	for {
		c.mu.Lock()
		state, changed := c.state, c.changed
		c.mu.Unlock()

		if state.Status != domain.ContactPending {
			return state
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return state
		}
	}
}

func (c *contactController) pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Status == domain.ContactPending
}

// ContactOptions wires a contactUsecase
type ContactOptions struct {
	Relay       domain.RelayConfig
	Sender      domain.MailSender
	Clock       clock.Clock
	Validate    *validator.Validate
	RevertDelay time.Duration
	IdleTTL     time.Duration
	Logger      *zap.SugaredLogger
}

type contactSession struct {
	controller *contactController
	lastSeen   time.Time
}

type contactUsecase struct {
	opts     ContactOptions
	mu       sync.Mutex
	sessions map[string]*contactSession
	inflight sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// NewContactUsecase creates the per-session contact registry
func NewContactUsecase(opts ContactOptions) domain.ContactUsecase {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Validate == nil {
		opts.Validate = validation.New()
	}
	if opts.RevertDelay <= 0 {
		opts.RevertDelay = 5 * time.Second
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 30 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	uc := &contactUsecase{
		opts:     opts,
		sessions: make(map[string]*contactSession),
		stop:     make(chan struct{}),
	}
	go uc.sweep()
	return uc
}

func (uc *contactUsecase) controller(sessionID string) *contactController {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[sessionID]
	if !ok {
		s = &contactSession{
			controller: newContactController(uc.opts, &uc.inflight, uc.opts.Logger.With("session", sessionID)),
		}
		uc.sessions[sessionID] = s
		activeContactSessions.Inc()
	}
	s.lastSeen = uc.opts.Clock.Now()
	return s.controller
}

func (uc *contactUsecase) Submit(ctx context.Context, sessionID string, req *domain.ContactRequest) (domain.ContactState, error) {
	if sessionID == "" {
		return domain.ContactState{}, fmt.Errorf("contact submit: missing session")
	}
	return uc.controller(sessionID).Submit(ctx, req)
}

// lookup returns the session's controller without creating one
func (uc *contactUsecase) lookup(sessionID string) (*contactController, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[sessionID]
	if !ok {
		return nil, false
	}
	s.lastSeen = uc.opts.Clock.Now()
	return s.controller, true
}

// Status reports Idle for sessions that never submitted, without tracking them
func (uc *contactUsecase) Status(ctx context.Context, sessionID string) domain.ContactState {
	c, ok := uc.lookup(sessionID)
	if !ok {
		return domain.NewContactState()
	}
	return c.State()
}

func (uc *contactUsecase) Await(ctx context.Context, sessionID string) domain.ContactState {
	c, ok := uc.lookup(sessionID)
	if !ok {
		return domain.NewContactState()
	}
	return c.Await(ctx)
}

// Shutdown stops the idle sweep and waits for deliveries already in flight
func (uc *contactUsecase) Shutdown(ctx context.Context) error {
	uc.stopOnce.Do(func() { close(uc.stop) })

	done := make(chan struct{})
	go func() {
		uc.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("contact shutdown: %w", ctx.Err())
	}
}

func (uc *contactUsecase) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			uc.evictIdle()
		case <-uc.stop:
			return
		}
	}
}

// evictIdle drops sessions unused for IdleTTL unless a delivery is running
func (uc *contactUsecase) evictIdle() int {
	now := uc.opts.Clock.Now()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	evicted := 0
	for id, s := range uc.sessions {
		if now.Sub(s.lastSeen) < uc.opts.IdleTTL || s.controller.pending() {
			continue
		}
		delete(uc.sessions, id)
		activeContactSessions.Dec()
		evicted++
	}
	if evicted > 0 {
		uc.opts.Logger.Debugw("Evicted idle contact sessions", "count", evicted)
	}
	return evicted
}
