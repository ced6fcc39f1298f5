package booking

import (
	"errors"
	"sync"
	"time"
)

// Step is the ephemeral state of one application flow. It is never
// persisted; closing the flow resets it.
type Step string

const (
	StepIdle       Step = "idle"
	StepChecking   Step = "checking"
	StepConfirm    Step = "confirm"
	StepPayment    Step = "payment"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
)

// User-facing alert texts.
const (
	CapacityAlert = "정원이 가득 찼습니다"
	FailureAlert  = "신청 처리 중 오류가 발생했습니다"
)

// Payment method labels as they end up on the request record.
const (
	MethodCard    = "Credit Card"
	MethodAccount = "Bank Transfer"
	MethodCash    = "Cash"
)

var (
	ErrInvalidStep   = errors.New("event not valid in current step")
	ErrUnknownMethod = errors.New("unknown payment method")
)

// MethodLabel maps a payment form choice (card, account, cash) to the
// label recorded on the request.
func MethodLabel(method string) (string, error) {
	switch method {
	case "card":
		return MethodCard, nil
	case "account":
		return MethodAccount, nil
	case "cash":
		return MethodCash, nil
	}
	return "", ErrUnknownMethod
}

// Schedule is the machine's snapshot of the slot being applied for.
type Schedule struct {
	ID            uint
	OwnerID       uint
	Kind          string // partner | agent
	Title         string
	Date          string
	MaxSlots      int
	CurrentSlots  int
	PersonalPrice float64
	CompanyPrice  float64
}

// Session identifies the viewer driving the machine.
type Session struct {
	Authenticated bool
	IsCompany     bool
	UserID        uint
	UserName      string
}

// Application is what the machine hands to the sink when a run reaches
// success.
type Application struct {
	Kind          string
	TargetID      uint
	UserID        uint
	UserName      string
	ScheduleID    uint
	ScheduleTitle string
	ScheduleDate  string
	PaymentStatus string
	PaymentAmount float64
	PaymentMethod string
}

// Sink receives the registry write when a run completes.
type Sink interface {
	CreateRequest(app Application) error
}

// Scheduler delays a callback. The returned func cancels the pending
// callback if it has not fired yet. It exists so the two latency points
// (capacity check, payment processing) can be driven manually in tests.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler runs callbacks on real timers.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Hooks are optional observers of the machine. Nil funcs are skipped.
type Hooks struct {
	OnTransition func(from, to Step)
	OnAlert      func(message string)
	OnRedirect   func(path string)
	OnCreated    func(app Application)
}

// Config tunes the two suspension points and the success auto-reset.
type Config struct {
	CheckDelay     time.Duration // capacity check latency
	ProcessDelay   time.Duration // payment processing latency
	AutoResetAfter time.Duration // zero disables the success auto-reset
	LoginPath      string        // redirect target for unauthenticated apply
}

const (
	DefaultCheckDelay   = 600 * time.Millisecond
	DefaultProcessDelay = 1500 * time.Millisecond
	DefaultLoginPath    = "/login"
)

func (c Config) withDefaults() Config {
	if c.CheckDelay == 0 {
		c.CheckDelay = DefaultCheckDelay
	}
	if c.ProcessDelay == 0 {
		c.ProcessDelay = DefaultProcessDelay
	}
	if c.LoginPath == "" {
		c.LoginPath = DefaultLoginPath
	}
	return c
}

// Machine walks one application through
// idle → checking → confirm → [payment →] processing → success.
// Events arrive from a single caller; the mutex only guards against the
// scheduler firing a delayed callback concurrently with an event.
type Machine struct {
	mu       sync.Mutex
	step     Step
	schedule Schedule
	session  Session
	cfg      Config
	sched    Scheduler
	sink     Sink
	hooks    Hooks

	// gen invalidates pending scheduler callbacks after Cancel/Close.
	gen           int
	cancelPending func()
}

// New builds a machine at StepIdle. A nil scheduler falls back to real
// timers; a nil sink makes success unreachable past processing, so callers
// always pass one outside of tests.
func New(schedule Schedule, session Session, cfg Config, sched Scheduler, sink Sink, hooks Hooks) *Machine {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Machine{
		step:     StepIdle,
		schedule: schedule,
		session:  session,
		cfg:      cfg.withDefaults(),
		sched:    sched,
		sink:     sink,
		hooks:    hooks,
	}
}

// Step returns the current step.
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Apply starts the flow. An unauthenticated viewer never enters the
// machine: a redirect to the login path fires and the step stays idle.
func (m *Machine) Apply() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepIdle {
		return ErrInvalidStep
	}
	if !m.session.Authenticated {
		if m.hooks.OnRedirect != nil {
			m.hooks.OnRedirect(m.cfg.LoginPath)
		}
		return nil
	}

	m.transition(StepChecking)
	gen := m.gen
	m.cancelPending = m.sched.After(m.cfg.CheckDelay, func() { m.finishCheck(gen) })
	return nil
}

// finishCheck resolves the simulated capacity check.
func (m *Machine) finishCheck(gen int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.step != StepChecking {
		return
	}
	m.cancelPending = nil

	if m.schedule.CurrentSlots < m.schedule.MaxSlots {
		m.transition(StepConfirm)
		return
	}
	if m.hooks.OnAlert != nil {
		m.hooks.OnAlert(CapacityAlert)
	}
	m.transition(StepIdle)
}

// Price returns the amount applicable to the viewer's mode.
func (m *Machine) Price() float64 {
	if m.session.IsCompany {
		return m.schedule.CompanyPrice
	}
	return m.schedule.PersonalPrice
}

// Confirm moves past the confirmation screen. A positive applicable price
// routes through payment; a free booking goes straight to processing.
func (m *Machine) Confirm() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepConfirm {
		return ErrInvalidStep
	}
	if m.Price() > 0 {
		m.transition(StepPayment)
		return nil
	}
	m.beginProcessing("pending", 0, "")
	return nil
}

// SubmitPayment completes the mock payment form with one of card, account
// or cash.
func (m *Machine) SubmitPayment(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepPayment {
		return ErrInvalidStep
	}
	label, err := MethodLabel(method)
	if err != nil {
		return err
	}
	m.beginProcessing("paid", m.Price(), label)
	return nil
}

// beginProcessing schedules the simulated payment-processing latency and
// the registry write. Caller holds the lock.
func (m *Machine) beginProcessing(paymentStatus string, amount float64, method string) {
	m.transition(StepProcessing)
	app := Application{
		Kind:          m.schedule.Kind,
		TargetID:      m.schedule.OwnerID,
		UserID:        m.session.UserID,
		UserName:      m.session.UserName,
		ScheduleID:    m.schedule.ID,
		ScheduleTitle: m.schedule.Title,
		ScheduleDate:  m.schedule.Date,
		PaymentStatus: paymentStatus,
		PaymentAmount: amount,
		PaymentMethod: method,
	}
	gen := m.gen
	m.cancelPending = m.sched.After(m.cfg.ProcessDelay, func() { m.finalize(gen, app) })
}

// finalize performs the registry write. A write failure alerts and resets
// to idle; there is no retry or partial-state recovery.
func (m *Machine) finalize(gen int, app Application) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.step != StepProcessing {
		return
	}
	m.cancelPending = nil

	if err := m.sink.CreateRequest(app); err != nil {
		if m.hooks.OnAlert != nil {
			m.hooks.OnAlert(FailureAlert)
		}
		m.transition(StepIdle)
		return
	}
	if m.hooks.OnCreated != nil {
		m.hooks.OnCreated(app)
	}
	m.transition(StepSuccess)

	if m.cfg.AutoResetAfter > 0 {
		gen := m.gen
		m.cancelPending = m.sched.After(m.cfg.AutoResetAfter, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if gen == m.gen && m.step == StepSuccess {
				m.transition(StepIdle)
			}
		})
	}
}

// Cancel is the explicit user cancellation from the confirm or payment
// screens.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepConfirm && m.step != StepPayment {
		return ErrInvalidStep
	}
	m.invalidatePending()
	m.transition(StepIdle)
	return nil
}

// Close resets the machine from any step, dropping pending work. Mirrors
// the owning modal being dismissed.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.invalidatePending()
	if m.step != StepIdle {
		m.transition(StepIdle)
	}
}

func (m *Machine) invalidatePending() {
	m.gen++
	if m.cancelPending != nil {
		m.cancelPending()
		m.cancelPending = nil
	}
}

func (m *Machine) transition(to Step) {
	from := m.step
	m.step = to
	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(from, to)
	}
}
