package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler queues callbacks and fires them on demand, standing in
// for the two simulated-latency delays.
type manualScheduler struct {
	pending []func()
}

func (m *manualScheduler) After(d time.Duration, fn func()) func() {
	m.pending = append(m.pending, fn)
	i := len(m.pending) - 1
	return func() { m.pending[i] = nil }
}

// fire runs the oldest pending callback, if any.
func (m *manualScheduler) fire() {
	for i, fn := range m.pending {
		if fn != nil {
			m.pending[i] = nil
			fn()
			return
		}
	}
}

type recordingSink struct {
	apps []Application
	err  error
}

func (s *recordingSink) CreateRequest(app Application) error {
	if s.err != nil {
		return s.err
	}
	s.apps = append(s.apps, app)
	return nil
}

type recorder struct {
	steps     []Step
	alerts    []string
	redirects []string
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnTransition: func(_, to Step) { r.steps = append(r.steps, to) },
		OnAlert:      func(msg string) { r.alerts = append(r.alerts, msg) },
		OnRedirect:   func(path string) { r.redirects = append(r.redirects, path) },
	}
}

func openSchedule() Schedule {
	return Schedule{
		ID:            7,
		OwnerID:       3,
		Kind:          "partner",
		Title:         "원데이 클래스",
		Date:          "2026-09-15",
		MaxSlots:      10,
		CurrentSlots:  2,
		PersonalPrice: 0,
		CompanyPrice:  80000,
	}
}

func TestApplyUnauthenticatedRedirects(t *testing.T) {
	sched := &manualScheduler{}
	sink := &recordingSink{}
	rec := &recorder{}
	m := New(openSchedule(), Session{Authenticated: false}, Config{}, sched, sink, rec.hooks())

	require.NoError(t, m.Apply())

	assert.Equal(t, StepIdle, m.Step())
	assert.Equal(t, []string{"/login"}, rec.redirects)
	assert.Empty(t, rec.steps, "machine must not be entered")
	assert.Empty(t, sched.pending, "no capacity check scheduled")
	assert.Empty(t, sink.apps)
}

func TestApplyCapacityFull(t *testing.T) {
	s := openSchedule()
	s.MaxSlots = 10
	s.CurrentSlots = 10

	sched := &manualScheduler{}
	sink := &recordingSink{}
	rec := &recorder{}
	m := New(s, Session{Authenticated: true, UserID: 1}, Config{}, sched, sink, rec.hooks())

	require.NoError(t, m.Apply())
	require.Equal(t, StepChecking, m.Step())

	sched.fire() // capacity check resolves

	assert.Equal(t, StepIdle, m.Step())
	assert.Equal(t, []string{CapacityAlert}, rec.alerts)
	assert.Empty(t, sink.apps, "no registry write on capacity exhaustion")
}

func TestFreeBookingSkipsPayment(t *testing.T) {
	sched := &manualScheduler{}
	sink := &recordingSink{}
	rec := &recorder{}
	sess := Session{Authenticated: true, UserID: 5, UserName: "홍길동"}
	m := New(openSchedule(), sess, Config{}, sched, sink, rec.hooks())

	require.NoError(t, m.Apply())
	sched.fire()
	require.Equal(t, StepConfirm, m.Step())

	require.NoError(t, m.Confirm())
	require.Equal(t, StepProcessing, m.Step())
	sched.fire()

	assert.Equal(t, StepSuccess, m.Step())
	assert.Equal(t, []Step{StepChecking, StepConfirm, StepProcessing, StepSuccess}, rec.steps)

	require.Len(t, sink.apps, 1)
	app := sink.apps[0]
	assert.Equal(t, "pending", app.PaymentStatus)
	assert.Zero(t, app.PaymentAmount)
	assert.Empty(t, app.PaymentMethod)
	assert.Equal(t, uint(7), app.ScheduleID)
	assert.Equal(t, "홍길동", app.UserName)
}

func TestPaidBookingWithCard(t *testing.T) {
	s := openSchedule()
	s.PersonalPrice = 50000

	sched := &manualScheduler{}
	sink := &recordingSink{}
	rec := &recorder{}
	m := New(s, Session{Authenticated: true, UserID: 5}, Config{}, sched, sink, rec.hooks())

	require.NoError(t, m.Apply())
	sched.fire()
	require.NoError(t, m.Confirm())
	require.Equal(t, StepPayment, m.Step(), "positive price must route through payment")

	require.NoError(t, m.SubmitPayment("card"))
	require.Equal(t, StepProcessing, m.Step())
	sched.fire()

	require.Equal(t, StepSuccess, m.Step())
	require.Len(t, sink.apps, 1)
	assert.Equal(t, "paid", sink.apps[0].PaymentStatus)
	assert.Equal(t, 50000.0, sink.apps[0].PaymentAmount)
	assert.Equal(t, MethodCard, sink.apps[0].PaymentMethod)
}

func TestCompanyModeUsesCompanyPrice(t *testing.T) {
	sched := &manualScheduler{}
	sink := &recordingSink{}
	m := New(openSchedule(), Session{Authenticated: true, IsCompany: true}, Config{}, sched, sink, Hooks{})

	require.NoError(t, m.Apply())
	sched.fire()
	require.NoError(t, m.Confirm())
	require.Equal(t, StepPayment, m.Step())

	require.NoError(t, m.SubmitPayment("account"))
	sched.fire()

	require.Len(t, sink.apps, 1)
	assert.Equal(t, 80000.0, sink.apps[0].PaymentAmount)
	assert.Equal(t, MethodAccount, sink.apps[0].PaymentMethod)
}

func TestUnknownPaymentMethodRejected(t *testing.T) {
	s := openSchedule()
	s.PersonalPrice = 1000

	sched := &manualScheduler{}
	m := New(s, Session{Authenticated: true}, Config{}, sched, &recordingSink{}, Hooks{})

	require.NoError(t, m.Apply())
	sched.fire()
	require.NoError(t, m.Confirm())

	err := m.SubmitPayment("bitcoin")
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.Equal(t, StepPayment, m.Step())
}

func TestCancelFromConfirmAndPayment(t *testing.T) {
	s := openSchedule()
	s.PersonalPrice = 1000

	for _, target := range []Step{StepConfirm, StepPayment} {
		sched := &manualScheduler{}
		sink := &recordingSink{}
		m := New(s, Session{Authenticated: true}, Config{}, sched, sink, Hooks{})

		require.NoError(t, m.Apply())
		sched.fire()
		if target == StepPayment {
			require.NoError(t, m.Confirm())
		}
		require.Equal(t, target, m.Step())

		require.NoError(t, m.Cancel())
		assert.Equal(t, StepIdle, m.Step())
		assert.Empty(t, sink.apps)
	}
}

func TestCancelInvalidFromIdle(t *testing.T) {
	m := New(openSchedule(), Session{Authenticated: true}, Config{}, &manualScheduler{}, &recordingSink{}, Hooks{})
	assert.ErrorIs(t, m.Cancel(), ErrInvalidStep)
}

func TestCloseDropsPendingCheck(t *testing.T) {
	sched := &manualScheduler{}
	sink := &recordingSink{}
	m := New(openSchedule(), Session{Authenticated: true}, Config{}, sched, sink, Hooks{})

	require.NoError(t, m.Apply())
	require.Equal(t, StepChecking, m.Step())

	m.Close()
	assert.Equal(t, StepIdle, m.Step())

	sched.fire() // stale callback must be a no-op
	assert.Equal(t, StepIdle, m.Step())
	assert.Empty(t, sink.apps)
}

func TestRegistryWriteFailureResetsToIdle(t *testing.T) {
	sched := &manualScheduler{}
	sink := &recordingSink{err: errors.New("write failed")}
	rec := &recorder{}
	m := New(openSchedule(), Session{Authenticated: true}, Config{}, sched, sink, rec.hooks())

	require.NoError(t, m.Apply())
	sched.fire()
	require.NoError(t, m.Confirm())
	sched.fire()

	assert.Equal(t, StepIdle, m.Step())
	assert.Equal(t, []string{FailureAlert}, rec.alerts)
}

func TestSuccessAutoReset(t *testing.T) {
	sched := &manualScheduler{}
	sink := &recordingSink{}
	m := New(openSchedule(), Session{Authenticated: true}, Config{AutoResetAfter: 2 * time.Second}, sched, sink, Hooks{})

	require.NoError(t, m.Apply())
	sched.fire()
	require.NoError(t, m.Confirm())
	sched.fire()
	require.Equal(t, StepSuccess, m.Step())

	sched.fire() // auto-reset timer
	assert.Equal(t, StepIdle, m.Step())
}

func TestReapplyAfterCloseCreatesSecondRequest(t *testing.T) {
	sched := &manualScheduler{}
	sink := &recordingSink{}
	m := New(openSchedule(), Session{Authenticated: true, UserID: 5}, Config{}, sched, sink, Hooks{})

	for i := 0; i < 2; i++ {
		require.NoError(t, m.Apply())
		sched.fire()
		require.NoError(t, m.Confirm())
		sched.fire()
		require.Equal(t, StepSuccess, m.Step())
		m.Close()
	}

	// Repurchase is always allowed: both runs are retained.
	assert.Len(t, sink.apps, 2)
}
