package services

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/booking"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"

	"go.uber.org/zap"
)

var (
	ErrNotAuthenticated = errors.New("login required")
	ErrCapacityFull     = errors.New("schedule capacity exhausted")
	ErrBookingFailed    = errors.New("booking could not be completed")
)

// BookingService runs the application state machine for one apply call
// and lands the result in the request registry.
type BookingService struct {
	store         storage.RequestStore
	notifications *NotificationService
	logger        *zap.Logger
	cfg           booking.Config

	// incrementSlots turns on the schedule counter bump on success. Off by
	// default: the original flow created the request without touching the
	// counter, leaving it to the back-office.
	incrementSlots bool
}

func NewBookingService(store storage.RequestStore, notifications *NotificationService, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:         store,
		notifications: notifications,
		logger:        logger,
		cfg: booking.Config{
			CheckDelay:   durationFromEnv("BOOKING_CHECK_DELAY_MS", booking.DefaultCheckDelay),
			ProcessDelay: durationFromEnv("BOOKING_PROCESS_DELAY_MS", booking.DefaultProcessDelay),
		},
		incrementSlots: os.Getenv("BOOKING_INCREMENT_SLOTS") == "true",
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// ApplyInput is one application attempt against a schedule.
type ApplyInput struct {
	Kind          string // partner | agent
	Schedule      models.Schedule
	Session       booking.Session
	PaymentMethod string // card | account | cash; required when the price is positive
}

// ApplyResult reports the created request and the steps the run visited.
type ApplyResult struct {
	Request *models.Request
	Steps   []booking.Step
}

// Apply drives a machine from idle through to success or reset and maps
// the terminal state onto an error.
func (s *BookingService) Apply(in ApplyInput) (*ApplyResult, error) {
	events := make(chan booking.Step, 16)
	alerts := make(chan string, 2)
	redirected := false
	createdCh := make(chan models.Request, 1)

	snapshot := booking.Schedule{
		ID:            in.Schedule.ID,
		OwnerID:       in.Schedule.OwnerID,
		Kind:          in.Kind,
		Title:         in.Schedule.Title,
		Date:          in.Schedule.Date,
		MaxSlots:      in.Schedule.MaxSlots,
		CurrentSlots:  in.Schedule.CurrentSlots,
		PersonalPrice: in.Schedule.PersonalPrice,
		CompanyPrice:  in.Schedule.CompanyPrice,
	}

	hooks := booking.Hooks{
		OnTransition: func(_, to booking.Step) { events <- to },
		OnAlert:      func(msg string) { alerts <- msg },
		OnRedirect:   func(string) { redirected = true },
	}
	sink := &registrySink{svc: s, created: createdCh}
	m := booking.New(snapshot, in.Session, s.cfg, nil, sink, hooks)

	if err := m.Apply(); err != nil {
		return nil, err
	}
	if redirected {
		return nil, ErrNotAuthenticated
	}

	var steps []booking.Step
	guard := time.After(s.cfg.CheckDelay + s.cfg.ProcessDelay + 10*time.Second)
	for {
		select {
		case st := <-events:
			steps = append(steps, st)
			switch st {
			case booking.StepConfirm:
				if err := m.Confirm(); err != nil {
					return nil, err
				}
			case booking.StepPayment:
				if err := m.SubmitPayment(in.PaymentMethod); err != nil {
					m.Close()
					return nil, err
				}
			case booking.StepIdle:
				select {
				case msg := <-alerts:
					if msg == booking.CapacityAlert {
						return nil, ErrCapacityFull
					}
				default:
				}
				return nil, ErrBookingFailed
			case booking.StepSuccess:
				req := <-createdCh
				s.logger.Info("booking confirmed",
					zap.Uint("requestID", req.ID),
					zap.String("kind", req.Kind),
					zap.Uint("scheduleID", req.ScheduleID),
					zap.Float64("amount", req.PaymentAmount))
				if s.notifications != nil {
					s.notifications.BookingConfirmed(&req)
				}
				return &ApplyResult{Request: &req, Steps: steps}, nil
			}
		case <-guard:
			m.Close()
			return nil, ErrBookingFailed
		}
	}
}

// registrySink is the machine's write path into the registry.
type registrySink struct {
	svc     *BookingService
	created chan models.Request
}

func (rs *registrySink) CreateRequest(app booking.Application) error {
	req := models.Request{
		Kind:          app.Kind,
		TargetID:      app.TargetID,
		UserID:        app.UserID,
		UserName:      app.UserName,
		ScheduleID:    app.ScheduleID,
		ScheduleTitle: app.ScheduleTitle,
		ScheduleDate:  app.ScheduleDate,
		PaymentStatus: app.PaymentStatus,
		PaymentAmount: app.PaymentAmount,
		PaymentMethod: app.PaymentMethod,
	}
	if err := rs.svc.store.Add(&req); err != nil {
		rs.svc.logger.Error("request registry write failed", zap.Error(err))
		return err
	}

	if rs.svc.incrementSlots {
		if err := storage.IncrementScheduleSlots(app.ScheduleID); err != nil {
			// Capacity raced out between check and write; roll the record back.
			rs.svc.store.Delete(req.ID)
			rs.svc.logger.Warn("slot increment failed, request rolled back",
				zap.Uint("scheduleID", app.ScheduleID), zap.Error(err))
			return err
		}
	}

	rs.created <- req
	return nil
}
