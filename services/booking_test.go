package services

import (
	"path/filepath"
	"testing"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/booking"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*BookingService, storage.RequestStore) {
	t.Helper()
	// Shrink the simulated latencies so runs complete in a few ms.
	t.Setenv("BOOKING_CHECK_DELAY_MS", "1")
	t.Setenv("BOOKING_PROCESS_DELAY_MS", "1")

	store := storage.NewFileRequestStore(filepath.Join(t.TempDir(), "requests.json"), zap.NewNop())
	return NewBookingService(store, nil, zap.NewNop()), store
}

func testSchedule() models.Schedule {
	return models.Schedule{
		ID:            10,
		OwnerType:     "partner",
		OwnerID:       4,
		Title:         "가죽공예 원데이 클래스",
		Date:          "2026-10-01",
		MaxSlots:      10,
		CurrentSlots:  2,
		PersonalPrice: 0,
	}
}

func TestApplyUnauthenticated(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Apply(ApplyInput{
		Kind:     models.RequestKindPartner,
		Schedule: testSchedule(),
		Session:  booking.Session{Authenticated: false},
	})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	items, _ := store.List(storage.RequestFilter{})
	assert.Empty(t, items)
}

func TestApplyCapacityExhausted(t *testing.T) {
	svc, store := newTestService(t)

	s := testSchedule()
	s.MaxSlots = 10
	s.CurrentSlots = 10

	_, err := svc.Apply(ApplyInput{
		Kind:     models.RequestKindPartner,
		Schedule: s,
		Session:  booking.Session{Authenticated: true, UserID: 1},
	})
	assert.ErrorIs(t, err, ErrCapacityFull)

	items, _ := store.List(storage.RequestFilter{})
	assert.Empty(t, items, "no request record on capacity exhaustion")
}

func TestApplyFreeBooking(t *testing.T) {
	svc, store := newTestService(t)

	res, err := svc.Apply(ApplyInput{
		Kind:     models.RequestKindPartner,
		Schedule: testSchedule(),
		Session:  booking.Session{Authenticated: true, UserID: 7, UserName: "이영희"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]booking.Step{booking.StepChecking, booking.StepConfirm, booking.StepProcessing, booking.StepSuccess},
		res.Steps)

	require.NotNil(t, res.Request)
	assert.Equal(t, "pending", res.Request.PaymentStatus)
	assert.Zero(t, res.Request.PaymentAmount)
	assert.Equal(t, "pending", res.Request.Status, "default status assigned by the registry")

	items, _ := store.List(storage.RequestFilter{UserID: 7})
	assert.Len(t, items, 1)
}

func TestApplyPaidBookingWithCard(t *testing.T) {
	svc, _ := newTestService(t)

	s := testSchedule()
	s.PersonalPrice = 50000

	res, err := svc.Apply(ApplyInput{
		Kind:          models.RequestKindPartner,
		Schedule:      s,
		Session:       booking.Session{Authenticated: true, UserID: 7},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.Contains(t, res.Steps, booking.StepPayment)
	assert.Equal(t, "paid", res.Request.PaymentStatus)
	assert.Equal(t, 50000.0, res.Request.PaymentAmount)
	assert.Equal(t, booking.MethodCard, res.Request.PaymentMethod)
}

func TestApplyPaidBookingUnknownMethod(t *testing.T) {
	svc, store := newTestService(t)

	s := testSchedule()
	s.PersonalPrice = 50000

	_, err := svc.Apply(ApplyInput{
		Kind:          models.RequestKindPartner,
		Schedule:      s,
		Session:       booking.Session{Authenticated: true, UserID: 7},
		PaymentMethod: "check",
	})
	assert.ErrorIs(t, err, booking.ErrUnknownMethod)

	items, _ := store.List(storage.RequestFilter{})
	assert.Empty(t, items)
}

func TestRepurchaseRetainsBothRecords(t *testing.T) {
	svc, store := newTestService(t)

	for i := 0; i < 2; i++ {
		_, err := svc.Apply(ApplyInput{
			Kind:     models.RequestKindPartner,
			Schedule: testSchedule(),
			Session:  booking.Session{Authenticated: true, UserID: 7},
		})
		require.NoError(t, err)
	}

	items, _ := store.List(storage.RequestFilter{UserID: 7})
	assert.Len(t, items, 2)
}
