package routes

import (
	"errors"
	"net/http"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/booking"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/services"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

// Shared service handles, wired once at startup.
var (
	requestStore    storage.RequestStore
	bookingService  *services.BookingService
	notificationSvc *services.NotificationService
)

// InitializeServices wires the handlers to their backing services.
func InitializeServices(store storage.RequestStore, bookingSvc *services.BookingService, notifications *services.NotificationService) {
	requestStore = store
	bookingService = bookingSvc
	notificationSvc = notifications
}

type ApplyRequestInput struct {
	Kind          string `json:"kind" validate:"required,oneof=partner agent"`
	ScheduleID    uint   `json:"scheduleID" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=card account cash"`
}

// ApplySchedule runs the booking flow for the authenticated member:
// capacity check, optional payment, registry write.
func ApplySchedule(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input ApplyRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var schedule models.Schedule
	if err := storage.DB.Where("id = ? AND owner_type = ?", input.ScheduleID, input.Kind).
		First(&schedule).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	price := schedule.PersonalPrice
	if user.IsCompany {
		price = schedule.CompanyPrice
	}
	if price > 0 && input.PaymentMethod == "" {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "payment_required",
			"paymentMethod is required for paid schedules")
		return
	}

	result, err := bookingService.Apply(services.ApplyInput{
		Kind:     input.Kind,
		Schedule: schedule,
		Session: booking.Session{
			Authenticated: true,
			IsCompany:     user.IsCompany,
			UserID:        user.ID,
			UserName:      user.Name,
		},
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCapacityFull):
			ctx.StatusCode(iris.StatusConflict)
			ctx.JSON(iris.Map{"error": "capacity_full", "message": booking.CapacityAlert})
		case errors.Is(err, booking.ErrUnknownMethod):
			utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payment", "unknown payment method")
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"data":    result.Request,
		"steps":   result.Steps,
	})
}

// GetMyRequests lists the authenticated member's own requests.
func GetMyRequests(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	items, err := requestStore.List(storage.RequestFilter{UserID: userID})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": items})
}
