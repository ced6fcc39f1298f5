package services

import (
	"fmt"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"

	"go.uber.org/zap"
)

// NotificationService writes in-app notifications for members.
type NotificationService struct {
	logger *zap.Logger
}

func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{logger: logger}
}

func (n *NotificationService) create(notification models.Notification) {
	if storage.DB == nil {
		return
	}
	if err := storage.DB.Create(&notification).Error; err != nil {
		n.logger.Warn("notification write failed",
			zap.String("type", notification.Type), zap.Error(err))
	}
}

// BookingConfirmed notifies the applicant that their request was recorded.
func (n *NotificationService) BookingConfirmed(req *models.Request) {
	n.create(models.Notification{
		UserID: req.UserID,
		Type:   "booking_confirmed",
		Title:  "신청이 접수되었습니다",
		Message: fmt.Sprintf("'%s' (%s) 신청이 접수되었습니다. 결제 금액: %.0f원",
			req.ScheduleTitle, req.ScheduleDate, req.PaymentAmount),
		RefType: "request",
		RefID:   req.ID,
	})
}

// RequestStatusChanged notifies the applicant of a back-office transition.
func (n *NotificationService) RequestStatusChanged(req *models.Request) {
	n.create(models.Notification{
		UserID:  req.UserID,
		Type:    "request_status",
		Title:   "신청 상태가 변경되었습니다",
		Message: fmt.Sprintf("'%s' 신청 상태: %s", req.ScheduleTitle, req.Status),
		RefType: "request",
		RefID:   req.ID,
	})
}

// OrderStatusChanged notifies the buyer of an order transition.
func (n *NotificationService) OrderStatusChanged(order *models.Order) {
	n.create(models.Notification{
		UserID:  order.UserID,
		Type:    "order_status",
		Title:   "주문 상태가 변경되었습니다",
		Message: fmt.Sprintf("주문 #%d 상태: %s", order.ID, order.Status),
		RefType: "order",
		RefID:   order.ID,
	})
}
