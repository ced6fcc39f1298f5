package storage

import (
	"errors"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"

	"gorm.io/gorm"
)

var ErrScheduleFull = errors.New("schedule has no open slots")

// IncrementScheduleSlots bumps currentSlots by one with a guarded UPDATE so
// currentSlots can never pass maxSlots, even under concurrent bookings.
func IncrementScheduleSlots(scheduleID uint) error {
	res := DB.Model(&models.Schedule{}).
		Where("id = ? AND current_slots < max_slots", scheduleID).
		UpdateColumn("current_slots", gorm.Expr("current_slots + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrScheduleFull
	}
	return nil
}

// DecrementScheduleSlots releases a slot, flooring at zero.
func DecrementScheduleSlots(scheduleID uint) error {
	return DB.Model(&models.Schedule{}).
		Where("id = ? AND current_slots > 0", scheduleID).
		UpdateColumn("current_slots", gorm.Expr("current_slots - 1")).Error
}
