package routes

import (
	"net/http"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

type ScheduleInput struct {
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string  `json:"time"`
	Title         string  `json:"title" validate:"required,max=200"`
	Description   string  `json:"description"`
	MaxSlots      int     `json:"maxSlots" validate:"required,min=1"`
	CurrentSlots  int     `json:"currentSlots" validate:"min=0"`
	PersonalPrice float64 `json:"personalPrice" validate:"min=0"`
	CompanyPrice  float64 `json:"companyPrice" validate:"min=0"`
	DetailImage   string  `json:"detailImage"`
}

// CreatePartnerSchedule adds a schedule under a partner.
func CreatePartnerSchedule(ctx iris.Context) {
	createOwnedSchedule(ctx, "partner", models.RolePartner)
}

// CreateAgentSchedule adds a schedule under an agent.
func CreateAgentSchedule(ctx iris.Context) {
	createOwnedSchedule(ctx, "agent", models.RoleAgent)
}

func createOwnedSchedule(ctx iris.Context, ownerType, role string) {
	ownerID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !canManageTarget(ctx, role, ownerID) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "not your catalog")
		return
	}
	if !ownerExists(ownerType, ownerID) {
		utils.CreateNotFound(ctx)
		return
	}

	var input ScheduleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.CurrentSlots > input.MaxSlots {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_slots",
			"currentSlots may not exceed maxSlots")
		return
	}

	schedule := models.Schedule{
		OwnerType:     ownerType,
		OwnerID:       ownerID,
		Date:          input.Date,
		Time:          input.Time,
		Title:         input.Title,
		Description:   input.Description,
		MaxSlots:      input.MaxSlots,
		CurrentSlots:  input.CurrentSlots,
		PersonalPrice: input.PersonalPrice,
		CompanyPrice:  input.CompanyPrice,
		DetailImage:   input.DetailImage,
	}
	if err := storage.DB.Create(&schedule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "schedule.create", "schedule", schedule.ID, nil, schedule)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &schedule})
}

func ownerExists(ownerType string, ownerID uint) bool {
	var count int64
	if ownerType == "agent" {
		storage.DB.Model(&models.Agent{}).Where("id = ?", ownerID).Count(&count)
	} else {
		storage.DB.Model(&models.Partner{}).Where("id = ?", ownerID).Count(&count)
	}
	return count > 0
}

func UpdateSchedule(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var schedule models.Schedule
	if err := storage.DB.First(&schedule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	role := models.RolePartner
	if schedule.OwnerType == "agent" {
		role = models.RoleAgent
	}
	if !canManageTarget(ctx, role, schedule.OwnerID) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "not your catalog")
		return
	}

	var input ScheduleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.CurrentSlots > input.MaxSlots {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_slots",
			"currentSlots may not exceed maxSlots")
		return
	}

	before := schedule
	schedule.Date = input.Date
	schedule.Time = input.Time
	schedule.Title = input.Title
	schedule.Description = input.Description
	schedule.MaxSlots = input.MaxSlots
	schedule.CurrentSlots = input.CurrentSlots
	schedule.PersonalPrice = input.PersonalPrice
	schedule.CompanyPrice = input.CompanyPrice
	schedule.DetailImage = input.DetailImage
	if err := storage.DB.Save(&schedule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "schedule.update", "schedule", schedule.ID, before, schedule)
	ctx.JSON(iris.Map{"data": &schedule})
}

func DeleteSchedule(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var schedule models.Schedule
	if err := storage.DB.First(&schedule, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	role := models.RolePartner
	if schedule.OwnerType == "agent" {
		role = models.RoleAgent
	}
	if !canManageTarget(ctx, role, schedule.OwnerID) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "not your catalog")
		return
	}

	if err := storage.DB.Delete(&schedule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "schedule.delete", "schedule", id, schedule, nil)
	ctx.JSON(iris.Map{"success": true})
}
