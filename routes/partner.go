package routes

import (
	"net/http"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

type PartnerInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"required,oneof=course beauty performance travel food"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// GetPartners lists approved partners, optionally narrowed by the
// storefront category segment.
func GetPartners(ctx iris.Context) {
	category := ctx.URLParamDefault("category", "")

	q := storage.DB.Where("status = ?", "approved")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var partners []models.Partner
	if err := q.Preload("Schedules").Order("name ASC").Find(&partners).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": partners})
}

func GetPartner(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var partner models.Partner
	if err := storage.DB.Preload("Schedules").First(&partner, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &partner})
}

func CreatePartner(ctx iris.Context) {
	var input PartnerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	partner := models.Partner{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
		Phone:       input.Phone,
		Address:     input.Address,
		Status:      "approved",
	}
	if err := storage.DB.Create(&partner).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "partner.create", "partner", partner.ID, nil, partner)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &partner})
}

func UpdatePartner(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !canManageTarget(ctx, models.RolePartner, id) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "not your partner record")
		return
	}

	var partner models.Partner
	if err := storage.DB.First(&partner, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input PartnerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := partner
	partner.Name = input.Name
	partner.Category = input.Category
	partner.Description = input.Description
	partner.Image = input.Image
	partner.Phone = input.Phone
	partner.Address = input.Address
	if err := storage.DB.Save(&partner).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "partner.update", "partner", partner.ID, before, partner)
	ctx.JSON(iris.Map{"data": &partner})
}

func DeletePartner(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var partner models.Partner
	if err := storage.DB.First(&partner, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&partner).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "partner.delete", "partner", id, partner, nil)
	ctx.JSON(iris.Map{"success": true})
}

// canManageTarget allows super admins everywhere and scoped admins on
// their own record only.
func canManageTarget(ctx iris.Context, role string, targetID uint) bool {
	scope := utils.ScopeFromContext(ctx)
	if scope.Role == models.RoleSuper {
		return true
	}
	return scope.Role == role && scope.TargetID == targetID
}
