package routes

import (
	"net/http"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/booking"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

type FreelancerInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Field string `json:"field" validate:"required,max=40"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}

type ContentInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	Thumbnail   string  `json:"thumbnail"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft live hidden"`
}

func GetFreelancers(ctx iris.Context) {
	field := ctx.URLParamDefault("field", "")

	q := storage.DB.Model(&models.Freelancer{})
	if field != "" {
		q = q.Where("field = ?", field)
	}

	var freelancers []models.Freelancer
	if err := q.Preload("Contents", "status = ?", "live").Order("name ASC").Find(&freelancers).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": freelancers})
}

func GetFreelancer(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var freelancer models.Freelancer
	if err := storage.DB.Preload("Contents").First(&freelancer, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &freelancer})
}

func CreateFreelancer(ctx iris.Context) {
	var input FreelancerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	freelancer := models.Freelancer{
		Name:  input.Name,
		Field: input.Field,
		Bio:   input.Bio,
		Image: input.Image,
	}
	if err := storage.DB.Create(&freelancer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "freelancer.create", "freelancer", freelancer.ID, nil, freelancer)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &freelancer})
}

func UpdateFreelancer(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !canManageTarget(ctx, models.RoleFreelancer, id) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "not your freelancer record")
		return
	}

	var freelancer models.Freelancer
	if err := storage.DB.First(&freelancer, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input FreelancerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := freelancer
	freelancer.Name = input.Name
	freelancer.Field = input.Field
	freelancer.Bio = input.Bio
	freelancer.Image = input.Image
	if err := storage.DB.Save(&freelancer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "freelancer.update", "freelancer", freelancer.ID, before, freelancer)
	ctx.JSON(iris.Map{"data": &freelancer})
}

func DeleteFreelancer(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var freelancer models.Freelancer
	if err := storage.DB.First(&freelancer, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&freelancer).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "freelancer.delete", "freelancer", id, freelancer, nil)
	ctx.JSON(iris.Map{"success": true})
}

func CreateContent(ctx iris.Context) {
	freelancerID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !canManageTarget(ctx, models.RoleFreelancer, freelancerID) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "not your catalog")
		return
	}

	var freelancer models.Freelancer
	if err := storage.DB.First(&freelancer, freelancerID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input ContentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	status := input.Status
	if status == "" {
		status = "live"
	}
	content := models.Content{
		FreelancerID: freelancerID,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Thumbnail:    input.Thumbnail,
		Status:       status,
	}
	if err := storage.DB.Create(&content).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "content.create", "content", content.ID, nil, content)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &content})
}

func DeleteContent(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var content models.Content
	if err := storage.DB.First(&content, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if !canManageTarget(ctx, models.RoleFreelancer, content.FreelancerID) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "not your catalog")
		return
	}
	if err := storage.DB.Delete(&content).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "content.delete", "content", id, content, nil)
	ctx.JSON(iris.Map{"success": true})
}

type PurchaseContentInput struct {
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=card account cash"`
}

// PurchaseContent creates a content-kind request. Content purchases skip
// the schedule machine: there is no capacity to check. Repurchase is
// always allowed.
func PurchaseContent(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	contentID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var content models.Content
	if err := storage.DB.First(&content, contentID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if content.Status != "live" {
		utils.JSONError(ctx, http.StatusConflict, "not_available", "content is not available")
		return
	}

	var input PurchaseContentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	paymentStatus := "pending"
	paymentMethod := ""
	amount := content.Price
	if content.Price > 0 {
		if input.PaymentMethod == "" {
			utils.JSONError(ctx, http.StatusUnprocessableEntity, "payment_required",
				"paymentMethod is required for paid content")
			return
		}
		label, err := booking.MethodLabel(input.PaymentMethod)
		if err != nil {
			utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payment", "unknown payment method")
			return
		}
		paymentStatus = "paid"
		paymentMethod = label
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	req := models.Request{
		Kind:          models.RequestKindContent,
		TargetID:      content.FreelancerID,
		UserID:        user.ID,
		UserName:      user.Name,
		ContentID:     content.ID,
		ScheduleTitle: content.Title,
		PaymentStatus: paymentStatus,
		PaymentAmount: amount,
		PaymentMethod: paymentMethod,
	}
	if err := requestStore.Add(&req); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": &req})
}
