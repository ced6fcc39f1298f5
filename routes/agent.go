package routes

import (
	"net/http"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

// Agents share the partner input shape; only the owning model differs.

func GetAgents(ctx iris.Context) {
	category := ctx.URLParamDefault("category", "")

	q := storage.DB.Where("status = ?", "approved")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var agents []models.Agent
	if err := q.Preload("Schedules").Order("name ASC").Find(&agents).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": agents})
}

func GetAgent(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var agent models.Agent
	if err := storage.DB.Preload("Schedules").First(&agent, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &agent})
}

func CreateAgent(ctx iris.Context) {
	var input PartnerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	agent := models.Agent{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
		Phone:       input.Phone,
		Address:     input.Address,
		Status:      "approved",
	}
	if err := storage.DB.Create(&agent).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "agent.create", "agent", agent.ID, nil, agent)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &agent})
}

func UpdateAgent(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !canManageTarget(ctx, models.RoleAgent, id) {
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", "not your agent record")
		return
	}

	var agent models.Agent
	if err := storage.DB.First(&agent, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input PartnerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := agent
	agent.Name = input.Name
	agent.Category = input.Category
	agent.Description = input.Description
	agent.Image = input.Image
	agent.Phone = input.Phone
	agent.Address = input.Address
	if err := storage.DB.Save(&agent).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "agent.update", "agent", agent.ID, before, agent)
	ctx.JSON(iris.Map{"data": &agent})
}

func DeleteAgent(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var agent models.Agent
	if err := storage.DB.First(&agent, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&agent).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "agent.delete", "agent", id, agent, nil)
	ctx.JSON(iris.Map{"success": true})
}
