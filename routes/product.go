package routes

import (
	"encoding/json"
	"net/http"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

type ProductInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,min=0"`
	Stock       int      `json:"stock" validate:"min=0"`
	Images      []string `json:"images"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft live hidden"`
}

func GetProducts(ctx iris.Context) {
	category := ctx.URLParamDefault("category", "")

	q := storage.DB.Where("status = ?", "live")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": products})
}

func GetProduct(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var product models.Product
	if err := storage.DB.First(&product, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": &product})
}

func CreateProduct(ctx iris.Context) {
	var input ProductInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	status := input.Status
	if status == "" {
		status = "live"
	}
	images, _ := json.Marshal(input.Images)
	product := models.Product{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Images:      images,
		Status:      status,
	}
	if err := storage.DB.Create(&product).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "product.create", "product", product.ID, nil, product)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &product})
}

func UpdateProduct(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var product models.Product
	if err := storage.DB.First(&product, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input ProductInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := product
	images, _ := json.Marshal(input.Images)
	product.Name = input.Name
	product.Category = input.Category
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Images = images
	if input.Status != "" {
		product.Status = input.Status
	}
	if err := storage.DB.Save(&product).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "product.update", "product", product.ID, before, product)
	ctx.JSON(iris.Map{"data": &product})
}

func DeleteProduct(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var product models.Product
	if err := storage.DB.First(&product, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&product).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "product.delete", "product", id, product, nil)
	ctx.JSON(iris.Map{"success": true})
}
