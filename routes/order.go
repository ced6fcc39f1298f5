package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/booking"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID uint `json:"productID" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type CreateOrderInput struct {
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required,oneof=card account cash"`
	ShippingAddress string           `json:"shippingAddress" validate:"required"`
}

type orderItem struct {
	ProductID uint    `json:"productID"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CreateOrder places a product order with mock payment. Stock is checked
// and decremented per line; payment always succeeds.
func CreateOrder(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateOrderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	label, err := booking.MethodLabel(input.PaymentMethod)
	if err != nil {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payment", "unknown payment method")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var items []orderItem
	var total float64
	for _, line := range input.Items {
		var product models.Product
		if err := storage.DB.First(&product, line.ProductID).Error; err != nil {
			utils.JSONError(ctx, http.StatusNotFound, "not_found", "product not found")
			return
		}
		if product.Stock < line.Quantity {
			ctx.StatusCode(iris.StatusConflict)
			ctx.JSON(iris.Map{
				"error":     "out_of_stock",
				"message":   "insufficient stock",
				"productID": product.ID,
				"stock":     product.Stock,
			})
			return
		}
		items = append(items, orderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		total += product.Price * float64(line.Quantity)
	}

	for _, line := range input.Items {
		storage.DB.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
	}

	itemsJSON, _ := json.Marshal(items)
	order := models.Order{
		UserID:          user.ID,
		UserName:        user.Name,
		Items:           itemsJSON,
		Total:           total,
		Status:          "paid",
		PaymentMethod:   label,
		PaymentStatus:   "paid",
		ShippingAddress: input.ShippingAddress,
		InvoiceNumber:   newInvoiceNumber(),
	}
	if err := storage.DB.Create(&order).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": &order})
}

// GetMyOrders lists the authenticated member's orders.
func GetMyOrders(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var orders []models.Order
	if err := storage.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": orders})
}

type RequestReturnInput struct {
	Reason string `json:"reason" validate:"required"`
}

// RequestReturn opens the return flow on the member's own order.
func RequestReturn(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input RequestReturnInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var order models.Order
	if err := storage.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if order.Status != "delivered" {
		utils.JSONError(ctx, http.StatusConflict, "not_returnable", "only delivered orders can be returned")
		return
	}

	order.ReturnStatus = "requested"
	order.ReturnReason = input.Reason
	if err := storage.DB.Save(&order).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": &order})
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}
