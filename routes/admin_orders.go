package routes

import (
	"net/http"
	"slices"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

// AdminListOrders lists product orders for the back-office. Super only.
func AdminListOrders(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	q := storage.DB.Model(&models.Order{})
	if status := ctx.URLParamDefault("status", ""); status != "" {
		q = q.Where("status = ?", status)
	}
	if returnStatus := ctx.URLParamDefault("return_status", ""); returnStatus != "" {
		q = q.Where("return_status = ?", returnStatus)
	}
	if userID := ctx.URLParamIntDefault("user_id", 0); userID > 0 {
		q = q.Where("user_id = ?", userID)
	}

	var total int64
	q.Count(&total)

	var orders []models.Order
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, orders, page, perPage, total)
}

// AdminGetOrder fetches one order. Super only.
func AdminGetOrder(ctx iris.Context) {
	order, ok := loadOrder(ctx)
	if !ok {
		return
	}
	ctx.JSON(iris.Map{"data": order})
}

type OrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// AdminUpdateOrderStatus moves an order through fulfilment. Setting the
// current status again is a no-op success.
func AdminUpdateOrderStatus(ctx iris.Context) {
	order, ok := loadOrder(ctx)
	if !ok {
		return
	}

	var input OrderStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !slices.Contains(models.OrderStatuses, input.Status) {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_status", "unknown order status")
		return
	}
	if order.Status == input.Status {
		ctx.JSON(iris.Map{"success": true, "data": order})
		return
	}

	before := *order
	order.Status = input.Status
	if err := storage.DB.Save(order).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "order.status", "order", order.ID, before, order)
	notificationSvc.OrderStatusChanged(order)
	ctx.JSON(iris.Map{"success": true, "data": order})
}

type TrackingInput struct {
	TrackingNumber string `json:"trackingNumber" validate:"required,max=60"`
}

// AdminSetTracking records the shipment's tracking number.
func AdminSetTracking(ctx iris.Context) {
	order, ok := loadOrder(ctx)
	if !ok {
		return
	}

	var input TrackingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := *order
	order.TrackingNumber = input.TrackingNumber
	if err := storage.DB.Save(order).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "order.tracking", "order", order.ID, before, order)
	ctx.JSON(iris.Map{"success": true, "data": order})
}

// AdminRegenerateInvoice reissues the order's invoice number.
func AdminRegenerateInvoice(ctx iris.Context) {
	order, ok := loadOrder(ctx)
	if !ok {
		return
	}

	before := *order
	order.InvoiceNumber = newInvoiceNumber()
	if err := storage.DB.Save(order).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "order.invoice", "order", order.ID, before, order)
	ctx.JSON(iris.Map{"success": true, "data": order})
}

type ReturnDecisionInput struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected refunded"`
}

// AdminDecideReturn advances a requested return. Approve or reject a
// requested return; refund an approved one.
func AdminDecideReturn(ctx iris.Context) {
	order, ok := loadOrder(ctx)
	if !ok {
		return
	}

	var input ReturnDecisionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	valid := false
	switch input.Decision {
	case "approved", "rejected":
		valid = order.ReturnStatus == "requested"
	case "refunded":
		valid = order.ReturnStatus == "approved"
	}
	if !valid {
		utils.JSONError(ctx, http.StatusConflict, "invalid_transition",
			"return is not in a state that allows this decision")
		return
	}

	before := *order
	order.ReturnStatus = input.Decision
	if input.Decision == "refunded" {
		order.PaymentStatus = "refunded"
	}
	if err := storage.DB.Save(order).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "order.return", "order", order.ID, before, order)
	notificationSvc.OrderStatusChanged(order)
	ctx.JSON(iris.Map{"success": true, "data": order})
}

func loadOrder(ctx iris.Context) (*models.Order, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return nil, false
	}
	var order models.Order
	if err := storage.DB.First(&order, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &order, true
}
