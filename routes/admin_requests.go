package routes

import (
	"net/http"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
)

// AdminListRequests lists registry entries visible to the calling scope.
// Super sees everything; partner, agent and freelancer admins see only
// their own target's requests of the matching kind. A category filter
// intersects with the owning catalog entries.
func AdminListRequests(ctx iris.Context) {
	scope := utils.ScopeFromContext(ctx)

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	filter := storage.RequestFilter{
		Status: ctx.URLParamDefault("status", ""),
	}
	kind := ctx.URLParamDefault("kind", "")
	if scope.Role != models.RoleSuper {
		// Scoped roles are pinned to their own kind and target no matter
		// what the query string asks for.
		filter.Kind = utils.RequestKindForRole(scope.Role)
		filter.TargetID = scope.TargetID
	} else if kind != "" {
		filter.Kind = kind
	}

	items, err := requestStore.List(filter)
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	items = utils.VisibleRequests(items, scope)

	if category := ctx.URLParamDefault("category", ""); category != "" {
		items = utils.FilterByCategory(items, categoriesForKind(filter.Kind), category)
	}

	total := int64(len(items))
	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	utils.JSONPage(ctx, items[start:end], page, perPage, total)
}

// AdminGetRequest fetches one registry entry, scope permitting.
func AdminGetRequest(ctx iris.Context) {
	req, ok := loadScopedRequest(ctx)
	if !ok {
		return
	}
	ctx.JSON(iris.Map{"data": req})
}

type RequestStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// AdminUpdateRequestStatus moves a registry entry through the back-office
// pipeline. The allowed vocabulary depends on the request kind. Setting the
// current status again is a no-op success.
func AdminUpdateRequestStatus(ctx iris.Context) {
	req, ok := loadScopedRequest(ctx)
	if !ok {
		return
	}

	var input RequestStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !models.ValidRequestStatus(req.Kind, input.Status) {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_status",
			"status not valid for this request kind")
		return
	}

	if req.Status == input.Status {
		ctx.JSON(iris.Map{"success": true, "data": req})
		return
	}

	before := *req
	updated, err := requestStore.UpdateStatus(req.ID, input.Status)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "request.status", "request", updated.ID, before, updated)
	notificationSvc.RequestStatusChanged(updated)
	ctx.JSON(iris.Map{"success": true, "data": updated})
}

type RequestPatchInput struct {
	PaymentStatus string  `json:"paymentStatus" validate:"omitempty,oneof=pending paid"`
	PaymentAmount float64 `json:"paymentAmount" validate:"omitempty,min=0"`
	UserName      string  `json:"userName" validate:"omitempty,max=100"`
}

// AdminPatchRequest edits mutable registry fields.
func AdminPatchRequest(ctx iris.Context) {
	req, ok := loadScopedRequest(ctx)
	if !ok {
		return
	}

	var input RequestPatchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	patch := map[string]interface{}{}
	if input.PaymentStatus != "" {
		patch["payment_status"] = input.PaymentStatus
	}
	if input.PaymentAmount > 0 {
		patch["payment_amount"] = input.PaymentAmount
	}
	if input.UserName != "" {
		patch["user_name"] = input.UserName
	}
	if len(patch) == 0 {
		ctx.JSON(iris.Map{"success": true, "data": req})
		return
	}

	before := *req
	updated, err := requestStore.Update(req.ID, patch)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "request.update", "request", updated.ID, before, updated)
	ctx.JSON(iris.Map{"success": true, "data": updated})
}

// AdminDeleteRequest removes a registry entry.
func AdminDeleteRequest(ctx iris.Context) {
	req, ok := loadScopedRequest(ctx)
	if !ok {
		return
	}

	if err := requestStore.Delete(req.ID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "request.delete", "request", req.ID, req, nil)
	ctx.JSON(iris.Map{"success": true})
}

// loadScopedRequest resolves the {id} path param to a registry entry the
// caller's scope may act on. Out-of-scope entries answer 404, not 403, so
// scoped admins cannot probe other targets' IDs.
func loadScopedRequest(ctx iris.Context) (*models.Request, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return nil, false
	}

	req, err := requestStore.Get(id)
	if err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}

	scope := utils.ScopeFromContext(ctx)
	if visible := utils.VisibleRequests([]models.Request{*req}, scope); len(visible) == 0 {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return req, true
}

// categoriesForKind maps target IDs to catalog categories for the category
// filter. Content requests have no category axis.
func categoriesForKind(kind string) map[uint]string {
	out := map[uint]string{}
	switch kind {
	case models.RequestKindPartner:
		var partners []models.Partner
		storage.DB.Find(&partners)
		for _, p := range partners {
			out[p.ID] = p.Category
		}
	case models.RequestKindAgent:
		var agents []models.Agent
		storage.DB.Find(&agents)
		for _, a := range agents {
			out[a.ID] = a.Category
		}
	}
	return out
}
