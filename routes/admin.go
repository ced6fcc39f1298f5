package routes

import (
	"net/http"
	"time"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin authenticates a back-office credential and issues tokens
// carrying the role and target scope.
func AdminLogin(ctx iris.Context) {
	var input AdminLoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid username or password."
	var account models.AdminAccount
	if err := storage.DB.Where("username = ?", input.Username).First(&account).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	now := time.Now()
	account.LastLoginAt = &now
	storage.DB.Save(&account)

	tokenPair, tokenErr := utils.CreateAdminTokenPair(account)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           account.ID,
		"username":     account.Username,
		"role":         account.Role,
		"targetID":     account.TargetID,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type AdminAccountInput struct {
	Username string `json:"username" validate:"required,min=4,max=40"`
	Password string `json:"password" validate:"required,min=8,max=256"`
	Role     string `json:"role" validate:"required,oneof=super partner agent freelancer"`
	TargetID uint   `json:"targetID"`
}

// AdminListAccounts lists back-office credentials. Super only.
func AdminListAccounts(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	q := storage.DB.Model(&models.AdminAccount{})
	if role := ctx.URLParamDefault("role", ""); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	q.Count(&total)

	var accounts []models.AdminAccount
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&accounts).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, accounts, page, perPage, total)
}

// AdminCreateAccount registers a back-office credential. Super only.
// Non-super roles must point at an existing target entity.
func AdminCreateAccount(ctx iris.Context) {
	var input AdminAccountInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Role != models.RoleSuper {
		if input.TargetID == 0 {
			utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_target",
				"targetID required for scoped roles")
			return
		}
		if !adminTargetExists(input.Role, input.TargetID) {
			utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_target",
				"target entity does not exist")
			return
		}
	}

	var existing models.AdminAccount
	if err := storage.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		utils.JSONError(ctx, http.StatusConflict, "conflict", "username already taken")
		return
	}

	hashed, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	account := models.AdminAccount{
		Username: input.Username,
		Password: hashed,
		Role:     input.Role,
		TargetID: input.TargetID,
	}
	if err := storage.DB.Create(&account).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "admin_account.create", "admin_account", account.ID, nil, account)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": &account})
}

type AdminPasswordInput struct {
	Password string `json:"password" validate:"required,min=8,max=256"`
}

// AdminResetPassword replaces a credential's password. Super only.
func AdminResetPassword(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input AdminPasswordInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var account models.AdminAccount
	if err := storage.DB.First(&account, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	hashed, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	account.Password = hashed
	if err := storage.DB.Save(&account).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "admin_account.reset_password", "admin_account", account.ID, nil, nil)
	ctx.JSON(iris.Map{"success": true})
}

// AdminDeleteAccount removes a credential. Super only.
func AdminDeleteAccount(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var account models.AdminAccount
	if err := storage.DB.First(&account, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&account).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "admin_account.delete", "admin_account", id, account, nil)
	ctx.JSON(iris.Map{"success": true})
}

// AdminListUsers lists members for the back-office. Super only.
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	q := storage.DB.Model(&models.User{})
	if search := ctx.URLParamDefault("q", ""); search != "" {
		like := "%" + search + "%"
		q = q.Where("lower(name) LIKE lower(?) OR lower(email) LIKE lower(?)", like, like)
	}

	var total int64
	q.Count(&total)

	var users []models.User
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, users, page, perPage, total)
}

func adminTargetExists(role string, targetID uint) bool {
	var count int64
	switch role {
	case models.RolePartner:
		storage.DB.Model(&models.Partner{}).Where("id = ?", targetID).Count(&count)
	case models.RoleAgent:
		storage.DB.Model(&models.Agent{}).Where("id = ?", targetID).Count(&count)
	case models.RoleFreelancer:
		storage.DB.Model(&models.Freelancer{}).Where("id = ?", targetID).Count(&count)
	}
	return count > 0
}
