package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken claims. Admin tokens carry the back-office role and the
// target entity the role is scoped to; member tokens carry Role "user".
type AccessToken struct {
	ID       uint   `json:"ID"`
	Role     string `json:"role"`
	TargetID uint   `json:"targetID"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateTokenPair issues member tokens and records the refresh token in
// the redis allow-list.
func CreateTokenPair(id uint) (*jwt.TokenPair, error) {
	var u models.User
	role := "user"
	if err := storage.DB.Select("id, role").First(&u, id).Error; err == nil && u.Role != "" {
		role = u.Role
	}
	return createTokenPair(AccessToken{ID: id, Role: role}, id)
}

// CreateAdminTokenPair issues back-office tokens with role + target scope.
func CreateAdminTokenPair(account models.AdminAccount) (*jwt.TokenPair, error) {
	return createTokenPair(AccessToken{
		ID:       account.ID,
		Role:     account.Role,
		TargetID: account.TargetID,
	}, account.ID)
}

func createTokenPair(claims AccessToken, id uint) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), 365*24*time.Hour)

	refreshClaims := jwt.Claims{Subject: strconv.FormatUint(uint64(id), 10)}

	accessToken, err := accessTokenSigner.Sign(claims)
	if err != nil {
		return nil, err
	}
	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	storage.Redis.Set(bgContext, string(refreshToken), "true", 365*24*time.Hour+5*time.Minute)

	return &tokenPair, nil
}

// RefreshToken rotates a member token pair; the old refresh token is
// removed from the allow-list.
func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)
	validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()

	if tokenErr != nil {
		CreateNotFound(ctx)
		return
	}
	if validToken != "true" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)
	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	tokenPair, tokenPairErr := CreateTokenPair(uint(userID))
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
