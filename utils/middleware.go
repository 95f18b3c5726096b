package utils

import (
	"os"
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts user ID from JWT token and stores it in context
// Use this for routes that don't have {id} parameter in URL
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// OptionalUserIDMiddleware sets userID when a valid bearer token is
// presented and lets anonymous requests through untouched. Used on
// public routes that behave slightly differently for known viewers.
func OptionalUserIDMiddleware(ctx iris.Context) {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		ctx.Next()
		return
	}

	verifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	token, err := verifier.VerifyToken([]byte(strings.TrimPrefix(header, "Bearer ")))
	if err != nil {
		ctx.Next()
		return
	}

	var claims AccessToken
	if err := token.Claims(&claims); err != nil {
		ctx.Next()
		return
	}

	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// TenantOnlyMiddleware restricts an action to tenant accounts
// (favorites, visit requests, saved searches).
func TenantOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "tenant" {
		CreateForbidden(ctx)
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// OwnerOnlyMiddleware restricts an action to owner accounts (publishing
// listings). Per-record ownership is still checked in the handlers.
func OwnerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "owner" {
		CreateForbidden(ctx)
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}
