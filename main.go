package main

import (
	"log"
	"os"

	"rental-marketplace-server/routes"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/logout", routes.Logout)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

		user.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetCurrentUser)
		user.Put("/profile", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateProfile)
		user.Put("/password", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ChangePassword)
		user.Put("/preferences", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdatePreferences)

		user.Get("/favorites", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.GetFavorites)
		user.Post("/favorites/toggle", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.ToggleFavorite)

		user.Post("/searches", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.SaveSearch)
		user.Get("/searches", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.GetSavedSearches)

		user.Get("/{id}", routes.GetUser)
		user.Get("/{id}/properties", routes.GetUserProperties)
	}

	property := app.Party("/api/property")
	{
		property.Get("/search", routes.SearchProperties)
		property.Get("/mine", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.GetMyProperties)
		property.Post("/", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.CreateProperty)
		property.Get("/{id:uint}", routes.GetProperty)
		property.Put("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateProperty)
		property.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteProperty)
		property.Post("/{id:uint}/view", utils.OptionalUserIDMiddleware, routes.IncrementView)

		property.Get("/{id:uint}/reviews", routes.ListPropertyReviews)
		property.Post("/{id:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreatePropertyReview)
	}

	conversation := app.Party("/api/conversation",
		accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		conversation.Post("/", routes.GetOrCreateConversation)
		conversation.Get("/", routes.GetMyConversations)
		conversation.Get("/{id:uint}", routes.GetConversation)
		conversation.Post("/{id:uint}/messages", routes.SendMessage)
	}

	visit := app.Party("/api/visit", accessTokenVerifierMiddleware)
	{
		visit.Post("/", utils.TenantOnlyMiddleware, routes.CreateVisit)
		visit.Get("/mine", utils.UserIDFromTokenMiddleware, routes.GetMyVisits)
		visit.Get("/owner", utils.OwnerOnlyMiddleware, routes.GetOwnerVisits)
		visit.Post("/{id:uint}/respond", utils.UserIDFromTokenMiddleware, routes.RespondToVisit)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Println("Starting server on port " + port)
	app.Listen(":" + port)
}
