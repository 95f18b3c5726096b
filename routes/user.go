package routes

import (
	"encoding/json"
	"errors"
	"strings"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if userInput.PhoneNumber != "" && !utils.ValidatePhoneNumber(userInput.PhoneNumber) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Numéro de téléphone invalide. Les numéros algériens comportent 9 chiffres et commencent par 5, 6 ou 7.", ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	prefsJSON, _ := json.Marshal(models.DefaultPreferences())

	newUser = models.User{
		Name:        userInput.Name,
		Email:       strings.ToLower(userInput.Email),
		PhoneNumber: utils.NormalizePhoneNumber(userInput.PhoneNumber),
		Password:    hashedPassword,
		Role:        userInput.Role,
		Preferences: datatypes.JSON(prefsJSON),
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Email ou mot de passe invalide."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// Logout revokes the presented refresh token so the session cannot be
// renewed. The access token simply expires.
func Logout(ctx iris.Context) {
	var input utils.RefreshTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	utils.RevokeRefreshToken(input.RefreshToken)
	ctx.JSON(iris.Map{"success": true})
}

func GetCurrentUser(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(user)
}

// GetUser returns a public profile; the password hash never leaves the
// model thanks to its json:"-" tag.
func GetUser(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var user models.User
	userExists := storage.DB.Find(&user, id)
	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(user)
}

func GetUserProperties(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var properties []models.Property
	propertiesExist := storage.DB.Preload("Reviews").Where("owner_id = ?", id).Find(&properties)
	if propertiesExist.Error != nil {
		utils.CreateError(
			iris.StatusInternalServerError,
			"Internal Server Error", propertiesExist.Error.Error(), ctx)
		return
	}

	ctx.JSON(properties)
}

func UpdateProfile(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.PhoneNumber != "" && !utils.ValidatePhoneNumber(input.PhoneNumber) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Numéro de téléphone invalide.", ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	user.Name = input.Name
	user.Bio = input.Bio
	user.AvatarURL = input.AvatarURL
	if input.PhoneNumber != "" {
		user.PhoneNumber = utils.NormalizePhoneNumber(input.PhoneNumber)
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(user)
}

func ChangePassword(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input ChangePasswordInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error",
			"Mot de passe actuel incorrect.", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.NewPassword)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user.Password = hashedPassword
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

func UpdatePreferences(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input models.NotificationPreferences
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	prefsJSON, _ := json.Marshal(input)

	if err := storage.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("preferences", datatypes.JSON(prefsJSON)).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

// GetFavorites lists the favorited properties of the current tenant,
// each annotated with its reviews for rating display.
func GetFavorites(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var favorites []models.Favorite
	if err := storage.DB.Where("user_id = ?", userID).
		Preload("Property").Preload("Property.Reviews").
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	properties := make([]models.Property, 0, len(favorites))
	for _, favorite := range favorites {
		properties = append(properties, favorite.Property)
	}

	ctx.JSON(properties)
}

// ToggleFavorite flips (user, property) membership: absent -> created,
// present -> removed. Calling it twice restores the original state.
func ToggleFavorite(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input ToggleFavoriteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Find(&property, input.PropertyID)
	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var existing models.Favorite
	err := storage.DB.Where("user_id = ? AND property_id = ?", userID, input.PropertyID).
		First(&existing).Error

	if err == nil {
		if deleteErr := storage.DB.Unscoped().Delete(&existing).Error; deleteErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		ctx.JSON(iris.Map{"success": true, "favorited": false})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	favorite := models.Favorite{UserID: userID, PropertyID: input.PropertyID}
	if createErr := storage.DB.Create(&favorite).Error; createErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "favorited": true})
}

func SaveSearch(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input SaveSearchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	criteriaJSON, _ := json.Marshal(input.Criteria)

	savedSearch := models.SavedSearch{
		UserID:   userID,
		Name:     input.Name,
		Criteria: datatypes.JSON(criteriaJSON),
	}

	if err := storage.DB.Create(&savedSearch).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(savedSearch)
}

func GetSavedSearches(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var searches []models.SavedSearch
	if err := storage.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&searches).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(searches)
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"phoneNumber":  user.PhoneNumber,
		"role":         user.Role,
		"bio":          user.Bio,
		"avatarURL":    user.AvatarURL,
		"preferences":  user.GetPreferences(),
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	Name        string `json:"name" validate:"required,max=256"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" validate:"required,min=6,max=256"`
	Role        string `json:"role" validate:"required,oneof=tenant owner"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name        string `json:"name" validate:"required,max=256"`
	Bio         string `json:"bio" validate:"max=2000"`
	AvatarURL   string `json:"avatarURL" validate:"max=512"`
	PhoneNumber string `json:"phoneNumber"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=256"`
}

type ToggleFavoriteInput struct {
	PropertyID uint `json:"propertyID" validate:"required"`
}

type SaveSearchInput struct {
	Name     string                 `json:"name" validate:"required,max=256"`
	Criteria map[string]interface{} `json:"criteria" validate:"required"`
}
