package routes

import (
	"encoding/json"
	"fmt"
	"time"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

func CreateProperty(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateListingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.ContactPhone != "" && !utils.ValidatePhoneNumber(input.ContactPhone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Numéro de contact invalide.", ctx)
		return
	}

	// Ensure arrays are never null
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	images := input.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, _ := json.Marshal(images)

	property := models.Property{
		OwnerID:      userID,
		Title:        input.Title,
		Description:  input.Description,
		PropertyType: input.PropertyType,
		Status:       models.PropertyStatusAvailable,
		Price:        input.Price,
		Surface:      input.Surface,
		Rooms:        input.Rooms,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Address:      input.Address,
		City:         input.City,
		ContactPhone: utils.NormalizePhoneNumber(input.ContactPhone),
		Amenities:    string(amenitiesJSON),
		Images:       string(imagesJSON),
	}

	result := storage.DB.Create(&property)
	if result.Error != nil {
		utils.CreateError(iris.StatusInternalServerError,
			"Internal Server Error", "Failed to create property", ctx)
		return
	}

	ctx.JSON(property)
}

func GetProperty(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	property := getPropertyAndAssociationsByPropertyID(id, ctx)
	if property == nil {
		return
	}

	ctx.JSON(property)
}

func GetMyProperties(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var properties []models.Property
	propertiesExist := storage.DB.Preload("Reviews").
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&properties)

	if propertiesExist.Error != nil {
		utils.CreateError(
			iris.StatusInternalServerError,
			"Internal Server Error", propertiesExist.Error.Error(), ctx)
		return
	}

	ctx.JSON(properties)
}

func UpdateProperty(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	property := getPropertyAndAssociationsByPropertyID(id, ctx)
	if property == nil {
		return
	}

	claims := jwt.Get(ctx).(*utils.AccessToken)

	if property.OwnerID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	var input UpdateListingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenitiesJSON, _ := json.Marshal(input.Amenities)
	imagesJSON, _ := json.Marshal(input.Images)

	property.Title = input.Title
	property.Description = input.Description
	property.PropertyType = input.PropertyType
	property.Status = input.Status
	property.Price = input.Price
	property.Surface = input.Surface
	property.Rooms = input.Rooms
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.Address = input.Address
	property.City = input.City
	property.ContactPhone = utils.NormalizePhoneNumber(input.ContactPhone)
	property.Amenities = string(amenitiesJSON)
	property.Images = string(imagesJSON)

	// Save, not Updates: a struct update would skip zero-valued fields
	// and a cleared description or bedroom count would never persist.
	if err := storage.DB.Save(property).Error; err != nil {
		utils.CreateError(
			iris.StatusInternalServerError,
			"Internal Server Error", err.Error(), ctx)
		return
	}

	ctx.JSON(property)
}

// DeleteProperty removes a listing and its dependent records: favorites,
// visits, conversations with their messages, and reviews.
func DeleteProperty(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var property models.Property
	propertyExists := storage.DB.Find(&property, id)

	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	claims := jwt.Get(ctx).(*utils.AccessToken)

	if property.OwnerID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	propertyDeleted := storage.DB.Delete(&models.Property{}, id)
	if propertyDeleted.Error != nil {
		utils.CreateError(
			iris.StatusInternalServerError,
			"Internal Server Error", propertyDeleted.Error.Error(), ctx)
		return
	}

	storage.DB.Where("property_id = ?", id).Unscoped().Delete(&models.Favorite{})
	storage.DB.Where("property_id = ?", id).Delete(&models.Visit{})
	storage.DB.Where("property_id = ?", id).Delete(&models.Review{})

	var conversations []models.Conversation
	storage.DB.Where("property_id = ?", id).Find(&conversations)
	for _, conversation := range conversations {
		storage.DB.Where("conversation_id = ?", conversation.ID).Delete(&models.Message{})
	}
	storage.DB.Where("property_id = ?", id).Delete(&models.Conversation{})

	ctx.StatusCode(iris.StatusNoContent)
}

// IncrementView bumps the view counter by exactly one per detail-view
// request. A short Redis key absorbs double-fires from the same viewer
// (e.g. a re-render right after navigation).
func IncrementView(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var property models.Property
	propertyExists := storage.DB.Find(&property, id)
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if viewerID := ctx.Values().Get("userID"); viewerID != nil {
		key := viewDedupKey(property.ID, viewerID.(uint))
		set, err := storage.Redis.SetNX(ctx, key, "1", 10*time.Second).Result()
		if err == nil && !set {
			ctx.JSON(iris.Map{"success": true, "views": property.Views})
			return
		}
	}

	if err := storage.DB.Model(&models.Property{}).Where("id = ?", property.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "views": property.Views + 1})
}

func getPropertyAndAssociationsByPropertyID(id string, ctx iris.Context) *models.Property {
	var property models.Property
	propertyExists := storage.DB.Preload("Owner").
		Preload("Reviews").
		Preload("Reviews.User").
		Find(&property, id)

	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}

	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return nil
	}

	return &property
}

func viewDedupKey(propertyID uint, userID uint) string {
	return fmt.Sprintf("views:property:%d:user:%d", propertyID, userID)
}

type CreateListingInput struct {
	Title        string   `json:"title" validate:"required,max=256"`
	Description  string   `json:"description"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=apartment house studio"`
	Price        uint     `json:"price" validate:"required,gt=0"`
	Surface      uint     `json:"surface" validate:"required,gt=0"`
	Rooms        int      `json:"rooms" validate:"required,gte=1,lte=20"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0,lte=10"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0,lte=10"`
	Address      string   `json:"address" validate:"required,max=512"`
	City         string   `json:"city" validate:"required,max=256"`
	ContactPhone string   `json:"contactPhone"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
}

type UpdateListingInput struct {
	Title        string   `json:"title" validate:"required,max=256"`
	Description  string   `json:"description"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=apartment house studio"`
	Status       string   `json:"status" validate:"required,oneof=available rented"`
	Price        uint     `json:"price" validate:"required,gt=0"`
	Surface      uint     `json:"surface" validate:"required,gt=0"`
	Rooms        int      `json:"rooms" validate:"required,gte=1,lte=20"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0,lte=10"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0,lte=10"`
	Address      string   `json:"address" validate:"required,max=512"`
	City         string   `json:"city" validate:"required,max=256"`
	ContactPhone string   `json:"contactPhone"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
}
