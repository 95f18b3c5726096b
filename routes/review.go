package routes

import (
	"math"
	"strings"
	"time"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userID"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	User      struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatarURL"`
	} `json:"user"`
}

// ListPropertyReviews returns the reviews with the derived average,
// recomputed on every read and rounded to one decimal for display.
func ListPropertyReviews(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	if propertyID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	avgRating := models.AverageStars(reviews)

	reviewResponses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response := ReviewResponse{
			ID:        review.ID,
			UserID:    review.UserID,
			Stars:     review.Stars,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		}
		response.User.Name = review.User.Name
		response.User.AvatarURL = review.User.AvatarURL
		reviewResponses = append(reviewResponses, response)
	}

	ctx.JSON(iris.Map{
		"reviews":       reviewResponses,
		"averageRating": math.Round(avgRating*10) / 10,
		"reviewCount":   len(reviews),
	})
}

// CreatePropertyReview appends an immutable review; no edit or delete
// endpoints exist.
func CreatePropertyReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	propertyID := ctx.Params().GetUintDefault("id", 0)
	if propertyID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Le commentaire ne peut pas être vide.", ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Find(&property, propertyID)
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	// Reviews are append-only; a user may leave several over time.
	review := models.Review{
		PropertyID: propertyID,
		UserID:     userID,
		Stars:      input.Stars,
		Comment:    comment,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(review)
}

type CreateReviewInput struct {
	Stars   int    `json:"stars" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}
