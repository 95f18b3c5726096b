package routes

import (
	"time"

	"rental-marketplace-server/models"
	"rental-marketplace-server/services"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

// CreateVisit registers a viewing request; status always starts pending.
func CreateVisit(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateVisitInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Find(&property, input.PropertyID)
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if property.OwnerID == userID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Impossible de demander une visite de son propre bien.", ctx)
		return
	}

	visit := models.Visit{
		PropertyID: input.PropertyID,
		UserID:     userID,
		VisitDate:  input.VisitDate,
		Message:    input.Message,
		Status:     models.VisitStatusPending,
	}

	if err := storage.DB.Create(&visit).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	go services.NewNotifier().NotifyVisitRequested(property.OwnerID, userID, property.ID)

	ctx.JSON(visit)
}

// GetMyVisits lists the requests made by the current user.
func GetMyVisits(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var visits []models.Visit
	if err := storage.DB.Where("user_id = ?", userID).
		Preload("Property").
		Order("created_at DESC").
		Find(&visits).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(visits)
}

// GetOwnerVisits lists visit requests targeting the current user's
// properties.
func GetOwnerVisits(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var visits []models.Visit
	if err := storage.DB.
		Joins("JOIN properties ON properties.id = visits.property_id").
		Where("properties.owner_id = ?", userID).
		Preload("Property").
		Preload("User").
		Order("visits.created_at DESC").
		Find(&visits).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(visits)
}

// RespondToVisit applies the owner's decision. Only the owner of the
// referenced property may transition the visit, and only once: a second
// response is rejected with a conflict.
func RespondToVisit(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	id := ctx.Params().Get("id")

	var input RespondToVisitInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var visit models.Visit
	visitExists := storage.DB.Find(&visit, id)
	if visitExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if visitExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Find(&property, visit.PropertyID)
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if err := CheckVisitTransition(&visit, &property, userID); err != nil {
		switch err {
		case ErrVisitNotOwner:
			utils.CreateForbidden(ctx)
		case ErrVisitAlreadyDecided:
			utils.CreateConflict("Cette demande de visite a déjà reçu une réponse.", ctx)
		}
		return
	}

	visit.Status = input.Status
	visit.OwnerResponse = input.Response

	if err := storage.DB.Save(&visit).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	go services.NewNotifier().NotifyVisitDecision(visit.UserID, property.ID, visit.Status)

	ctx.JSON(visit)
}

type transitionError string

func (e transitionError) Error() string { return string(e) }

const (
	ErrVisitNotOwner       = transitionError("visit: not the property owner")
	ErrVisitAlreadyDecided = transitionError("visit: already decided")
)

// CheckVisitTransition enforces the visit state machine: pending is the
// only state a decision may leave from, and only the property owner may
// make it.
func CheckVisitTransition(visit *models.Visit, property *models.Property, userID uint) error {
	if property.OwnerID != userID {
		return ErrVisitNotOwner
	}
	if visit.IsTerminal() {
		return ErrVisitAlreadyDecided
	}
	return nil
}

type CreateVisitInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	VisitDate  time.Time `json:"visitDate" validate:"required"`
	Message    string    `json:"message" validate:"max=2000"`
}

type RespondToVisitInput struct {
	Status   string `json:"status" validate:"required,oneof=accepted rejected"`
	Response string `json:"response" validate:"max=2000"`
}
