package routes

import (
	"errors"
	"strings"

	"rental-marketplace-server/models"
	"rental-marketplace-server/services"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetOrCreateConversation resolves the conversation for (property,
// unordered user pair), creating it with an empty message list when
// absent. Either participant ordering resolves to the same record.
func GetOrCreateConversation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateConversationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.OtherUserID == userID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Impossible de créer une conversation avec soi-même.", ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Find(&property, input.PropertyID)
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	conversation, err := findConversationByPair(input.PropertyID, userID, input.OtherUserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateInternalServerError(ctx)
			return
		}

		user1, user2 := models.NormalizePair(userID, input.OtherUserID)
		conversation = &models.Conversation{
			PropertyID: input.PropertyID,
			User1ID:    user1,
			User2ID:    user2,
		}
		if createErr := storage.DB.Create(conversation).Error; createErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	if err := storage.DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("messages.created_at ASC")
	}).First(conversation, conversation.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(conversation)
}

func GetMyConversations(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var conversations []models.Conversation
	if err := storage.DB.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Preload("Property").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Order("created_at DESC").
		Find(&conversations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(conversations)
}

func GetConversation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	id := ctx.Params().Get("id")

	var conversation models.Conversation
	conversationExists := storage.DB.Preload("Property").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Find(&conversation, id)

	if conversationExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if conversationExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if !conversation.HasParticipant(userID) {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(conversation)
}

// SendMessage appends to the conversation; content must be non-empty
// after trimming. Insertion order is chronological order.
func SendMessage(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	id := ctx.Params().Get("id")

	var input SendMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Le message ne peut pas être vide.", ctx)
		return
	}

	var conversation models.Conversation
	conversationExists := storage.DB.Find(&conversation, id)
	if conversationExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if conversationExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if !conversation.HasParticipant(userID) {
		utils.CreateForbidden(ctx)
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Content:        content,
	}

	if err := storage.DB.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	go services.NewNotifier().NotifyNewMessage(
		conversation.OtherParticipant(userID), userID, conversation.PropertyID)

	ctx.JSON(message)
}

func findConversationByPair(propertyID, userA, userB uint) (*models.Conversation, error) {
	user1, user2 := models.NormalizePair(userA, userB)

	var conversation models.Conversation
	err := storage.DB.Where(
		"property_id = ? AND user1_id = ? AND user2_id = ?",
		propertyID, user1, user2).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

type CreateConversationInput struct {
	PropertyID  uint `json:"propertyID" validate:"required"`
	OtherUserID uint `json:"otherUserID" validate:"required"`
}

type SendMessageInput struct {
	Content string `json:"content" validate:"required,max=5000"`
}
