package services

import (
	"fmt"
	"log"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
)

// Notifier delivers user-facing notifications over the channels enabled
// in each account's preferences. The actual email/SMS/WhatsApp
// transports are external collaborators; dispatch is logged here.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// NotifyVisitRequested informs an owner of a new viewing request.
func (n *Notifier) NotifyVisitRequested(ownerID, requesterID, propertyID uint) error {
	var requester models.User
	if err := storage.DB.First(&requester, requesterID).Error; err != nil {
		return err
	}

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		return err
	}

	title := "Nouvelle demande de visite"
	body := fmt.Sprintf("%s souhaite visiter %s", requester.Name, property.Title)
	return n.sendToUser(ownerID, title, body)
}

// NotifyVisitDecision informs a tenant of the owner's response.
func (n *Notifier) NotifyVisitDecision(tenantID, propertyID uint, status string) error {
	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		return err
	}

	title := "Réponse à votre demande de visite"
	body := fmt.Sprintf("Votre demande de visite pour %s a été refusée", property.Title)
	if status == models.VisitStatusAccepted {
		body = fmt.Sprintf("Votre demande de visite pour %s a été acceptée", property.Title)
	}
	return n.sendToUser(tenantID, title, body)
}

// NotifyNewMessage informs the counterparty of a conversation message.
func (n *Notifier) NotifyNewMessage(receiverID, senderID, propertyID uint) error {
	var sender models.User
	if err := storage.DB.First(&sender, senderID).Error; err != nil {
		return err
	}

	propertyTitle := "un bien"
	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err == nil {
		propertyTitle = property.Title
	}

	title := "Nouveau message"
	body := fmt.Sprintf("%s vous a écrit à propos de %s", sender.Name, propertyTitle)
	return n.sendToUser(receiverID, title, body)
}

// sendToUser fans the notification out to every enabled channel.
func (n *Notifier) sendToUser(userID uint, title, body string) error {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		log.Printf("notifier: user %d not found: %v", userID, err)
		return err
	}

	prefs := user.GetPreferences()

	if prefs.NotifyEmail && user.Email != "" {
		log.Printf("notifier: email to %s [%s] %s: %s", user.Email, prefs.Language, title, body)
	}
	if prefs.NotifySMS && user.PhoneNumber != "" {
		log.Printf("notifier: sms to %s [%s] %s: %s", user.PhoneNumber, prefs.Language, title, body)
	}
	if prefs.NotifyWhatsApp && user.PhoneNumber != "" {
		log.Printf("notifier: whatsapp to %s [%s] %s: %s", user.PhoneNumber, prefs.Language, title, body)
	}

	return nil
}
