package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// NotificationService delivers account lifecycle notifications to an
// external webhook. Delivery is best effort: a failed call is logged
// and never blocks the workflow that triggered it.
type NotificationService struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService(webhookURL string) *NotificationService {
	return &NotificationService{
		webhookURL: webhookURL,
		enabled:    webhookURL != "",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// send posts a templated notification to the webhook
func (s *NotificationService) send(template, recipient string, context map[string]string) {
	if !s.enabled {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"template":  template,
		"recipient": recipient,
		"context":   context,
	})
	if err != nil {
		log.Printf("⚠️ Notification payload error [%s]: %v", template, err)
		return
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("⚠️ Notification delivery failed [%s -> %s]: %v", template, recipient, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("⚠️ Notification rejected [%s -> %s]: HTTP %d", template, recipient, resp.StatusCode)
	}
}

// NotifyRegistrationReceived confirms a registration is awaiting review
func (s *NotificationService) NotifyRegistrationReceived(email, firstName string) {
	s.send("registration_received", email, map[string]string{
		"first_name": firstName,
		"message":    "Votre inscription a bien été reçue et sera examinée par notre équipe.",
	})
}

// NotifyAccountValidated tells the user their account was approved
func (s *NotificationService) NotifyAccountValidated(email, firstName string) {
	s.send("account_validated", email, map[string]string{
		"first_name": firstName,
		"message":    "Votre compte a été validé. Vous pouvez maintenant accéder à la plateforme.",
	})
}

// NotifyAccountRejected tells the user their account was rejected and why
func (s *NotificationService) NotifyAccountRejected(email, firstName, reason, comment string) {
	ctx := map[string]string{
		"first_name": firstName,
		"reason":     reason,
		"message":    fmt.Sprintf("Votre inscription a été refusée. Raison: %s.", reason),
	}
	if comment != "" {
		ctx["comment"] = comment
	}
	s.send("account_rejected", email, ctx)
}

// NotifyProfileReminder nudges a pending user to complete their profile
func (s *NotificationService) NotifyProfileReminder(email, firstName string) {
	s.send("profile_reminder", email, map[string]string{
		"first_name": firstName,
		"message":    "Votre inscription est toujours en attente. Pensez à compléter votre profil.",
	})
}
