package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

// ChatbotService proxies chat messages to the external assistant
// service. When the service is unreachable or not configured, a canned
// answer keeps the widget functional.
type ChatbotService struct {
	serviceURL string
	client     *http.Client
}

// NewChatbotService creates a new chatbot service
func NewChatbotService(serviceURL string) *ChatbotService {
	return &ChatbotService{
		serviceURL: serviceURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// ChatInput represents a chat message
type ChatInput struct {
	Message     string `json:"message" validate:"required,max=2000"`
	ContextType string `json:"context_type" validate:"omitempty,max=40"`
	SessionID   string `json:"session_id" validate:"omitempty,max=64"`
}

// ChatReply represents the assistant's answer
type ChatReply struct {
	Response         string   `json:"response"`
	Confidence       float64  `json:"confidence"`
	SuggestedActions []string `json:"suggested_actions"`
	SessionID        string   `json:"session_id,omitempty"`
	Timestamp        string   `json:"timestamp"`
}

// Ask forwards the message to the assistant service, falling back to a
// canned answer on any failure
func (s *ChatbotService) Ask(ctx context.Context, input *ChatInput) *ChatReply {
	if s.serviceURL == "" {
		return s.fallback(input)
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return s.fallback(input)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serviceURL, bytes.NewReader(payload))
	if err != nil {
		return s.fallback(input)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Chatbot service unreachable: %v", err)
		return s.fallback(input)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ Chatbot service returned HTTP %d", resp.StatusCode)
		return s.fallback(input)
	}

	var reply ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return s.fallback(input)
	}
	return &reply
}

// fallback picks a canned French answer by keyword
func (s *ChatbotService) fallback(input *ChatInput) *ChatReply {
	msg := strings.ToLower(input.Message)

	response := "Je suis l'assistant SIPORTS. Posez-moi vos questions sur le salon, les forfaits ou les rendez-vous B2B."
	actions := []string{"voir_forfaits", "contacter_equipe"}
	switch {
	case strings.Contains(msg, "forfait") || strings.Contains(msg, "package") || strings.Contains(msg, "tarif"):
		response = "Nos forfaits visiteurs vont du pass gratuit au pass VIP avec rendez-vous B2B illimités. Consultez la page forfaits pour le détail."
		actions = []string{"voir_forfaits"}
	case strings.Contains(msg, "rendez-vous") || strings.Contains(msg, "b2b") || strings.Contains(msg, "meeting"):
		response = "Les rendez-vous B2B se réservent depuis votre espace personnel, selon le quota de votre forfait."
		actions = []string{"reserver_rdv", "voir_forfaits"}
	case strings.Contains(msg, "inscription") || strings.Contains(msg, "compte"):
		response = "Après inscription, votre compte est examiné par notre équipe. Vous recevrez un email dès sa validation."
		actions = []string{"completer_profil"}
	case strings.Contains(msg, "horaire") || strings.Contains(msg, "date") || strings.Contains(msg, "lieu"):
		response = "Le salon SIPORTS se tient à El Jadida, Maroc. Les horaires détaillés sont publiés sur siportevent.com."
		actions = []string{"voir_programme"}
	}

	return &ChatReply{
		Response:         response,
		Confidence:       0.3,
		SuggestedActions: actions,
		SessionID:        input.SessionID,
		Timestamp:        time.Now().Format(time.RFC3339),
	}
}
