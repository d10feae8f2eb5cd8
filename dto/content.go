package dto

import "abchotels/models"

type ContactRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Email         string `json:"email" binding:"required,email,max=254"`
	Subject       string `json:"subject" binding:"required,max=200"`
	Message       string `json:"message" binding:"required"`
	ContactMethod string `json:"contactMethod" binding:"omitempty,oneof=email phone both"`
}

type ContactResponse struct {
	ID            uint   `json:"id"`
	ContactMethod string `json:"contactMethod"`
	Message       string `json:"message"`
}

// FAQGroup is one category of the FAQ page
type FAQGroup struct {
	Key  string       `json:"key"`
	Name string       `json:"name"`
	FAQs []models.FAQ `json:"faqs"`
}
