package dto

// IDResponse acknowledges a write by returning the new id
type IDResponse struct {
	ID uint `json:"id"`
}

// MessageResponse acknowledges an action that has nothing else to return
type MessageResponse struct {
	Message string `json:"message"`
}
