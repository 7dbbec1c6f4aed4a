// internal/app/features/conversations/types.go
package conversations

import "github.com/dalemusser/cityfix/internal/domain/models"

type openRequest struct {
	WithUserID string `json:"with_user_id"`
}

type sendRequest struct {
	Body string `json:"body"`
}

type listResponse struct {
	Items   []models.Conversation `json:"items"`
	HasMore bool                  `json:"has_more"`
}

type messagesResponse struct {
	Items   []models.Message `json:"items"`
	HasMore bool             `json:"has_more"`
}
