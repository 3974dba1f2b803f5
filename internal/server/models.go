package server

import (
	"strings"

	"github.com/gibbsgresge/CrisisEventSite/models"
)

type userPayload struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	EmailNotifications bool   `json:"email_notifications"`
}

// validate builds a well-formed User or reports the missing field. This is
// the only place user records are checked; nothing downstream re-validates.
func (u userPayload) validate() (models.User, string) {
	switch {
	case strings.TrimSpace(u.Name) == "":
		return models.User{}, "name"
	case strings.TrimSpace(u.Email) == "":
		return models.User{}, "email"
	case strings.TrimSpace(u.ID) == "":
		return models.User{}, "id"
	case strings.TrimSpace(u.Role) == "":
		return models.User{}, "role"
	}
	return models.User{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		EmailNotifications: u.EmailNotifications,
	}, ""
}

type templateRequest struct {
	Text     string      `json:"text"`
	Category string      `json:"category"`
	User     userPayload `json:"user"`
}

type summaryRequest struct {
	URLs       []string    `json:"urls"`
	Text       string      `json:"text"`
	Category   string      `json:"category"`
	TemplateID string      `json:"template_id"`
	User       userPayload `json:"user"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}
