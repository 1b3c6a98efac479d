package dto

import (
	"time"

	"github.com/MadeInMinsk96/loveblr/internal/domain/model"
)

// Wire names for registration follow the Telegram mini-app client: the
// external identifier is the Telegram user id.
type RegisterRequest struct {
	TGID      int64  `json:"tg_id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name"`
}

type UpdateProfileRequest struct {
	Bio       string   `json:"bio"`
	Goal      string   `json:"goal"`
	HeightCM  *int     `json:"height_cm,omitempty"`
	WeightKG  *int     `json:"weight_kg,omitempty"`
	Interests []string `json:"interests"`
}

type ProfileResponse struct {
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Username    string    `json:"username,omitempty"`
	Bio         string    `json:"bio"`
	Goal        string    `json:"goal"`
	HeightCM    *int      `json:"height_cm,omitempty"`
	WeightKG    *int      `json:"weight_kg,omitempty"`
	Interests   []string  `json:"interests"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	IsPremium   bool      `json:"is_premium"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}

func MapProfile(profile model.Profile) ProfileResponse {
	interests := profile.Interests
	if interests == nil {
		interests = []string{}
	}

	return ProfileResponse{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		Username:    profile.Username,
		Bio:         profile.Bio,
		Goal:        profile.Goal.String(),
		HeightCM:    profile.HeightCM,
		WeightKG:    profile.WeightKG,
		Interests:   interests,
		PhotoURL:    profile.PhotoURL,
		IsPremium:   profile.IsPremium,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}
