package model

import (
	"time"

	"github.com/MadeInMinsk96/loveblr/internal/domain/enums"
)

type Profile struct {
	UserID      int64      `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Username    string     `json:"username,omitempty"`
	Bio         string     `json:"bio"`
	Goal        enums.Goal `json:"goal"`
	HeightCM    *int       `json:"height_cm,omitempty"`
	WeightKG    *int       `json:"weight_kg,omitempty"`
	Interests   []string   `json:"interests"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	IsPremium   bool       `json:"is_premium"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
