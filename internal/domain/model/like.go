package model

import "time"

type Like struct {
	FromUserID int64     `json:"from_user_id"`
	ToUserID   int64     `json:"to_user_id"`
	IsMutual   bool      `json:"is_mutual"`
	CreatedAt  time.Time `json:"created_at"`
}
