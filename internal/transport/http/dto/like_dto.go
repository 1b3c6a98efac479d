package dto

type LikeRequest struct {
	FromUserID int64 `json:"from_user_id"`
	ToUserID   int64 `json:"to_user_id"`
}

type LikeResponse struct {
	AlreadyLiked bool `json:"already_liked"`
	Created      bool `json:"created"`
	IsMatch      bool `json:"is_match"`
}
