package dto

import "time"

type PublicationRequest struct {
	Text string `form:"text" json:"text" validate:"omitempty,max=5000"`
}

type CreatePublicationResponse struct {
	Message   string   `json:"message"`
	ID        string   `json:"id"`
	ImageURLs []string `json:"image_urls"`
}

type PublicationResponse struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	ImageURLs   []string          `json:"image_urls"`
	CreatedAt   time.Time         `json:"created_at"`
	LikesCount  int64             `json:"likes_count"`
	LikedByUser bool              `json:"liked_by_user"`
	Comments    []CommentResponse `json:"comments"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type CommentResponse struct {
	Message    string `json:"message,omitempty"`
	ID         string `json:"id"`
	Text       string `json:"comment_text"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"client_name"`
	CreatedAt  string `json:"created_at"` // YYYY-MM-DD HH:MM
}

type LikeResponse struct {
	LikesCount  int64 `json:"likes_count"`
	LikedByUser bool  `json:"liked_by_user"`
}

type SubscriptionResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"` // subscribed | unsubscribed
	Count   int64  `json:"count"`
}
