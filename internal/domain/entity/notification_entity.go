package entity

import "time"

type Notification struct {
	ID            string    `json:"_id"`
	ReceiverID    string    `json:"receiverId"`
	SenderID      string    `json:"senderId"`
	RelatedPostID string    `json:"-"`
	RelatedPost   *Post     `json:"relatedPostId,omitempty"`
	Message       string    `json:"notificationMessage"`
	Seen          bool      `json:"seen"`
	Date          time.Time `json:"date"`
}
