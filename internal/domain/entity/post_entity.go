package entity

import "time"

// Comment is an ordered sub-record of a post.
type Comment struct {
	ID        string       `json:"_id"`
	Text      string       `json:"text"`
	PostedBy  string       `json:"-"`
	Author    *UserSummary `json:"postedBy,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Post is authored by an artist. Likes is a set of user ids.
type Post struct {
	ID          string    `json:"_id"`
	PostedBy    string    `json:"-"`
	Author      *Artist   `json:"postedBy,omitempty"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Likes       []string  `json:"likes"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
