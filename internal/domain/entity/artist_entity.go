package entity

import "time"

// Artist accounts are managed by the artist-side service; this backend reads
// them and maintains the follower relation.
type Artist struct {
	ID                        string    `json:"_id"`
	Name                      string    `json:"name"`
	Role                      string    `json:"role"`
	Email                     string    `json:"email"`
	Mobile                    string    `json:"mobile"`
	WorksDone                 int       `json:"worksDone"`
	YearOfExperience          string    `json:"YearOfExperience"`
	Field                     string    `json:"field"`
	Interest                  string    `json:"interest"`
	EducationalQualifications string    `json:"educationalQualifications"`
	CommunicationLanguage     string    `json:"communicationLanguage"`
	IsVerified                bool      `json:"isVerified"`
	IsBlocked                 bool      `json:"isBlocked"`
	IsApproved                bool      `json:"isApproved"`
	Profile                   string    `json:"profile"`
	Rating                    float64   `json:"rating"`
	Followers                 []string  `json:"followers"`
	Posts                     []string  `json:"posts"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

// Listable reports whether the artist may appear in public listings.
func (a *Artist) Listable() bool {
	return a.IsVerified && !a.IsBlocked
}
