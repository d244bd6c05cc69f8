package postgres

import (
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

var (
	userCols = []string{"id", "name", "mobile", "email", "password_hash", "is_verified", "is_blocked",
		"otp_code", "otp_generated_at", "followings", "profile", "created_at", "updated_at"}
	artistCols = []string{"id", "name", "role", "email", "mobile", "works_done", "year_of_experience",
		"field", "interest", "educational_qualifications", "communication_language",
		"is_verified", "is_blocked", "is_approved", "profile", "rating",
		"followers", "posts", "created_at", "updated_at"}
	postCols = append([]string{"id", "posted_by", "description", "image", "likes", "created_at", "updated_at"}, artistCols...)
)

var fixedTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func userRow(rows *pgxmock.Rows, id, email string, generatedAt *time.Time) *pgxmock.Rows {
	return rows.AddRow(id, "Asha", "5550001", email, "hash", false, false,
		"1234", generatedAt, []string{}, "avatar.png", fixedTime, fixedTime)
}

func artistValues(id, name string, followers []string) []any {
	return []any{id, name, "artist", name + "@artists.test", "5551000", 3, "2",
		"painting", "", "", "english",
		true, false, true, "avatar.png", 4.5,
		followers, []string{}, fixedTime, fixedTime}
}

func postRow(rows *pgxmock.Rows, id, artistID string, likes []string, createdAt time.Time) *pgxmock.Rows {
	values := append([]any{id, artistID, "sunset", "sunset.png", likes, createdAt, createdAt},
		artistValues(artistID, "Mira", []string{})...)
	return rows.AddRow(values...)
}
