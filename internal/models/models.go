package models

import "time"

// Session records who, if anyone, is currently signed in.
type Session struct {
	Nickname      string
	Email         string
	Authenticated bool
}

// Credential is the single registered account kept by the mock backend.
// PasswordHash is written at sign-up but deliberately never consulted by
// login; only account deletion confirms it.
type Credential struct {
	Nickname     string
	Email        string
	PasswordHash string
}

// Category classifies an uploaded exercise video.
type Category string

const (
	CategorySquat         Category = "squat"
	CategoryBenchPress    Category = "benchpress"
	CategoryDeadlift      Category = "deadlift"
	CategoryOverheadPress Category = "overheadpress"
	CategoryOther         Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySquat, CategoryBenchPress, CategoryDeadlift, CategoryOverheadPress, CategoryOther:
		return true
	}
	return false
}

// SortOrder selects the derived ordering of a catalog listing.
type SortOrder string

const (
	SortLatest  SortOrder = "latest"
	SortPopular SortOrder = "popular"
)

// Video is a shared exercise video awaiting peer feedback.
//
// The JSON field names match the catalog layout the browser client persisted
// under the community_videos key, so an existing backing store stays readable.
type Video struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"user"`
	FeedbackCount int       `json:"feedbackCount"`
	ViewCount     int       `json:"views"`
	Category      Category  `json:"type"`
	CreatedAt     time.Time `json:"createdAt"`
	MediaRef      string    `json:"videoUrl"`
}

// Comment is one entry in a video's feedback thread.
type Comment struct {
	ID        int64     `json:"id"`
	VideoID   string    `json:"videoId"`
	Author    string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Toast is a short-lived status message shown to the user.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
