package entity

import "math"

type Rating struct {
	ID          string `json:"id" firestore:"id"`
	RaterUserID string `json:"raterUserId" firestore:"raterUserId"`
	Value       int    `json:"rating" firestore:"rating"`
}

type User struct {
	ID              string   `json:"id" firestore:"id"`
	UniversityID    string   `json:"universityId" firestore:"universityId"`
	Username        string   `json:"username" firestore:"username"`
	PasswordHash    string   `json:"-" firestore:"passwordHash"`
	Name            string   `json:"name" firestore:"name"`
	Email           string   `json:"email" firestore:"email"`
	ProfileImageURL string   `json:"profileImageUrl" firestore:"profileImageUrl"`
	Bio             string   `json:"bio" firestore:"bio"`
	IsSuperAdmin    bool     `json:"isSuperAdmin" firestore:"isSuperAdmin"`
	Ratings         []Rating `json:"ratings" firestore:"ratings"`
}

// ImageOr returns the profile image, or fallback when none is set.
func (u *User) ImageOr(fallback string) string {
	if u.ProfileImageURL == "" {
		return fallback
	}
	return u.ProfileImageURL
}

// AverageRating is round(mean*10)/10, or 0 without ratings.
func (u *User) AverageRating() float64 {
	if len(u.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range u.Ratings {
		sum += r.Value
	}
	mean := float64(sum) / float64(len(u.Ratings))
	return math.Round(mean*10) / 10
}
