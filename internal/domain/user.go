package domain

import "time"

// User is the public profile of an application user.
// Credentials are owned by the identity service and never loaded here.
type User struct {
	ID           int64
	Username     string
	FullName     string
	PhotoProfile *string
	CreatedAt    time.Time
}

// UserSummary is the author/actor projection embedded in listings.
type UserSummary struct {
	ID           int64
	Username     string
	FullName     string
	PhotoProfile *string
}

// FollowCount holds follower and following totals of a user.
type FollowCount struct {
	Followers int
	Following int
}
