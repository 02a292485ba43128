// internal/model/models.go
package model

import "time"

// ActivityType is the closed set of scoreable event kinds.
type ActivityType string

const (
	TypePush        ActivityType = "PUSH"
	TypePROpened    ActivityType = "PR_OPENED"
	TypePRMerged    ActivityType = "PR_MERGED"
	TypeIssueClosed ActivityType = "ISSUE_CLOSED"
	TypeCodeReview  ActivityType = "CODE_REVIEW"
)

// Points returns the fixed point value assigned at creation time for this
// activity type. The table is exhaustive over the closed set; an unknown
// type scores zero and should never be stored.
func (t ActivityType) Points() int32 {
	switch t {
	case TypePush:
		return 1
	case TypePROpened:
		return 10
	case TypePRMerged:
		return 50
	case TypeIssueClosed:
		return 20
	case TypeCodeReview:
		return 15
	}
	return 0
}

// Valid reports whether t is a member of the closed activity type set.
func (t ActivityType) Valid() bool {
	switch t {
	case TypePush, TypePROpened, TypePRMerged, TypeIssueClosed, TypeCodeReview:
		return true
	}
	return false
}

// User is a contributor identified by their GitHub account id. Created on
// first-seen event and never deleted; IsActive is flipped externally to
// exclude a user from the leaderboard.
type User struct {
	ID        int32  `json:"id"`
	GithubID  int64  `json:"githubId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
	IsActive  bool   `json:"isActive"`
}

// Repository is created on first-seen event and immutable thereafter.
type Repository struct {
	ID       int32
	GithubID int64
	Name     string
	OrgName  string
}

// Activity is one immutable scored event, tied to exactly one user and one
// repository. RefID holds the external reference (commit SHA, PR number,
// review id, issue number) and is not unique.
type Activity struct {
	ID           int32
	UserID       int32
	RepositoryID int32
	Type         ActivityType
	Title        string
	RefID        string
	Points       int32
	Additions    int32
	Deletions    int32
	CreatedAt    time.Time
}
