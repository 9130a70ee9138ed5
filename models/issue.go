package models

import (
	"strconv"
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	Pothole     IssueCategory = "pothole"
	Streetlight IssueCategory = "streetlight"
	Traffic     IssueCategory = "traffic"
	Waste       IssueCategory = "waste"
	Other       IssueCategory = "other"
)

// ValidCategories is the closed set of reportable categories.
var ValidCategories = map[IssueCategory]bool{
	Pothole: true, Streetlight: true, Traffic: true, Waste: true, Other: true,
}

// IssueStatus enum. Transitions are forward-only:
// pending -> resolved -> completed. There is no reopen.
type IssueStatus string

const (
	Pending   IssueStatus = "pending"
	Resolved  IssueStatus = "resolved"
	Completed IssueStatus = "completed"
)

// Issue represents a civic issue reported by a citizen.
//
// SolutionViewed and ResolvedViewed are per-issue "seen" flags, not a
// per-viewer history: they flip to true when the owning reporter lists
// their issues, and the notification badge is derived from them.
type Issue struct {
	ID             int64         `json:"id"`
	Reporter       string        `json:"name"`
	Phone          string        `json:"phone"`
	Category       IssueCategory `json:"category"`
	Location       string        `json:"location"`
	Description    string        `json:"description"`
	Status         IssueStatus   `json:"status"`
	Solution       string        `json:"solution,omitempty"`
	SolutionViewed bool          `json:"solutionViewed,omitempty"`
	ResolvedViewed bool          `json:"resolvedViewed,omitempty"`
	Rating         int           `json:"rating,omitempty"`
	RatingSkipped  bool          `json:"ratingSkipped,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      *time.Time    `json:"updatedAt,omitempty"`
	ResolvedAt     *time.Time    `json:"resolvedAt,omitempty"`
	CompletedAt    *time.Time    `json:"completedAt,omitempty"`
}

// RefCode returns the short reference code shown to the reporter on
// submission: "SC" plus the last 8 digits of the id.
func (i Issue) RefCode() string {
	s := strconv.FormatInt(i.ID, 10)
	if len(s) > 8 {
		s = s[len(s)-8:]
	}
	return "SC" + s
}

// RatingKind is the closed rating sub-state of an issue.
type RatingKind int

const (
	Unrated RatingKind = iota
	Rated
	Skipped
)

// RatingState collapses the stored rating fields into one sub-state.
// The service guarantees Rating and RatingSkipped are never both set.
func (i Issue) RatingState() RatingKind {
	switch {
	case i.Rating > 0:
		return Rated
	case i.RatingSkipped:
		return Skipped
	default:
		return Unrated
	}
}

// RatingLabels maps stars to their ordinal labels; index 0 is unused.
var RatingLabels = [6]string{"", "Poor", "Fair", "Good", "Very Good", "Excellent"}
