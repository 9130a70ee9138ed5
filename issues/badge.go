package issues

import (
	"context"
	"time"

	"smartcity-be/models"
)

// Badge is the unread-update indicator for one actor. It is derived
// from the collection on every call; nothing is persisted. Show is
// false at zero because the UI hides an empty badge instead of
// rendering "0".
type Badge struct {
	Count int  `json:"count"`
	Show  bool `json:"show"`
}

// ComputeBadge derives the actor's badge.
//
// Admins see the number of pending issues across all reporters.
// Reporters see how many of their own issues carry an unseen solution
// or an unseen resolution. ListMine is what clears those flags.
func (s *Service) ComputeBadge(ctx context.Context, actor models.Actor) (Badge, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return Badge{}, err
	}

	count := 0
	if actor.IsAdmin() {
		for _, i := range list {
			if i.Status == models.Pending {
				count++
			}
		}
	} else {
		for _, i := range list {
			if i.Reporter != actor.Name {
				continue
			}
			if (i.Solution != "" && !i.SolutionViewed) ||
				(i.Status == models.Resolved && !i.ResolvedViewed) {
				count++
			}
		}
	}
	return Badge{Count: count, Show: count > 0}, nil
}

// DailyCount is one bucket of the last-7-days series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats is the aggregate view behind the admin dashboard.
type Stats struct {
	TotalIssues   int                          `json:"totalIssues"`
	PendingIssues int                          `json:"pendingIssues"`
	ByCategory    map[models.IssueCategory]int `json:"issuesByCategory"`
	ByStatus      map[models.IssueStatus]int   `json:"issuesByStatus"`
	RatedIssues   int                          `json:"ratedIssues"`
	AverageRating float64                      `json:"averageRating"`
	Last7Days     []DailyCount                 `json:"last7Days"`
}

// ComputeStats aggregates the collection for the admin dashboard.
func (s *Service) ComputeStats(ctx context.Context, actor models.Actor) (Stats, error) {
	if !actor.IsAdmin() {
		return Stats{}, &PermissionError{Actor: actor.Name, Action: "view stats", Reason: "admin only"}
	}
	list, err := s.repo.All(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{
		ByCategory: map[models.IssueCategory]int{},
		ByStatus:   map[models.IssueStatus]int{},
	}
	ratingSum := 0
	for _, i := range list {
		st.TotalIssues++
		st.ByCategory[i.Category]++
		st.ByStatus[i.Status]++
		if i.Status == models.Pending {
			st.PendingIssues++
		}
		if i.Rating > 0 {
			st.RatedIssues++
			ratingSum += i.Rating
		}
	}
	if st.RatedIssues > 0 {
		st.AverageRating = float64(ratingSum) / float64(st.RatedIssues)
	}

	now := s.now()
	for d := 6; d >= 0; d-- {
		day := now.AddDate(0, 0, -d)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)
		count := 0
		for _, i := range list {
			if !i.CreatedAt.Before(start) && i.CreatedAt.Before(end) {
				count++
			}
		}
		st.Last7Days = append(st.Last7Days, DailyCount{
			Date:  start.Format("2006-01-02"),
			Count: count,
		})
	}
	return st, nil
}
