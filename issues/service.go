package issues

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"smartcity-be/models"
)

// Event describes a lifecycle transition for downstream consumers.
type Event struct {
	IssueID  int64                `json:"id"`
	Action   string               `json:"action"`
	Reporter string               `json:"name"`
	Category models.IssueCategory `json:"category"`
	Status   models.IssueStatus   `json:"status"`
	At       time.Time            `json:"at"`
}

// Notifier receives lifecycle events. Publishing is best-effort: a
// failing sink never fails the transition that produced the event.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Service is the issue state machine. Every operation takes the acting
// identity explicitly and enforces role, ownership, and status
// preconditions even when the caller's UI already hid the affordance.
//
// Status moves forward only: pending -> resolved -> completed. Delete
// is allowed from any status and is terminal.
type Service struct {
	repo   *Repository
	sink   Notifier
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(repo *Repository, sink Notifier, log zerolog.Logger) *Service {
	return &Service{repo: repo, sink: sink, log: log, now: time.Now}
}

func (s *Service) emit(ctx context.Context, action string, issue models.Issue) {
	if s.sink == nil {
		return
	}
	s.sink.Notify(ctx, Event{
		IssueID:  issue.ID,
		Action:   action,
		Reporter: issue.Reporter,
		Category: issue.Category,
		Status:   issue.Status,
		At:       s.now(),
	})
}

// Create files a new report under the actor's name.
func (s *Service) Create(ctx context.Context, actor models.Actor, in CreateInput) (models.Issue, error) {
	in.Reporter = actor.Name
	issue, err := s.repo.Create(ctx, in)
	if err != nil {
		return models.Issue{}, err
	}
	s.log.Info().Int64("issue", issue.ID).Str("reporter", issue.Reporter).
		Str("category", string(issue.Category)).Msg("issue created")
	s.emit(ctx, "created", issue)
	return issue, nil
}

// EditInput is the reporter-editable subset of an issue.
type EditInput struct {
	Category    models.IssueCategory `json:"category" binding:"required"`
	Location    string               `json:"location" binding:"required"`
	Description string               `json:"description" binding:"required,min=10"`
}

// Edit lets the owning reporter amend a pending report. Once the issue
// leaves pending the record is frozen for the reporter.
func (s *Service) Edit(ctx context.Context, actor models.Actor, id int64, in EditInput) (models.Issue, error) {
	if !models.ValidCategories[in.Category] {
		return models.Issue{}, &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if strings.TrimSpace(in.Location) == "" {
		return models.Issue{}, &ValidationError{Field: "location", Reason: "required"}
	}
	if len(strings.TrimSpace(in.Description)) < 10 {
		return models.Issue{}, &ValidationError{Field: "description", Reason: "min"}
	}

	issue, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	if issue.Reporter != actor.Name {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "edit", Reason: "not the reporter"}
	}
	if issue.Status != models.Pending {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "edit", Reason: "issue is no longer pending"}
	}

	err = s.repo.Update(ctx, id, func(i *models.Issue) {
		if i.Status != models.Pending {
			return
		}
		now := s.now()
		i.Category = in.Category
		i.Location = strings.TrimSpace(in.Location)
		i.Description = strings.TrimSpace(in.Description)
		i.UpdatedAt = &now
	})
	if err != nil {
		return models.Issue{}, err
	}
	return s.repo.Get(ctx, id)
}

// AttachSolution records an administrator's solution text on a pending
// issue. The status does not change; the reporter's badge lights up
// until they view the solution.
func (s *Service) AttachSolution(ctx context.Context, actor models.Actor, id int64, solution string) (models.Issue, error) {
	if !actor.IsAdmin() {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "attach solution", Reason: "admin only"}
	}
	solution = strings.TrimSpace(solution)
	if solution == "" {
		return models.Issue{}, &ValidationError{Field: "solution", Reason: "required"}
	}

	issue, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	if issue.Status != models.Pending {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "attach solution", Reason: "issue is not pending"}
	}

	err = s.repo.Update(ctx, id, func(i *models.Issue) {
		i.Solution = solution
		i.SolutionViewed = false
	})
	if err != nil {
		return models.Issue{}, err
	}
	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	s.log.Info().Int64("issue", id).Str("admin", actor.Name).Msg("solution attached")
	s.emit(ctx, "solution_added", updated)
	return updated, nil
}

// Resolve advances pending -> resolved.
func (s *Service) Resolve(ctx context.Context, actor models.Actor, id int64) (models.Issue, error) {
	if !actor.IsAdmin() {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "resolve", Reason: "admin only"}
	}
	issue, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	if issue.Status != models.Pending {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "resolve", Reason: "only pending issues can be resolved"}
	}

	err = s.repo.Update(ctx, id, func(i *models.Issue) {
		if i.Status != models.Pending {
			return
		}
		now := s.now()
		i.Status = models.Resolved
		i.ResolvedAt = &now
		i.ResolvedViewed = false
	})
	if err != nil {
		return models.Issue{}, err
	}
	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	s.log.Info().Int64("issue", id).Str("admin", actor.Name).Msg("issue resolved")
	s.emit(ctx, "resolved", updated)
	return updated, nil
}

// Complete advances resolved -> completed. Rating survives untouched.
func (s *Service) Complete(ctx context.Context, actor models.Actor, id int64) (models.Issue, error) {
	if !actor.IsAdmin() {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "complete", Reason: "admin only"}
	}
	issue, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	if issue.Status != models.Resolved {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "complete", Reason: "only resolved issues can be completed"}
	}

	err = s.repo.Update(ctx, id, func(i *models.Issue) {
		if i.Status != models.Resolved {
			return
		}
		now := s.now()
		i.Status = models.Completed
		i.CompletedAt = &now
	})
	if err != nil {
		return models.Issue{}, err
	}
	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	s.log.Info().Int64("issue", id).Str("admin", actor.Name).Msg("issue completed")
	s.emit(ctx, "completed", updated)
	return updated, nil
}

// Delete removes the issue. Admins can delete any issue, reporters
// only their own. Deleting an id that no longer exists is a no-op.
func (s *Service) Delete(ctx context.Context, actor models.Actor, id int64) error {
	issue, err := s.repo.Get(ctx, id)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return err
	}
	if !actor.IsAdmin() && issue.Reporter != actor.Name {
		return &PermissionError{Actor: actor.Name, Action: "delete", Reason: "not the reporter"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("issue", id).Str("actor", actor.Name).Msg("issue deleted")
	s.emit(ctx, "deleted", issue)
	return nil
}

// Rate records the reporter's 1-5 star verdict on a resolved or
// completed issue. First write wins: neither re-rating nor rating
// after a skip is possible.
func (s *Service) Rate(ctx context.Context, actor models.Actor, id int64, stars int) (models.Issue, error) {
	if stars < 1 || stars > 5 {
		return models.Issue{}, &ValidationError{Field: "rating", Reason: "select a rating between 1 and 5"}
	}
	issue, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	if issue.Reporter != actor.Name {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "rate", Reason: "not the reporter"}
	}
	if issue.Status != models.Resolved && issue.Status != models.Completed {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "rate", Reason: "issue has no solution to rate yet"}
	}
	if issue.RatingState() != models.Unrated {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "rate", Reason: "rating already recorded"}
	}

	err = s.repo.Update(ctx, id, func(i *models.Issue) {
		if i.RatingState() != models.Unrated {
			return
		}
		i.Rating = stars
	})
	if err != nil {
		return models.Issue{}, err
	}
	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	s.log.Info().Int64("issue", id).Int("stars", stars).Msg("issue rated")
	s.emit(ctx, "rated", updated)
	return updated, nil
}

// SkipRating records an explicit decline. Mutually exclusive with a
// star rating and just as final.
func (s *Service) SkipRating(ctx context.Context, actor models.Actor, id int64) (models.Issue, error) {
	issue, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	if issue.Reporter != actor.Name {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "skip rating", Reason: "not the reporter"}
	}
	if issue.Status != models.Resolved && issue.Status != models.Completed {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "skip rating", Reason: "issue has no solution to rate yet"}
	}
	if issue.RatingState() != models.Unrated {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "skip rating", Reason: "rating already recorded"}
	}

	err = s.repo.Update(ctx, id, func(i *models.Issue) {
		if i.RatingState() != models.Unrated {
			return
		}
		i.RatingSkipped = true
	})
	if err != nil {
		return models.Issue{}, err
	}
	return s.repo.Get(ctx, id)
}

// ListMine returns the actor's own issues and, as a side effect of the
// listing, marks pending solution/resolution updates as seen. This is
// the only thing that clears the reporter's badge.
func (s *Service) ListMine(ctx context.Context, actor models.Actor) ([]models.Issue, error) {
	err := s.repo.UpdateAll(ctx, func(i *models.Issue) bool {
		if i.Reporter != actor.Name {
			return false
		}
		changed := false
		if i.Solution != "" && !i.SolutionViewed {
			i.SolutionViewed = true
			changed = true
		}
		if i.Status == models.Resolved && !i.ResolvedViewed {
			i.ResolvedViewed = true
			changed = true
		}
		return changed
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindByReporter(ctx, actor.Name)
}

// ListAll returns every issue for the admin triage view.
func (s *Service) ListAll(ctx context.Context, actor models.Actor) ([]models.Issue, error) {
	if !actor.IsAdmin() {
		return nil, &PermissionError{Actor: actor.Name, Action: "list all issues", Reason: "admin only"}
	}
	return s.repo.All(ctx)
}

// Get returns one issue if the actor may see it.
func (s *Service) Get(ctx context.Context, actor models.Actor, id int64) (models.Issue, error) {
	issue, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}
	if !actor.IsAdmin() && issue.Reporter != actor.Name {
		return models.Issue{}, &PermissionError{Actor: actor.Name, Action: "view", Reason: "not the reporter"}
	}
	return issue, nil
}
