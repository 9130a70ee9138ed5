package issues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"smartcity-be/models"
	"smartcity-be/storage"
)

const issuesKey = "issues"

// CreateInput carries a new report. Handlers bind and validate it at
// the edge; the repository re-asserts the same constraints so no
// caller can slip an invalid record into the store.
type CreateInput struct {
	Reporter    string               `json:"name" binding:"required" validate:"required"`
	Phone       string               `json:"phone" binding:"required,len=10,numeric" validate:"required,len=10,numeric"`
	Category    models.IssueCategory `json:"category" binding:"required" validate:"required"`
	Location    string               `json:"location" binding:"required" validate:"required"`
	Description string               `json:"description" binding:"required,min=10" validate:"required,min=10"`
}

// Repository owns the canonical issue collection under one Store key.
// Every mutation is a full read-modify-write of the collection, held
// under mu so two operations never interleave their read and write
// halves within this process.
type Repository struct {
	store    storage.Store
	validate *validator.Validate

	mu     sync.Mutex
	lastID int64

	now func() time.Time
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{
		store:    store,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (r *Repository) load(ctx context.Context) ([]models.Issue, error) {
	list := []models.Issue{}
	if _, err := r.store.Get(ctx, issuesKey, &list); err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}
	return list, nil
}

func (r *Repository) save(ctx context.Context, list []models.Issue) error {
	if err := r.store.Set(ctx, issuesKey, list); err != nil {
		return fmt.Errorf("save issues: %w", err)
	}
	return nil
}

// Create validates input, assigns a creation-time id and appends the
// issue in pending status. Ids are Unix milliseconds clamped to stay
// strictly increasing, so creation order and id order agree.
func (r *Repository) Create(ctx context.Context, in CreateInput) (models.Issue, error) {
	if err := r.checkInput(in); err != nil {
		return models.Issue{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return models.Issue{}, err
	}

	id := r.now().UnixMilli()
	for _, i := range list {
		if i.ID >= id {
			id = i.ID + 1
		}
	}
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	issue := models.Issue{
		ID:          id,
		Reporter:    in.Reporter,
		Phone:       in.Phone,
		Category:    in.Category,
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		Status:      models.Pending,
		CreatedAt:   r.now(),
	}

	list = append(list, issue)
	if err := r.save(ctx, list); err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

func (r *Repository) checkInput(in CreateInput) error {
	if err := r.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return &ValidationError{Field: strings.ToLower(f.Field()), Reason: f.Tag()}
		}
		return &ValidationError{Field: "input", Reason: err.Error()}
	}
	if !models.ValidCategories[in.Category] {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if strings.TrimSpace(in.Location) == "" {
		return &ValidationError{Field: "location", Reason: "required"}
	}
	if len(strings.TrimSpace(in.Description)) < 10 {
		return &ValidationError{Field: "description", Reason: "min"}
	}
	return nil
}

// All returns the full collection in insertion order.
func (r *Repository) All(ctx context.Context) ([]models.Issue, error) {
	return r.load(ctx)
}

// Get returns one issue or NotFoundError.
func (r *Repository) Get(ctx context.Context, id int64) (models.Issue, error) {
	list, err := r.load(ctx)
	if err != nil {
		return models.Issue{}, err
	}
	for _, i := range list {
		if i.ID == id {
			return i, nil
		}
	}
	return models.Issue{}, &NotFoundError{ID: id}
}

// FindByReporter returns the reporter's issues, insertion order
// preserved. Reporter name is the ownership key.
func (r *Repository) FindByReporter(ctx context.Context, name string) ([]models.Issue, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Issue{}
	for _, i := range list {
		if i.Reporter == name {
			out = append(out, i)
		}
	}
	return out, nil
}

// Update applies mutate to the issue with the given id. A missing id
// is a silent no-op: mutations against a possibly-already-deleted
// collection must not fail the caller.
func (r *Repository) Update(ctx context.Context, id int64, mutate func(*models.Issue)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	for idx := range list {
		if list[idx].ID == id {
			mutate(&list[idx])
			return r.save(ctx, list)
		}
	}
	return nil
}

// UpdateAll applies mutate to every issue and persists the collection
// once. Used by the mark-viewed sweep.
func (r *Repository) UpdateAll(ctx context.Context, mutate func(*models.Issue) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	changed := false
	for idx := range list {
		if mutate(&list[idx]) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.save(ctx, list)
}

// Delete removes the issue; deleting an unknown id is a no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, i := range list {
		if i.ID == id {
			found = true
			continue
		}
		kept = append(kept, i)
	}
	if !found {
		return nil
	}
	return r.save(ctx, kept)
}
