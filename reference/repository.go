// Package reference holds the portal's admin-managed lists: city
// alerts, emergency numbers, tourist places, and bus routes. Records
// are schemaless beyond an id and a few required fields per kind; the
// admin screens are plain list CRUD over the Store.
package reference

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Item is one reference record. The id field is managed here; the
// rest passes through as-is.
type Item map[string]any

// Kind names a reference list and its Store key plus required fields.
type Kind struct {
	Key      string
	Required []string
}

// Kinds is the closed registry of reference lists, keyed by the URL
// segment the controller exposes.
var Kinds = map[string]Kind{
	"alerts":    {Key: "alerts", Required: []string{"type", "message"}},
	"emergency": {Key: "emergencyNumbers", Required: []string{"service", "number"}},
	"places":    {Key: "touristPlaces", Required: []string{"name", "description"}},
	"buses":     {Key: "buses", Required: []string{"number", "route"}},
}

type store interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

type Repository struct {
	store store

	mu  sync.Mutex
	now func() time.Time
}

func NewRepository(s store) *Repository {
	return &Repository{store: s, now: time.Now}
}

// ErrUnknownKind rejects list names outside the registry.
var ErrUnknownKind = fmt.Errorf("unknown reference kind")

// ErrMissingField reports an absent or blank required field.
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (r *Repository) load(ctx context.Context, kind string) (Kind, []Item, error) {
	k, ok := Kinds[kind]
	if !ok {
		return Kind{}, nil, ErrUnknownKind
	}
	list := []Item{}
	if _, err := r.store.Get(ctx, k.Key, &list); err != nil {
		return Kind{}, nil, fmt.Errorf("load %s: %w", k.Key, err)
	}
	return k, list, nil
}

func checkRequired(k Kind, item Item) error {
	for _, f := range k.Required {
		v, ok := item[f].(string)
		if !ok || strings.TrimSpace(v) == "" {
			return &ErrMissingField{Field: f}
		}
	}
	return nil
}

// List returns the records of one kind in stored order.
func (r *Repository) List(ctx context.Context, kind string) ([]Item, error) {
	_, list, err := r.load(ctx, kind)
	return list, err
}

// Create validates required fields, assigns a millisecond id and
// appends the record.
func (r *Repository) Create(ctx context.Context, kind string, item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, list, err := r.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	if err := checkRequired(k, item); err != nil {
		return nil, err
	}

	id := r.now().UnixMilli()
	for _, existing := range list {
		if eid := itemID(existing); eid >= id {
			id = eid + 1
		}
	}
	item["id"] = id

	list = append(list, item)
	if err := r.store.Set(ctx, k.Key, list); err != nil {
		return nil, fmt.Errorf("save %s: %w", k.Key, err)
	}
	return item, nil
}

// Update replaces the non-id fields of the record; missing ids are a
// silent no-op like everywhere else in the portal.
func (r *Repository) Update(ctx context.Context, kind string, id int64, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, list, err := r.load(ctx, kind)
	if err != nil {
		return err
	}
	if err := checkRequired(k, item); err != nil {
		return err
	}
	for idx, existing := range list {
		if itemID(existing) == id {
			item["id"] = id
			list[idx] = item
			return r.store.Set(ctx, k.Key, list)
		}
	}
	return nil
}

// Delete removes the record; unknown ids are a no-op.
func (r *Repository) Delete(ctx context.Context, kind string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, list, err := r.load(ctx, kind)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, item := range list {
		if itemID(item) == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil
	}
	return r.store.Set(ctx, k.Key, kept)
}

// itemID tolerates both int64 (fresh) and float64 (JSON round-trip)
// id representations.
func itemID(item Item) int64 {
	switch v := item["id"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}
