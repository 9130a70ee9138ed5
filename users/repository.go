// Package users stores portal accounts under one Store key. Accounts
// are looked up by email for login; the account name is what keys
// issue ownership and badges.
package users

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"smartcity-be/models"
	"smartcity-be/storage"
)

const usersKey = "users"

type Repository struct {
	store storage.Store

	mu  sync.Mutex
	now func() time.Time
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store, now: time.Now}
}

func (r *Repository) load(ctx context.Context) ([]models.User, error) {
	list := []models.User{}
	if _, err := r.store.Get(ctx, usersKey, &list); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return list, nil
}

// ErrEmailTaken is returned when registering an email that already
// has an account.
var ErrEmailTaken = fmt.Errorf("email already registered")

// Register hashes the password and appends the account. Email
// comparison is case-insensitive.
func (r *Repository) Register(ctx context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, existing := range list {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.User{}, ErrEmailTaken
		}
	}

	if err := u.HashPassword(); err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	u.CreatedAt = r.now()
	u.UpdatedAt = u.CreatedAt

	list = append(list, u)
	if err := r.store.Set(ctx, usersKey, list); err != nil {
		return models.User{}, fmt.Errorf("save users: %w", err)
	}
	return u, nil
}

// FindByEmail returns the account and whether it exists.
func (r *Repository) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	list, err := r.load(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range list {
		if strings.EqualFold(u.Email, email) {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

// FindByName returns the account and whether it exists.
func (r *Repository) FindByName(ctx context.Context, name string) (models.User, bool, error) {
	list, err := r.load(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range list {
		if u.Name == name {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

// All returns every account, password hashes stripped.
func (r *Repository) All(ctx context.Context) ([]models.User, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Hash = ""
	}
	return list, nil
}
