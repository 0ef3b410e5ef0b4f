package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"

	"github.com/AndiEkaNugraha/table-user-management/internal/model"
)

// Store is the persistent collection the repository reads and writes
// through. Every mutation is a read-modify-write over the full collection.
type Store interface {
	ReadAll() ([]model.User, error)
	WriteAll(users []model.User) error
}

// Fetcher is the one-shot remote listing source used to seed the store.
type Fetcher interface {
	Fetch(ctx context.Context) ([]model.User, error)
}

type service struct {
	store   Store
	fetcher Fetcher

	// serializes the read-modify-write cycles of in-process callers;
	// writers in other processes are unguarded and the last one wins
	mu sync.Mutex
}

func New(store Store, fetcher Fetcher) *service {
	return &service{store: store, fetcher: fetcher}
}

func (s *service) List() ([]model.User, error) {
	users, err := s.store.ReadAll()
	if err != nil {
		log.Errorf("failed to get users: %+v", err)
		return nil, err
	}
	return users, nil
}

// Add assigns the next id, forces an active status and appends the record.
// Validation is the caller's job; the repository accepts what it is given.
// A missing collection counts as empty here, matching the add-user flow
// being usable before the first remote fetch lands.
func (s *service) Add(params *model.CreateUserParams) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ReadAll()
	if err != nil {
		if !errors.Is(err, model.ErrorCollectionNotFound) {
			return nil, fmt.Errorf("reading users: %w", err)
		}
		users = []model.User{}
	}

	next := model.UserID(0)
	for _, u := range users {
		if u.ID > next {
			next = u.ID
		}
	}

	users = append(users, model.User{
		ID:     next + 1,
		Login:  params.Login,
		Email:  params.Email,
		Age:    params.Age,
		URL:    params.URL,
		Status: true,
	})

	if err := s.store.WriteAll(users); err != nil {
		return nil, fmt.Errorf("writing users: %w", err)
	}
	return users, nil
}

// Update replaces the record with the matching id wholesale. A store
// failure is logged but deliberately not surfaced; the submission-level
// checks in the view layer are the ones that reach the operator.
func (s *service) Update(id model.UserID, record model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ReadAll()
	if err != nil {
		log.Errorf("failed to update user %d: %+v", id, err)
		return nil
	}

	record.ID = id
	for i := range users {
		if users[i].ID == id {
			users[i] = record
		}
	}

	if err := s.store.WriteAll(users); err != nil {
		log.Errorf("failed to update user %d: %+v", id, err)
	}
	return nil
}

// Delete removes the record with the matching id; an absent id leaves the
// collection as it was.
func (s *service) Delete(id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ReadAll()
	if err != nil {
		log.Errorf("failed to delete user %d: %+v", id, err)
		return err
	}

	remaining := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			remaining = append(remaining, u)
		}
	}

	if err := s.store.WriteAll(remaining); err != nil {
		log.Errorf("failed to delete user %d: %+v", id, err)
		return err
	}
	return nil
}

// Refresh runs the one-shot remote fetch and overwrites the whole cached
// collection with the result. Local edits do not survive it.
func (s *service) Refresh(ctx context.Context) ([]model.User, error) {
	users, err := s.fetcher.Fetch(ctx)
	if err != nil {
		log.Errorf("failed to fetch users: %+v", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.WriteAll(users); err != nil {
		return nil, fmt.Errorf("seeding user collection: %w", err)
	}
	return users, nil
}
