// Package view derives what the table shows from the committed collection
// and tracks the transient per-row edit drafts. Nothing here mutates the
// collection directly; commits go through the repository's Update.
package view

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/AndiEkaNugraha/table-user-management/internal/model"
	"github.com/AndiEkaNugraha/table-user-management/internal/validate"
)

type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterActive   StatusFilter = "active"
	FilterInactive StatusFilter = "inactive"
)

type SortKey string

const (
	SortByID   SortKey = "ID"
	SortByName SortKey = "NAME"
)

type Field string

const (
	FieldLogin  Field = "login"
	FieldEmail  Field = "email"
	FieldAge    Field = "age"
	FieldURL    Field = "url"
	FieldStatus Field = "status"
)

// Repository is the commit target for submitted drafts.
type Repository interface {
	Update(id model.UserID, record model.User) error
}

// Draft is the shadow copy of one row's editable fields, alive only while
// the row's detail view is open.
type Draft struct {
	Login  string  `json:"login"`
	Email  *string `json:"email"`
	Age    *int    `json:"age"`
	Status bool    `json:"status"`
	URL    string  `json:"url"`

	fieldErrors map[Field]error
}

// Session holds the presentation-only state for one operator: the status
// filter and the open drafts keyed by user id. Sort state lives in the
// caller; Sort never reorders the persisted collection.
type Session struct {
	repository Repository
	collator   *collate.Collator

	mu     sync.Mutex
	filter StatusFilter
	drafts map[model.UserID]*Draft
}

func NewSession(repository Repository) *Session {
	return &Session{
		repository: repository,
		collator:   collate.New(language.Und),
		filter:     FilterAll,
		drafts:     map[model.UserID]*Draft{},
	}
}

func (s *Session) SetFilter(filter StatusFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch filter {
	case FilterActive, FilterInactive:
		s.filter = filter
	default:
		s.filter = FilterAll
	}
}

func (s *Session) Filter() StatusFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Visible applies the status filter to the committed list. The input is
// never modified.
func (s *Session) Visible(users []model.User) []model.User {
	filter := s.Filter()
	visible := make([]model.User, 0, len(users))
	for _, user := range users {
		switch filter {
		case FilterActive:
			if user.Status {
				visible = append(visible, user)
			}
		case FilterInactive:
			if !user.Status {
				visible = append(visible, user)
			}
		default:
			visible = append(visible, user)
		}
	}
	return visible
}

// Sort returns a sorted copy: numeric by id, or locale-aware by login.
// The sort is stable so equal keys keep their committed order.
func (s *Session) Sort(users []model.User, key SortKey, descending bool) []model.User {
	sorted := make([]model.User, len(users))
	copy(sorted, users)

	var less func(a, b model.User) bool
	switch key {
	case SortByName:
		less = func(a, b model.User) bool {
			return s.collator.CompareString(a.Login, b.Login) < 0
		}
	default:
		less = func(a, b model.User) bool {
			return a.ID < b.ID
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Open snapshots the row's editable fields into a fresh draft. Reopening a
// row starts over from the committed record.
func (s *Session) Open(user model.User) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := &Draft{
		Login:       user.Login,
		Email:       user.Email,
		Age:         user.Age,
		Status:      user.Status,
		URL:         user.URL,
		fieldErrors: map[Field]error{},
	}
	s.drafts[user.ID] = draft
	return draft
}

// Close discards the row's draft unconditionally; nothing is saved.
func (s *Session) Close(id model.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

func (s *Session) Draft(id model.UserID) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	return draft, ok
}

func (s *Session) SetLogin(id model.UserID, value string) error {
	return s.setField(id, FieldLogin, func(draft *Draft) error {
		draft.Login = value
		return validate.Login(value)
	})
}

func (s *Session) SetEmail(id model.UserID, value string) error {
	return s.setField(id, FieldEmail, func(draft *Draft) error {
		draft.Email = &value
		return validate.Email(value)
	})
}

func (s *Session) SetAge(id model.UserID, value int) error {
	return s.setField(id, FieldAge, func(draft *Draft) error {
		draft.Age = &value
		return validate.Age(&value)
	})
}

func (s *Session) SetURL(id model.UserID, value string) error {
	return s.setField(id, FieldURL, func(draft *Draft) error {
		draft.URL = value
		return validate.URL(value)
	})
}

func (s *Session) SetStatus(id model.UserID, value bool) error {
	return s.setField(id, FieldStatus, func(draft *Draft) error {
		draft.Status = value
		return nil
	})
}

// ToggleStatus flips the draft's status, not the committed record's.
func (s *Session) ToggleStatus(id model.UserID) error {
	return s.setField(id, FieldStatus, func(draft *Draft) error {
		draft.Status = !draft.Status
		return nil
	})
}

// setField applies one edit to the row's draft and re-runs the field's
// validator, storing or clearing the per-field error. The edit itself is
// kept even when invalid; only Submit refuses to commit it.
func (s *Session) setField(id model.UserID, field Field, apply func(*Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return model.ErrorUserNotFound
	}

	if err := apply(draft); err != nil {
		draft.fieldErrors[field] = err
	} else {
		delete(draft.fieldErrors, field)
	}
	return nil
}

// FieldError reports the outstanding validation error for one field of the
// row's draft, nil when the field is clean or no draft is open.
func (s *Session) FieldError(id model.UserID, field Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if draft, ok := s.drafts[id]; ok {
		return draft.fieldErrors[field]
	}
	return nil
}

// Submit gates the commit of a row's draft: the form must be complete, the
// draft must differ from the committed record, and no field may carry an
// outstanding validation error. Only then does the repository's Update run.
func (s *Session) Submit(id model.UserID, committed model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok || draft.Login == "" || draft.Email == nil || *draft.Email == "" ||
		draft.Age == nil || draft.URL == "" {
		return model.ErrorIncompleteForm
	}

	if committed.Login == draft.Login &&
		equalString(committed.Email, draft.Email) &&
		equalInt(committed.Age, draft.Age) &&
		committed.Status == draft.Status &&
		committed.URL == draft.URL {
		return model.ErrorNoChange
	}

	for _, field := range []Field{FieldLogin, FieldEmail, FieldAge, FieldURL} {
		if ferr := draft.fieldErrors[field]; ferr != nil {
			return fmt.Errorf("%w: %v", model.ErrorValidationFailed, ferr)
		}
	}

	record := committed
	record.Login = draft.Login
	record.Email = draft.Email
	record.Age = draft.Age
	record.Status = draft.Status
	record.URL = draft.URL

	if err := s.repository.Update(id, record); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
