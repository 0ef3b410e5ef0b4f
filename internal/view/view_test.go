package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AndiEkaNugraha/table-user-management/internal/model"
)

type updateSpy struct {
	calls  int
	lastID model.UserID
	last   model.User
	err    error
}

func (u *updateSpy) Update(id model.UserID, record model.User) error {
	u.calls++
	u.lastID = id
	u.last = record
	return u.err
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestVisible(t *testing.T) {
	assert := assert.New(t)

	users := []model.User{
		{ID: 1, Login: "a", Status: true},
		{ID: 2, Login: "b", Status: false},
	}

	session := NewSession(nil)

	t.Run("all", func(t *testing.T) {
		session.SetFilter(FilterAll)
		assert.Equal(users, session.Visible(users))
	})

	t.Run("active", func(t *testing.T) {
		session.SetFilter(FilterActive)
		visible := session.Visible(users)
		assert.Len(visible, 1)
		assert.Equal(model.UserID(1), visible[0].ID)
	})

	t.Run("inactive", func(t *testing.T) {
		session.SetFilter(FilterInactive)
		visible := session.Visible(users)
		assert.Len(visible, 1)
		assert.Equal(model.UserID(2), visible[0].ID)
	})

	t.Run("unknown filter falls back to all", func(t *testing.T) {
		session.SetFilter("bogus")
		assert.Equal(FilterAll, session.Filter())
	})

	t.Run("input collection is untouched", func(t *testing.T) {
		session.SetFilter(FilterActive)
		session.Visible(users)
		assert.Len(users, 2)
	})
}

func TestSort(t *testing.T) {
	assert := assert.New(t)

	users := []model.User{
		{ID: 3, Login: "charlie"},
		{ID: 1, Login: "Bravo"},
		{ID: 2, Login: "alpha"},
	}

	session := NewSession(nil)

	t.Run("by id ascending", func(t *testing.T) {
		sorted := session.Sort(users, SortByID, false)
		assert.Equal([]model.UserID{1, 2, 3}, ids(sorted))
	})

	t.Run("by id descending", func(t *testing.T) {
		sorted := session.Sort(users, SortByID, true)
		assert.Equal([]model.UserID{3, 2, 1}, ids(sorted))
	})

	t.Run("by login is case-insensitive across case", func(t *testing.T) {
		sorted := session.Sort(users, SortByName, false)
		assert.Equal([]string{"alpha", "Bravo", "charlie"}, logins(sorted))
	})

	t.Run("does not reorder the input", func(t *testing.T) {
		session.Sort(users, SortByID, false)
		assert.Equal(model.UserID(3), users[0].ID)
	})
}

func ids(users []model.User) []model.UserID {
	out := make([]model.UserID, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func logins(users []model.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Login
	}
	return out
}

func TestEditDraft(t *testing.T) {
	assert := assert.New(t)

	committed := model.User{
		ID: 1, Login: "mojombo", Email: strPtr("m@example.com"),
		Age: intPtr(45), Status: true, URL: "https://github.com/mojombo",
	}

	t.Run("open snapshots the editable fields", func(t *testing.T) {
		session := NewSession(nil)
		draft := session.Open(committed)
		assert.Equal("mojombo", draft.Login)
		assert.Equal("m@example.com", *draft.Email)
		assert.Equal(45, *draft.Age)
		assert.True(draft.Status)
	})

	t.Run("edits track only the targeted row", func(t *testing.T) {
		session := NewSession(nil)
		session.Open(committed)
		other := model.User{ID: 2, Login: "defunkt"}
		session.Open(other)

		assert.Nil(session.SetLogin(1, "renamed"))
		draft, _ := session.Draft(1)
		assert.Equal("renamed", draft.Login)
		untouched, _ := session.Draft(2)
		assert.Equal("defunkt", untouched.Login)
	})

	t.Run("invalid edit keeps the value and records the error", func(t *testing.T) {
		session := NewSession(nil)
		session.Open(committed)

		assert.Nil(session.SetEmail(1, "not-an-email"))
		assert.ErrorIs(session.FieldError(1, FieldEmail), model.ErrorInvalidFormat)
		draft, _ := session.Draft(1)
		assert.Equal("not-an-email", *draft.Email)

		// fixing the field clears the error
		assert.Nil(session.SetEmail(1, "fixed@example.com"))
		assert.Nil(session.FieldError(1, FieldEmail))
	})

	t.Run("age validation on every keystroke", func(t *testing.T) {
		session := NewSession(nil)
		session.Open(committed)

		session.SetAge(1, 30)
		assert.ErrorIs(session.FieldError(1, FieldAge), model.ErrorBelowMinimum)
		session.SetAge(1, 31)
		assert.Nil(session.FieldError(1, FieldAge))
	})

	t.Run("toggle status flips only the draft", func(t *testing.T) {
		session := NewSession(nil)
		session.Open(committed)
		session.ToggleStatus(1)
		draft, _ := session.Draft(1)
		assert.False(draft.Status)
		session.ToggleStatus(1)
		draft, _ = session.Draft(1)
		assert.True(draft.Status)
	})

	t.Run("close discards unconditionally", func(t *testing.T) {
		session := NewSession(nil)
		session.Open(committed)
		session.SetLogin(1, "renamed")
		session.Close(1)
		_, ok := session.Draft(1)
		assert.False(ok)
	})

	t.Run("editing a row without an open draft", func(t *testing.T) {
		session := NewSession(nil)
		assert.ErrorIs(session.SetLogin(9, "x"), model.ErrorUserNotFound)
	})
}

func TestSubmit(t *testing.T) {
	assert := assert.New(t)

	committed := model.User{
		ID: 1, Login: "mojombo", Email: strPtr("m@example.com"),
		Age: intPtr(45), Status: true, URL: "https://github.com/mojombo",
		AvatarURL: "https://avatars.githubusercontent.com/u/1?v=4",
	}

	t.Run("unchanged draft is rejected and never committed", func(t *testing.T) {
		spy := &updateSpy{}
		session := NewSession(spy)
		session.Open(committed)

		err := session.Submit(1, committed)
		assert.ErrorIs(err, model.ErrorNoChange)
		assert.Zero(spy.calls)
	})

	t.Run("incomplete form is rejected first", func(t *testing.T) {
		spy := &updateSpy{}
		session := NewSession(spy)
		session.Open(committed)
		session.SetEmail(1, "")

		err := session.Submit(1, committed)
		assert.ErrorIs(err, model.ErrorIncompleteForm)
		assert.Zero(spy.calls)
	})

	t.Run("no open draft counts as incomplete", func(t *testing.T) {
		spy := &updateSpy{}
		session := NewSession(spy)
		err := session.Submit(1, committed)
		assert.ErrorIs(err, model.ErrorIncompleteForm)
		assert.Zero(spy.calls)
	})

	t.Run("outstanding field error blocks the commit", func(t *testing.T) {
		spy := &updateSpy{}
		session := NewSession(spy)
		session.Open(committed)
		session.SetEmail(1, "not-an-email")

		err := session.Submit(1, committed)
		assert.ErrorIs(err, model.ErrorValidationFailed)
		assert.Zero(spy.calls)
	})

	t.Run("valid changed draft commits through the repository", func(t *testing.T) {
		spy := &updateSpy{}
		session := NewSession(spy)
		session.Open(committed)
		session.SetAge(1, 52)
		session.ToggleStatus(1)

		err := session.Submit(1, committed)
		assert.Nil(err)
		assert.Equal(1, spy.calls)
		assert.Equal(model.UserID(1), spy.lastID)
		assert.Equal(52, *spy.last.Age)
		assert.False(spy.last.Status)
		// untouched fields carry over from the committed record
		assert.Equal("mojombo", spy.last.Login)
		assert.Equal(committed.AvatarURL, spy.last.AvatarURL)
	})
}
