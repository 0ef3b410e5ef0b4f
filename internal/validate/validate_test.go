package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AndiEkaNugraha/table-user-management/internal/model"
)

func intPtr(v int) *int { return &v }

func TestLogin(t *testing.T) {
	assert := assert.New(t)

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(Login(""), model.ErrorEmptyField)
	})

	t.Run("present", func(t *testing.T) {
		assert.Nil(Login("mojombo"))
	})
}

func TestEmail(t *testing.T) {
	assert := assert.New(t)

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(Email(""), model.ErrorEmptyField)
	})

	t.Run("valid", func(t *testing.T) {
		assert.Nil(Email("a@b.co"))
		assert.Nil(Email("first.last@sub.example.com"))
	})

	t.Run("missing dot after at", func(t *testing.T) {
		assert.ErrorIs(Email("a@b"), model.ErrorInvalidFormat)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, value := range []string{"a b@c.co", "@b.co", "a@", "a.b.co", "a@@b.co"} {
			assert.ErrorIs(Email(value), model.ErrorInvalidFormat, value)
		}
	})
}

func TestAge(t *testing.T) {
	assert := assert.New(t)

	t.Run("undefined", func(t *testing.T) {
		assert.ErrorIs(Age(nil), model.ErrorBelowMinimum)
	})

	t.Run("minimum is exclusive", func(t *testing.T) {
		assert.ErrorIs(Age(intPtr(30)), model.ErrorBelowMinimum)
		assert.Nil(Age(intPtr(31)))
	})

	t.Run("below minimum", func(t *testing.T) {
		assert.ErrorIs(Age(intPtr(12)), model.ErrorBelowMinimum)
	})
}

func TestURL(t *testing.T) {
	assert := assert.New(t)

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(URL(""), model.ErrorEmptyField)
	})

	t.Run("valid", func(t *testing.T) {
		for _, value := range []string{
			"https://github.com/mojombo",
			"http://example.com",
			"github.com",
			"sub.Example.COM/path?q=1",
		} {
			assert.Nil(URL(value), value)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, value := range []string{"github", "http://", "a b.com", "example.c"} {
			assert.ErrorIs(URL(value), model.ErrorInvalidFormat, value)
		}
	})
}
