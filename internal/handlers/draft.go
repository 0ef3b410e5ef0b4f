package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AndiEkaNugraha/table-user-management/internal/model"
	"github.com/AndiEkaNugraha/table-user-management/internal/view"
)

// draftEdit is one keystroke-level change to an open draft. A status edit
// with a null value toggles the current draft value.
type draftEdit struct {
	Field view.Field      `json:"field"`
	Value json.RawMessage `json:"value"`
}

func findUser(userService UserService, id model.UserID) (model.User, error) {
	users, err := userService.List()
	if err != nil {
		return model.User{}, err
	}
	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}
	return model.User{}, model.ErrorUserNotFound
}

func OpenDraft(userService UserService, session *view.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		user, err := findUser(userService, id)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusOK, session.Open(user))
	}
}

func EditDraft(session *view.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}

		edit := draftEdit{}
		if err := c.Bind(&edit); err != nil {
			return err
		}

		switch edit.Field {
		case view.FieldLogin, view.FieldEmail, view.FieldURL:
			var value string
			if err := json.Unmarshal(edit.Value, &value); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s expects a string", edit.Field))
			}
			switch edit.Field {
			case view.FieldLogin:
				err = session.SetLogin(id, value)
			case view.FieldEmail:
				err = session.SetEmail(id, value)
			default:
				err = session.SetURL(id, value)
			}
		case view.FieldAge:
			var value int
			if err := json.Unmarshal(edit.Value, &value); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "age expects a number")
			}
			err = session.SetAge(id, value)
		case view.FieldStatus:
			if len(edit.Value) == 0 || string(edit.Value) == "null" {
				err = session.ToggleStatus(id)
			} else {
				var value bool
				if err := json.Unmarshal(edit.Value, &value); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "status expects a boolean")
				}
				err = session.SetStatus(id, value)
			}
		default:
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown field %q", edit.Field))
		}

		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}

		response := map[string]interface{}{"draft": mustDraft(session, id)}
		if ferr := session.FieldError(id, edit.Field); ferr != nil {
			response["error"] = ferr.Error()
		}
		return c.JSON(http.StatusOK, response)
	}
}

func CloseDraft(session *view.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		session.Close(id)
		return c.NoContent(http.StatusNoContent)
	}
}

func SubmitDraft(userService UserService, session *view.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		committed, err := findUser(userService, id)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}

		if err := session.Submit(id, committed); err != nil {
			switch {
			case errors.Is(err, model.ErrorIncompleteForm),
				errors.Is(err, model.ErrorNoChange),
				errors.Is(err, model.ErrorValidationFailed):
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return err
		}

		users, err := userService.List()
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, users)
	}
}

func mustDraft(session *view.Session, id model.UserID) *view.Draft {
	draft, _ := session.Draft(id)
	return draft
}
