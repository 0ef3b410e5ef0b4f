package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AndiEkaNugraha/table-user-management/internal/model"
	"github.com/AndiEkaNugraha/table-user-management/internal/validate"
	"github.com/AndiEkaNugraha/table-user-management/internal/view"
)

type UserService interface {
	List() ([]model.User, error)
	Add(params *model.CreateUserParams) ([]model.User, error)
	Update(id model.UserID, record model.User) error
	Delete(id model.UserID) error
	Refresh(ctx context.Context) ([]model.User, error)
}

func userID(c echo.Context) (model.UserID, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return model.UserID(id), nil
}

func ListUsers(userService UserService, session *view.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := userService.List()
		if err != nil {
			if errors.Is(err, model.ErrorCollectionNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, err.Error())
			}
			return err
		}

		if filter := c.QueryParam("filter"); filter != "" {
			session.SetFilter(view.StatusFilter(filter))
		}
		visible := session.Visible(users)

		if key := c.QueryParam("sort"); key != "" {
			visible = session.Sort(visible, view.SortKey(key), c.QueryParam("order") == "desc")
		}
		return c.JSON(http.StatusOK, visible)
	}
}

// AddUser validates the candidate before handing it to the repository; the
// repository itself never validates.
func AddUser(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateUserParams{}
		if err := c.Bind(params); err != nil {
			return err
		}

		fieldErrors := map[string]string{}
		if err := validate.Login(params.Login); err != nil {
			fieldErrors["login"] = err.Error()
		}
		email := ""
		if params.Email != nil {
			email = *params.Email
		}
		if err := validate.Email(email); err != nil {
			fieldErrors["email"] = err.Error()
		}
		if err := validate.Age(params.Age); err != nil {
			fieldErrors["age"] = err.Error()
		}
		if err := validate.URL(params.URL); err != nil {
			fieldErrors["url"] = err.Error()
		}
		if len(fieldErrors) > 0 {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": fieldErrors})
		}

		users, err := userService.Add(params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, users)
	}
}

func UpdateUser(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		record := model.User{}
		if err := c.Bind(&record); err != nil {
			return err
		}
		if err := userService.Update(id, record); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func DeleteUser(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := userID(c)
		if err != nil {
			return err
		}
		if err := userService.Delete(id); err != nil {
			if errors.Is(err, model.ErrorCollectionNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, err.Error())
			}
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func RefreshUsers(userService UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := userService.Refresh(c.Request().Context())
		if err != nil {
			if errors.Is(err, model.ErrorFetchFailed) {
				return echo.NewHTTPError(http.StatusBadGateway, err.Error())
			}
			return err
		}
		return c.JSON(http.StatusOK, users)
	}
}
