package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"

	"github.com/AndiEkaNugraha/table-user-management/internal/boot"
	"github.com/AndiEkaNugraha/table-user-management/internal/handlers"
	"github.com/AndiEkaNugraha/table-user-management/internal/remote"
	"github.com/AndiEkaNugraha/table-user-management/internal/service/user"
	"github.com/AndiEkaNugraha/table-user-management/internal/store"
	"github.com/AndiEkaNugraha/table-user-management/internal/view"
)

type UserService interface {
	handlers.UserService
}

type config struct {
	boot.Config
	userService UserService
	session     *view.Session
}

func newConfig(bootConfig *boot.Config) *config {
	cache, err := store.New(bootConfig)
	if err != nil {
		log.Fatalf("creating user cache: %+v", err)
	}

	userService := user.New(cache, remote.New(bootConfig.RemoteURL))
	session := view.NewSession(userService)

	return &config{*bootConfig, userService, session}
}

func main() {
	bootConfig, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	config := newConfig(bootConfig)

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("usertable"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	server.GET("/users", handlers.ListUsers(config.userService, config.session))
	server.POST("/users", handlers.AddUser(config.userService))
	server.PUT("/users/:id", handlers.UpdateUser(config.userService))
	server.DELETE("/users/:id", handlers.DeleteUser(config.userService))
	server.POST("/users/refresh", handlers.RefreshUsers(config.userService))

	server.POST("/users/:id/draft", handlers.OpenDraft(config.userService, config.session))
	server.PATCH("/users/:id/draft", handlers.EditDraft(config.session))
	server.DELETE("/users/:id/draft", handlers.CloseDraft(config.session))
	server.POST("/users/:id/draft/submit", handlers.SubmitDraft(config.userService, config.session))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
