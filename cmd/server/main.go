package main

import (
	"log"
	"net/http"

	_ "marketcatalyst/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"marketcatalyst/internal/auth"
	"marketcatalyst/internal/cache"
	"marketcatalyst/internal/config"
	"marketcatalyst/internal/db"
	"marketcatalyst/internal/handler"
	"marketcatalyst/internal/model"
	"marketcatalyst/internal/repository"
	"marketcatalyst/internal/router"
	"marketcatalyst/internal/service"
)

// @title Market Catalyst Platform API
// @version 1.0
// @description User account service with registration, authentication and role-gated probes.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Keep the Users and Tokens tables in shape. Username intentionally has
	// no unique index; uniqueness is enforced by the service-level existence
	// check only.
	if err := gormDB.AutoMigrate(&model.User{}, &model.Token{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)

	hasher := auth.NewPasswordHasher(cfg.Salt)
	jwtService := auth.NewJWTService(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSecret)
	tokenIndex := auth.NewTokenIndex(cacheClient)

	issuer := service.NewTokenIssuer(jwtService, tokenRepo, tokenIndex)
	platformService := service.NewPlatformService(userRepo, hasher, issuer)

	// Read-only placeholder served by GET /users; never consulted by the
	// register/authenticate paths.
	seedUsers := []model.User{
		{ID: 1, Username: "Jimmy"},
	}
	userHandler := handler.NewUserHandler(platformService, seedUsers)

	router.Register(e, cfg, jwtService, tokenIndex, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
