package main

import (
	"fmt"
	"net/http"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/config"
	appHTTP "github.com/globaltechsoftware/hrms-offboarding-go/internal/handler/http"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/database"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/jwt"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/repository/postgresql"
	serviceAuth "github.com/globaltechsoftware/hrms-offboarding-go/internal/service/auth"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/service/offboarding"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	resignationRepo := postgresql.NewResignationRepository(db)
	profileRepo := postgresql.NewEmployeeProfileRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	offboardingService := offboarding.NewService(resignationRepo, profileRepo)

	authHandler := appHTTP.NewAuthHandler(authService)
	resignationHandler := appHTTP.NewResignationHandler(offboardingService)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		resignationHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
