package main

import (
	"fmt"
	"log"
	"net/http"

	"cleanquest/cmd/app"
	"cleanquest/internal/config"
	"cleanquest/internal/database"
	handlers "cleanquest/internal/handler"
	"cleanquest/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	handler := handlers.NewHandlers(repo, services, cfg)

	r := mux.NewRouter()

	// setting up routes
	r.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/complaints", handler.CreateComplaint).Methods(http.MethodPost)
	r.HandleFunc("/api/complaints", handler.GetComplaints).Methods(http.MethodGet)
	r.HandleFunc("/api/complaints/{id}", handler.GetComplaint).Methods(http.MethodGet)
	r.HandleFunc("/api/complaints/{id}", handler.UpdateComplaint).Methods(http.MethodPut)

	r.HandleFunc("/api/leaderboard", handler.Leaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", handler.Stats).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", handler.Me).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
