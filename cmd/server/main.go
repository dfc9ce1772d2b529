package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Adilzhan2201/Friendship_Manager/internal/config"
	"github.com/Adilzhan2201/Friendship_Manager/internal/database"
	"github.com/Adilzhan2201/Friendship_Manager/internal/handlers"
	"github.com/Adilzhan2201/Friendship_Manager/internal/repository"
	cron "github.com/Adilzhan2201/Friendship_Manager/internal/scheduler"
	"github.com/Adilzhan2201/Friendship_Manager/internal/services"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/email"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/logger"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	ctx := context.Background()

	// Connect to Neo4j, the source of truth for the relationship graph
	graph, err := database.ConnectGraph(ctx, cfg)
	if err != nil {
		log.Fatalf("Graph connection error: %v", err)
	}
	defer graph.Close(ctx)

	// Connect to MongoDB, which holds the notification records
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(graph)
	friendRepo := repository.NewFriendRepository(graph)
	notificationRepo := repository.NewNotificationRepository(db)

	// --- Services ---
	var mailer services.Mailer
	if email.Configured() {
		mailer = services.MailerFunc(email.SendEmail)
	}
	userService := services.NewUserService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, mailer)
	friendService := services.NewFriendService(friendRepo, userRepo, notificationService)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(friendService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Friend routes
	protectedFriendRoutes := router.PathPrefix("/friends").Subrouter()
	protectedFriendRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protectedFriendRoutes.HandleFunc("/requests", friendHandler.GetIncomingRequestsHandler).Methods("GET")
	protectedFriendRoutes.HandleFunc("/requests/sent", friendHandler.GetOutgoingRequestsHandler).Methods("GET")
	protectedFriendRoutes.HandleFunc("/requests/{id}/respond", friendHandler.RespondToFriendRequestHandler).Methods("POST")
	protectedFriendRoutes.HandleFunc("/requests/{id}", friendHandler.CancelFriendRequestHandler).Methods("DELETE")
	protectedFriendRoutes.HandleFunc("/{id}/request", friendHandler.SendFriendRequestHandler).Methods("POST")
	protectedFriendRoutes.HandleFunc("", friendHandler.GetFriendsHandler).Methods("GET")
	protectedFriendRoutes.HandleFunc("/{id}", friendHandler.RemoveFriendHandler).Methods("DELETE")

	// Notification routes
	protectedNotificationRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNotificationRoutes.HandleFunc("", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	protectedNotificationRoutes.Handle("/sweep",
		middleware.RequireRole("admin")(http.HandlerFunc(notificationHandler.SweepExpiredHandler))).Methods("POST")
	protectedNotificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	protectedNotificationRoutes.HandleFunc("/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// User routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/me", userHandler.EnsureUserHandler).Methods("PUT")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Sweep expired notifications daily
	c := cron.StartNotificationCronJobs(notificationService)
	defer c.Stop()

	// Start the HTTP server
	port := cfg.Port
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsWrapper.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
