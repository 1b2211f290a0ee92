package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"parkspot/internal/api"
	"parkspot/internal/auth"
	"parkspot/internal/repository"
	"parkspot/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	spotRepo := repository.NewSpotRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	jobRepo := repository.NewJobRepository(database)

	senderSvc := service.NewSenderService()
	notificationSvc := service.NewNotificationService(notificationRepo, senderSvc)
	userSvc := service.NewUserService(userRepo)
	spotSvc := service.NewSpotService(spotRepo, userRepo)
	bookingSvc := service.NewBookingService(bookingRepo, spotRepo, userRepo, notificationSvc)
	jobSvc := service.NewJobService(jobRepo, bookingSvc)

	authHandler := api.NewAuthHandler(userSvc)
	spotHandler := api.NewSpotHandler(spotSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	adminHandler := api.NewAdminHandler(userSvc)
	notificationHandler := api.NewNotificationHandler(notificationSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/register", authHandler.Register).Methods("POST")
	r.Handle("/api/parking-spots", auth.OptionalAuth(http.HandlerFunc(spotHandler.ListSpots))).Methods("GET")
	r.HandleFunc("/api/parking-spots/landowner/{landowner_id}", spotHandler.ListLandownerSpots).Methods("GET")

	// Authenticated endpoints
	r.Handle("/api/parking-spots", auth.Authenticate(http.HandlerFunc(spotHandler.CreateSpot))).Methods("POST")
	r.Handle("/api/bookings", auth.Authenticate(http.HandlerFunc(bookingHandler.CreateBooking))).Methods("POST")
	r.Handle("/api/bookings/{id}", auth.Authenticate(http.HandlerFunc(bookingHandler.UpdateBookingStatus))).Methods("PUT")
	r.Handle("/api/bookings/landowner/{landowner_id}", auth.Authenticate(http.HandlerFunc(bookingHandler.ListLandownerBookings))).Methods("GET")
	r.Handle("/api/bookings/vehicle-owner/{vehicle_owner_id}", auth.Authenticate(http.HandlerFunc(bookingHandler.ListVehicleOwnerBookings))).Methods("GET")
	r.Handle("/api/notifications/{user_id}", auth.Authenticate(http.HandlerFunc(notificationHandler.ListUnread))).Methods("GET")
	r.Handle("/api/notifications/{id}/read", auth.Authenticate(http.HandlerFunc(notificationHandler.MarkRead))).Methods("PUT")

	// Admin endpoints (protected)
	r.Handle("/api/bookings", auth.RequireAdmin(http.HandlerFunc(bookingHandler.ListAllBookings))).Methods("GET")
	r.Handle("/api/bookings/{id}", auth.RequireAdmin(http.HandlerFunc(bookingHandler.DeleteBooking))).Methods("DELETE")
	r.Handle("/api/parking-spots/{id}", auth.RequireAdmin(http.HandlerFunc(spotHandler.UpdateSpot))).Methods("PUT")
	r.Handle("/api/parking-spots/{id}", auth.RequireAdmin(http.HandlerFunc(spotHandler.DeleteSpot))).Methods("DELETE")
	r.Handle("/api/users", auth.RequireAdmin(http.HandlerFunc(adminHandler.ListUsers))).Methods("GET")
	r.Handle("/api/users/{id}", auth.RequireAdmin(http.HandlerFunc(adminHandler.DeleteUser))).Methods("DELETE")

	// Uploaded KYC documents
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(api.UploadDir()))))

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() {
		if err := jobSvc.ExpireFinishedBookings(); err != nil {
			log.Printf("Booking expiry job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule booking expiry job: %v", err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
