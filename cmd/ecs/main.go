// cmd/ecs/main.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"equiptrack/internal/checkout"
	"equiptrack/internal/config"
	"equiptrack/internal/inventory"
	"equiptrack/internal/postgres"
	"equiptrack/internal/reminders"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	repo := postgres.NewRepository(db)

	notifier := reminders.NewNotifier(repo)
	checkoutSvc := checkout.NewService(repo, notifier)
	checkoutHandler := checkout.NewHandler(checkoutSvc)

	inventorySvc := inventory.NewService(repo)
	inventoryHandler := inventory.NewHandler(inventorySvc)

	remindersSvc := reminders.NewService(repo, repo)
	remindersHandler := reminders.NewHandler(remindersSvc)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Post("/checkout", checkoutHandler.HandleCheckout)
	router.Post("/return", checkoutHandler.HandleReturn)
	router.Post("/orders", checkoutHandler.HandleOrder)
	router.Post("/orders/{orderID}/cancel", checkoutHandler.HandleCancelOrder)
	router.Get("/employees/{employeeID}/record", checkoutHandler.HandleViewRecord)

	router.Get("/equipment/{equipmentID}", inventoryHandler.HandleGetEquipment)
	router.Get("/equipment/available", inventoryHandler.HandleAvailableBySkill)
	router.Get("/equipment/orderable", inventoryHandler.HandleOrderableBySkill)

	router.Get("/transactions/{transactionID}/reminder", remindersHandler.HandleLatestReminder)
	router.Get("/transactions/{transactionID}/reminder/preview", remindersHandler.HandlePreviewReminder)

	fmt.Printf("🚀 Starting Equipment Checkout Service on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
