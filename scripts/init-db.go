package main

import (
	"flag"
	"fmt"
	"log"

	"job_order/internal/config"
	"job_order/internal/database"
	"job_order/internal/migrations"
	"job_order/internal/models"
)

func main() {
	reset := flag.Bool("reset", false, "drop the order and lookup tables before migrating")
	flag.Parse()

	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := migrations.RunMigrations(db, *reset); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	var products, customers, orders int64
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.Customer{}).Count(&customers)
	db.Model(&models.OrderHead{}).Count(&orders)
	fmt.Printf("Driver: %s, database: %s\n", cfg.DBDriver, cfg.DBName)
	fmt.Printf("Products: %d, customers: %d, orders: %d\n", products, customers, orders)

	fmt.Println("Database initialization completed successfully!")
}
