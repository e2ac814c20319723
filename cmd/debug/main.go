package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mirae-dev/ShoreBot_Go/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString, 10, 30*time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump Accounts
	fmt.Println("--- Accounts ---")
	rows, err := dbPool.Query(ctx, "SELECT user_id, coins, created_at FROM accounts ORDER BY created_at")
	if err != nil {
		log.Printf("Failed to query accounts: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id string
			var coins int64
			var createdAt time.Time
			if err := rows.Scan(&id, &coins, &createdAt); err != nil {
				log.Printf("Failed to scan account: %v", err)
			}
			fmt.Printf("UserID: %s, Coins: %d, CreatedAt: %v\n", id, coins, createdAt)
		}
	}

	// Dump Cards
	fmt.Println("\n--- Cards ---")
	rows, err = dbPool.Query(ctx, "SELECT card_id, card_code, name, rarity, droppable FROM cards ORDER BY card_id")
	if err != nil {
		log.Printf("Failed to query cards: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, rarity int
			var code, name string
			var droppable bool
			if err := rows.Scan(&id, &code, &name, &rarity, &droppable); err != nil {
				log.Printf("Failed to scan card: %v", err)
			}
			fmt.Printf("ID: %d, Code: %s, Name: %s, Rarity: %d, Droppable: %v\n", id, code, name, rarity, droppable)
		}
	}

	// Dump Inventories
	fmt.Println("\n--- Inventory Entries ---")
	query := `
		SELECT ie.user_id, c.card_code, c.name, ie.quantity
		FROM inventory_entries ie
		JOIN cards c ON ie.card_id = c.card_id
		ORDER BY ie.user_id, c.rarity DESC
	`
	rows, err = dbPool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query inventories: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var userID, code, name string
			var quantity int
			if err := rows.Scan(&userID, &code, &name, &quantity); err != nil {
				log.Printf("Failed to scan inventory entry: %v", err)
			}
			fmt.Printf("User: %s, Card: %s (%s), Quantity: %d\n", userID, code, name, quantity)
		}
	}

	// Dump Listings
	fmt.Println("\n--- Listings ---")
	rows, err = dbPool.Query(ctx, "SELECT listing_code, seller_id, card_id, unit_price, quantity FROM listings ORDER BY created_at DESC")
	if err != nil {
		log.Printf("Failed to query listings: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var code, sellerID string
			var cardID, quantity int
			var unitPrice int64
			if err := rows.Scan(&code, &sellerID, &cardID, &unitPrice, &quantity); err != nil {
				log.Printf("Failed to scan listing: %v", err)
			}
			fmt.Printf("Code: %s, Seller: %s, CardID: %d, UnitPrice: %d, Quantity: %d\n", code, sellerID, cardID, unitPrice, quantity)
		}
	}
}
