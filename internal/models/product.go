package models

import "time"

// Product represents a row of the products table.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Stock       int       `json:"stock" db:"stock"`
	Type        *string   `json:"type" db:"type"`
	Color       *string   `json:"color" db:"color"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
