// Package fixture loads YAML seed and bulk-import files for the
// storefront catalog. Files are validated twice: against an embedded CUE
// schema (shape and value constraints) and with strict YAML decoding
// (unknown-field typos).
package fixture

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a catalog fixture: customers, products, and orders to create.
// Every section is optional.
type File struct {
	// Customers to create, keyed by email for idempotent seeding.
	Customers []Customer `yaml:"customers,omitempty"`

	// Products to create, keyed by name for idempotent seeding.
	Products []Product `yaml:"products,omitempty"`

	// Orders to create. Orders reference customers by email and products
	// by name, since fixture files cannot know generated ids.
	Orders []Order `yaml:"orders,omitempty"`
}

// Customer is one customer payload.
type Customer struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone,omitempty"`
}

// Product is one product payload. Price is a plain number; it is rounded
// to two decimal places when the product is created.
type Product struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
	Stock int     `yaml:"stock,omitempty"`
}

// Order is one order payload.
type Order struct {
	CustomerEmail string   `yaml:"customer_email"`
	Products      []string `yaml:"products"`
}

// Load reads, validates, and parses a fixture file.
// Returns an error if the file doesn't exist, fails schema validation,
// is malformed, or contains unknown fields (typos).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(data)
}

// Parse validates and parses fixture file contents.
func Parse(data []byte) (*File, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	// Strict YAML decode catches typos the open CUE schema lets through
	// (e.g. "customer:" vs "customers:").
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}
