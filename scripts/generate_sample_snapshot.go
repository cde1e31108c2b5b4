package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleSnapshot writes upstream-shaped electronics records for the
// snapshot loaders. The output is gzipped when the path ends in .gz.
//
// Records 1-3 are complete. Record 4 lacks "memory" and is dropped by the
// loader. Record 5 has a null processor and is kept.
func main() {
	out := flag.String("out", "data/electronics.json.gz", "output path")
	flag.Parse()

	records := []map[string]any{
		{
			"id": 1, "name": "Galaxy S24", "brand": "Samsung", "category": "Smartphone",
			"description": "Latest Samsung flagship phone", "price": 999.99, "currency": "USD",
			"processor": "Snapdragon 8 Gen 3", "memory": "12GB", "release_date": "2024-01-15",
			"average_rating": 4.7, "rating_count": 1200,
		},
		{
			"id": 2, "name": "iPhone 15", "brand": "Apple", "category": "Smartphone",
			"description": "Apple smartphone", "price": 899.0, "currency": "USD",
			"processor": "A16 Bionic", "memory": "6GB", "release_date": "2023-09-22",
			"average_rating": 4.6, "rating_count": 3400,
		},
		{
			"id": 3, "name": "XPS 13", "brand": "Dell", "category": "Laptop",
			"description": "Compact ultrabook", "price": 1199.0, "currency": "USD",
			"processor": "Intel Core Ultra 7", "memory": "16GB", "release_date": "2024-03-01",
			"average_rating": 4.4, "rating_count": 560,
		},
		{
			"id": 4, "name": "Broken Record", "brand": "Unknown", "category": "Laptop",
			"description": "Missing memory", "price": 10, "currency": "USD",
			"processor": "n/a", "release_date": "2024-01-01",
			"average_rating": 1, "rating_count": 1,
		},
		{
			"id": 5, "name": "Galaxy Tab S9", "brand": "Samsung", "category": "Tablet",
			"description": nil, "price": 799.99, "currency": "USD",
			"processor": nil, "memory": "8GB", "release_date": "2023-08-11",
			"average_rating": 4.5, "rating_count": 410,
		},
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := writeSnapshot(*out, records); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d records\n", *out, len(records))
}

func writeSnapshot(path string, records []map[string]any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if filepath.Ext(path) != ".gz" {
		return json.NewEncoder(file).Encode(records)
	}

	gzipWriter := gzip.NewWriter(file)
	if err := json.NewEncoder(gzipWriter).Encode(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return gzipWriter.Close()
}
