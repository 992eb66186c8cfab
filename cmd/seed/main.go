package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gearboxhq/autoshop-backend/config"
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Imports a parts inventory spreadsheet. Expected columns:
// part_number | name | description | manufacturer | cost_price | retail_price |
// wholesale_price | quantity_on_hand | minimum_stock | reorder_quantity |
// location | compatible_makes (semicolon separated)
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	partRepo := repository.NewPartRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	parts, err := readPartsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total parts to import: %d\n", len(parts))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := partRepo.BulkCreate(parts, batchSize); err != nil {
		log.Fatal("Failed to bulk create parts:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total parts imported: %d\n", len(parts))
}

func readPartsFromXLSX(filePath string) ([]model.Part, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var parts []model.Part
	seenNumbers := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 10 {
			skippedCount++
			continue
		}

		partNumber := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if partNumber == "" || name == "" {
			skippedCount++
			continue
		}

		// Duplicate part numbers would violate the unique index
		if seenNumbers[partNumber] {
			skippedCount++
			continue
		}
		seenNumbers[partNumber] = true

		costPrice, err := parsePrice(row[4])
		if err != nil {
			skippedCount++
			continue
		}
		retailPrice, err := parsePrice(row[5])
		if err != nil {
			skippedCount++
			continue
		}
		wholesalePrice, err := parsePrice(row[6])
		if err != nil {
			skippedCount++
			continue
		}

		part := model.Part{
			PartNumber:      partNumber,
			Name:            name,
			Description:     strings.TrimSpace(row[2]),
			Manufacturer:    strings.TrimSpace(row[3]),
			CostPrice:       costPrice,
			RetailPrice:     retailPrice,
			WholesalePrice:  wholesalePrice,
			QuantityOnHand:  parseCount(row[7]),
			MinimumStock:    parseCount(row[8]),
			ReorderQuantity: parseCount(row[9]),
			IsActive:        true,
		}
		if len(row) > 10 {
			part.Location = strings.TrimSpace(row[10])
		}
		if len(row) > 11 {
			part.CompatibleMakes = parseMakes(row[11])
		}

		parts = append(parts, part)

		if len(parts)%500 == 0 {
			fmt.Printf("Processed %d parts...\n", len(parts))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid parts: %d\n", len(parts))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return parts, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// parseMakes splits a semicolon separated list like "Toyota;Honda;Nissan".
func parseMakes(s string) pq.StringArray {
	var makes pq.StringArray
	for _, m := range strings.Split(s, ";") {
		m = strings.TrimSpace(m)
		if m != "" {
			makes = append(makes, m)
		}
	}
	return makes
}
