package domain

import "time"

// CatalogEntry is one purchasable menu item. ID is stable across reloads for the same code.
type CatalogEntry struct {
	ID              int    `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	UnitPrice       int    `json:"unit_price"`
	UnitWeightGrams int    `json:"unit_weight_grams"`
	Unit            string `json:"unit"`
}

// RawRecord is a single row produced by an ingestion source, before identity and bounds are applied.
type RawRecord struct {
	// ID is used as-is when non-zero, otherwise it is derived from Code.
	ID          int
	Code        string
	Name        string
	Description string
	Price       int
	WeightGrams int
	Unit        string
	Line        int
}

type CategoryRecords struct {
	Category string
	Records  []RawRecord
}

type CatalogStats struct {
	TotalItems       int            `json:"total_items"`
	CategoryCount    int            `json:"category_count"`
	PerCategoryCount map[string]int `json:"per_category_count"`
	Fallback         bool           `json:"fallback"`
	LoadedAt         time.Time      `json:"loaded_at"`
}
