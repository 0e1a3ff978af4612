package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReloadTaskStatus string

const (
	StatusQueued     ReloadTaskStatus = "queued"
	StatusProcessing ReloadTaskStatus = "processing"
	StatusCompleted  ReloadTaskStatus = "completed"
	StatusFailed     ReloadTaskStatus = "failed"
)

const (
	SourceTableFiles   = "table_files"
	SourceGoogleSheets = "google_sheets"
)

type CatalogReloadTask struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status        ReloadTaskStatus   `bson:"status" json:"status"`
	Source        string             `bson:"source" json:"source"`
	SpreadsheetID string             `bson:"spreadsheet_id,omitempty" json:"spreadsheet_id,omitempty"`
	ItemCount     int                `bson:"item_count" json:"item_count"`
	CategoryCount int                `bson:"category_count" json:"category_count"`
	Fallback      bool               `bson:"fallback" json:"fallback"`
	ErrorMessage  string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	RetryCount    int                `bson:"retry_count" json:"retry_count"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
