package domain

type CatalogReloadMessage struct {
	TaskID        string `json:"task_id"`
	Source        string `json:"source"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`
}

type EstimateRecordMessage struct {
	EventType string         `json:"event_type"`
	Record    EstimateRecord `json:"record"`
}

const (
	EventEstimateCreated   = "estimate.created"
	EventEstimateCorrected = "estimate.corrected"
)
