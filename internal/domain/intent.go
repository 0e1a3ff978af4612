package domain

type Intent string

const (
	IntentNewEstimate Intent = "new_estimate"
	IntentMenuInfo    Intent = "menu_info"
	IntentPricing     Intent = "pricing"
	IntentCorrection  Intent = "correction"
	IntentServiceInfo Intent = "service_info"
	IntentOrderStatus Intent = "order_status"
	IntentGeneral     Intent = "general"
	IntentSearch      Intent = "search"
)

type CorrectionKind string

const (
	CorrectionReduceMeat    CorrectionKind = "reduce_meat"
	CorrectionAddVegetables CorrectionKind = "add_vegetables"
	CorrectionCheaper       CorrectionKind = "cheaper"
	CorrectionPremium       CorrectionKind = "premium"
)

type Correction struct {
	Kind       CorrectionKind `json:"kind"`
	Confidence float64        `json:"confidence"`
}
