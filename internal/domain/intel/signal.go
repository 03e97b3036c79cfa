package intel

// SignalCategory classifies one piece of wealth evidence.
type SignalCategory string

const (
	SignalDirectDisclosure   SignalCategory = "direct_disclosure"
	SignalLifestyle          SignalCategory = "lifestyle"
	SignalProfessionalStatus SignalCategory = "professional_status"
	SignalFinancialBehavior  SignalCategory = "financial_behavior"
	SignalRealEstate         SignalCategory = "real_estate"
	SignalTravelAviation     SignalCategory = "travel_aviation"
	SignalLanguagePattern    SignalCategory = "language_pattern"
	SignalNetworkIndicator   SignalCategory = "network_indicator"
	SignalGeographic         SignalCategory = "geographic"
)

// SignalCategories lists every category in canonical order.
var SignalCategories = []SignalCategory{
	SignalDirectDisclosure,
	SignalLifestyle,
	SignalProfessionalStatus,
	SignalFinancialBehavior,
	SignalRealEstate,
	SignalTravelAviation,
	SignalLanguagePattern,
	SignalNetworkIndicator,
	SignalGeographic,
}

// WealthSignal is one piece of textual evidence contributing to profile
// inference. Immutable once produced by extraction.
type WealthSignal struct {
	Category   SignalCategory `json:"category"`
	Type       string         `json:"type"`
	Evidence   string         `json:"evidence"`
	Weight     float64        `json:"weight"`
	Confidence float64        `json:"confidence"`
	// AmountUSD is set when the evidentiary phrase carried an explicit
	// dollar amount, zero otherwise.
	AmountUSD float64 `json:"amountUsd,omitempty"`
}
