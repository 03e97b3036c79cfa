package intel

import "time"

// LiveCounters are the headline numbers at the top of the dashboard.
type LiveCounters struct {
	ActiveSessions     int     `json:"activeSessions"`
	HotLeadsToday      int     `json:"hotLeadsToday"`
	QualifiedToday     int     `json:"qualifiedToday"`
	PipelineValueEst   float64 `json:"pipelineValueEst"`
	TotalVisitors      int     `json:"totalVisitors"`
	UnactionedAlerts   int     `json:"unactionedAlerts"`
	SignalsToday       int     `json:"signalsToday"`
	AvgLeadScoreToday  float64 `json:"avgLeadScoreToday"`
	MessagesToday      int     `json:"messagesToday"`
	InteractionsToday  int     `json:"interactionsToday"`
	ConversionsToDate  int     `json:"conversionsToDate"`
	SubscriberCount    int     `json:"subscriberCount"`
	FeedDepth          int     `json:"feedDepth"`
	ComputedDurationMs float64 `json:"computedDurationMs"`
}

// FunnelStage is one step of the conversion funnel.
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// SignalTypeCount ranks signal types by occurrences.
type SignalTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// SignalCluster groups signals by category with aggregate weight.
type SignalCluster struct {
	Category  SignalCategory `json:"category"`
	Count     int            `json:"count"`
	AvgWeight float64        `json:"avgWeight"`
}

// PlaceStat aggregates interaction pressure on one place.
type PlaceStat struct {
	PlaceID   string `json:"placeId"`
	PlaceName string `json:"placeName"`
	Category  string `json:"category"`
	Clicks    int    `json:"clicks"`
}

// TierProgressionPoint is one day of the 7-day tier-progression series.
type TierProgressionPoint struct {
	Day      string             `json:"day"`
	Upgrades map[WealthTier]int `json:"upgrades"`
}

// SophisticationCell is one tier row of the sophistication matrix.
type SophisticationCell struct {
	Tier          WealthTier `json:"tier"`
	Visitors      int        `json:"visitors"`
	AvgConfidence float64    `json:"avgConfidence"`
	AvgLeadScore  float64    `json:"avgLeadScore"`
	AvgSignals    float64    `json:"avgSignals"`
}

// HotLeadDigest is a dashboard row for a recent hot lead.
type HotLeadDigest struct {
	VisitorID string              `json:"visitorId"`
	Tier      WealthTier          `json:"tier"`
	LeadScore float64             `json:"leadScore"`
	Status    QualificationStatus `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
}

// DashboardSnapshot is the immutable cross-visitor projection produced
// on demand by the dashboard service. It never aliases mutable state.
type DashboardSnapshot struct {
	Counters           LiveCounters             `json:"counters"`
	TierHistogram      map[WealthTier]int       `json:"tierHistogram"`
	RecentHotLeads     []HotLeadDigest          `json:"recentHotLeads"`
	TopSignalTypes     []SignalTypeCount        `json:"topSignalTypes"`
	Funnel             []FunnelStage            `json:"funnel"`
	GeoDistribution    map[string]int           `json:"geoDistribution"`
	CategoryClicks     map[string]int           `json:"categoryClicks"`
	ActionClicks       map[string]int           `json:"actionClicks"`
	TopPlaces          []PlaceStat              `json:"topPlaces"`
	SignalClusters     []SignalCluster          `json:"signalClusters"`
	SourceOfWealth     map[SignalCategory]int   `json:"sourceOfWealth"`
	TierProgression7d  []TierProgressionPoint   `json:"tierProgression7d"`
	Sophistication     []SophisticationCell     `json:"sophistication"`
	GeneratedAt        time.Time                `json:"generatedAt"`
}
