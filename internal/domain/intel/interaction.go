package intel

import "time"

// InteractionType is one of the click/engagement kinds produced by the
// map and search surfaces.
type InteractionType string

const (
	InteractionPlaceClick     InteractionType = "place_click"
	InteractionPlaceSave      InteractionType = "place_save"
	InteractionPlaceShare     InteractionType = "place_share"
	InteractionMapPan         InteractionType = "map_pan"
	InteractionMapZoom        InteractionType = "map_zoom"
	InteractionSearch         InteractionType = "search"
	InteractionFilterApply    InteractionType = "filter_apply"
	InteractionDetailView     InteractionType = "detail_view"
	InteractionGalleryView    InteractionType = "gallery_view"
	InteractionContactClick   InteractionType = "contact_click"
	InteractionDirectionsReq  InteractionType = "directions_request"
	InteractionCategoryBrowse InteractionType = "category_browse"
)

// Coordinates is an optional lat/lng attached to map interactions.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InteractionEvent is one append-only click/engagement record.
type InteractionEvent struct {
	ID            string          `json:"id"`
	Type          InteractionType `json:"type"`
	PlaceID       string          `json:"placeId,omitempty"`
	PlaceName     string          `json:"placeName,omitempty"`
	PlaceCategory string          `json:"placeCategory,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	SessionID     string          `json:"sessionId"`
	VisitorID     string          `json:"visitorId"`
	Source        string          `json:"source"`
	Coords        *Coordinates    `json:"coords,omitempty"`
	DwellSeconds  float64         `json:"dwellSeconds,omitempty"`
}
