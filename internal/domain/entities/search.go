package entities

// Sort orders accepted by the search pipeline
const (
	SortByDistance  = "distance"
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
)

// StockFilterAny disables stock filtering
const StockFilterAny = "any"

// SearchQuery carries the parameters of one medication search request
type SearchQuery struct {
	Medicine string
	Location string
	RadiusKm float64
	PriceMin *float64
	PriceMax *float64
	Stock    string
	SortBy   string
}

// DrugSummary identifies the resolved medicine in a search response
type DrugSummary struct {
	Name  string `json:"name"`
	RxCUI string `json:"rxcui"`
}

// LocationSummary echoes the resolved location in a search response
type LocationSummary struct {
	Text      string  `json:"text"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// SearchResult is the response payload of one search request. Total always
// equals len(Items) after filtering. Results are never cached.
type SearchResult struct {
	Drug     DrugSummary         `json:"drug"`
	Location LocationSummary     `json:"location"`
	Total    int                 `json:"total"`
	Items    []*EnrichedFacility `json:"items"`
}
