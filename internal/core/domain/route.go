package domain

// Route is a named grouping of villages assigned to agents for collection.
// A village should belong to at most one route for deterministic
// agent-assignment-by-address matching, but this is advisory and not
// enforced by the store.
type Route struct {
	Name        string   `json:"name"` // Primary key
	Villages    []string `json:"villages"`
	CreatedDate int64    `json:"createdDate"` // Epoch millis
	LastUpdated int64    `json:"lastUpdated"` // Epoch millis
}
