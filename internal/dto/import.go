package dto

// ImportSummary reports what a legacy export import brought in.
type ImportSummary struct {
	Customers    int `json:"customers"`
	Transactions int `json:"transactions"`
	Agents       int `json:"agents"`
	Routes       int `json:"routes"`

	// Skipped counts records that already existed and were left untouched.
	Skipped int `json:"skipped"`
}
