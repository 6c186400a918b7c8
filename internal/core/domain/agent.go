package domain

// Agent is a field operative who collects deposits and withdrawals from
// customers along assigned routes. The name doubles as the identifier;
// renaming an agent requires migrating every customer that references the
// old name.
//
// Credentials are stored as a bcrypt hash only.
type Agent struct {
	Name         string   `json:"name"` // Primary key
	Mobile       string   `json:"mobile"`
	Address      string   `json:"address"`
	PasswordHash string   `json:"-"`
	Route        []string `json:"route"` // Assigned route names
	CreatedDate  int64    `json:"createdDate"` // Epoch millis
	LastUpdated  int64    `json:"lastUpdated"` // Epoch millis
}
