package domain

import "time"

// Retention (recycle bin) policy constants.
const (
	// RetentionTTLDays is how long a soft-deleted entity stays restorable.
	RetentionTTLDays = 5

	// MillisPerDay is the day granularity of the retention countdown.
	MillisPerDay = 24 * 60 * 60 * 1000
)

// DaysRemaining returns how many whole days a retention record deleted at
// deletedAt (epoch millis) has left before it becomes eligible for purge:
//
//	TTL_DAYS - floor((now - deletedAt) / MILLIS_PER_DAY)
//
// A record is visible only while the result is positive.
func DaysRemaining(deletedAt int64, now time.Time) int {
	elapsed := now.UnixMilli() - deletedAt
	return RetentionTTLDays - int(elapsed/MillisPerDay)
}

// RetentionExpired reports whether a record deleted at deletedAt must be
// purged on next observation.
func RetentionExpired(deletedAt int64, now time.Time) bool {
	return DaysRemaining(deletedAt, now) <= 0
}

// DeletedCustomer is a recycle-bin entry holding the full snapshot of a
// soft-deleted customer together with its owned transactions.
type DeletedCustomer struct {
	AccountNo        string        `json:"accountNo"`
	Customer         Customer      `json:"customer"`
	Transactions     []Transaction `json:"transactions"`
	TransactionCount int           `json:"transactionCount"`
	DeletedAt        int64         `json:"deletedAt"` // Epoch millis
	DeletedBy        string        `json:"deletedBy"`
	DaysRemaining    int           `json:"daysRemaining"` // Derived at read time
}

// DeletedAgent is a recycle-bin entry for a soft-deleted agent. The agent's
// customers are not cascade-deleted; CustomerCount records how many
// referenced it at deletion time.
type DeletedAgent struct {
	Name          string `json:"name"`
	Agent         Agent  `json:"agent"`
	CustomerCount int    `json:"customerCount"`
	DeletedAt     int64  `json:"deletedAt"` // Epoch millis
	DeletedBy     string `json:"deletedBy"`
	DaysRemaining int    `json:"daysRemaining"` // Derived at read time
}
