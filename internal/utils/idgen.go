package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Account numbers and transaction IDs are namespaced by fixed prefixes so
// records from the two collections can never be confused.
const (
	AccountNumberPrefix = "ACC"
	TransactionIDPrefix = "TXN"
)

// randUint32 reads a cryptographically secure random value. crypto/rand on
// supported platforms does not fail in practice; the zero fallback keeps the
// generators total.
func randUint32() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(b[:])
}

// GenerateAccountNumber returns a new customer account number: the ACC
// prefix, the current epoch millis, and a zero-padded 3-digit random suffix.
// The result is fixed-width and unique under practical concurrency, but
// callers must still check uniqueness against the store before committing.
func GenerateAccountNumber() string {
	return fmt.Sprintf("%s%d%03d", AccountNumberPrefix, time.Now().UnixMilli(), randUint32()%1000)
}

// GenerateTransactionID returns a new transaction ID: the TXN prefix plus 8
// uppercase hex characters derived from the current epoch millis and a
// random component (e.g. TXN8770A1FB).
func GenerateTransactionID() string {
	mixed := uint64(time.Now().UnixMilli()) + uint64(randUint32())
	hex := strings.ToUpper(fmt.Sprintf("%08x", mixed))
	return TransactionIDPrefix + hex[len(hex)-8:]
}
