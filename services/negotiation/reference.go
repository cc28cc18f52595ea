package negotiation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// ReferenceGenerator returns a candidate reference for a quote created at now.
type ReferenceGenerator func(now time.Time) string

// NewReference builds QR-<last 6 digits of the unix millis><3 random digits>.
// Candidates are not guaranteed unique; the store's unique index decides.
func NewReference(now time.Time) string {
	suffix := now.UnixMilli() % 1000000
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	random := int64(now.Nanosecond() % 1000)
	if err == nil {
		random = n.Int64()
	}
	return fmt.Sprintf("QR-%06d%03d", suffix, random)
}

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// WithRetries runs op once plus up to maxRetries more times while retryable
// reports the failure as worth another attempt.
func WithRetries(op Operation, maxRetries int, retryable func(err error) bool) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if attempt == maxRetries || !retryable(err) {
			break
		}
	}
	return err
}
