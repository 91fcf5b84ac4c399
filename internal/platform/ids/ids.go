// Package ids generates entity identifiers and human-facing quote references.
package ids

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// ReferencePrefix is the fixed two-letter code in front of every quote
// reference.
const ReferencePrefix = "AQ"

const referenceCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O/1/I
const referenceLength = 8

// New returns a UUID string for internal entity IDs.
func New() string {
	return uuid.NewString()
}

// NewReference returns a quote reference: the fixed prefix plus 8 uppercase
// alphanumerics, e.g. AQ7GK2M9XP. Uniqueness is enforced by the store's
// unique constraint, not here.
func NewReference() string {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read on supported platforms never fails
		panic(err)
	}
	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}
	return ReferencePrefix + string(buf)
}
