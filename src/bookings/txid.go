package bookings

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// TxIDGenerator produces the external-facing transaction identifiers stamped
// on successful bookings: a clock component plus a random suffix. The unique
// column on bookings.transaction_id is the actual collision guard; a
// duplicate insert is retried with a fresh id.
type TxIDGenerator struct{}

func NewTxIDGenerator() *TxIDGenerator {
	return &TxIDGenerator{}
}

func (g *TxIDGenerator) Next() string {
	var suffix [6]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		// crypto/rand failing is not recoverable here; fall back to the clock
		return fmt.Sprintf("TXN-%s-%012x", strconv.FormatInt(time.Now().UnixNano(), 36), time.Now().UnixNano())
	}
	return fmt.Sprintf("TXN-%s-%s", strconv.FormatInt(time.Now().UnixNano(), 36), hex.EncodeToString(suffix[:]))
}
