package quote

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/baogia/backend/internal/domain/shared"
)

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateNumber builds a human-readable quote number from the customer
// initials and the quote date, e.g. "NVA-150126-X7K2". withSuffix adds a
// random tail to keep numbers unique across repeated quotes for the same
// customer on the same day; the printable variant omits it.
func GenerateNumber(customerName string, date time.Time, withSuffix bool) string {
	prefix := shared.Initials(customerName)
	if prefix == "" {
		prefix = "BG"
	}
	number := prefix + "-" + date.Format("020106")
	if withSuffix {
		number += "-" + randomSuffix(4)
	}
	return number
}

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = suffixAlphabet[0]
			continue
		}
		b[i] = suffixAlphabet[idx.Int64()]
	}
	return string(b)
}
