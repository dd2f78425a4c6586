package order

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber is human readable and time ordered. Uniqueness is left to
// the orders.order_number constraint.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%04d", now.UnixMilli(), rand.Intn(10000))
}

func NewTrackingNumber() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK-" + strings.ToUpper(hex[:12])
}

// uniqueEmail inserts a short random token before the @ so a repeat
// customer can still be inserted as a new row.
func uniqueEmail(email string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email + "+" + token
	}
	return local + "+" + token + "@" + domain
}
