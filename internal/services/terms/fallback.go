package terms

import (
	"regexp"
	"strconv"
	"strings"

	"payopti/internal/domain"
)

// Two independent extractions over the lowercased input: a leading discount
// percentage plus day count, and a trailing net-day count. Either may miss
// without affecting the other.
var (
	discountPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%?\s*[/within]*\s*(\d+)`)
	netPattern      = regexp.MustCompile(`net\s*(\d+)|(\d+)\s*days?`)
)

// ParseFallback is the deterministic terms parser. It never fails: text
// that matches neither pattern degrades to a plain 30-day net term.
func ParseFallback(raw string) domain.PaymentTerms {
	lower := strings.ToLower(raw)

	var discountRate float64
	var discountDays int
	if m := discountPattern.FindStringSubmatch(lower); m != nil {
		discountRate, _ = strconv.ParseFloat(m[1], 64)
		discountDays, _ = strconv.Atoi(m[2])
	}

	netDays := domain.DefaultNetDays
	if m := netPattern.FindStringSubmatch(lower); m != nil {
		g := m[1]
		if g == "" {
			g = m[2]
		}
		if n, err := strconv.Atoi(g); err == nil {
			netDays = n
		}
	}

	paymentType := "net_term"
	if discountRate > 0 {
		paymentType = "early_discount"
	}

	return domain.PaymentTerms{
		PaymentType:  paymentType,
		DiscountRate: discountRate,
		DiscountDays: discountDays,
		NetDays:      netDays,
		Confidence:   domain.FallbackParseConfidence,
	}
}
