package util

import (
	"math"
	"strconv"
	"strings"
)

const (
	RupeeGlyph      = "₹"
	DefaultUSDToINR = 83.0
)

// FormatINR renders amount with Indian digit grouping: the last three digits form one group and
// the remaining digits are grouped in pairs, e.g. 1234567 -> "₹12,34,567". Negative amounts get a
// leading minus before the glyph.
func FormatINR(amount int64) string {
	neg := amount < 0
	var digits string
	if neg {
		// Avoid overflow on math.MinInt64 by formatting through uint64.
		digits = strconv.FormatUint(uint64(-(amount+1))+1, 10)
	} else {
		digits = strconv.FormatInt(amount, 10)
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(RupeeGlyph)
	b.WriteString(groupIndian(digits))
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	groups := make([]string, 0, len(head)/2+2)
	if len(head)%2 == 1 {
		groups = append(groups, head[:1])
		head = head[1:]
	}
	for i := 0; i < len(head); i += 2 {
		groups = append(groups, head[i:i+2])
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}

// ToDisplayAmount converts a canonical price to a whole display-currency amount.
func ToDisplayAmount(price, rate float64) int64 {
	return int64(math.Round(price * rate))
}

// FormatPrice converts and formats a canonical price in one step.
func FormatPrice(price, rate float64) string {
	return FormatINR(ToDisplayAmount(price, rate))
}
