package booking

import (
	"fmt"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

// ApplyDiscount returns what is left to pay after subtracting amount from
// total. The result never drops below zero, however large the discount.
func ApplyDiscount(total, amount int) int {
	if amount < 0 {
		amount = 0
	}
	return max(0, total-amount)
}

// DiscountAmount converts a discount into the amount it takes off total.
// Percentages are floored and capped at 100.
func DiscountAmount(d domain.Discount, total int) (int, error) {
	const op = "booking.DiscountAmount"

	if d.Amount < 0 {
		return 0, fmt.Errorf("%s:%w: negative amount %d", op, ErrInvalidDiscount, d.Amount)
	}

	switch d.Type {
	case domain.DiscountFlat:
		return d.Amount, nil
	case domain.DiscountPercent:
		if total <= 0 {
			return 0, nil
		}
		return total * min(d.Amount, 100) / 100, nil
	}

	return 0, fmt.Errorf("%s:%w: type %q", op, ErrInvalidDiscount, d.Type)
}
