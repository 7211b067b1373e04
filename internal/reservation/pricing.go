package reservation

import "github.com/shopspring/decimal"

// taxRate is the flat tax applied to every booking.
var taxRate = decimal.NewFromFloat(0.08)

// zero is reused for the discount field, which is always present and
// always zero until discount rules exist.
var zero = decimal.NewFromInt(0)

// Quote is the monetary breakdown of a booking.  All fields are
// fixed-point decimals with two fractional digits.
type Quote struct {
    Subtotal decimal.Decimal
    Discount decimal.Decimal
    Tax      decimal.Decimal
    Total    decimal.Decimal
}

// Price computes the cost of booking seatCount seats at the given unit
// price.  The rules are fixed and deterministic:
//
//	subtotal = unitPrice * seatCount
//	discount = 0
//	tax      = round(subtotal * 0.08, 2), half away from zero
//	total    = subtotal - discount + tax
//
// Tax is included in the total.  Rounding is half away from zero
// (decimal.Round), so 0.005 rounds to 0.01.
func Price(unitPrice decimal.Decimal, seatCount int) Quote {
    subtotal := unitPrice.Mul(decimal.NewFromInt(int64(seatCount)))
    tax := subtotal.Mul(taxRate).Round(2)
    return Quote{
        Subtotal: subtotal,
        Discount: zero,
        Tax:      tax,
        Total:    subtotal.Sub(zero).Add(tax),
    }
}
