package payment

// BasePriceCents is the full report price, $14.99.
const BasePriceCents = 1499

// CreditValueCents is the discount one referral credit is worth.
const CreditValueCents = 100

// Quote prices a checkout after applying referral credits. The discount is
// capped at the base price and the final price never goes negative.
func Quote(referralCredits int) (finalCents, discountCents int) {
	if referralCredits < 0 {
		referralCredits = 0
	}
	discountCents = referralCredits * CreditValueCents
	if discountCents > BasePriceCents {
		discountCents = BasePriceCents
	}
	return BasePriceCents - discountCents, discountCents
}
