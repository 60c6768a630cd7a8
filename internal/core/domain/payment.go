package domain

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

type PaymentMethod string

const (
	PaymentMethodStripe       PaymentMethod = "stripe"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOther        PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodStripe, PaymentMethodCard, PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodOther:
		return true
	}
	return false
}

type Payment struct {
	Status      PaymentStatus
	AmountCents *int64
	PaidAt      *time.Time
	Method      PaymentMethod
}

// ApplyPayment records a payment on an accepted booking. Recording the
// same amount twice is a no-op; a different amount is rejected so a paid
// booking never silently changes what it was paid.
func (b *BookingRequest) ApplyPayment(amountCents int64, method PaymentMethod, at time.Time) (changed bool, err error) {
	if !b.Status.IsPayable() {
		return false, fmt.Errorf("%w: booking is %s", ErrNotPayable, b.Status)
	}

	if b.Payment.Status == PaymentPaid {
		if b.Payment.AmountCents != nil && *b.Payment.AmountCents == amountCents {
			return false, nil
		}
		return false, ErrPaymentConflict
	}

	b.Payment = Payment{
		Status:      PaymentPaid,
		AmountCents: &amountCents,
		PaidAt:      &at,
		Method:      method,
	}
	b.UpdatedAt = at
	return true, nil
}
