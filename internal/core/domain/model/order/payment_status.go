package order

import (
	"fmt"

	"labos/internal/pkg/errs"
)

// PaymentStatus tracks how much of the order's final amount has been paid.
// It is derived from valor_pago against valor_final, never set directly.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPendente indicates nothing has been paid.
	PaymentPendente

	// PaymentParcial indicates a payment smaller than the final amount.
	PaymentParcial

	// PaymentPago indicates the final amount is fully paid.
	PaymentPago

	// PaymentCancelado indicates the order was cancelled before full payment.
	PaymentCancelado
)

func paymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentPendente:      "pendente",
		PaymentParcial:       "parcial",
		PaymentPago:          "pago",
		PaymentCancelado:     "cancelado",
	}
}

// PaymentStatusFromString parses a persisted payment status value.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range paymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("statusPagamento",
		fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the persisted form of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := paymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the payment status is one of the closed enumeration values.
func (s PaymentStatus) Validate() error {
	if s <= PaymentStatusUnknown || s > PaymentCancelado {
		return errs.NewValueIsInvalidErrorWithCause("statusPagamento",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
