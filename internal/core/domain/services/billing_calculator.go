package services

import (
	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"
)

// BillingCalculator is the domain service that keeps an order's monetary
// fields consistent with its items and the convênio pricing rule.
//
// Business rules:
//   - item totals are unit price × quantity − item discount, in centavos
//   - the order total is the sum over non-cancelled items
//   - the order-level discount comes from the insurance plan's percentage,
//     applied over the order total, truncating toward zero
//   - valor_final = valor_total − valor_desconto at every committed state
type BillingCalculator struct{}

// NewBillingCalculator creates a new BillingCalculator instance.
func NewBillingCalculator() BillingCalculator {
	return BillingCalculator{}
}

// PriceItem sets an item's unit price and discount from the exam catalog and
// recomputes the order's totals.
func (b BillingCalculator) PriceItem(
	o *order.Order,
	itemID kernel.UUID,
	valorUnitario, valorDesconto kernel.Money,
	actor string,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.SetPricing(valorUnitario, valorDesconto); err != nil {
		return err
	}

	// Re-apply the standing order discount over the new total.
	return o.ApplyDiscount(o.ValorDesconto(), actor)
}

// Recalculate re-derives the order's totals from its current items under the
// standing discount. Invoked before any payment-status transition.
func (b BillingCalculator) Recalculate(o *order.Order, actor string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.ApplyDiscount(o.ValorDesconto(), actor)
}

// ApplyConvenioDiscount derives the order-level discount from the insurance
// plan's percentage rule and applies it. Private and public orders carry no
// plan rule and take a zero percent.
func (b BillingCalculator) ApplyConvenioDiscount(o *order.Order, descontoPercentual int, actor string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if descontoPercentual != 0 && o.TipoAtendimento() != order.CareConvenio {
		return errs.NewValueIsInvalidError("descontoPercentual")
	}

	desconto, err := o.ValorTotal().Percent(descontoPercentual)
	if err != nil {
		return err
	}
	return o.ApplyDiscount(desconto, actor)
}
