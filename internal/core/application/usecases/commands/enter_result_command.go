package commands

import (
	"errors"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrEnterResultCommandIsNotConstructed = errors.New(
	"EnterResultCommand must be created via NewEnterResultCommand constructor",
)

// EnterResultParams carries the field-set for entering one exam result. The
// reference range and critical band come from the exam catalog; the value
// fields come from the analyst or the interfaced instrument.
type EnterResultParams struct {
	TenantID kernel.TenantID
	OrderID  kernel.UUID
	ItemID   kernel.UUID
	ResultID kernel.UUID

	Parametro     string
	Origem        order.ResultOrigin
	OrdemExibicao int
	Unidade       string
	Metodo        string
	Referencia    order.ReferenceRange
	Critico       order.CriticalBand

	ValorNumerico *float64
	ValorTexto    string
	Laudo         string
	Interpretacao string
	Comentario    string

	Analista string
}

// EnterResultCommand represents the entry of one result value for an exam
// item. Entering a value lands the result at aguardando_revisao, the QC
// gate's doorstep; the item moves into em_analise when this is its first
// result.
type EnterResultCommand struct {
	params EnterResultParams

	guard guard.ConstructorGuard
}

// NewEnterResultCommand creates a command to enter a result value.
func NewEnterResultCommand(params EnterResultParams) (EnterResultCommand, error) {
	if err := errors.Join(
		params.TenantID.Validate(),
		params.OrderID.Validate(),
		params.ItemID.Validate(),
		params.ResultID.Validate(),
		params.Origem.Validate(),
	); err != nil {
		return EnterResultCommand{}, err
	}
	if params.Parametro == "" {
		return EnterResultCommand{}, errs.NewValueIsRequiredError("parametro")
	}
	if params.Analista == "" {
		return EnterResultCommand{}, errs.NewValueIsRequiredError("analista")
	}
	if params.ValorNumerico == nil && params.ValorTexto == "" && params.Laudo == "" {
		return EnterResultCommand{}, errs.NewValueIsRequiredError("valor")
	}

	return EnterResultCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EnterResultCommand) Validate() error {
	return c.guard.Validate(ErrEnterResultCommandIsNotConstructed)
}

// Params returns the result entry field-set.
func (c EnterResultCommand) Params() EnterResultParams {
	return c.params
}
