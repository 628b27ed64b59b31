package commands

import (
	"errors"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"
	"labos/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderExam describes one exam requested at order creation. Pricing
// comes from the exam catalog collaborator; the discount percentage is
// order-level and arrives separately.
type CreateOrderExam struct {
	ItemID        kernel.UUID
	ExamID        kernel.UUID
	Quantidade    int
	ValorUnitario kernel.Money
	ValorDesconto kernel.Money
	Realizacao    order.Realization
}

// CreateOrderParams carries the field-set for registering a new service
// order. Insurance authorization fields are required iff the care type is
// convênio; the domain constructor enforces that pairing.
type CreateOrderParams struct {
	OrderID    kernel.UUID
	TenantID   kernel.TenantID
	Codigo     string
	Protocolo  string
	PacienteID kernel.UUID
	UnidadeID  kernel.UUID

	TipoAtendimento order.CareType
	ConvenioID      *kernel.UUID
	GuiaNumero      string
	GuiaSenha       string
	GuiaValidade    *time.Time

	Prioridade  order.Priority
	CanalOrigem string
	CriadoPor   string

	Exams              []CreateOrderExam
	DescontoPercentual int
}

// CreateOrderCommand represents a request to register a new service order
// with its initial exam list.
type CreateOrderCommand struct {
	params CreateOrderParams

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new service order.
// Structural validation happens here; the domain re-checks every business
// rule when the aggregate is built.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	if err := errors.Join(
		params.OrderID.Validate(),
		params.TenantID.Validate(),
		params.PacienteID.Validate(),
		params.UnidadeID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if params.Codigo == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("codigo")
	}
	if params.Protocolo == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("protocolo")
	}
	if params.CriadoPor == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("criadoPor")
	}
	if len(params.Exams) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("exams")
	}
	for _, exam := range params.Exams {
		if err := errors.Join(exam.ItemID.Validate(), exam.ExamID.Validate()); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return CreateOrderCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Params returns the creation field-set.
func (c CreateOrderCommand) Params() CreateOrderParams {
	return c.params
}
