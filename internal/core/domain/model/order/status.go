package order

import (
	"fmt"

	"labos/internal/pkg/errs"
)

// Status represents the lifecycle state of a service order (OS).
//
// The order moves through a fixed sequence. The first stages are manual
// commands; from coletado onward the status is derived by the rollup engine
// from the aggregate of the order's exam items:
//
//	rascunho -> agendado -> confirmado -> em_atendimento -> aguardando_coleta   (manual)
//	  -> coletado -> em_analise -> parcialmente_liberado -> liberado            (rollup)
//	  -> entregue                                                               (manual)
//
// cancelado is terminal and reachable from any non-terminal state.
//
// The string form of each status is the exact value persisted in the status
// column and must not be changed.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusRascunho is the initial draft state of a newly created order.
	StatusRascunho

	// StatusAgendado indicates the order has a scheduled visit.
	StatusAgendado

	// StatusConfirmado indicates the visit was confirmed. Items may enter
	// collection only from this stage onward.
	StatusConfirmado

	// StatusEmAtendimento indicates the patient is in care.
	StatusEmAtendimento

	// StatusAguardandoColeta indicates the order is waiting for sample collection.
	StatusAguardandoColeta

	// StatusColetado is derived: every active item has been collected.
	StatusColetado

	// StatusEmAnalise is derived: every active item is under analysis.
	StatusEmAnalise

	// StatusParcialmenteLiberado is derived: some, but not all, active items
	// have released results.
	StatusParcialmenteLiberado

	// StatusLiberado is derived: every active item has released results.
	StatusLiberado

	// StatusEntregue indicates the results were handed to the patient.
	// Manual, reachable only from liberado or parcialmente_liberado.
	StatusEntregue

	// StatusCancelado is the terminal deletion surrogate. Orders are never
	// physically deleted.
	StatusCancelado
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:              "unknown",
		StatusRascunho:             "rascunho",
		StatusAgendado:             "agendado",
		StatusConfirmado:           "confirmado",
		StatusEmAtendimento:        "em_atendimento",
		StatusAguardandoColeta:     "aguardando_coleta",
		StatusColetado:             "coletado",
		StatusEmAnalise:            "em_analise",
		StatusParcialmenteLiberado: "parcialmente_liberado",
		StatusLiberado:             "liberado",
		StatusEntregue:             "entregue",
		StatusCancelado:            "cancelado",
	}
}

// manualNext is the explicit transition table for manual commands. Derived
// (rollup) statuses are not listed here; they are reached exclusively through
// the rollup engine, and cancelado is validated separately because it is
// reachable from every non-terminal state.
func manualNext() map[Status][]Status {
	return map[Status][]Status{
		StatusRascunho:             {StatusAgendado},
		StatusAgendado:             {StatusConfirmado},
		StatusConfirmado:           {StatusEmAtendimento},
		StatusEmAtendimento:        {StatusAguardandoColeta},
		StatusParcialmenteLiberado: {StatusEntregue},
		StatusLiberado:             {StatusEntregue},
	}
}

// StatusFromString parses a persisted status value.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// String returns the persisted form of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the closed enumeration values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusCancelado {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// Rank returns the position of the status along the fixed sequence. The
// rollup engine uses it to guarantee monotonicity: an order never moves to a
// status with a lower rank except through an explicit cancel. cancelado has
// no rank; it sits outside the sequence.
func (s Status) Rank() int {
	if s == StatusCancelado || s == StatusUnknown {
		return -1
	}
	return int(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelado || s == StatusEntregue
}

// CanTransitionManually reports whether to is a legal manual step from s.
// Manual steps never skip a stage.
func (s Status) CanTransitionManually(to Status) bool {
	for _, next := range manualNext()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsRollupTarget reports whether the status is one the rollup engine may
// derive from item statuses.
func (s Status) IsRollupTarget() bool {
	switch s {
	case StatusColetado, StatusEmAnalise, StatusParcialmenteLiberado, StatusLiberado:
		return true
	default:
		return false
	}
}
