package order

import (
	"fmt"

	"labos/internal/pkg/errs"
)

// ItemStatus represents one exam item's journey inside an order:
//
//	pendente -> aguardando_coleta -> coletado -> enviado_apoio -> em_analise -> liberado
//
// enviado_apoio is optional: items realized in-house skip from coletado
// straight to em_analise. Two exits leave the line: repetir (the item is
// frozen and a new linked item restarts at pendente) and cancelado (terminal,
// reachable from any non-terminal state).
type ItemStatus int

const (
	// ItemStatusUnknown represents an invalid or undefined status.
	ItemStatusUnknown ItemStatus = iota

	// ItemPendente is the initial state of a newly added exam item.
	ItemPendente

	// ItemAguardandoColeta means the item is queued for sample collection.
	ItemAguardandoColeta

	// ItemColetado means the sample was collected.
	ItemColetado

	// ItemEnviadoApoio means the sample was routed to an external support lab.
	ItemEnviadoApoio

	// ItemEmAnalise means the item is under analysis and has at least one result.
	ItemEmAnalise

	// ItemLiberado means every result of the item was released.
	ItemLiberado

	// ItemRepetir freezes the item after its result was judged invalid;
	// a new linked item carries the repeat.
	ItemRepetir

	// ItemCancelado is terminal.
	ItemCancelado
)

func itemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemStatusUnknown:    "unknown",
		ItemPendente:         "pendente",
		ItemAguardandoColeta: "aguardando_coleta",
		ItemColetado:         "coletado",
		ItemEnviadoApoio:     "enviado_apoio",
		ItemEmAnalise:        "em_analise",
		ItemLiberado:         "liberado",
		ItemRepetir:          "repetir",
		ItemCancelado:        "cancelado",
	}
}

// ItemStatusFromString parses a persisted item status value.
func ItemStatusFromString(s string) (ItemStatus, error) {
	for status, str := range itemStatusStrings() {
		if str == s && status != ItemStatusUnknown {
			return status, nil
		}
	}
	return ItemStatusUnknown, errs.NewValueIsInvalidErrorWithCause("itemStatus",
		fmt.Errorf("%q is not a valid item status", s))
}

// String returns the persisted form of the item status.
func (s ItemStatus) String() string {
	if str, ok := itemStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the closed enumeration values.
func (s ItemStatus) Validate() error {
	if s <= ItemStatusUnknown || s > ItemCancelado {
		return errs.NewValueIsInvalidErrorWithCause("itemStatus",
			fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed.
// repetir is terminal for the item itself; the repeat continues on the
// linked replacement item.
func (s ItemStatus) IsTerminal() bool {
	return s == ItemCancelado || s == ItemRepetir
}

// ReachedRank places the status on the linear line for the order rollup's
// "reached at least" comparisons. A repetir item had to be at least under
// analysis before being frozen, so it ranks as em_analise. cancelado has no
// rank; cancelled items are excluded from rollup aggregates entirely.
func (s ItemStatus) ReachedRank() int {
	switch s {
	case ItemPendente:
		return 0
	case ItemAguardandoColeta:
		return 1
	case ItemColetado:
		return 2
	case ItemEnviadoApoio:
		return 3
	case ItemEmAnalise:
		return 4
	case ItemRepetir:
		return 4
	case ItemLiberado:
		return 5
	default:
		return -1
	}
}
