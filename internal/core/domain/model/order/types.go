package order

import (
	"fmt"

	"labos/internal/pkg/errs"
)

// CareType identifies who pays for the order and drives the billing rules.
type CareType int

const (
	CareTypeUnknown CareType = iota

	// CareParticular is a private, self-paying patient.
	CareParticular

	// CareConvenio is an insurance-covered visit. Requires the authorization
	// guide fields (guia number, password, validity).
	CareConvenio

	// CarePublico is a public-health visit.
	CarePublico
)

func careTypeStrings() map[CareType]string {
	return map[CareType]string{
		CareTypeUnknown: "unknown",
		CareParticular:  "particular",
		CareConvenio:    "convenio",
		CarePublico:     "publico",
	}
}

// CareTypeFromString parses a persisted care type value.
func CareTypeFromString(s string) (CareType, error) {
	for ct, str := range careTypeStrings() {
		if str == s && ct != CareTypeUnknown {
			return ct, nil
		}
	}
	return CareTypeUnknown, errs.NewValueIsInvalidErrorWithCause("tipoAtendimento",
		fmt.Errorf("%q is not a valid care type", s))
}

func (c CareType) String() string {
	if str, ok := careTypeStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the care type is one of the closed enumeration values.
func (c CareType) Validate() error {
	if c <= CareTypeUnknown || c > CarePublico {
		return errs.NewValueIsInvalidErrorWithCause("tipoAtendimento",
			fmt.Errorf("%d is not a valid care type", c))
	}
	return nil
}

// Priority expresses how fast the order must move through the lab.
// It does not change the state machines; urgent deadlines are data
// (prazo_maximo on items) checked by reporting collaborators.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityNormal
	PriorityUrgente
	PriorityEmergencia
)

func priorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown:    "unknown",
		PriorityNormal:     "normal",
		PriorityUrgente:    "urgente",
		PriorityEmergencia: "emergencia",
	}
}

// PriorityFromString parses a persisted priority value.
func PriorityFromString(s string) (Priority, error) {
	for p, str := range priorityStrings() {
		if str == s && p != PriorityUnknown {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("prioridade",
		fmt.Errorf("%q is not a valid priority", s))
}

func (p Priority) String() string {
	if str, ok := priorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the priority is one of the closed enumeration values.
func (p Priority) Validate() error {
	if p <= PriorityUnknown || p > PriorityEmergencia {
		return errs.NewValueIsInvalidErrorWithCause("prioridade",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// Realization says where an exam item is processed. Items routed to a
// support lab (apoio) pass through enviado_apoio; in-house items skip it.
type Realization int

const (
	RealizationUnknown Realization = iota
	RealizationInterna
	RealizationApoio
)

func realizationStrings() map[Realization]string {
	return map[Realization]string{
		RealizationUnknown: "unknown",
		RealizationInterna: "interna",
		RealizationApoio:   "apoio",
	}
}

// RealizationFromString parses a persisted realization value.
func RealizationFromString(s string) (Realization, error) {
	for r, str := range realizationStrings() {
		if str == s && r != RealizationUnknown {
			return r, nil
		}
	}
	return RealizationUnknown, errs.NewValueIsInvalidErrorWithCause("realizacao",
		fmt.Errorf("%q is not a valid realization type", s))
}

func (r Realization) String() string {
	if str, ok := realizationStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the realization is one of the closed enumeration values.
func (r Realization) Validate() error {
	if r <= RealizationUnknown || r > RealizationApoio {
		return errs.NewValueIsInvalidErrorWithCause("realizacao",
			fmt.Errorf("%d is not a valid realization type", r))
	}
	return nil
}
