package order

import (
	"fmt"

	"labos/internal/pkg/errs"
)

// ResultStatus represents one exam parameter's place in the release gate:
//
//	rascunho -> em_analise -> aguardando_revisao -> liberado
//
// with a side-branch liberado -> retificado reachable only from liberado.
// A rectified result re-enters the same gate (em_analise onward) for its
// corrected value while keeping its full version history.
type ResultStatus int

const (
	// ResultStatusUnknown represents an invalid or undefined status.
	ResultStatusUnknown ResultStatus = iota

	// ResultRascunho is the initial state of a result created by data entry
	// or an interface feed.
	ResultRascunho

	// ResultEmAnalise means the value is being worked on.
	ResultEmAnalise

	// ResultAguardandoRevisao means the populated value awaits quality control.
	ResultAguardandoRevisao

	// ResultLiberado means the value passed QC and was digitally signed.
	// Released values are frozen; edits go through rectification.
	ResultLiberado

	// ResultRetificado means a released value was corrected afterwards. The
	// prior version is preserved in historico_versoes.
	ResultRetificado
)

func resultStatusStrings() map[ResultStatus]string {
	return map[ResultStatus]string{
		ResultStatusUnknown:     "unknown",
		ResultRascunho:          "rascunho",
		ResultEmAnalise:         "em_analise",
		ResultAguardandoRevisao: "aguardando_revisao",
		ResultLiberado:          "liberado",
		ResultRetificado:        "retificado",
	}
}

// ResultStatusFromString parses a persisted result status value.
func ResultStatusFromString(s string) (ResultStatus, error) {
	for status, str := range resultStatusStrings() {
		if str == s && status != ResultStatusUnknown {
			return status, nil
		}
	}
	return ResultStatusUnknown, errs.NewValueIsInvalidErrorWithCause("resultStatus",
		fmt.Errorf("%q is not a valid result status", s))
}

// String returns the persisted form of the result status.
func (s ResultStatus) String() string {
	if str, ok := resultStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the closed enumeration values.
func (s ResultStatus) Validate() error {
	if s <= ResultStatusUnknown || s > ResultRetificado {
		return errs.NewValueIsInvalidErrorWithCause("resultStatus",
			fmt.Errorf("%d is not a valid result status", s))
	}
	return nil
}

// IsFinal reports whether the result counts as released for item and order
// rollup purposes. Rectified results keep their released-once fact.
func (s ResultStatus) IsFinal() bool {
	return s == ResultLiberado || s == ResultRetificado
}

// Classification labels a released value against its reference range.
type Classification int

const (
	ClassificationUnknown Classification = iota

	// ClassificationNormal means the value sits inside the reference range.
	ClassificationNormal

	// ClassificationAlterado means the value is outside the reference range.
	ClassificationAlterado

	// ClassificationCritico means the value falls in the configured critical
	// band. Critical values are a notification signal, not a release gate.
	ClassificationCritico
)

func classificationStrings() map[Classification]string {
	return map[Classification]string{
		ClassificationUnknown:  "unknown",
		ClassificationNormal:   "normal",
		ClassificationAlterado: "alterado",
		ClassificationCritico:  "critico",
	}
}

// ClassificationFromString parses a persisted classification value.
func ClassificationFromString(s string) (Classification, error) {
	for c, str := range classificationStrings() {
		if str == s && c != ClassificationUnknown {
			return c, nil
		}
	}
	return ClassificationUnknown, errs.NewValueIsInvalidErrorWithCause("classificacao",
		fmt.Errorf("%q is not a valid classification", s))
}

// String returns the persisted form of the classification.
func (c Classification) String() string {
	if str, ok := classificationStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// ResultOrigin records where a result value came from.
type ResultOrigin int

const (
	ResultOriginUnknown ResultOrigin = iota

	// OriginManual is keyboard data entry by an analyst.
	OriginManual

	// OriginInterfaceado is an automated analyzer interface feed.
	OriginInterfaceado

	// OriginApoio is a value returned by an external support lab.
	OriginApoio

	// OriginTelemedicina is a remotely reported (telemedicine) result.
	OriginTelemedicina
)

func resultOriginStrings() map[ResultOrigin]string {
	return map[ResultOrigin]string{
		ResultOriginUnknown: "unknown",
		OriginManual:        "manual",
		OriginInterfaceado:  "interfaceado",
		OriginApoio:         "apoio",
		OriginTelemedicina:  "telemedicina",
	}
}

// ResultOriginFromString parses a persisted origin value.
func ResultOriginFromString(s string) (ResultOrigin, error) {
	for o, str := range resultOriginStrings() {
		if str == s && o != ResultOriginUnknown {
			return o, nil
		}
	}
	return ResultOriginUnknown, errs.NewValueIsInvalidErrorWithCause("origem",
		fmt.Errorf("%q is not a valid result origin", s))
}

// String returns the persisted form of the origin.
func (o ResultOrigin) String() string {
	if str, ok := resultOriginStrings()[o]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the origin is one of the closed enumeration values.
func (o ResultOrigin) Validate() error {
	if o <= ResultOriginUnknown || o > OriginTelemedicina {
		return errs.NewValueIsInvalidErrorWithCause("origem",
			fmt.Errorf("%d is not a valid result origin", o))
	}
	return nil
}
