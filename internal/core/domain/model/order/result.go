package order

import (
	"errors"
	"fmt"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
)

// ErrResultIsNotConstructed is returned when an ExamResult instance was not
// created through NewExamResult or RestoreExamResult.
var ErrResultIsNotConstructed = errors.New("ExamResult must be created via NewExamResult constructor")

// ReferenceRange holds the reference interval a numeric value is compared
// against at release time. Either bound may be absent; Texto carries the
// printable form (e.g. "4,0 - 11,0 x10³/µL") or a qualitative reference.
type ReferenceRange struct {
	Min   *float64
	Max   *float64
	Texto string
}

// CriticalBand configures the critical-value alert thresholds. A value at or
// beyond either bound is flagged critico. Critical values still release;
// they are a notification signal, not a gate.
type CriticalBand struct {
	Min *float64
	Max *float64
}

// ResultVersion is a frozen snapshot of a result's full field-set, taken
// immediately before a post-release edit. historico_versoes is append-only:
// snapshots are never modified or removed.
type ResultVersion struct {
	Versao            int
	At                time.Time
	Editor            string
	ValorNumerico     *float64
	ValorTexto        string
	Laudo             string
	Interpretacao     string
	Comentario        string
	Metodo            string
	Classificacao     Classification
	ForaReferencia    bool
	ValorCritico      bool
	QCAprovado        bool
	QCAprovadoPor     string
	LiberadoPor       string
	DataLiberacao     *time.Time
	AssinaturaDigital string
}

// ExamResult is one parameter's measured or reported value for an exam item.
// It owns the release gate: a value reaches liberado only after quality
// control approved it and a releaser signed it, and once released it can only
// change through rectification, which preserves every prior version.
type ExamResult struct {
	id     kernel.UUID
	itemID kernel.UUID
	examID kernel.UUID

	parametro     string
	unidade       string
	metodo        string
	origem        ResultOrigin
	ordemExibicao int

	referencia ReferenceRange
	critico    CriticalBand

	valorNumerico *float64
	valorTexto    string
	laudo         string
	interpretacao string
	comentario    string

	classificacao  Classification
	foraReferencia bool
	valorCritico   bool

	versao           int
	historicoVersoes []ResultVersion

	revisadoPor string
	revisadoEm  *time.Time

	qcAprovado    bool
	qcAprovadoPor string
	qcAprovadoEm  *time.Time

	liberadoPor       string
	dataLiberacao     *time.Time
	assinaturaDigital string

	status ResultStatus

	isConstructed bool
}

// NewExamResult creates a result in rascunho at version 1 for the given item
// and exam parameter.
func NewExamResult(
	id kernel.UUID,
	itemID kernel.UUID,
	examID kernel.UUID,
	parametro string,
	origem ResultOrigin,
	ordemExibicao int,
) (*ExamResult, error) {
	if err := errors.Join(id.Validate(), itemID.Validate(), examID.Validate()); err != nil {
		return nil, err
	}
	if parametro == "" {
		return nil, errs.NewValueIsRequiredError("parametro")
	}
	if err := origem.Validate(); err != nil {
		return nil, err
	}

	return &ExamResult{
		id:            id,
		itemID:        itemID,
		examID:        examID,
		parametro:     parametro,
		origem:        origem,
		ordemExibicao: ordemExibicao,
		classificacao: ClassificationNormal,
		versao:        1,
		status:        ResultRascunho,
		isConstructed: true,
	}, nil
}

// RestoreExamResultParams carries the persisted field-set when rebuilding an
// ExamResult from storage.
type RestoreExamResultParams struct {
	ID                kernel.UUID
	ItemID            kernel.UUID
	ExamID            kernel.UUID
	Parametro         string
	Unidade           string
	Metodo            string
	Origem            ResultOrigin
	OrdemExibicao     int
	Referencia        ReferenceRange
	Critico           CriticalBand
	ValorNumerico     *float64
	ValorTexto        string
	Laudo             string
	Interpretacao     string
	Comentario        string
	Classificacao     Classification
	ForaReferencia    bool
	ValorCritico      bool
	Versao            int
	HistoricoVersoes  []ResultVersion
	RevisadoPor       string
	RevisadoEm        *time.Time
	QCAprovado        bool
	QCAprovadoPor     string
	QCAprovadoEm      *time.Time
	LiberadoPor       string
	DataLiberacao     *time.Time
	AssinaturaDigital string
	Status            ResultStatus
}

// RestoreExamResult rebuilds a result from persistence. The version history
// invariant (len(historico_versoes) == versao-1) is re-checked on restore.
func RestoreExamResult(p RestoreExamResultParams) (*ExamResult, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.ItemID.Validate(),
		p.ExamID.Validate(),
		p.Origem.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if p.Versao < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("versao",
			fmt.Errorf("%d is not a valid version", p.Versao))
	}
	if len(p.HistoricoVersoes) != p.Versao-1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("historicoVersoes",
			fmt.Errorf("history length %d does not match version %d", len(p.HistoricoVersoes), p.Versao))
	}

	return &ExamResult{
		id:                p.ID,
		itemID:            p.ItemID,
		examID:            p.ExamID,
		parametro:         p.Parametro,
		unidade:           p.Unidade,
		metodo:            p.Metodo,
		origem:            p.Origem,
		ordemExibicao:     p.OrdemExibicao,
		referencia:        p.Referencia,
		critico:           p.Critico,
		valorNumerico:     p.ValorNumerico,
		valorTexto:        p.ValorTexto,
		laudo:             p.Laudo,
		interpretacao:     p.Interpretacao,
		comentario:        p.Comentario,
		classificacao:     p.Classificacao,
		foraReferencia:    p.ForaReferencia,
		valorCritico:      p.ValorCritico,
		versao:            p.Versao,
		historicoVersoes:  p.HistoricoVersoes,
		revisadoPor:       p.RevisadoPor,
		revisadoEm:        p.RevisadoEm,
		qcAprovado:        p.QCAprovado,
		qcAprovadoPor:     p.QCAprovadoPor,
		qcAprovadoEm:      p.QCAprovadoEm,
		liberadoPor:       p.LiberadoPor,
		dataLiberacao:     p.DataLiberacao,
		assinaturaDigital: p.AssinaturaDigital,
		status:            p.Status,
		isConstructed:     true,
	}, nil
}

// Validate ensures the result was properly constructed and that the version
// history invariant holds.
func (r *ExamResult) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrResultIsNotConstructed
	}
	if len(r.historicoVersoes) != r.versao-1 {
		return errs.NewValueIsInvalidErrorWithCause("historicoVersoes",
			fmt.Errorf("history length %d does not match version %d", len(r.historicoVersoes), r.versao))
	}
	return nil
}

// ID returns the result's unique identifier.
func (r *ExamResult) ID() kernel.UUID { return r.id }

// ItemID returns the owning exam item's identifier.
func (r *ExamResult) ItemID() kernel.UUID { return r.itemID }

// ExamID returns the exam-catalog reference.
func (r *ExamResult) ExamID() kernel.UUID { return r.examID }

// Parametro returns the parameter name.
func (r *ExamResult) Parametro() string { return r.parametro }

// Status returns the current gate state.
func (r *ExamResult) Status() ResultStatus { return r.status }

// Versao returns the current version number. It starts at 1 and increments on
// every post-release rectification.
func (r *ExamResult) Versao() int { return r.versao }

// HistoricoVersoes returns a copy of the prior-version snapshots.
func (r *ExamResult) HistoricoVersoes() []ResultVersion {
	out := make([]ResultVersion, len(r.historicoVersoes))
	copy(out, r.historicoVersoes)
	return out
}

// ValorNumerico returns the numeric value, or nil for text-only results.
func (r *ExamResult) ValorNumerico() *float64 { return r.valorNumerico }

// ValorTexto returns the textual value.
func (r *ExamResult) ValorTexto() string { return r.valorTexto }

// Laudo returns the narrative report, used by imaging-type exams.
func (r *ExamResult) Laudo() string { return r.laudo }

// Classificacao returns the release-time classification.
func (r *ExamResult) Classificacao() Classification { return r.classificacao }

// ForaReferencia reports whether the value fell outside the reference range.
func (r *ExamResult) ForaReferencia() bool { return r.foraReferencia }

// IsCritical reports whether the value fell in the critical band. Surfaced to
// the item and order level as a non-blocking alert.
func (r *ExamResult) IsCritical() bool { return r.valorCritico }

// QCAprovado reports whether quality control approved the current version.
func (r *ExamResult) QCAprovado() bool { return r.qcAprovado }

// QCAprovadoPor returns who approved the current version.
func (r *ExamResult) QCAprovadoPor() string { return r.qcAprovadoPor }

// QCAprovadoEm returns when quality control approved, or nil.
func (r *ExamResult) QCAprovadoEm() *time.Time { return r.qcAprovadoEm }

// RevisadoPor returns who sent the result to review.
func (r *ExamResult) RevisadoPor() string { return r.revisadoPor }

// RevisadoEm returns when the result entered review, or nil.
func (r *ExamResult) RevisadoEm() *time.Time { return r.revisadoEm }

// LiberadoPor returns who released the current version.
func (r *ExamResult) LiberadoPor() string { return r.liberadoPor }

// DataLiberacao returns when the current version was released.
func (r *ExamResult) DataLiberacao() *time.Time { return r.dataLiberacao }

// AssinaturaDigital returns the releaser's digital signature.
func (r *ExamResult) AssinaturaDigital() string { return r.assinaturaDigital }

// Unidade returns the measurement unit.
func (r *ExamResult) Unidade() string { return r.unidade }

// Metodo returns the analytical method.
func (r *ExamResult) Metodo() string { return r.metodo }

// Interpretacao returns the analyst's interpretation text.
func (r *ExamResult) Interpretacao() string { return r.interpretacao }

// Comentario returns the free-form comment.
func (r *ExamResult) Comentario() string { return r.comentario }

// Referencia returns the configured reference range.
func (r *ExamResult) Referencia() ReferenceRange { return r.referencia }

// Critico returns the configured critical band.
func (r *ExamResult) Critico() CriticalBand { return r.critico }

// Origem returns where the value came from.
func (r *ExamResult) Origem() ResultOrigin { return r.origem }

// OrdemExibicao returns the display position inside the item's report.
func (r *ExamResult) OrdemExibicao() int { return r.ordemExibicao }

// SetReferenceRange configures the reference interval. Rejected once the
// current version is released; corrections go through Rectify.
func (r *ExamResult) SetReferenceRange(ref ReferenceRange) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	if ref.Min != nil && ref.Max != nil && *ref.Min > *ref.Max {
		return errs.NewValueIsInvalidErrorWithCause("valorReferencia",
			fmt.Errorf("min %f is greater than max %f", *ref.Min, *ref.Max))
	}
	r.referencia = ref
	return nil
}

// SetCriticalBand configures the critical-value thresholds.
func (r *ExamResult) SetCriticalBand(band CriticalBand) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.critico = band
	return nil
}

// SetMethod records the analytical method.
func (r *ExamResult) SetMethod(metodo string) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.metodo = metodo
	return nil
}

// SetUnit records the measurement unit.
func (r *ExamResult) SetUnit(unidade string) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.unidade = unidade
	return nil
}

// SetValue records the measured value (numeric, textual, or narrative laudo)
// for the current unreleased version. Editing a liberado result this way is an
// InvalidTransition; released values change only through Rectify.
func (r *ExamResult) SetValue(numerico *float64, texto, laudo string) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.valorNumerico = numerico
	r.valorTexto = texto
	r.laudo = laudo
	return nil
}

// Annotate records the free-text interpretation and comment.
func (r *ExamResult) Annotate(interpretacao, comentario string) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.interpretacao = interpretacao
	r.comentario = comentario
	return nil
}

// StartAnalysis moves the current version into em_analise. Allowed from
// rascunho at any time, and from retificado when a corrected value re-enters
// the gate. No precondition.
func (r *ExamResult) StartAnalysis() error {
	if r.status != ResultRascunho && r.status != ResultRetificado {
		return errs.NewInvalidTransitionError("result", r.status.String(), ResultEmAnalise.String())
	}
	r.status = ResultEmAnalise
	return nil
}

// SendToReview moves a populated value into aguardando_revisao, where it
// waits for quality control. A result with no numeric, textual, or narrative
// value cannot be reviewed.
func (r *ExamResult) SendToReview(revisor string, at time.Time) error {
	if r.status != ResultEmAnalise {
		return errs.NewInvalidTransitionError("result", r.status.String(), ResultAguardandoRevisao.String())
	}
	if !r.hasValue() {
		return errs.NewPreconditionFailedError("enviar para revisao", "valor do resultado")
	}
	r.revisadoPor = revisor
	r.revisadoEm = &at
	r.status = ResultAguardandoRevisao
	return nil
}

// ApproveQC records quality-control approval for the current version. QC is a
// distinct action from release and must come from a different actor than the
// eventual releaser.
func (r *ExamResult) ApproveQC(aprovador string, at time.Time) error {
	if r.status != ResultAguardandoRevisao {
		return errs.NewInvalidTransitionError("result", r.status.String(), "qc_aprovado")
	}
	if aprovador == "" {
		return errs.NewValueIsRequiredError("aprovador")
	}
	r.qcAprovado = true
	r.qcAprovadoPor = aprovador
	r.qcAprovadoEm = &at
	return nil
}

// Release freezes the current version: it requires prior QC approval and a
// non-empty digital signature, classifies the value against the reference
// range and critical band, and records the release metadata. A critical value
// does not block release; callers surface it as an alert.
func (r *ExamResult) Release(liberador, assinatura string, at time.Time) error {
	if r.status != ResultAguardandoRevisao {
		return errs.NewInvalidTransitionError("result", r.status.String(), ResultLiberado.String())
	}
	if !r.qcAprovado {
		return errs.NewPreconditionFailedError("liberar resultado", "qc_aprovado")
	}
	if assinatura == "" {
		return errs.NewPreconditionFailedError("liberar resultado", "assinatura digital")
	}
	if liberador == "" {
		return errs.NewValueIsRequiredError("liberador")
	}
	if liberador == r.qcAprovadoPor {
		return errs.NewPreconditionFailedError("liberar resultado", "aprovacao de QC por ator distinto do liberador")
	}

	r.classify()
	r.liberadoPor = liberador
	r.assinaturaDigital = assinatura
	r.dataLiberacao = &at
	r.status = ResultLiberado
	return nil
}

// Rectify applies a post-release correction. The full current field-set is
// snapshotted into historico_versoes, the version increments, the new value
// is applied, and the QC approval and signature are cleared so the corrected
// version re-enters the gate (em_analise -> aguardando_revisao -> liberado).
// The released-once fact of the prior version lives on in its snapshot.
func (r *ExamResult) Rectify(editor string, at time.Time, numerico *float64, texto, laudo string) error {
	if r.status != ResultLiberado {
		return errs.NewInvalidTransitionError("result", r.status.String(), ResultRetificado.String())
	}
	if editor == "" {
		return errs.NewValueIsRequiredError("editor")
	}

	r.historicoVersoes = append(r.historicoVersoes, ResultVersion{
		Versao:            r.versao,
		At:                at,
		Editor:            editor,
		ValorNumerico:     r.valorNumerico,
		ValorTexto:        r.valorTexto,
		Laudo:             r.laudo,
		Interpretacao:     r.interpretacao,
		Comentario:        r.comentario,
		Metodo:            r.metodo,
		Classificacao:     r.classificacao,
		ForaReferencia:    r.foraReferencia,
		ValorCritico:      r.valorCritico,
		QCAprovado:        r.qcAprovado,
		QCAprovadoPor:     r.qcAprovadoPor,
		LiberadoPor:       r.liberadoPor,
		DataLiberacao:     r.dataLiberacao,
		AssinaturaDigital: r.assinaturaDigital,
	})

	r.versao++
	r.valorNumerico = numerico
	r.valorTexto = texto
	r.laudo = laudo

	// The corrected version must earn its own approval and signature.
	r.qcAprovado = false
	r.qcAprovadoPor = ""
	r.qcAprovadoEm = nil
	r.liberadoPor = ""
	r.dataLiberacao = nil
	r.assinaturaDigital = ""

	r.status = ResultRetificado
	return nil
}

func (r *ExamResult) hasValue() bool {
	return r.valorNumerico != nil || r.valorTexto != "" || r.laudo != ""
}

// ensureEditable rejects field edits on a released version. Everything before
// liberado may still change; a retificado result is editable again because its
// corrected version is unreleased.
func (r *ExamResult) ensureEditable() error {
	if r.status == ResultLiberado {
		return errs.NewInvalidTransitionError("result", r.status.String(), "edicao direta")
	}
	return nil
}

// classify compares the numeric value against the reference range and the
// critical band. Text-only results stay normal; the narrative carries their
// meaning.
func (r *ExamResult) classify() {
	r.foraReferencia = false
	r.valorCritico = false
	r.classificacao = ClassificationNormal

	if r.valorNumerico == nil {
		return
	}
	v := *r.valorNumerico

	if (r.referencia.Min != nil && v < *r.referencia.Min) ||
		(r.referencia.Max != nil && v > *r.referencia.Max) {
		r.foraReferencia = true
		r.classificacao = ClassificationAlterado
	}

	if (r.critico.Min != nil && v <= *r.critico.Min) ||
		(r.critico.Max != nil && v >= *r.critico.Max) {
		r.valorCritico = true
		r.classificacao = ClassificationCritico
	}
}
