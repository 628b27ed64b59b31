package order

import (
	"errors"
	"fmt"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an ExamItem instance was not
// created through NewExamItem or RestoreExamItem.
var ErrItemIsNotConstructed = errors.New("ExamItem must be created via NewExamItem constructor")

// CollectionData is the field-set recorded atomically when a sample is
// collected. Timestamp, collector, and material are all required.
type CollectionData struct {
	At       time.Time
	Coletor  string
	Material string
	Volume   string
}

// SupportRouting is the field-set recorded when a sample is sent to an
// external support lab (apoio).
type SupportRouting struct {
	At            time.Time
	LaboratorioID kernel.UUID
	CodigoExterno string
	Lote          string
}

// ExamItem is one exam instance inside an order. The (order, exam) pair is
// immutable and unique per order; the only way the same exam appears twice is
// through an explicit repeat, where the original is frozen at repetir and the
// new item links back via exame_original_id.
type ExamItem struct {
	id      kernel.UUID
	orderID kernel.UUID
	examID  kernel.UUID

	quantidade    int
	codigoAmostra string

	valorUnitario kernel.Money
	valorDesconto kernel.Money
	valorTotal    kernel.Money

	realizacao Realization

	coleta *CollectionData
	apoio  *SupportRouting

	dataInicioAnalise *time.Time
	analista          string
	liberadoPor       string
	dataLiberacao     *time.Time

	isRepeticao     bool
	exameOriginalID *kernel.UUID
	motivoRepeticao string

	urgente     bool
	prazoMaximo *time.Time

	status  ItemStatus
	results []*ExamResult

	isConstructed bool
}

// NewExamItem creates an item in pendente for the given order and exam.
func NewExamItem(
	id kernel.UUID,
	orderID kernel.UUID,
	examID kernel.UUID,
	quantidade int,
	valorUnitario kernel.Money,
	valorDesconto kernel.Money,
	realizacao Realization,
) (*ExamItem, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), examID.Validate()); err != nil {
		return nil, err
	}
	if quantidade <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantidade",
			fmt.Errorf("%d is not greater than 0", quantidade))
	}
	if err := realizacao.Validate(); err != nil {
		return nil, err
	}

	item := &ExamItem{
		id:            id,
		orderID:       orderID,
		examID:        examID,
		quantidade:    quantidade,
		valorUnitario: valorUnitario,
		valorDesconto: valorDesconto,
		realizacao:    realizacao,
		status:        ItemPendente,
		isConstructed: true,
	}
	if err := item.recomputeTotal(); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreExamItemParams carries the persisted field-set when rebuilding an
// ExamItem from storage.
type RestoreExamItemParams struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	ExamID            kernel.UUID
	Quantidade        int
	CodigoAmostra     string
	ValorUnitario     kernel.Money
	ValorDesconto     kernel.Money
	Realizacao        Realization
	Coleta            *CollectionData
	Apoio             *SupportRouting
	DataInicioAnalise *time.Time
	Analista          string
	LiberadoPor       string
	DataLiberacao     *time.Time
	IsRepeticao       bool
	ExameOriginalID   *kernel.UUID
	MotivoRepeticao   string
	Urgente           bool
	PrazoMaximo       *time.Time
	Status            ItemStatus
	Results           []*ExamResult
}

// RestoreExamItem rebuilds an item from persistence.
func RestoreExamItem(p RestoreExamItemParams) (*ExamItem, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.ExamID.Validate(),
		p.Realizacao.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if p.Quantidade <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantidade",
			fmt.Errorf("%d is not greater than 0", p.Quantidade))
	}

	item := &ExamItem{
		id:                p.ID,
		orderID:           p.OrderID,
		examID:            p.ExamID,
		quantidade:        p.Quantidade,
		codigoAmostra:     p.CodigoAmostra,
		valorUnitario:     p.ValorUnitario,
		valorDesconto:     p.ValorDesconto,
		realizacao:        p.Realizacao,
		coleta:            p.Coleta,
		apoio:             p.Apoio,
		dataInicioAnalise: p.DataInicioAnalise,
		analista:          p.Analista,
		liberadoPor:       p.LiberadoPor,
		dataLiberacao:     p.DataLiberacao,
		isRepeticao:       p.IsRepeticao,
		exameOriginalID:   p.ExameOriginalID,
		motivoRepeticao:   p.MotivoRepeticao,
		urgente:           p.Urgente,
		prazoMaximo:       p.PrazoMaximo,
		status:            p.Status,
		results:           p.Results,
		isConstructed:     true,
	}
	if err := item.recomputeTotal(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate ensures the item was properly constructed.
func (i *ExamItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *ExamItem) ID() kernel.UUID { return i.id }

// OrderID returns the owning order's identifier.
func (i *ExamItem) OrderID() kernel.UUID { return i.orderID }

// ExamID returns the exam-catalog reference. Immutable for the item's lifetime.
func (i *ExamItem) ExamID() kernel.UUID { return i.examID }

// Status returns the item's current state.
func (i *ExamItem) Status() ItemStatus { return i.status }

// Quantidade returns how many units of the exam were requested.
func (i *ExamItem) Quantidade() int { return i.quantidade }

// ValorUnitario returns the unit price.
func (i *ExamItem) ValorUnitario() kernel.Money { return i.valorUnitario }

// ValorDesconto returns the item-level discount.
func (i *ExamItem) ValorDesconto() kernel.Money { return i.valorDesconto }

// ValorTotal returns unit x quantity - discount, maintained on every price change.
func (i *ExamItem) ValorTotal() kernel.Money { return i.valorTotal }

// Realizacao returns where the exam is processed.
func (i *ExamItem) Realizacao() Realization { return i.realizacao }

// CodigoAmostra returns the sample barcode.
func (i *ExamItem) CodigoAmostra() string { return i.codigoAmostra }

// Coleta returns the collection record, or nil before collection.
func (i *ExamItem) Coleta() *CollectionData { return i.coleta }

// Apoio returns the support-lab routing record, or nil for in-house items.
func (i *ExamItem) Apoio() *SupportRouting { return i.apoio }

// IsRepeticao reports whether this item is a repeat of another.
func (i *ExamItem) IsRepeticao() bool { return i.isRepeticao }

// ExameOriginalID returns the original item of a repeat chain, or nil.
func (i *ExamItem) ExameOriginalID() *kernel.UUID { return i.exameOriginalID }

// MotivoRepeticao returns why the item was repeated or marked for repeat.
func (i *ExamItem) MotivoRepeticao() string { return i.motivoRepeticao }

// Urgente reports whether the item carries a hard deadline.
func (i *ExamItem) Urgente() bool { return i.urgente }

// PrazoMaximo returns the hard deadline for urgent items, or nil. The
// deadline is data checked by reporting collaborators, not enforced by the
// state machine.
func (i *ExamItem) PrazoMaximo() *time.Time { return i.prazoMaximo }

// DataInicioAnalise returns when analysis started, or nil.
func (i *ExamItem) DataInicioAnalise() *time.Time { return i.dataInicioAnalise }

// Analista returns who started the analysis.
func (i *ExamItem) Analista() string { return i.analista }

// LiberadoPor returns who released the item.
func (i *ExamItem) LiberadoPor() string { return i.liberadoPor }

// DataLiberacao returns when the item was released, or nil.
func (i *ExamItem) DataLiberacao() *time.Time { return i.dataLiberacao }

// Results returns the item's results in display order of attachment.
func (i *ExamItem) Results() []*ExamResult {
	out := make([]*ExamResult, len(i.results))
	copy(out, i.results)
	return out
}

// Result finds one of the item's results by id.
func (i *ExamItem) Result(id kernel.UUID) (*ExamResult, error) {
	for _, r := range i.results {
		if r.ID().IsEqual(id) {
			return r, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("resultId", id.String())
}

// MarkUrgent flags the item urgent with a hard deadline.
func (i *ExamItem) MarkUrgent(prazo time.Time) error {
	if i.status.IsTerminal() {
		return errs.NewInvalidTransitionError("item", i.status.String(), "urgente")
	}
	i.urgente = true
	i.prazoMaximo = &prazo
	return nil
}

// SetSampleCode assigns the sample barcode.
func (i *ExamItem) SetSampleCode(codigo string) error {
	if i.status.IsTerminal() {
		return errs.NewInvalidTransitionError("item", i.status.String(), "codigo de amostra")
	}
	i.codigoAmostra = codigo
	return nil
}

// SetPricing replaces the unit price and discount and recomputes the item
// total. The order recomputes its own totals afterwards.
func (i *ExamItem) SetPricing(valorUnitario, valorDesconto kernel.Money) error {
	if i.status.IsTerminal() {
		return errs.NewInvalidTransitionError("item", i.status.String(), "precificacao")
	}
	i.valorUnitario = valorUnitario
	i.valorDesconto = valorDesconto
	return i.recomputeTotal()
}

// AwaitCollection queues the item for sample collection. Guarded by the
// order's state: items only enter collection once the order is confirmado or
// later.
func (i *ExamItem) AwaitCollection(orderStatus Status) error {
	if i.status != ItemPendente {
		return errs.NewInvalidTransitionError("item", i.status.String(), ItemAguardandoColeta.String())
	}
	if orderStatus.Rank() < StatusConfirmado.Rank() {
		return errs.NewPreconditionFailedError("aguardar coleta", "ordem confirmada")
	}
	i.status = ItemAguardandoColeta
	return nil
}

// Collect records the sample collection. Timestamp, collector, and material
// are recorded atomically; a missing field rejects the whole transition.
func (i *ExamItem) Collect(data CollectionData) error {
	if i.status != ItemAguardandoColeta {
		return errs.NewInvalidTransitionError("item", i.status.String(), ItemColetado.String())
	}
	if data.At.IsZero() {
		return errs.NewPreconditionFailedError("coletar", "data da coleta")
	}
	if data.Coletor == "" {
		return errs.NewPreconditionFailedError("coletar", "coletor")
	}
	if data.Material == "" {
		return errs.NewPreconditionFailedError("coletar", "material")
	}
	i.coleta = &data
	i.status = ItemColetado
	return nil
}

// SendToSupport routes the collected sample to an external support lab. Only
// items whose exam realization is apoio take this step; in-house items go
// straight from coletado to em_analise.
func (i *ExamItem) SendToSupport(routing SupportRouting) error {
	if i.status != ItemColetado {
		return errs.NewInvalidTransitionError("item", i.status.String(), ItemEnviadoApoio.String())
	}
	if i.realizacao != RealizationApoio {
		return errs.NewInvalidTransitionError("item", i.status.String(), ItemEnviadoApoio.String())
	}
	if err := routing.LaboratorioID.Validate(); err != nil {
		return errs.NewPreconditionFailedError("enviar ao apoio", "laboratorio de destino")
	}
	if routing.CodigoExterno == "" {
		return errs.NewPreconditionFailedError("enviar ao apoio", "codigo externo")
	}
	i.apoio = &routing
	i.status = ItemEnviadoApoio
	return nil
}

// AddResult attaches a result to the item. Results exist only for collected
// samples that were not yet fully released.
func (i *ExamItem) AddResult(result *ExamResult) error {
	if err := result.Validate(); err != nil {
		return err
	}
	switch i.status {
	case ItemColetado, ItemEnviadoApoio, ItemEmAnalise:
	default:
		return errs.NewInvalidTransitionError("item", i.status.String(), "novo resultado")
	}
	if !result.ItemID().IsEqual(i.id) {
		return errs.NewValueIsInvalidErrorWithCause("resultItemId",
			fmt.Errorf("result belongs to item %s, not %s", result.ItemID(), i.id))
	}
	i.results = append(i.results, result)
	return nil
}

// StartAnalysis moves the item into em_analise. Reached from coletado
// (in-house) or enviado_apoio (external), never by skipping collection, and
// only once at least one result exists in rascunho or later.
func (i *ExamItem) StartAnalysis(analista string, at time.Time) error {
	if i.status != ItemColetado && i.status != ItemEnviadoApoio {
		return errs.NewInvalidTransitionError("item", i.status.String(), ItemEmAnalise.String())
	}
	if len(i.results) == 0 {
		return errs.NewPreconditionFailedError("iniciar analise", "resultado associado")
	}
	i.analista = analista
	i.dataInicioAnalise = &at
	i.status = ItemEmAnalise
	return nil
}

// Release marks the item released. Every associated result must itself be
// liberado or retificado; one pending result holds the whole item back.
func (i *ExamItem) Release(liberador string, at time.Time) error {
	if i.status != ItemEmAnalise {
		return errs.NewInvalidTransitionError("item", i.status.String(), ItemLiberado.String())
	}
	for _, r := range i.results {
		if !r.Status().IsFinal() {
			return errs.NewPreconditionFailedError("liberar item",
				fmt.Sprintf("resultado %s liberado (atual: %s)", r.Parametro(), r.Status()))
		}
	}
	i.liberadoPor = liberador
	i.dataLiberacao = &at
	i.status = ItemLiberado
	return nil
}

// MarkForRepeat freezes the item at repetir after a released or in-analysis
// result was judged invalid. The order creates the linked replacement item;
// the original's history stays intact.
func (i *ExamItem) MarkForRepeat(motivo string) error {
	if i.status != ItemEmAnalise && i.status != ItemLiberado {
		return errs.NewInvalidTransitionError("item", i.status.String(), ItemRepetir.String())
	}
	if motivo == "" {
		return errs.NewPreconditionFailedError("repetir exame", "motivo da repeticao")
	}
	i.motivoRepeticao = motivo
	i.status = ItemRepetir
	return nil
}

// Cancel terminates the item. Results already recorded stay untouched for
// audit.
func (i *ExamItem) Cancel() error {
	if i.status.IsTerminal() {
		return errs.NewInvalidTransitionError("item", i.status.String(), ItemCancelado.String())
	}
	i.status = ItemCancelado
	return nil
}

// HasCriticalResult reports whether any released result of the item fell in
// its critical band. Non-blocking alert for the notification surface.
func (i *ExamItem) HasCriticalResult() bool {
	for _, r := range i.results {
		if r.IsCritical() {
			return true
		}
	}
	return false
}

func (i *ExamItem) recomputeTotal() error {
	gross, err := i.valorUnitario.MulInt(i.quantidade)
	if err != nil {
		return err
	}
	total, err := gross.Sub(i.valorDesconto)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("valorDesconto",
			fmt.Errorf("discount %s exceeds item gross %s", i.valorDesconto, gross))
	}
	i.valorTotal = total
	return nil
}
