package order

import (
	"errors"
	"fmt"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// actorSystem marks ledger entries written by the rollup engine rather than a
// user command.
const actorSystem = "sistema"

// Order is the aggregate root for one service order (OS): a patient visit
// with one or more exam items, each item owning zero or more results.
//
// The aggregate enforces the cross-level rules:
//   - status changes only happen through the transition method, which appends
//     to the append-only history ledger before assigning the status
//   - from coletado onward the order's status is a monotonic rollup of its
//     items' statuses, never commanded directly
//   - valor_final = valor_total - valor_desconto at every committed state,
//     with valor_total the sum over non-cancelled items
//   - the same exam appears at most once among non-cancelled items unless
//     linked as a repeat chain
//
// Orders are never physically deleted; cancelado is the deletion surrogate.
type Order struct {
	id       kernel.UUID
	tenantID kernel.TenantID

	codigo    string
	protocolo string

	pacienteID kernel.UUID
	unidadeID  kernel.UUID
	convenioID *kernel.UUID

	tipoAtendimento CareType
	prioridade      Priority
	canalOrigem     string

	guiaNumero   string
	guiaSenha    string
	guiaValidade *time.Time

	agendadoPara         *time.Time
	dataColetaPrevista   *time.Time
	dataEntregaPrevista  *time.Time
	dataColetaRealizada  *time.Time
	dataEntregaRealizada *time.Time

	valorTotal    kernel.Money
	valorDesconto kernel.Money
	valorFinal    kernel.Money
	valorPago     kernel.Money

	status          Status
	statusPagamento PaymentStatus
	formaEntrega    string

	historico StatusHistory
	items     []*ExamItem

	criadoPor     string
	criadoEm      time.Time
	atualizadoPor string
	atualizadoEm  time.Time

	// version backs the optimistic-concurrency check on writes. Incremented
	// by the repository, never by the domain.
	version int

	isConstructed bool
}

// NewOrderParams carries the creation field-set for a service order.
type NewOrderParams struct {
	ID         kernel.UUID
	TenantID   kernel.TenantID
	Codigo     string
	Protocolo  string
	PacienteID kernel.UUID
	UnidadeID  kernel.UUID

	TipoAtendimento CareType
	ConvenioID      *kernel.UUID
	GuiaNumero      string
	GuiaSenha       string
	GuiaValidade    *time.Time

	Prioridade  Priority
	CanalOrigem string
	CriadoPor   string
}

// NewOrder creates an order in rascunho with an empty item list and an empty
// history ledger. Insurance (convenio) orders require the authorization guide
// fields; private and public orders must not carry them half-filled.
func NewOrder(p NewOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.TenantID.Validate(),
		p.PacienteID.Validate(),
		p.UnidadeID.Validate(),
		p.TipoAtendimento.Validate(),
		p.Prioridade.Validate(),
	); err != nil {
		return nil, err
	}
	if p.Codigo == "" {
		return nil, errs.NewValueIsRequiredError("codigo")
	}
	if p.Protocolo == "" {
		return nil, errs.NewValueIsRequiredError("protocolo")
	}
	if p.CriadoPor == "" {
		return nil, errs.NewValueIsRequiredError("criadoPor")
	}

	if p.TipoAtendimento == CareConvenio {
		if p.ConvenioID == nil {
			return nil, errs.NewValueIsRequiredError("convenioId")
		}
		if err := p.ConvenioID.Validate(); err != nil {
			return nil, err
		}
		if p.GuiaNumero == "" {
			return nil, errs.NewValueIsRequiredError("guiaNumero")
		}
		if p.GuiaSenha == "" {
			return nil, errs.NewValueIsRequiredError("guiaSenha")
		}
		if p.GuiaValidade == nil {
			return nil, errs.NewValueIsRequiredError("guiaValidade")
		}
	}

	now := time.Now()
	return &Order{
		id:              p.ID,
		tenantID:        p.TenantID,
		codigo:          p.Codigo,
		protocolo:       p.Protocolo,
		pacienteID:      p.PacienteID,
		unidadeID:       p.UnidadeID,
		convenioID:      p.ConvenioID,
		tipoAtendimento: p.TipoAtendimento,
		prioridade:      p.Prioridade,
		canalOrigem:     p.CanalOrigem,
		guiaNumero:      p.GuiaNumero,
		guiaSenha:       p.GuiaSenha,
		guiaValidade:    p.GuiaValidade,
		status:          StatusRascunho,
		statusPagamento: PaymentPendente,
		criadoPor:       p.CriadoPor,
		criadoEm:        now,
		atualizadoPor:   p.CriadoPor,
		atualizadoEm:    now,
		version:         1,
		isConstructed:   true,
	}, nil
}

// RestoreOrderParams carries the persisted field-set when rebuilding an Order
// from storage.
type RestoreOrderParams struct {
	NewOrderParams

	AgendadoPara         *time.Time
	DataColetaPrevista   *time.Time
	DataEntregaPrevista  *time.Time
	DataColetaRealizada  *time.Time
	DataEntregaRealizada *time.Time

	ValorTotal    kernel.Money
	ValorDesconto kernel.Money
	ValorFinal    kernel.Money
	ValorPago     kernel.Money

	Status          Status
	StatusPagamento PaymentStatus
	FormaEntrega    string

	Historico StatusHistory
	Items     []*ExamItem

	CriadoEm      time.Time
	AtualizadoPor string
	AtualizadoEm  time.Time
	Version       int
}

// RestoreOrder rebuilds an order from persistence, re-checking the monetary
// invariant and the ledger/status consistency.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	order, err := NewOrder(p.NewOrderParams)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(p.Status.Validate(), p.StatusPagamento.Validate()); err != nil {
		return nil, err
	}
	if replayed := p.Historico.Replay(StatusRascunho); replayed != p.Status {
		return nil, errs.NewValueIsInvalidErrorWithCause("historicoStatus",
			fmt.Errorf("ledger replays to %s but status is %s", replayed, p.Status))
	}
	expectedFinal, err := p.ValorTotal.Sub(p.ValorDesconto)
	if err != nil || !expectedFinal.IsEqual(p.ValorFinal) {
		return nil, errs.NewValueIsInvalidErrorWithCause("valorFinal",
			fmt.Errorf("final %s does not equal total %s - discount %s",
				p.ValorFinal, p.ValorTotal, p.ValorDesconto))
	}
	if p.Version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a valid row version", p.Version))
	}

	order.agendadoPara = p.AgendadoPara
	order.dataColetaPrevista = p.DataColetaPrevista
	order.dataEntregaPrevista = p.DataEntregaPrevista
	order.dataColetaRealizada = p.DataColetaRealizada
	order.dataEntregaRealizada = p.DataEntregaRealizada
	order.valorTotal = p.ValorTotal
	order.valorDesconto = p.ValorDesconto
	order.valorFinal = p.ValorFinal
	order.valorPago = p.ValorPago
	order.status = p.Status
	order.statusPagamento = p.StatusPagamento
	order.formaEntrega = p.FormaEntrega
	order.historico = p.Historico
	order.items = p.Items
	order.criadoEm = p.CriadoEm
	order.atualizadoPor = p.AtualizadoPor
	order.atualizadoEm = p.AtualizadoEm
	order.version = p.Version
	return order, nil
}

// Validate ensures the order was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// TenantID returns the owning company.
func (o *Order) TenantID() kernel.TenantID { return o.tenantID }

// Codigo returns the order code. Globally unique per tenant, immutable.
func (o *Order) Codigo() string { return o.codigo }

// Protocolo returns the protocol number. Globally unique per tenant, immutable.
func (o *Order) Protocolo() string { return o.protocolo }

// PacienteID returns the patient-registry reference.
func (o *Order) PacienteID() kernel.UUID { return o.pacienteID }

// UnidadeID returns the care-unit reference.
func (o *Order) UnidadeID() kernel.UUID { return o.unidadeID }

// ConvenioID returns the insurance-plan reference, or nil for private/public care.
func (o *Order) ConvenioID() *kernel.UUID { return o.convenioID }

// TipoAtendimento returns the care type.
func (o *Order) TipoAtendimento() CareType { return o.tipoAtendimento }

// Prioridade returns the order priority.
func (o *Order) Prioridade() Priority { return o.prioridade }

// CanalOrigem returns the origin channel.
func (o *Order) CanalOrigem() string { return o.canalOrigem }

// Status returns the order's current status.
func (o *Order) Status() Status { return o.status }

// StatusPagamento returns the payment status.
func (o *Order) StatusPagamento() PaymentStatus { return o.statusPagamento }

// FormaEntrega returns the delivery method.
func (o *Order) FormaEntrega() string { return o.formaEntrega }

// ValorTotal returns the sum of non-cancelled item totals.
func (o *Order) ValorTotal() kernel.Money { return o.valorTotal }

// ValorDesconto returns the order-level discount.
func (o *Order) ValorDesconto() kernel.Money { return o.valorDesconto }

// ValorFinal returns valor_total - valor_desconto.
func (o *Order) ValorFinal() kernel.Money { return o.valorFinal }

// ValorPago returns the amount paid so far.
func (o *Order) ValorPago() kernel.Money { return o.valorPago }

// Historico returns the append-only status ledger.
func (o *Order) Historico() StatusHistory { return o.historico }

// Items returns the order's exam items, cancelled ones included.
func (o *Order) Items() []*ExamItem {
	out := make([]*ExamItem, len(o.items))
	copy(out, o.items)
	return out
}

// Item finds an exam item by id.
func (o *Order) Item(id kernel.UUID) (*ExamItem, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", id.String())
}

// AgendadoPara returns the scheduled visit time, or nil.
func (o *Order) AgendadoPara() *time.Time { return o.agendadoPara }

// GuiaNumero returns the insurance authorization guide number.
func (o *Order) GuiaNumero() string { return o.guiaNumero }

// GuiaSenha returns the insurance authorization password.
func (o *Order) GuiaSenha() string { return o.guiaSenha }

// GuiaValidade returns the authorization guide expiry.
func (o *Order) GuiaValidade() *time.Time { return o.guiaValidade }

// DataColetaPrevista returns the expected collection date.
func (o *Order) DataColetaPrevista() *time.Time { return o.dataColetaPrevista }

// DataEntregaPrevista returns the expected delivery date.
func (o *Order) DataEntregaPrevista() *time.Time { return o.dataEntregaPrevista }

// DataColetaRealizada returns when the first sample was collected.
func (o *Order) DataColetaRealizada() *time.Time { return o.dataColetaRealizada }

// DataEntregaRealizada returns when the order was delivered.
func (o *Order) DataEntregaRealizada() *time.Time { return o.dataEntregaRealizada }

// CriadoPor returns who created the order.
func (o *Order) CriadoPor() string { return o.criadoPor }

// CriadoEm returns when the order was created.
func (o *Order) CriadoEm() time.Time { return o.criadoEm }

// AtualizadoPor returns who last touched the order.
func (o *Order) AtualizadoPor() string { return o.atualizadoPor }

// AtualizadoEm returns when the order was last touched.
func (o *Order) AtualizadoEm() time.Time { return o.atualizadoEm }

// Version returns the optimistic-concurrency row version.
func (o *Order) Version() int { return o.version }

// HasCriticalResults reports whether any item carries a critical released
// value. Notification signal for callers; never blocks a transition.
func (o *Order) HasCriticalResults() bool {
	for _, item := range o.items {
		if item.HasCriticalResult() {
			return true
		}
	}
	return false
}

// AddItem adds an exam to the order. The same exam may appear only once among
// non-cancelled items; repeats arrive through RepeatItem, never here. New
// items are only accepted before the collection phase starts.
func (o *Order) AddItem(
	itemID kernel.UUID,
	examID kernel.UUID,
	quantidade int,
	valorUnitario, valorDesconto kernel.Money,
	realizacao Realization,
	actor string,
) (*ExamItem, error) {
	if o.status.IsTerminal() {
		return nil, errs.NewInvalidTransitionError("order", o.status.String(), "novo item")
	}
	if o.status.Rank() > StatusEmAtendimento.Rank() {
		return nil, errs.NewInvalidTransitionError("order", o.status.String(), "novo item")
	}
	for _, existing := range o.items {
		if existing.Status() != ItemCancelado && existing.ExamID().IsEqual(examID) {
			return nil, errs.NewDuplicateExamInOrderError(o.id.String(), examID.String())
		}
	}

	item, err := NewExamItem(itemID, o.id, examID, quantidade, valorUnitario, valorDesconto, realizacao)
	if err != nil {
		return nil, err
	}
	o.items = append(o.items, item)
	if err = o.recomputeTotals(); err != nil {
		return nil, err
	}
	o.touch(actor)
	return item, nil
}

// Schedule moves the draft order to agendado with a visit time.
func (o *Order) Schedule(agendadoPara time.Time, actor string) error {
	if err := o.transition(StatusAgendado, actor, ""); err != nil {
		return err
	}
	o.agendadoPara = &agendadoPara
	return nil
}

// Confirm confirms the scheduled visit. Items may enter collection from here.
func (o *Order) Confirm(actor string) error {
	return o.transition(StatusConfirmado, actor, "")
}

// StartCare marks the patient in care.
func (o *Order) StartCare(actor string) error {
	return o.transition(StatusEmAtendimento, actor, "")
}

// AwaitCollection marks the order waiting for sample collection.
func (o *Order) AwaitCollection(actor string) error {
	return o.transition(StatusAguardandoColeta, actor, "")
}

// Deliver hands results to the patient. Only fully or partially released
// orders can be delivered, and the delivery method must be chosen first.
func (o *Order) Deliver(formaEntrega, actor string) error {
	if formaEntrega == "" {
		return errs.NewPreconditionFailedError("entregar", "forma de entrega")
	}
	if err := o.transition(StatusEntregue, actor, ""); err != nil {
		return err
	}
	now := time.Now()
	o.formaEntrega = formaEntrega
	o.dataEntregaRealizada = &now
	return nil
}

// Cancel terminates the order and cascades to every non-terminal item.
// Released results keep their data untouched for audit. Unless already fully
// paid, the payment status follows the cancellation.
func (o *Order) Cancel(motivo, actor string) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError("order", o.status.String(), StatusCancelado.String())
	}
	from := o.status
	o.historico.append(from, StatusCancelado, time.Now(), actor, motivo)
	o.status = StatusCancelado
	for _, item := range o.items {
		if !item.Status().IsTerminal() {
			// Cancel only rejects terminal items, which were filtered out.
			_ = item.Cancel()
		}
	}
	if o.statusPagamento != PaymentPago {
		o.statusPagamento = PaymentCancelado
	}
	o.touch(actor)
	return nil
}

// AwaitItemCollection queues one item for collection, guarded by the order's
// own stage.
func (o *Order) AwaitItemCollection(itemID kernel.UUID, actor string) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.AwaitCollection(o.status); err != nil {
		return err
	}
	o.touch(actor)
	return nil
}

// CollectItem records a sample collection and recomputes the rollup.
func (o *Order) CollectItem(itemID kernel.UUID, data CollectionData, actor string) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.Collect(data); err != nil {
		return err
	}
	if o.dataColetaRealizada == nil {
		o.dataColetaRealizada = &data.At
	}
	o.rollup()
	o.touch(actor)
	return nil
}

// SendItemToSupport routes one item's sample to an external lab.
func (o *Order) SendItemToSupport(itemID kernel.UUID, routing SupportRouting, actor string) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.SendToSupport(routing); err != nil {
		return err
	}
	o.touch(actor)
	return nil
}

// AddItemResult attaches a new result to one of the order's items.
func (o *Order) AddItemResult(itemID kernel.UUID, result *ExamResult, actor string) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.AddResult(result); err != nil {
		return err
	}
	o.touch(actor)
	return nil
}

// StartItemAnalysis moves one item into analysis and recomputes the rollup.
func (o *Order) StartItemAnalysis(itemID kernel.UUID, analista string, at time.Time) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.StartAnalysis(analista, at); err != nil {
		return err
	}
	o.rollup()
	o.touch(analista)
	return nil
}

// ReleaseResult releases one result through the QC gate. When it was the
// item's last pending result the item releases too, and the order rollup may
// move to parcialmente_liberado or liberado in the same operation.
func (o *Order) ReleaseResult(
	itemID, resultID kernel.UUID,
	liberador, assinatura string,
	at time.Time,
) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	result, err := item.Result(resultID)
	if err != nil {
		return err
	}
	if err = result.Release(liberador, assinatura, at); err != nil {
		return err
	}

	if item.Status() == ItemEmAnalise {
		allFinal := true
		for _, r := range item.Results() {
			if !r.Status().IsFinal() {
				allFinal = false
				break
			}
		}
		if allFinal {
			if err = item.Release(liberador, at); err != nil {
				return err
			}
		}
	}

	o.rollup()
	o.touch(liberador)
	return nil
}

// RectifyItemResult corrects a released result. The item and order keep their
// released standing; the rectified version re-enters the QC gate on its own.
func (o *Order) RectifyItemResult(
	itemID, resultID kernel.UUID,
	editor string,
	at time.Time,
	numerico *float64,
	texto, laudo string,
) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	result, err := item.Result(resultID)
	if err != nil {
		return err
	}
	if err = result.Rectify(editor, at, numerico, texto, laudo); err != nil {
		return err
	}
	o.touch(editor)
	return nil
}

// RepeatItem freezes an item whose result was judged invalid and creates the
// linked replacement, starting over at pendente. The replacement carries zero
// pricing: the lab absorbs the repeat cost rather than billing the exam twice.
func (o *Order) RepeatItem(itemID, newItemID kernel.UUID, motivo, actor string) (*ExamItem, error) {
	original, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	if err = original.MarkForRepeat(motivo); err != nil {
		return nil, err
	}

	repeat, err := NewExamItem(
		newItemID,
		o.id,
		original.ExamID(),
		original.Quantidade(),
		kernel.Zero(),
		kernel.Zero(),
		original.Realizacao(),
	)
	if err != nil {
		return nil, err
	}
	origID := original.ID()
	repeat.isRepeticao = true
	repeat.exameOriginalID = &origID
	repeat.motivoRepeticao = motivo
	repeat.urgente = original.Urgente()
	repeat.prazoMaximo = original.PrazoMaximo()

	o.items = append(o.items, repeat)
	o.rollup()
	o.touch(actor)
	return repeat, nil
}

// CancelItem terminates a single item and recomputes totals and rollup; the
// remaining items may now satisfy a higher rollup stage.
func (o *Order) CancelItem(itemID kernel.UUID, actor string) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.Cancel(); err != nil {
		return err
	}
	if err = o.recomputeTotals(); err != nil {
		return err
	}
	o.rollup()
	o.touch(actor)
	return nil
}

// ApplyDiscount sets the order-level discount (from the convenio billing
// rules) and recomputes valor_final.
func (o *Order) ApplyDiscount(desconto kernel.Money, actor string) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError("order", o.status.String(), "desconto")
	}
	if o.valorTotal.LessThan(desconto) {
		return errs.NewValueIsInvalidErrorWithCause("valorDesconto",
			fmt.Errorf("discount %s exceeds total %s", desconto, o.valorTotal))
	}
	o.valorDesconto = desconto
	if err := o.recomputeTotals(); err != nil {
		return err
	}
	o.touch(actor)
	return nil
}

// RegisterPayment records a payment and derives the payment status: pendente
// when nothing was paid, parcial below the final amount, pago at or above it.
// Callers recompute billing before invoking this.
func (o *Order) RegisterPayment(valor kernel.Money, actor string) error {
	if o.status == StatusCancelado {
		return errs.NewInvalidTransitionError("order", o.status.String(), "pagamento")
	}
	if valor.IsZero() {
		return errs.NewValueIsRequiredError("valorPagamento")
	}
	o.valorPago = o.valorPago.Add(valor)

	switch {
	case o.valorPago.IsZero():
		o.statusPagamento = PaymentPendente
	case o.valorPago.LessThan(o.valorFinal):
		o.statusPagamento = PaymentParcial
	default:
		o.statusPagamento = PaymentPago
	}
	o.touch(actor)
	return nil
}

// transition validates a manual step against the transition table, appends to
// the ledger, and assigns the status. This is the only path that writes
// o.status outside of Cancel and the rollup (which share the same append
// discipline).
func (o *Order) transition(to Status, actor, note string) error {
	if o.status.IsTerminal() || !o.status.CanTransitionManually(to) {
		return errs.NewInvalidTransitionError("order", o.status.String(), to.String())
	}
	o.historico.append(o.status, to, time.Now(), actor, note)
	o.status = to
	o.touch(actor)
	return nil
}

// rollup recomputes the derived status from the aggregate of non-cancelled
// items. The order only ever moves forward: a target at or below the current
// rank is ignored, so a repeated item never regresses an already-released
// order.
func (o *Order) rollup() {
	target, ok := o.computeRollup()
	if !ok || !target.IsRollupTarget() {
		return
	}
	if o.status.IsTerminal() || target.Rank() <= o.status.Rank() {
		return
	}
	o.historico.append(o.status, target, time.Now(), actorSystem, "rollup de itens")
	o.status = target
}

// computeRollup derives the order stage from its non-cancelled items.
// Cancelled items are invisible to the aggregate; repetir items count as
// not-yet-released but as having reached analysis.
func (o *Order) computeRollup() (Status, bool) {
	var active []*ExamItem
	for _, item := range o.items {
		if item.Status() != ItemCancelado {
			active = append(active, item)
		}
	}
	if len(active) == 0 {
		return StatusUnknown, false
	}

	released := 0
	minReached := active[0].Status().ReachedRank()
	for _, item := range active {
		if item.Status() == ItemLiberado {
			released++
		}
		if r := item.Status().ReachedRank(); r < minReached {
			minReached = r
		}
	}

	switch {
	case released == len(active):
		return StatusLiberado, true
	case released > 0:
		return StatusParcialmenteLiberado, true
	case minReached >= ItemEmAnalise.ReachedRank():
		return StatusEmAnalise, true
	case minReached >= ItemColetado.ReachedRank():
		return StatusColetado, true
	default:
		return StatusUnknown, false
	}
}

// recomputeTotals re-derives valor_total from the non-cancelled items and
// valor_final from the order discount.
func (o *Order) recomputeTotals() error {
	total := kernel.Zero()
	for _, item := range o.items {
		if item.Status() != ItemCancelado {
			total = total.Add(item.ValorTotal())
		}
	}
	o.valorTotal = total

	if o.valorTotal.LessThan(o.valorDesconto) {
		return errs.NewValueIsInvalidErrorWithCause("valorDesconto",
			fmt.Errorf("discount %s exceeds total %s", o.valorDesconto, o.valorTotal))
	}
	final, err := o.valorTotal.Sub(o.valorDesconto)
	if err != nil {
		return err
	}
	o.valorFinal = final
	return nil
}

func (o *Order) touch(actor string) {
	if actor != "" {
		o.atualizadoPor = actor
	}
	o.atualizadoEm = time.Now()
}
