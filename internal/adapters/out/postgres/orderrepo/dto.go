// Package orderrepo persists service-order aggregates with their exam items
// and results. It maps the three-level aggregate onto three tables and
// rebuilds it through the domain restore constructors, so every invariant is
// re-checked on the way out of the database.
package orderrepo

import (
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for a service order. The status ledger is
// stored as a JSONB column; items live in their own table and are loaded
// eagerly, since the aggregate is always handled whole.
type OrderDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:ux_orders_tenant_codigo"`

	Codigo    string `gorm:"uniqueIndex:ux_orders_tenant_codigo"`
	Protocolo string

	PacienteID uuid.UUID  `gorm:"type:uuid;index"`
	UnidadeID  uuid.UUID  `gorm:"type:uuid"`
	ConvenioID *uuid.UUID `gorm:"type:uuid"`

	TipoAtendimento string
	Prioridade      string
	CanalOrigem     string

	GuiaNumero   string
	GuiaSenha    string
	GuiaValidade *time.Time

	AgendadoPara         *time.Time
	DataColetaPrevista   *time.Time
	DataEntregaPrevista  *time.Time
	DataColetaRealizada  *time.Time
	DataEntregaRealizada *time.Time

	ValorTotal    int64
	ValorDesconto int64
	ValorFinal    int64
	ValorPago     int64

	Status          string `gorm:"index"`
	StatusPagamento string
	FormaEntrega    string

	HistoricoStatus []StatusChangeDTO `gorm:"serializer:json;type:jsonb"`

	Items []ExamItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CriadoPor     string
	CriadoEm      time.Time
	AtualizadoPor string
	AtualizadoEm  time.Time
	Version       int
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusChangeDTO is one ledger entry inside the order's JSONB history column.
type StatusChangeDTO struct {
	Seq  int       `json:"seq"`
	De   string    `json:"de"`
	Para string    `json:"para"`
	Em   time.Time `json:"em"`
	Ator string    `json:"ator"`
	Nota string    `json:"nota,omitempty"`
}

// ExamItemDTO is the database row for one exam instance inside an order.
// Collection and support-routing field-sets are flattened into nullable
// columns; a nil timestamp means the field-set was never recorded.
type ExamItemDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	ExamID  uuid.UUID `gorm:"type:uuid;index"`

	Quantidade    int
	CodigoAmostra string

	ValorUnitario int64
	ValorDesconto int64
	ValorTotal    int64

	Realizacao string
	Status     string `gorm:"index"`

	ColetaEm       *time.Time
	ColetaColetor  string
	ColetaMaterial string
	ColetaVolume   string

	ApoioEm            *time.Time
	ApoioLaboratorioID *uuid.UUID `gorm:"type:uuid"`
	ApoioCodigoExterno string
	ApoioLote          string

	DataInicioAnalise *time.Time
	Analista          string
	LiberadoPor       string
	DataLiberacao     *time.Time

	IsRepeticao     bool
	ExameOriginalID *uuid.UUID `gorm:"type:uuid"`
	MotivoRepeticao string

	Urgente     bool `gorm:"index"`
	PrazoMaximo *time.Time

	Results []ExamResultDTO `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "order_exam_items".
func (ExamItemDTO) TableName() string {
	return "order_exam_items"
}

// ExamResultDTO is the database row for one result parameter. Prior versions
// produced by rectification are kept as a JSONB snapshot array.
type ExamResultDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID uuid.UUID `gorm:"type:uuid;index"`
	ExamID uuid.UUID `gorm:"type:uuid"`

	Parametro     string
	Unidade       string
	Metodo        string
	Origem        string
	OrdemExibicao int

	ReferenciaMin   *float64
	ReferenciaMax   *float64
	ReferenciaTexto string
	CriticoMin      *float64
	CriticoMax      *float64

	ValorNumerico *float64
	ValorTexto    string
	Laudo         string
	Interpretacao string
	Comentario    string

	Classificacao  string
	ForaReferencia bool
	ValorCritico   bool

	Versao           int
	HistoricoVersoes []ResultVersionDTO `gorm:"serializer:json;type:jsonb"`

	RevisadoPor   string
	RevisadoEm    *time.Time
	QCAprovado    bool
	QCAprovadoPor string
	QCAprovadoEm  *time.Time

	LiberadoPor       string
	DataLiberacao     *time.Time
	AssinaturaDigital string

	Status string `gorm:"index"`
}

// TableName overrides GORM's default naming to use "exam_results".
func (ExamResultDTO) TableName() string {
	return "exam_results"
}

// ResultVersionDTO is one frozen snapshot inside the result's JSONB version
// history column.
type ResultVersionDTO struct {
	Versao            int        `json:"versao"`
	Em                time.Time  `json:"em"`
	Editor            string     `json:"editor"`
	ValorNumerico     *float64   `json:"valor_numerico,omitempty"`
	ValorTexto        string     `json:"valor_texto,omitempty"`
	Laudo             string     `json:"laudo,omitempty"`
	Interpretacao     string     `json:"interpretacao,omitempty"`
	Comentario        string     `json:"comentario,omitempty"`
	Metodo            string     `json:"metodo,omitempty"`
	Classificacao     string     `json:"classificacao"`
	ForaReferencia    bool       `json:"fora_referencia"`
	ValorCritico      bool       `json:"valor_critico"`
	QCAprovado        bool       `json:"qc_aprovado"`
	QCAprovadoPor     string     `json:"qc_aprovado_por,omitempty"`
	LiberadoPor       string     `json:"liberado_por,omitempty"`
	DataLiberacao     *time.Time `json:"data_liberacao,omitempty"`
	AssinaturaDigital string     `json:"assinatura_digital,omitempty"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: aggregate.TenantID().Bytes(),

		Codigo:    aggregate.Codigo(),
		Protocolo: aggregate.Protocolo(),

		PacienteID: aggregate.PacienteID().Bytes(),
		UnidadeID:  aggregate.UnidadeID().Bytes(),
		ConvenioID: optionalUUID(aggregate.ConvenioID()),

		TipoAtendimento: aggregate.TipoAtendimento().String(),
		Prioridade:      aggregate.Prioridade().String(),
		CanalOrigem:     aggregate.CanalOrigem(),

		GuiaNumero:   aggregate.GuiaNumero(),
		GuiaSenha:    aggregate.GuiaSenha(),
		GuiaValidade: aggregate.GuiaValidade(),

		AgendadoPara:         aggregate.AgendadoPara(),
		DataColetaPrevista:   aggregate.DataColetaPrevista(),
		DataEntregaPrevista:  aggregate.DataEntregaPrevista(),
		DataColetaRealizada:  aggregate.DataColetaRealizada(),
		DataEntregaRealizada: aggregate.DataEntregaRealizada(),

		ValorTotal:    aggregate.ValorTotal().Centavos(),
		ValorDesconto: aggregate.ValorDesconto().Centavos(),
		ValorFinal:    aggregate.ValorFinal().Centavos(),
		ValorPago:     aggregate.ValorPago().Centavos(),

		Status:          aggregate.Status().String(),
		StatusPagamento: aggregate.StatusPagamento().String(),
		FormaEntrega:    aggregate.FormaEntrega(),

		CriadoPor:     aggregate.CriadoPor(),
		CriadoEm:      aggregate.CriadoEm(),
		AtualizadoPor: aggregate.AtualizadoPor(),
		AtualizadoEm:  aggregate.AtualizadoEm(),
		Version:       aggregate.Version(),
	}

	for _, change := range aggregate.Historico().Changes() {
		dto.HistoricoStatus = append(dto.HistoricoStatus, StatusChangeDTO{
			Seq:  change.Seq,
			De:   change.From.String(),
			Para: change.To.String(),
			Em:   change.At,
			Ator: change.Actor,
			Nota: change.Note,
		})
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, itemFromDomain(item))
	}

	return dto
}

func itemFromDomain(item *order.ExamItem) ExamItemDTO {
	dto := ExamItemDTO{
		ID:      item.ID().Bytes(),
		OrderID: item.OrderID().Bytes(),
		ExamID:  item.ExamID().Bytes(),

		Quantidade:    item.Quantidade(),
		CodigoAmostra: item.CodigoAmostra(),

		ValorUnitario: item.ValorUnitario().Centavos(),
		ValorDesconto: item.ValorDesconto().Centavos(),
		ValorTotal:    item.ValorTotal().Centavos(),

		Realizacao: item.Realizacao().String(),
		Status:     item.Status().String(),

		DataInicioAnalise: item.DataInicioAnalise(),
		Analista:          item.Analista(),
		LiberadoPor:       item.LiberadoPor(),
		DataLiberacao:     item.DataLiberacao(),

		IsRepeticao:     item.IsRepeticao(),
		ExameOriginalID: optionalUUID(item.ExameOriginalID()),
		MotivoRepeticao: item.MotivoRepeticao(),

		Urgente:     item.Urgente(),
		PrazoMaximo: item.PrazoMaximo(),
	}

	if coleta := item.Coleta(); coleta != nil {
		at := coleta.At
		dto.ColetaEm = &at
		dto.ColetaColetor = coleta.Coletor
		dto.ColetaMaterial = coleta.Material
		dto.ColetaVolume = coleta.Volume
	}

	if apoio := item.Apoio(); apoio != nil {
		at := apoio.At
		labID := apoio.LaboratorioID.Bytes()
		dto.ApoioEm = &at
		dto.ApoioLaboratorioID = &labID
		dto.ApoioCodigoExterno = apoio.CodigoExterno
		dto.ApoioLote = apoio.Lote
	}

	for _, result := range item.Results() {
		dto.Results = append(dto.Results, resultFromDomain(result))
	}

	return dto
}

func resultFromDomain(result *order.ExamResult) ExamResultDTO {
	dto := ExamResultDTO{
		ID:     result.ID().Bytes(),
		ItemID: result.ItemID().Bytes(),
		ExamID: result.ExamID().Bytes(),

		Parametro:     result.Parametro(),
		Unidade:       result.Unidade(),
		Metodo:        result.Metodo(),
		Origem:        result.Origem().String(),
		OrdemExibicao: result.OrdemExibicao(),

		ReferenciaMin:   result.Referencia().Min,
		ReferenciaMax:   result.Referencia().Max,
		ReferenciaTexto: result.Referencia().Texto,
		CriticoMin:      result.Critico().Min,
		CriticoMax:      result.Critico().Max,

		ValorNumerico: result.ValorNumerico(),
		ValorTexto:    result.ValorTexto(),
		Laudo:         result.Laudo(),
		Interpretacao: result.Interpretacao(),
		Comentario:    result.Comentario(),

		Classificacao:  result.Classificacao().String(),
		ForaReferencia: result.ForaReferencia(),
		ValorCritico:   result.IsCritical(),

		Versao: result.Versao(),

		RevisadoPor:   result.RevisadoPor(),
		RevisadoEm:    result.RevisadoEm(),
		QCAprovado:    result.QCAprovado(),
		QCAprovadoPor: result.QCAprovadoPor(),
		QCAprovadoEm:  result.QCAprovadoEm(),

		LiberadoPor:       result.LiberadoPor(),
		DataLiberacao:     result.DataLiberacao(),
		AssinaturaDigital: result.AssinaturaDigital(),

		Status: result.Status().String(),
	}

	for _, version := range result.HistoricoVersoes() {
		dto.HistoricoVersoes = append(dto.HistoricoVersoes, ResultVersionDTO{
			Versao:            version.Versao,
			Em:                version.At,
			Editor:            version.Editor,
			ValorNumerico:     version.ValorNumerico,
			ValorTexto:        version.ValorTexto,
			Laudo:             version.Laudo,
			Interpretacao:     version.Interpretacao,
			Comentario:        version.Comentario,
			Metodo:            version.Metodo,
			Classificacao:     version.Classificacao.String(),
			ForaReferencia:    version.ForaReferencia,
			ValorCritico:      version.ValorCritico,
			QCAprovado:        version.QCAprovado,
			QCAprovadoPor:     version.QCAprovadoPor,
			LiberadoPor:       version.LiberadoPor,
			DataLiberacao:     version.DataLiberacao,
			AssinaturaDigital: version.AssinaturaDigital,
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantUUID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	pacienteID, err := kernel.UUIDFromBytes(dto.PacienteID[:])
	if err != nil {
		return nil, err
	}
	unidadeID, err := kernel.UUIDFromBytes(dto.UnidadeID[:])
	if err != nil {
		return nil, err
	}
	convenioID, err := optionalKernelUUID(dto.ConvenioID)
	if err != nil {
		return nil, err
	}

	tipoAtendimento, err := order.CareTypeFromString(dto.TipoAtendimento)
	if err != nil {
		return nil, err
	}
	prioridade, err := order.PriorityFromString(dto.Prioridade)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	statusPagamento, err := order.PaymentStatusFromString(dto.StatusPagamento)
	if err != nil {
		return nil, err
	}

	changes := make([]order.StatusChange, 0, len(dto.HistoricoStatus))
	for _, change := range dto.HistoricoStatus {
		from, fromErr := order.StatusFromString(change.De)
		if fromErr != nil {
			return nil, fromErr
		}
		to, toErr := order.StatusFromString(change.Para)
		if toErr != nil {
			return nil, toErr
		}
		changes = append(changes, order.StatusChange{
			Seq:   change.Seq,
			From:  from,
			To:    to,
			At:    change.Em,
			Actor: change.Ator,
			Note:  change.Nota,
		})
	}

	items := make([]*order.ExamItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	valorTotal, err := kernel.NewMoney(dto.ValorTotal)
	if err != nil {
		return nil, err
	}
	valorDesconto, err := kernel.NewMoney(dto.ValorDesconto)
	if err != nil {
		return nil, err
	}
	valorFinal, err := kernel.NewMoney(dto.ValorFinal)
	if err != nil {
		return nil, err
	}
	valorPago, err := kernel.NewMoney(dto.ValorPago)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		NewOrderParams: order.NewOrderParams{
			ID:         id,
			TenantID:   kernel.TenantIDFromUUID(tenantUUID),
			Codigo:     dto.Codigo,
			Protocolo:  dto.Protocolo,
			PacienteID: pacienteID,
			UnidadeID:  unidadeID,

			TipoAtendimento: tipoAtendimento,
			ConvenioID:      convenioID,
			GuiaNumero:      dto.GuiaNumero,
			GuiaSenha:       dto.GuiaSenha,
			GuiaValidade:    dto.GuiaValidade,

			Prioridade:  prioridade,
			CanalOrigem: dto.CanalOrigem,
			CriadoPor:   dto.CriadoPor,
		},

		AgendadoPara:         dto.AgendadoPara,
		DataColetaPrevista:   dto.DataColetaPrevista,
		DataEntregaPrevista:  dto.DataEntregaPrevista,
		DataColetaRealizada:  dto.DataColetaRealizada,
		DataEntregaRealizada: dto.DataEntregaRealizada,

		ValorTotal:    valorTotal,
		ValorDesconto: valorDesconto,
		ValorFinal:    valorFinal,
		ValorPago:     valorPago,

		Status:          status,
		StatusPagamento: statusPagamento,
		FormaEntrega:    dto.FormaEntrega,

		Historico: order.RestoreStatusHistory(changes),
		Items:     items,

		CriadoEm:      dto.CriadoEm,
		AtualizadoPor: dto.AtualizadoPor,
		AtualizadoEm:  dto.AtualizadoEm,
		Version:       dto.Version,
	})
}

func itemToDomain(dto ExamItemDTO) (*order.ExamItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	examID, err := kernel.UUIDFromBytes(dto.ExamID[:])
	if err != nil {
		return nil, err
	}
	exameOriginalID, err := optionalKernelUUID(dto.ExameOriginalID)
	if err != nil {
		return nil, err
	}

	realizacao, err := order.RealizationFromString(dto.Realizacao)
	if err != nil {
		return nil, err
	}
	status, err := order.ItemStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	valorUnitario, err := kernel.NewMoney(dto.ValorUnitario)
	if err != nil {
		return nil, err
	}
	valorDesconto, err := kernel.NewMoney(dto.ValorDesconto)
	if err != nil {
		return nil, err
	}

	var coleta *order.CollectionData
	if dto.ColetaEm != nil {
		coleta = &order.CollectionData{
			At:       *dto.ColetaEm,
			Coletor:  dto.ColetaColetor,
			Material: dto.ColetaMaterial,
			Volume:   dto.ColetaVolume,
		}
	}

	var apoio *order.SupportRouting
	if dto.ApoioEm != nil && dto.ApoioLaboratorioID != nil {
		labID, labErr := kernel.UUIDFromBytes((*dto.ApoioLaboratorioID)[:])
		if labErr != nil {
			return nil, labErr
		}
		apoio = &order.SupportRouting{
			At:            *dto.ApoioEm,
			LaboratorioID: labID,
			CodigoExterno: dto.ApoioCodigoExterno,
			Lote:          dto.ApoioLote,
		}
	}

	results := make([]*order.ExamResult, 0, len(dto.Results))
	for _, resultDTO := range dto.Results {
		result, resultErr := resultToDomain(resultDTO)
		if resultErr != nil {
			return nil, resultErr
		}
		results = append(results, result)
	}

	return order.RestoreExamItem(order.RestoreExamItemParams{
		ID:                id,
		OrderID:           orderID,
		ExamID:            examID,
		Quantidade:        dto.Quantidade,
		CodigoAmostra:     dto.CodigoAmostra,
		ValorUnitario:     valorUnitario,
		ValorDesconto:     valorDesconto,
		Realizacao:        realizacao,
		Coleta:            coleta,
		Apoio:             apoio,
		DataInicioAnalise: dto.DataInicioAnalise,
		Analista:          dto.Analista,
		LiberadoPor:       dto.LiberadoPor,
		DataLiberacao:     dto.DataLiberacao,
		IsRepeticao:       dto.IsRepeticao,
		ExameOriginalID:   exameOriginalID,
		MotivoRepeticao:   dto.MotivoRepeticao,
		Urgente:           dto.Urgente,
		PrazoMaximo:       dto.PrazoMaximo,
		Status:            status,
		Results:           results,
	})
}

func resultToDomain(dto ExamResultDTO) (*order.ExamResult, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	examID, err := kernel.UUIDFromBytes(dto.ExamID[:])
	if err != nil {
		return nil, err
	}

	origem, err := order.ResultOriginFromString(dto.Origem)
	if err != nil {
		return nil, err
	}
	classificacao, err := order.ClassificationFromString(dto.Classificacao)
	if err != nil {
		return nil, err
	}
	status, err := order.ResultStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	versions := make([]order.ResultVersion, 0, len(dto.HistoricoVersoes))
	for _, versionDTO := range dto.HistoricoVersoes {
		versionClass, classErr := order.ClassificationFromString(versionDTO.Classificacao)
		if classErr != nil {
			return nil, classErr
		}
		versions = append(versions, order.ResultVersion{
			Versao:            versionDTO.Versao,
			At:                versionDTO.Em,
			Editor:            versionDTO.Editor,
			ValorNumerico:     versionDTO.ValorNumerico,
			ValorTexto:        versionDTO.ValorTexto,
			Laudo:             versionDTO.Laudo,
			Interpretacao:     versionDTO.Interpretacao,
			Comentario:        versionDTO.Comentario,
			Metodo:            versionDTO.Metodo,
			Classificacao:     versionClass,
			ForaReferencia:    versionDTO.ForaReferencia,
			ValorCritico:      versionDTO.ValorCritico,
			QCAprovado:        versionDTO.QCAprovado,
			QCAprovadoPor:     versionDTO.QCAprovadoPor,
			LiberadoPor:       versionDTO.LiberadoPor,
			DataLiberacao:     versionDTO.DataLiberacao,
			AssinaturaDigital: versionDTO.AssinaturaDigital,
		})
	}

	return order.RestoreExamResult(order.RestoreExamResultParams{
		ID:            id,
		ItemID:        itemID,
		ExamID:        examID,
		Parametro:     dto.Parametro,
		Unidade:       dto.Unidade,
		Metodo:        dto.Metodo,
		Origem:        origem,
		OrdemExibicao: dto.OrdemExibicao,
		Referencia: order.ReferenceRange{
			Min:   dto.ReferenciaMin,
			Max:   dto.ReferenciaMax,
			Texto: dto.ReferenciaTexto,
		},
		Critico: order.CriticalBand{
			Min: dto.CriticoMin,
			Max: dto.CriticoMax,
		},
		ValorNumerico:     dto.ValorNumerico,
		ValorTexto:        dto.ValorTexto,
		Laudo:             dto.Laudo,
		Interpretacao:     dto.Interpretacao,
		Comentario:        dto.Comentario,
		Classificacao:     classificacao,
		ForaReferencia:    dto.ForaReferencia,
		ValorCritico:      dto.ValorCritico,
		Versao:            dto.Versao,
		HistoricoVersoes:  versions,
		RevisadoPor:       dto.RevisadoPor,
		RevisadoEm:        dto.RevisadoEm,
		QCAprovado:        dto.QCAprovado,
		QCAprovadoPor:     dto.QCAprovadoPor,
		QCAprovadoEm:      dto.QCAprovadoEm,
		LiberadoPor:       dto.LiberadoPor,
		DataLiberacao:     dto.DataLiberacao,
		AssinaturaDigital: dto.AssinaturaDigital,
		Status:            status,
	})
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
