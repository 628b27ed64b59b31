package http

import (
	"time"

	"labos/internal/core/application/usecases/queries"
)

// CreateOrderRequest is the JSON body for registering a service order.
// Monetary amounts travel as integer centavos end to end.
type CreateOrderRequest struct {
	Codigo     string `json:"codigo"`
	Protocolo  string `json:"protocolo"`
	PacienteID string `json:"paciente_id"`
	UnidadeID  string `json:"unidade_id"`

	TipoAtendimento string     `json:"tipo_atendimento"`
	ConvenioID      *string    `json:"convenio_id,omitempty"`
	GuiaNumero      string     `json:"guia_numero,omitempty"`
	GuiaSenha       string     `json:"guia_senha,omitempty"`
	GuiaValidade    *time.Time `json:"guia_validade,omitempty"`

	Prioridade  string `json:"prioridade"`
	CanalOrigem string `json:"canal_origem"`
	CriadoPor   string `json:"criado_por"`

	DescontoPercentual int                      `json:"desconto_percentual,omitempty"`
	Exams              []CreateOrderExamRequest `json:"exams"`
}

// CreateOrderExamRequest is one requested exam inside the creation body.
type CreateOrderExamRequest struct {
	ExamID        string `json:"exam_id"`
	Quantidade    int    `json:"quantidade"`
	ValorUnitario int64  `json:"valor_unitario_centavos"`
	ValorDesconto int64  `json:"valor_desconto_centavos"`
	Realizacao    string `json:"realizacao"`
}

// CreateOrderResponse carries the identifiers of the registered order.
type CreateOrderResponse struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
}

// AddExamItemRequest is the JSON body for adding one exam to an open order.
type AddExamItemRequest struct {
	ExamID        string `json:"exam_id"`
	Quantidade    int    `json:"quantidade"`
	ValorUnitario int64  `json:"valor_unitario_centavos"`
	ValorDesconto int64  `json:"valor_desconto_centavos"`
	Realizacao    string `json:"realizacao"`
	Actor         string `json:"actor"`
}

// AddExamItemResponse carries the identifier of the created item.
type AddExamItemResponse struct {
	ItemID string `json:"item_id"`
}

// AdvanceOrderRequest is the JSON body for a manual status transition.
type AdvanceOrderRequest struct {
	Status       string     `json:"status"`
	AgendadoPara *time.Time `json:"agendado_para,omitempty"`
	Actor        string     `json:"actor"`
}

// CollectItemRequest is the JSON body for registering a sample collection.
type CollectItemRequest struct {
	ColetadoEm *time.Time `json:"coletado_em,omitempty"`
	Coletor    string     `json:"coletor"`
	Material   string     `json:"material"`
	Volume     string     `json:"volume,omitempty"`
}

// RouteItemToSupportRequest is the JSON body for sending a sample to an
// external support laboratory.
type RouteItemToSupportRequest struct {
	LaboratorioID string `json:"laboratorio_id"`
	CodigoExterno string `json:"codigo_externo"`
	Lote          string `json:"lote,omitempty"`
	Actor         string `json:"actor"`
}

// EnterResultRequest is the JSON body for entering one result value.
type EnterResultRequest struct {
	ResultID *string `json:"result_id,omitempty"`

	Parametro     string `json:"parametro"`
	Origem        string `json:"origem"`
	OrdemExibicao int    `json:"ordem_exibicao,omitempty"`
	Unidade       string `json:"unidade,omitempty"`
	Metodo        string `json:"metodo,omitempty"`

	ReferenciaMin   *float64 `json:"referencia_min,omitempty"`
	ReferenciaMax   *float64 `json:"referencia_max,omitempty"`
	ReferenciaTexto string   `json:"referencia_texto,omitempty"`
	CriticoMin      *float64 `json:"critico_min,omitempty"`
	CriticoMax      *float64 `json:"critico_max,omitempty"`

	ValorNumerico *float64 `json:"valor_numerico,omitempty"`
	ValorTexto    string   `json:"valor_texto,omitempty"`
	Laudo         string   `json:"laudo,omitempty"`
	Interpretacao string   `json:"interpretacao,omitempty"`
	Comentario    string   `json:"comentario,omitempty"`

	Analista string `json:"analista"`
}

// EnterResultResponse carries the identifier of the entered result.
type EnterResultResponse struct {
	ResultID string `json:"result_id"`
}

// ApproveResultQCRequest is the JSON body for quality-control approval.
type ApproveResultQCRequest struct {
	Aprovador string `json:"aprovador"`
}

// ReleaseResultRequest is the JSON body for signing off a result release.
type ReleaseResultRequest struct {
	Liberador  string `json:"liberador"`
	Assinatura string `json:"assinatura"`
}

// RectifyResultRequest is the JSON body for correcting a released result.
type RectifyResultRequest struct {
	Editor        string   `json:"editor"`
	ValorNumerico *float64 `json:"valor_numerico,omitempty"`
	ValorTexto    string   `json:"valor_texto,omitempty"`
	Laudo         string   `json:"laudo,omitempty"`
}

// RepeatItemRequest is the JSON body for requesting an exam repeat.
type RepeatItemRequest struct {
	Motivo string `json:"motivo"`
	Actor  string `json:"actor"`
}

// RepeatItemResponse carries the identifier of the replacement item.
type RepeatItemResponse struct {
	NewItemID string `json:"new_item_id"`
}

// DeliverOrderRequest is the JSON body for registering result delivery.
type DeliverOrderRequest struct {
	FormaEntrega string `json:"forma_entrega"`
	Actor        string `json:"actor"`
}

// CancelOrderRequest is the JSON body for cancelling an order.
type CancelOrderRequest struct {
	Motivo string `json:"motivo"`
	Actor  string `json:"actor"`
}

// RegisterPaymentRequest is the JSON body for registering a payment.
type RegisterPaymentRequest struct {
	ValorCentavos int64  `json:"valor_centavos"`
	Actor         string `json:"actor"`
}

// OrderResponse is the full JSON read model of one service order.
type OrderResponse struct {
	ID         string `json:"id"`
	Codigo     string `json:"codigo"`
	Protocolo  string `json:"protocolo"`
	PacienteID string `json:"paciente_id"`

	TipoAtendimento string `json:"tipo_atendimento"`
	Prioridade      string `json:"prioridade"`

	Status          string `json:"status"`
	StatusPagamento string `json:"status_pagamento"`

	ValorTotal    int64 `json:"valor_total_centavos"`
	ValorDesconto int64 `json:"valor_desconto_centavos"`
	ValorFinal    int64 `json:"valor_final_centavos"`
	ValorPago     int64 `json:"valor_pago_centavos"`

	CriadoEm time.Time `json:"criado_em"`

	Items []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one exam item inside the order read model.
type OrderItemResponse struct {
	ID            string `json:"id"`
	ExamID        string `json:"exam_id"`
	Status        string `json:"status"`
	Realizacao    string `json:"realizacao"`
	CodigoAmostra string `json:"codigo_amostra,omitempty"`
	ValorTotal    int64  `json:"valor_total_centavos"`
	Urgente       bool   `json:"urgente"`
	IsRepeticao   bool   `json:"is_repeticao"`

	Results []OrderResultResponse `json:"results"`
}

// OrderResultResponse is one result parameter's current version inside the
// order read model.
type OrderResultResponse struct {
	ID            string   `json:"id"`
	Parametro     string   `json:"parametro"`
	Status        string   `json:"status"`
	Versao        int      `json:"versao"`
	ValorNumerico *float64 `json:"valor_numerico,omitempty"`
	ValorTexto    string   `json:"valor_texto,omitempty"`
	Unidade       string   `json:"unidade,omitempty"`
	Classificacao string   `json:"classificacao"`
	ValorCritico  bool     `json:"valor_critico"`
}

// ActiveOrderResponse is one row of the active-order listing.
type ActiveOrderResponse struct {
	ID         string    `json:"id"`
	Codigo     string    `json:"codigo"`
	PacienteID string    `json:"paciente_id"`
	Status     string    `json:"status"`
	Prioridade string    `json:"prioridade"`
	ValorFinal int64     `json:"valor_final_centavos"`
	ItemCount  int       `json:"item_count"`
	CriadoEm   time.Time `json:"criado_em"`
}

// CriticalResultResponse is one row of the critical-result watchlist.
type CriticalResultResponse struct {
	ResultID      string    `json:"result_id"`
	OrderID       string    `json:"order_id"`
	OrderCodigo   string    `json:"order_codigo"`
	PacienteID    string    `json:"paciente_id"`
	Parametro     string    `json:"parametro"`
	ValorNumerico *float64  `json:"valor_numerico,omitempty"`
	Unidade       string    `json:"unidade,omitempty"`
	LiberadoPor   string    `json:"liberado_por"`
	DataLiberacao time.Time `json:"data_liberacao"`
}

func toOrderResponse(model queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, len(model.Items))
	for i, item := range model.Items {
		results := make([]OrderResultResponse, len(item.Results))
		for j, result := range item.Results {
			results[j] = OrderResultResponse{
				ID:            result.ID.String(),
				Parametro:     result.Parametro,
				Status:        result.Status,
				Versao:        result.Versao,
				ValorNumerico: result.ValorNumerico,
				ValorTexto:    result.ValorTexto,
				Unidade:       result.Unidade,
				Classificacao: result.Classificacao,
				ValorCritico:  result.ValorCritico,
			}
		}
		items[i] = OrderItemResponse{
			ID:            item.ID.String(),
			ExamID:        item.ExamID.String(),
			Status:        item.Status,
			Realizacao:    item.Realizacao,
			CodigoAmostra: item.CodigoAmostra,
			ValorTotal:    item.ValorTotal,
			Urgente:       item.Urgente,
			IsRepeticao:   item.IsRepeticao,
			Results:       results,
		}
	}

	return OrderResponse{
		ID:         model.ID.String(),
		Codigo:     model.Codigo,
		Protocolo:  model.Protocolo,
		PacienteID: model.PacienteID.String(),

		TipoAtendimento: model.TipoAtendimento,
		Prioridade:      model.Prioridade,

		Status:          model.Status,
		StatusPagamento: model.StatusPagamento,

		ValorTotal:    model.ValorTotal,
		ValorDesconto: model.ValorDesconto,
		ValorFinal:    model.ValorFinal,
		ValorPago:     model.ValorPago,

		CriadoEm: model.CriadoEm,

		Items: items,
	}
}
