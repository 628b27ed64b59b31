// Package http exposes the order-management operations over a JSON REST API.
// It binds request bodies, builds commands and queries, and maps domain
// errors onto HTTP statuses; no business rule lives here.
package http

import (
	"net/http"
	"time"

	"labos/internal/core/application/usecases/commands"
	"labos/internal/core/application/usecases/queries"
	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const tenantHeader = "X-Tenant-ID"

// Handlers groups every command and query handler the server routes to.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	AddExamItem        commands.AddExamItemCommandHandler
	AdvanceOrder       commands.AdvanceOrderCommandHandler
	CollectItem        commands.CollectItemCommandHandler
	RouteItemToSupport commands.RouteItemToSupportCommandHandler
	EnterResult        commands.EnterResultCommandHandler
	ApproveResultQC    commands.ApproveResultQCCommandHandler
	ReleaseResult      commands.ReleaseResultCommandHandler
	RectifyResult      commands.RectifyResultCommandHandler
	RepeatItem         commands.RepeatItemCommandHandler
	DeliverOrder       commands.DeliverOrderCommandHandler
	CancelOrder        commands.CancelOrderCommandHandler
	RegisterPayment    commands.RegisterPaymentCommandHandler

	GetOrder           queries.GetOrderQueryHandler
	GetActiveOrders    queries.GetActiveOrdersQueryHandler
	GetCriticalResults queries.GetCriticalResultsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   zerolog.Logger
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(handlers Handlers, logger zerolog.Logger) *Server {
	return &Server{handlers: handlers, logger: logger}
}

// RegisterRoutes wires every endpoint under /api/v1 and installs the request
// log middleware.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(s.requestLogger)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetActiveOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/advance", s.AdvanceOrder)
	api.POST("/orders/:orderId/delivery", s.DeliverOrder)
	api.POST("/orders/:orderId/cancellation", s.CancelOrder)
	api.POST("/orders/:orderId/payments", s.RegisterPayment)

	api.POST("/orders/:orderId/items", s.AddExamItem)
	api.POST("/orders/:orderId/items/:itemId/collection", s.CollectItem)
	api.POST("/orders/:orderId/items/:itemId/support", s.RouteItemToSupport)
	api.POST("/orders/:orderId/items/:itemId/repeat", s.RepeatItem)

	api.POST("/orders/:orderId/items/:itemId/results", s.EnterResult)
	api.POST("/orders/:orderId/items/:itemId/results/:resultId/qc-approval", s.ApproveResultQC)
	api.POST("/orders/:orderId/items/:itemId/results/:resultId/release", s.ReleaseResult)
	api.POST("/orders/:orderId/items/:itemId/results/:resultId/rectification", s.RectifyResult)

	api.GET("/results/critical", s.GetCriticalResults)
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		s.logger.Info().
			Str("method", ctx.Request().Method).
			Str("path", ctx.Request().URL.Path).
			Int("status", ctx.Response().Status).
			Dur("elapsed", time.Since(start)).
			Msg("request")

		return err
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	tenantID, err := s.tenant(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	pacienteID, err := kernel.UUIDFromString(req.PacienteID)
	if err != nil {
		return respondBadRequest(ctx, "invalid paciente_id")
	}
	unidadeID, err := kernel.UUIDFromString(req.UnidadeID)
	if err != nil {
		return respondBadRequest(ctx, "invalid unidade_id")
	}

	var convenioID *kernel.UUID
	if req.ConvenioID != nil {
		parsed, convErr := kernel.UUIDFromString(*req.ConvenioID)
		if convErr != nil {
			return respondBadRequest(ctx, "invalid convenio_id")
		}
		convenioID = &parsed
	}

	tipoAtendimento, err := order.CareTypeFromString(req.TipoAtendimento)
	if err != nil {
		return respondError(ctx, err)
	}
	prioridade, err := order.PriorityFromString(req.Prioridade)
	if err != nil {
		return respondError(ctx, err)
	}

	exams := make([]commands.CreateOrderExam, 0, len(req.Exams))
	for _, examReq := range req.Exams {
		exam, examErr := s.buildExam(examReq)
		if examErr != nil {
			return respondError(ctx, examErr)
		}
		exams = append(exams, exam)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		OrderID:    orderID,
		TenantID:   tenantID,
		Codigo:     req.Codigo,
		Protocolo:  req.Protocolo,
		PacienteID: pacienteID,
		UnidadeID:  unidadeID,

		TipoAtendimento: tipoAtendimento,
		ConvenioID:      convenioID,
		GuiaNumero:      req.GuiaNumero,
		GuiaSenha:       req.GuiaSenha,
		GuiaValidade:    req.GuiaValidade,

		Prioridade:  prioridade,
		CanalOrigem: req.CanalOrigem,
		CriadoPor:   req.CriadoPor,

		Exams:              exams,
		DescontoPercentual: req.DescontoPercentual,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:     orderID.String(),
		Codigo: req.Codigo,
	})
}

func (s *Server) buildExam(req CreateOrderExamRequest) (commands.CreateOrderExam, error) {
	examID, err := kernel.UUIDFromString(req.ExamID)
	if err != nil {
		return commands.CreateOrderExam{}, errs.NewValueIsInvalidErrorWithCause("exam_id", err)
	}
	valorUnitario, err := kernel.NewMoney(req.ValorUnitario)
	if err != nil {
		return commands.CreateOrderExam{}, err
	}
	valorDesconto, err := kernel.NewMoney(req.ValorDesconto)
	if err != nil {
		return commands.CreateOrderExam{}, err
	}
	realizacao, err := order.RealizationFromString(req.Realizacao)
	if err != nil {
		return commands.CreateOrderExam{}, err
	}

	return commands.CreateOrderExam{
		ItemID:        kernel.NewUUID(),
		ExamID:        examID,
		Quantidade:    req.Quantidade,
		ValorUnitario: valorUnitario,
		ValorDesconto: valorDesconto,
		Realizacao:    realizacao,
	}, nil
}

// AddExamItem handles POST /api/v1/orders/:orderId/items.
func (s *Server) AddExamItem(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req AddExamItemRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	exam, err := s.buildExam(CreateOrderExamRequest{
		ExamID:        req.ExamID,
		Quantidade:    req.Quantidade,
		ValorUnitario: req.ValorUnitario,
		ValorDesconto: req.ValorDesconto,
		Realizacao:    req.Realizacao,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddExamItemCommand(
		tenantID, orderID, exam.ItemID, exam.ExamID,
		exam.Quantidade, exam.ValorUnitario, exam.ValorDesconto,
		exam.Realizacao, req.Actor,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.AddExamItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, AddExamItemResponse{ItemID: exam.ItemID.String()})
}

// AdvanceOrder handles POST /api/v1/orders/:orderId/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req AdvanceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(tenantID, orderID, target, req.AgendadoPara, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CollectItem handles POST /api/v1/orders/:orderId/items/:itemId/collection.
func (s *Server) CollectItem(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	itemID, err := s.pathUUID(ctx, "itemId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req CollectItemRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	at := time.Now()
	if req.ColetadoEm != nil {
		at = *req.ColetadoEm
	}

	cmd, err := commands.NewCollectItemCommand(tenantID, orderID, itemID, at, req.Coletor, req.Material, req.Volume)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CollectItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RouteItemToSupport handles POST /api/v1/orders/:orderId/items/:itemId/support.
func (s *Server) RouteItemToSupport(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	itemID, err := s.pathUUID(ctx, "itemId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req RouteItemToSupportRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	laboratorioID, err := kernel.UUIDFromString(req.LaboratorioID)
	if err != nil {
		return respondBadRequest(ctx, "invalid laboratorio_id")
	}

	cmd, err := commands.NewRouteItemToSupportCommand(
		tenantID, orderID, itemID, laboratorioID,
		req.CodigoExterno, req.Lote, req.Actor,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.RouteItemToSupport.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EnterResult handles POST /api/v1/orders/:orderId/items/:itemId/results.
func (s *Server) EnterResult(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	itemID, err := s.pathUUID(ctx, "itemId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req EnterResultRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	resultID := kernel.NewUUID()
	if req.ResultID != nil {
		resultID, err = kernel.UUIDFromString(*req.ResultID)
		if err != nil {
			return respondBadRequest(ctx, "invalid result_id")
		}
	}

	origem, err := order.ResultOriginFromString(req.Origem)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewEnterResultCommand(commands.EnterResultParams{
		TenantID: tenantID,
		OrderID:  orderID,
		ItemID:   itemID,
		ResultID: resultID,

		Parametro:     req.Parametro,
		Origem:        origem,
		OrdemExibicao: req.OrdemExibicao,
		Unidade:       req.Unidade,
		Metodo:        req.Metodo,
		Referencia: order.ReferenceRange{
			Min:   req.ReferenciaMin,
			Max:   req.ReferenciaMax,
			Texto: req.ReferenciaTexto,
		},
		Critico: order.CriticalBand{
			Min: req.CriticoMin,
			Max: req.CriticoMax,
		},

		ValorNumerico: req.ValorNumerico,
		ValorTexto:    req.ValorTexto,
		Laudo:         req.Laudo,
		Interpretacao: req.Interpretacao,
		Comentario:    req.Comentario,

		Analista: req.Analista,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.EnterResult.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, EnterResultResponse{ResultID: resultID.String()})
}

// ApproveResultQC handles POST .../results/:resultId/qc-approval.
func (s *Server) ApproveResultQC(ctx echo.Context) error {
	tenantID, orderID, itemID, resultID, err := s.resultPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req ApproveResultQCRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewApproveResultQCCommand(tenantID, orderID, itemID, resultID, req.Aprovador)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.ApproveResultQC.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseResult handles POST .../results/:resultId/release.
func (s *Server) ReleaseResult(ctx echo.Context) error {
	tenantID, orderID, itemID, resultID, err := s.resultPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req ReleaseResultRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewReleaseResultCommand(tenantID, orderID, itemID, resultID, req.Liberador, req.Assinatura)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.ReleaseResult.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RectifyResult handles POST .../results/:resultId/rectification.
func (s *Server) RectifyResult(ctx echo.Context) error {
	tenantID, orderID, itemID, resultID, err := s.resultPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req RectifyResultRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRectifyResultCommand(
		tenantID, orderID, itemID, resultID,
		req.Editor, req.ValorNumerico, req.ValorTexto, req.Laudo,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.RectifyResult.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RepeatItem handles POST /api/v1/orders/:orderId/items/:itemId/repeat.
func (s *Server) RepeatItem(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	itemID, err := s.pathUUID(ctx, "itemId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req RepeatItemRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	newItemID := kernel.NewUUID()
	cmd, err := commands.NewRepeatItemCommand(tenantID, orderID, itemID, newItemID, req.Motivo, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.RepeatItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RepeatItemResponse{NewItemID: newItemID.String()})
}

// DeliverOrder handles POST /api/v1/orders/:orderId/delivery.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req DeliverOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewDeliverOrderCommand(tenantID, orderID, req.FormaEntrega, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancellation.
func (s *Server) CancelOrder(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(tenantID, orderID, req.Motivo, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterPayment handles POST /api/v1/orders/:orderId/payments.
func (s *Server) RegisterPayment(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req RegisterPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	valor, err := kernel.NewMoney(req.ValorCentavos)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRegisterPaymentCommand(tenantID, orderID, valor, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.RegisterPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(tenantID, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// GetActiveOrders handles GET /api/v1/orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	tenantID, err := s.tenant(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(tenantID)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.handlers.GetActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(rows))
	for i, row := range rows {
		response[i] = ActiveOrderResponse{
			ID:         row.ID.String(),
			Codigo:     row.Codigo,
			PacienteID: row.PacienteID.String(),
			Status:     row.Status,
			Prioridade: row.Prioridade,
			ValorFinal: row.ValorFinal,
			ItemCount:  row.ItemCount,
			CriadoEm:   row.CriadoEm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCriticalResults handles GET /api/v1/results/critical.
func (s *Server) GetCriticalResults(ctx echo.Context) error {
	tenantID, err := s.tenant(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	since := time.Now().Add(-24 * time.Hour)
	if raw := ctx.QueryParam("since"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return respondBadRequest(ctx, "invalid since timestamp")
		}
		since = parsed
	}

	query, err := queries.NewGetCriticalResultsQuery(tenantID, since)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.handlers.GetCriticalResults.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]CriticalResultResponse, len(rows))
	for i, row := range rows {
		response[i] = CriticalResultResponse{
			ResultID:      row.ResultID.String(),
			OrderID:       row.OrderID.String(),
			OrderCodigo:   row.OrderCodigo,
			PacienteID:    row.PacienteID.String(),
			Parametro:     row.Parametro,
			ValorNumerico: row.ValorNumerico,
			Unidade:       row.Unidade,
			LiberadoPor:   row.LiberadoPor,
			DataLiberacao: row.DataLiberacao,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) tenant(ctx echo.Context) (kernel.TenantID, error) {
	raw := ctx.Request().Header.Get(tenantHeader)
	if raw == "" {
		return kernel.TenantID{}, errs.NewValueIsRequiredError("X-Tenant-ID header")
	}
	tenantID, err := kernel.TenantIDFromString(raw)
	if err != nil {
		return kernel.TenantID{}, errs.NewValueIsInvalidErrorWithCause("X-Tenant-ID header", err)
	}
	return tenantID, nil
}

func (s *Server) tenantAndOrder(ctx echo.Context) (kernel.TenantID, kernel.UUID, error) {
	tenantID, err := s.tenant(ctx)
	if err != nil {
		return kernel.TenantID{}, kernel.UUID{}, err
	}
	orderID, err := s.pathUUID(ctx, "orderId")
	if err != nil {
		return kernel.TenantID{}, kernel.UUID{}, err
	}
	return tenantID, orderID, nil
}

func (s *Server) resultPath(ctx echo.Context) (kernel.TenantID, kernel.UUID, kernel.UUID, kernel.UUID, error) {
	tenantID, orderID, err := s.tenantAndOrder(ctx)
	if err != nil {
		return kernel.TenantID{}, kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}
	itemID, err := s.pathUUID(ctx, "itemId")
	if err != nil {
		return kernel.TenantID{}, kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}
	resultID, err := s.pathUUID(ctx, "resultId")
	if err != nil {
		return kernel.TenantID{}, kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, err
	}
	return tenantID, orderID, itemID, resultID, nil
}

func (s *Server) pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
