package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"labos/internal/core/application/usecases/commands"
	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/core/ports"
	"labos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryOrderRepository keeps aggregates in a map so the routing and error
// mapping can be exercised without a database.
type memoryOrderRepository struct {
	orders map[string]*order.Order
}

func newMemoryOrderRepository() *memoryOrderRepository {
	return &memoryOrderRepository{orders: make(map[string]*order.Order)}
}

func (r *memoryOrderRepository) key(tenantID kernel.TenantID, id kernel.UUID) string {
	return tenantID.String() + "/" + id.String()
}

func (r *memoryOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	r.orders[r.key(aggregate.TenantID(), aggregate.ID())] = aggregate
	return nil
}

func (r *memoryOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	r.orders[r.key(aggregate.TenantID(), aggregate.ID())] = aggregate
	return nil
}

func (r *memoryOrderRepository) Get(_ context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	aggregate, ok := r.orders[r.key(tenantID, id)]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return aggregate, nil
}

func (r *memoryOrderRepository) GetByCodigo(_ context.Context, tenantID kernel.TenantID, codigo string) (*order.Order, error) {
	for _, aggregate := range r.orders {
		if aggregate.TenantID().String() == tenantID.String() && aggregate.Codigo() == codigo {
			return aggregate, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", codigo)
}

func (r *memoryOrderRepository) GetAllWithOverdueUrgentItems(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, nil
}

type memoryUnitOfWork struct {
	repo *memoryOrderRepository
}

func (u memoryUnitOfWork) Begin(context.Context) error    { return nil }
func (u memoryUnitOfWork) Commit(context.Context) error   { return nil }
func (u memoryUnitOfWork) Rollback(context.Context) error { return nil }

func (u memoryUnitOfWork) OrderRepository() ports.OrderRepository { return u.repo }

type memoryUoWFactory struct {
	repo *memoryOrderRepository
}

func (f memoryUoWFactory) Create() commands.OrderUoW { return memoryUnitOfWork{repo: f.repo} }

func newTestServer(t *testing.T) (*echo.Echo, *memoryOrderRepository) {
	t.Helper()

	repo := newMemoryOrderRepository()
	factory := memoryUoWFactory{repo: repo}

	server := NewServer(Handlers{
		CreateOrder:        commands.NewCreateOrderCommandHandler(factory),
		AddExamItem:        commands.NewAddExamItemCommandHandler(factory),
		AdvanceOrder:       commands.NewAdvanceOrderCommandHandler(factory),
		CollectItem:        commands.NewCollectItemCommandHandler(factory),
		RouteItemToSupport: commands.NewRouteItemToSupportCommandHandler(factory),
		EnterResult:        commands.NewEnterResultCommandHandler(factory),
		ApproveResultQC:    commands.NewApproveResultQCCommandHandler(factory),
		ReleaseResult:      commands.NewReleaseResultCommandHandler(factory),
		RectifyResult:      commands.NewRectifyResultCommandHandler(factory),
		RepeatItem:         commands.NewRepeatItemCommandHandler(factory),
		DeliverOrder:       commands.NewDeliverOrderCommandHandler(factory),
		CancelOrder:        commands.NewCancelOrderCommandHandler(factory),
		RegisterPayment:    commands.NewRegisterPaymentCommandHandler(factory),
	}, zerolog.Nop())

	e := echo.New()
	server.RegisterRoutes(e)
	return e, repo
}

func doJSON(e *echo.Echo, method, path, tenantID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tenantID != "" {
		req.Header.Set(tenantHeader, tenantID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedDraftOrder(t *testing.T, repo *memoryOrderRepository, tenantID kernel.TenantID) (*order.Order, *order.ExamItem) {
	t.Helper()

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:         kernel.NewUUID(),
		TenantID:   tenantID,
		Codigo:     "OS-2025-000101",
		Protocolo:  "PROT-101",
		PacienteID: kernel.NewUUID(),
		UnidadeID:  kernel.NewUUID(),

		TipoAtendimento: order.CareParticular,
		Prioridade:      order.PriorityNormal,
		CanalOrigem:     "recepcao",
		CriadoPor:       "atendente",
	})
	require.NoError(t, err)

	item, err := aggregate.AddItem(
		kernel.NewUUID(), kernel.NewUUID(), 1,
		testMoney(t, 4500), testMoney(t, 0),
		order.RealizationInterna, "atendente",
	)
	require.NoError(t, err)

	require.NoError(t, repo.Add(context.Background(), aggregate))
	return aggregate, item
}

func testMoney(t *testing.T, centavos int64) kernel.Money {
	t.Helper()
	value, err := kernel.NewMoney(centavos)
	require.NoError(t, err)
	return value
}

func TestServer_RequiresTenantHeader(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/orders", "", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "X-Tenant-ID")
}

func TestServer_CreateOrder_Success(t *testing.T) {
	e, repo := newTestServer(t)
	tenantID := kernel.NewUUID().String()

	body := fmt.Sprintf(`{
		"codigo": "OS-2025-000123",
		"protocolo": "PROT-123",
		"paciente_id": %q,
		"unidade_id": %q,
		"tipo_atendimento": "particular",
		"prioridade": "normal",
		"canal_origem": "recepcao",
		"criado_por": "atendente",
		"exams": [
			{
				"exam_id": %q,
				"quantidade": 1,
				"valor_unitario_centavos": 4500,
				"valor_desconto_centavos": 500,
				"realizacao": "interna"
			}
		]
	}`, kernel.NewUUID().String(), kernel.NewUUID().String(), kernel.NewUUID().String())

	rec := doJSON(e, http.MethodPost, "/api/v1/orders", tenantID, body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "OS-2025-000123", response.Codigo)

	orderID, err := kernel.UUIDFromString(response.ID)
	require.NoError(t, err)

	tenant, err := kernel.TenantIDFromString(tenantID)
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), tenant, orderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusRascunho, stored.Status())
	assert.EqualValues(t, 4000, stored.ValorFinal().Centavos())
}

func TestServer_CreateOrder_InvalidPacienteID(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/orders", kernel.NewUUID().String(),
		`{"paciente_id": "not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_AdvanceOrder_SchedulesDraft(t *testing.T) {
	e, repo := newTestServer(t)
	tenantID := kernel.NewTenantID()
	aggregate, _ := seedDraftOrder(t, repo, tenantID)

	body := fmt.Sprintf(`{"status": "agendado", "agendado_para": %q, "actor": "atendente"}`,
		time.Now().Add(24*time.Hour).Format(time.RFC3339))
	rec := doJSON(e, http.MethodPost,
		"/api/v1/orders/"+aggregate.ID().String()+"/advance",
		tenantID.String(), body)

	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, order.StatusAgendado, aggregate.Status())
}

func TestServer_AdvanceOrder_UnknownOrderReturns404(t *testing.T) {
	e, _ := newTestServer(t)

	body := `{"status": "confirmado", "actor": "atendente"}`
	rec := doJSON(e, http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/advance",
		kernel.NewUUID().String(), body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_AdvanceOrder_InvalidOrderIDReturns400(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/orders/nope/advance",
		kernel.NewUUID().String(), `{"status": "confirmado", "actor": "a"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_AddExamItem_DuplicateExamReturns409(t *testing.T) {
	e, repo := newTestServer(t)
	tenantID := kernel.NewTenantID()
	aggregate, item := seedDraftOrder(t, repo, tenantID)

	body := fmt.Sprintf(`{
		"exam_id": %q,
		"quantidade": 1,
		"valor_unitario_centavos": 3000,
		"valor_desconto_centavos": 0,
		"realizacao": "interna",
		"actor": "atendente"
	}`, item.ExamID().String())

	rec := doJSON(e, http.MethodPost,
		"/api/v1/orders/"+aggregate.ID().String()+"/items",
		tenantID.String(), body)

	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestServer_CancelOrder_Success(t *testing.T) {
	e, repo := newTestServer(t)
	tenantID := kernel.NewTenantID()
	aggregate, _ := seedDraftOrder(t, repo, tenantID)

	rec := doJSON(e, http.MethodPost,
		"/api/v1/orders/"+aggregate.ID().String()+"/cancellation",
		tenantID.String(), `{"motivo": "paciente desistiu", "actor": "atendente"}`)

	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, order.StatusCancelado, aggregate.Status())
}

func TestServer_RegisterPayment_PaysInFull(t *testing.T) {
	e, repo := newTestServer(t)
	tenantID := kernel.NewTenantID()
	aggregate, _ := seedDraftOrder(t, repo, tenantID)

	rec := doJSON(e, http.MethodPost,
		"/api/v1/orders/"+aggregate.ID().String()+"/payments",
		tenantID.String(), `{"valor_centavos": 4500, "actor": "caixa"}`)

	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, order.PaymentPago, aggregate.StatusPagamento())
}

func TestServer_CriticalResults_InvalidSinceReturns400(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet,
		"/api/v1/results/critical?since=yesterday",
		kernel.NewUUID().String(), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
