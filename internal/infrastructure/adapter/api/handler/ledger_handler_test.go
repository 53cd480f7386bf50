package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	campaignUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/campaign"
	ledgerUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/ledger"
	referralUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/referral"
	settingsUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/settings"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/handler"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/routes"
	coremocks "github.com/adsmarket/ledger-engine/mocks/port/core"
	persistencemocks "github.com/adsmarket/ledger-engine/mocks/port/persistence"
)

var testFixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type apiMocks struct {
	uow      *persistencemocks.MockUnitOfWork
	users    *persistencemocks.MockUserRepository
	ledger   *persistencemocks.MockLedgerRepository
	payouts  *persistencemocks.MockPayoutRepository
	settings *persistencemocks.MockSettingsRepository
	events   *persistencemocks.MockEventRepository
}

// newTestRouter wires the full route table onto real services backed
// by repository mocks, so requests exercise binding, service logic and
// error mapping together.
func newTestRouter() (*gin.Engine, *apiMocks) {
	gin.SetMode(gin.TestMode)

	m := &apiMocks{
		uow:      persistencemocks.NewMockUnitOfWork(),
		users:    &persistencemocks.MockUserRepository{},
		ledger:   &persistencemocks.MockLedgerRepository{},
		payouts:  &persistencemocks.MockPayoutRepository{},
		settings: &persistencemocks.MockSettingsRepository{},
		events:   &persistencemocks.MockEventRepository{},
	}
	m.uow.On("Users", mock.Anything).Return(m.users).Maybe()
	m.uow.On("Ledger", mock.Anything).Return(m.ledger).Maybe()
	m.uow.On("Payouts", mock.Anything).Return(m.payouts).Maybe()
	m.uow.On("Campaigns", mock.Anything).Return(&persistencemocks.MockCampaignRepository{}).Maybe()
	m.uow.On("Settings", mock.Anything).Return(m.settings).Maybe()
	m.uow.On("Events", mock.Anything).Return(m.events).Maybe()

	logger := coremocks.NewMockLogger()
	tp := coremocks.NewMockTimeProvider(testFixedTime)

	ledgerService := ledgerUseCase.NewService(m.uow, tp, logger, ledgerUseCase.SystemActor{UserID: 9000})
	referralService := referralUseCase.NewService(m.uow, tp, logger)
	campaignService := campaignUseCase.NewService(m.uow, tp, logger)
	settingsService := settingsUseCase.NewService(m.uow, tp, logger)

	router := gin.New()
	routes.SetupRoutes(router,
		handler.NewLedgerHandler(ledgerService, logger),
		handler.NewReferralHandler(referralService, logger),
		handler.NewCampaignHandler(campaignService, logger),
		handler.NewSettingsHandler(settingsService, logger),
	)
	return router, m
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLedgerAPI_CreateEntry(t *testing.T) {
	t.Run("Creates a pending entry", func(t *testing.T) {
		router, m := newTestRouter()
		m.ledger.On("Create", mock.Anything, mock.Anything).Return(nil)

		w := doJSON(router, http.MethodPost, "/ledger",
			`{"userId":1,"kind":"payment","type":"deposit","amount":"100.00","method":"card"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp["status"])
		assert.Equal(t, "100.00", resp["amount"])
	})

	t.Run("Malformed amount", func(t *testing.T) {
		router, _ := newTestRouter()

		w := doJSON(router, http.MethodPost, "/ledger",
			`{"userId":1,"kind":"payment","type":"deposit","amount":"1.234"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Duplicate external id maps to conflict", func(t *testing.T) {
		router, m := newTestRouter()
		m.ledger.On("ExistsByExternalID", mock.Anything, "pay-1").Return(true, nil)

		w := doJSON(router, http.MethodPost, "/ledger",
			`{"userId":1,"kind":"payment","type":"deposit","amount":"100.00","externalId":"pay-1"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		router, _ := newTestRouter()

		w := doJSON(router, http.MethodPost, "/ledger", `{"userId":1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown type reports the enum, not the amount", func(t *testing.T) {
		router, _ := newTestRouter()

		w := doJSON(router, http.MethodPost, "/ledger",
			`{"userId":1,"kind":"transaction","type":"bonus","amount":"100.00"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(errs.CodeInvalidEntryType), resp["code"])
	})
}

func TestLedgerAPI_Confirm(t *testing.T) {
	t.Run("Unknown entry maps to not found", func(t *testing.T) {
		router, m := newTestRouter()
		m.ledger.On("GetByID", mock.Anything, uint64(99)).Return(nil, errs.ErrEntryNotFound)

		w := doJSON(router, http.MethodPost, "/ledger/99/confirm", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Already completed maps to conflict", func(t *testing.T) {
		router, m := newTestRouter()
		completed := &entity.LedgerEntry{ID: 10, UserID: 1, Status: entity.StatusCompleted}
		m.ledger.On("GetByID", mock.Anything, uint64(10)).Return(completed, nil)

		w := doJSON(router, http.MethodPost, "/ledger/10/confirm", "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Non-numeric id", func(t *testing.T) {
		router, _ := newTestRouter()

		w := doJSON(router, http.MethodPost, "/ledger/abc/confirm", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLedgerAPI_RequestWithdrawal(t *testing.T) {
	t.Run("Insufficient balance maps to bad request", func(t *testing.T) {
		router, m := newTestRouter()
		m.settings.On("Get", mock.Anything).Return(entity.DefaultSettings(), nil)
		m.users.On("AdjustBalance", mock.Anything, uint64(1), mock.Anything).
			Return(decimal.Zero, errs.NewInsufficientBalanceError(1, decimal.NewFromInt(500), decimal.NewFromInt(20)))

		w := doJSON(router, http.MethodPost, "/users/1/withdrawals",
			`{"amount":"500.00","method":"bank_transfer"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(errs.CodeInsufficientBalance), resp["code"])
	})

	t.Run("Accepted withdrawal", func(t *testing.T) {
		router, m := newTestRouter()
		m.settings.On("Get", mock.Anything).Return(entity.DefaultSettings(), nil)
		m.users.On("AdjustBalance", mock.Anything, uint64(1), mock.Anything).
			Return(decimal.NewFromInt(150), nil)
		m.ledger.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.events.On("Create", mock.Anything, mock.Anything).Return(nil)

		w := doJSON(router, http.MethodPost, "/users/1/withdrawals",
			`{"amount":"50.00","method":"bank_transfer"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "-50.00", resp["amount"])
		assert.Equal(t, "withdrawal", resp["type"])
	})
}

func TestLedgerAPI_SettleDeal(t *testing.T) {
	router, m := newTestRouter()
	m.ledger.On("ExistsByExternalID", mock.Anything, "deal-1").Return(false, nil)
	m.settings.On("Get", mock.Anything).Return(entity.DefaultSettings(), nil)
	m.users.On("AdjustBalance", mock.Anything, mock.Anything, mock.Anything).
		Return(decimal.NewFromInt(100), nil)
	m.ledger.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := doJSON(router, http.MethodPost, "/deals/settle",
		`{"buyerId":1,"sellerId":2,"amount":"200.00","externalId":"deal-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "20.00", resp["platformFee"])
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
