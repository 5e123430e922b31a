package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fordpartsdz/shop/internal/catalog"
	"github.com/fordpartsdz/shop/internal/messages"
	"github.com/fordpartsdz/shop/internal/models"
	"github.com/fordpartsdz/shop/internal/orders"
	"github.com/fordpartsdz/shop/internal/refdata"
	"github.com/fordpartsdz/shop/internal/shipping"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	P  *ProductHandler
	O  *OrderHandler
	M  *MessageHandler
	R  *RefDataHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.CarModel{},
		&models.Order{},
		&models.OrderItem{},
		&models.Message{},
	))

	catalogSvc := &catalog.Service{DB: db}
	orderSvc := &orders.Service{DB: db, ShippingPrice: shipping.Lookup}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		P:  &ProductHandler{Catalog: catalogSvc},
		O:  &OrderHandler{Orders: orderSvc, Catalog: catalogSvc},
		M:  &MessageHandler{Messages: &messages.Service{DB: db}},
		R:  &RefDataHandler{RefData: &refdata.Service{DB: db}},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedProduct(p models.Product) models.Product {
	env.T.Helper()
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}
