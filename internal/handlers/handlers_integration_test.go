package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"listino/internal/handlers"
	"listino/internal/middleware"
	"listino/internal/models"
	"listino/internal/repositories"
	"listino/internal/services"
	"listino/internal/session"
)

const (
	testPIN      = "1234"
	testPageSize = 2
)

// MockMailer is a mock implementation of services.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

// setupApp builds the full Fiber app over an in-memory SQLite catalog and a
// mocked mailer.
func setupApp(t *testing.T, mailer services.Mailer) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}
	seedCatalogForTest(t, db)

	catalogService := services.NewCatalogService(repositories.NewGORMCatalogRepository(db))
	if _, err := catalogService.Load(); err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	quoteService := services.NewQuoteService(mailer, nil, "info@el4u.it", "https://example.com/logo.png")
	sessionManager := session.NewManager(time.Hour)

	app := fiber.New()
	apiV1 := app.Group("/api/v1", middleware.WithSession(sessionManager))

	handlers.NewAuthHandler(testPIN).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.PinRequired(testPIN))
	handlers.NewCatalogHandler(catalogService, testPageSize).RegisterRoutes(protected)
	handlers.NewSelectionHandler(catalogService).RegisterRoutes(protected)
	handlers.NewQuoteHandler(quoteService).RegisterRoutes(protected)

	return app
}

func seedCatalogForTest(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{SKU: "A1", Description: "Notebook Pro 15", Brand: "Acme", Category1: "Informatica", Category2: "Notebook", Category3: "Professionali", SalePrice: "1199.5", PublicPrice: "1499"},
		{SKU: "A2", Description: "Mouse wireless", Brand: "Acme", Category1: "Informatica", Category2: "Accessori", Category3: "Mouse", SalePrice: "19.9", PublicPrice: "29.9"},
		{SKU: "A3", Description: "Tastiera meccanica", Brand: "Acme", Category1: "Informatica", Category2: "Accessori", Category3: "Tastiere", SalePrice: "89", PublicPrice: "109"},
		{SKU: "B1", Description: "Stampante laser", Brand: "Beta", Category1: "Ufficio", Category2: "Stampanti", Category3: "Laser", SalePrice: "249", PublicPrice: "299"},
		{SKU: "B2", Description: "Toner nero", Brand: "Beta", Category1: "Ufficio", Category2: "Consumabili", Category3: "", SalePrice: "broken", PublicPrice: "49"},
	}
	if err := db.Create(&products).Error; err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
}

// testClient keeps the session cookie across requests, like a browser would.
type testClient struct {
	t      *testing.T
	app    *fiber.App
	cookie string
}

func newTestClient(t *testing.T, app *fiber.App) *testClient {
	return &testClient{t: t, app: app}
}

func (c *testClient) do(method, path string, body interface{}) *http.Response {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	if setCookie := resp.Header.Get("Set-Cookie"); setCookie != "" {
		c.cookie = strings.Split(setCookie, ";")[0]
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("failed to decode response body %q: %v", data, err)
	}
}

type catalogViewBody struct {
	Items []struct {
		SKU       string `json:"sku"`
		SalePrice string `json:"sale_price"`
		Selected  bool   `json:"selected"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	Filters struct {
		Brand string `json:"brand"`
	} `json:"filters"`
	Options struct {
		Brands      []string `json:"brands"`
		Categories1 []string `json:"categories1"`
	} `json:"options"`
	Page           int `json:"page"`
	TotalPages     int `json:"total_pages"`
	First          int `json:"first"`
	Last           int `json:"last"`
	Total          int `json:"total"`
	SelectionCount int `json:"selection_count"`
}

type selectionBody struct {
	Items []models.SelectionEntry `json:"items"`
	Count int                     `json:"count"`
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestPinGate(t *testing.T) {
	app := setupApp(t, new(MockMailer))
	client := newTestClient(t, app)

	// No PIN: denied.
	resp := client.do(http.MethodGet, "/api/v1/catalog", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Wrong PIN via the form endpoint: denied.
	resp = client.do(http.MethodPost, "/api/v1/auth/pin", fiber.Map{"pin": "0000"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Correct PIN authorizes the session for its whole lifetime.
	resp = client.do(http.MethodPost, "/api/v1/auth/pin", fiber.Map{"pin": testPIN})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = client.do(http.MethodGet, "/api/v1/catalog", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPinAcceptedAsQueryParameter(t *testing.T) {
	app := setupApp(t, new(MockMailer))
	client := newTestClient(t, app)

	resp := client.do(http.MethodGet, "/api/v1/catalog?pin="+testPIN, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The grant sticks to the session afterwards.
	resp = client.do(http.MethodGet, "/api/v1/catalog", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func authorizedClient(t *testing.T, app *fiber.App) *testClient {
	t.Helper()
	client := newTestClient(t, app)
	resp := client.do(http.MethodPost, "/api/v1/auth/pin", fiber.Map{"pin": testPIN})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	return client
}

func TestCatalogViewAndPagination(t *testing.T) {
	app := setupApp(t, new(MockMailer))
	client := authorizedClient(t, app)

	var view catalogViewBody
	decodeBody(t, client.do(http.MethodGet, "/api/v1/catalog", nil), &view)
	assert.Equal(t, 5, view.Total)
	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.First)
	assert.Equal(t, 2, view.Last)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, "A1", view.Items[0].SKU)
	assert.Equal(t, "1.199,50", view.Items[0].SalePrice)
	assert.Equal(t, []string{"Acme", "Beta"}, view.Options.Brands)

	// Next twice reaches the last page; a further next is a no-op.
	client.do(http.MethodPost, "/api/v1/page/next", nil)
	decodeBody(t, client.do(http.MethodPost, "/api/v1/page/next", nil), &view)
	assert.Equal(t, 3, view.Page)
	assert.Equal(t, 5, view.First)
	assert.Equal(t, 5, view.Last)
	decodeBody(t, client.do(http.MethodPost, "/api/v1/page/next", nil), &view)
	assert.Equal(t, 3, view.Page)

	decodeBody(t, client.do(http.MethodPost, "/api/v1/page/prev", nil), &view)
	assert.Equal(t, 2, view.Page)
}

func TestFilteringNarrowsViewAndResetsPage(t *testing.T) {
	app := setupApp(t, new(MockMailer))
	client := authorizedClient(t, app)

	// Move off the first page, then filter: the page resets to 1.
	client.do(http.MethodPost, "/api/v1/page/next", nil)

	var view catalogViewBody
	decodeBody(t, client.do(http.MethodPut, "/api/v1/filters", fiber.Map{"brand": "Beta"}), &view)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, "Beta", view.Filters.Brand)
	assert.Equal(t, []string{"Beta"}, view.Options.Brands)
	assert.Equal(t, []string{"Ufficio"}, view.Options.Categories1)

	// The broken seed price renders blank rather than failing the row.
	assert.Equal(t, "B1", view.Items[0].SKU)
	assert.Equal(t, "", view.Items[1].SalePrice)

	decodeBody(t, client.do(http.MethodPost, "/api/v1/filters/reset", nil), &view)
	assert.Equal(t, 5, view.Total)
	assert.Equal(t, models.AllBrands, view.Filters.Brand)
}

func TestSelectionPersistsAcrossFilterAndPageChanges(t *testing.T) {
	app := setupApp(t, new(MockMailer))
	client := authorizedClient(t, app)

	resp := client.do(http.MethodPut, "/api/v1/selection/A1", fiber.Map{"selected": true, "quantity": 3})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Filter A1 out of view and walk to another page.
	client.do(http.MethodPut, "/api/v1/filters", fiber.Map{"brand": "Beta"})
	client.do(http.MethodPost, "/api/v1/page/next", nil)

	var view catalogViewBody
	decodeBody(t, client.do(http.MethodGet, "/api/v1/catalog", nil), &view)
	assert.Equal(t, 1, view.SelectionCount)

	var selection selectionBody
	decodeBody(t, client.do(http.MethodGet, "/api/v1/selection", nil), &selection)
	assert.Len(t, selection.Items, 1)
	assert.Equal(t, "A1", selection.Items[0].SKU)
	assert.Equal(t, 3, selection.Items[0].Quantity)

	// Back on an unfiltered view the row reports its selection state.
	decodeBody(t, client.do(http.MethodPost, "/api/v1/filters/reset", nil), &view)
	assert.True(t, view.Items[0].Selected)
	assert.Equal(t, 3, view.Items[0].Quantity)
}

func TestSelectionRowUpdates(t *testing.T) {
	app := setupApp(t, new(MockMailer))
	client := authorizedClient(t, app)

	// Unknown product.
	resp := client.do(http.MethodPut, "/api/v1/selection/NOPE", fiber.Map{"selected": true})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Omitted quantity falls back to the stepper default of 1.
	client.do(http.MethodPut, "/api/v1/selection/A1", fiber.Map{"selected": true})
	var selection selectionBody
	decodeBody(t, client.do(http.MethodGet, "/api/v1/selection", nil), &selection)
	assert.Equal(t, 1, selection.Items[0].Quantity)

	// Quantity edit on a selected row is applied.
	var patch struct {
		Applied bool `json:"applied"`
	}
	decodeBody(t, client.do(http.MethodPatch, "/api/v1/selection/A1/quantity", fiber.Map{"quantity": 9}), &patch)
	assert.True(t, patch.Applied)

	// Quantity edit on an unselected row is not persisted.
	decodeBody(t, client.do(http.MethodPatch, "/api/v1/selection/B1/quantity", fiber.Map{"quantity": 9}), &patch)
	assert.False(t, patch.Applied)

	// Deselect removes the entry; deselect-all empties the set.
	client.do(http.MethodPut, "/api/v1/selection/B1", fiber.Map{"selected": true})
	client.do(http.MethodPut, "/api/v1/selection/A1", fiber.Map{"selected": false})
	decodeBody(t, client.do(http.MethodGet, "/api/v1/selection", nil), &selection)
	assert.Equal(t, 1, selection.Count)
	assert.Equal(t, "B1", selection.Items[0].SKU)

	resp = client.do(http.MethodDelete, "/api/v1/selection", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, client.do(http.MethodGet, "/api/v1/selection", nil), &selection)
	assert.Equal(t, 0, selection.Count)
}

func TestQuantityBoundsAreRejectedAtTheSurface(t *testing.T) {
	app := setupApp(t, new(MockMailer))
	client := authorizedClient(t, app)

	resp := client.do(http.MethodPut, "/api/v1/selection/A1", fiber.Map{"selected": true, "quantity": 10000})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	client.do(http.MethodPut, "/api/v1/selection/A1", fiber.Map{"selected": true, "quantity": 2})
	resp = client.do(http.MethodPatch, "/api/v1/selection/A1/quantity", fiber.Map{"quantity": 0})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = client.do(http.MethodPatch, "/api/v1/selection/A1/quantity", fiber.Map{"quantity": 10000})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The stored quantity is untouched by the rejected edits.
	var selection selectionBody
	decodeBody(t, client.do(http.MethodGet, "/api/v1/selection", nil), &selection)
	assert.Equal(t, 2, selection.Items[0].Quantity)
}

func TestQuoteSubmissionFlow(t *testing.T) {
	mailer := new(MockMailer)
	app := setupApp(t, mailer)
	client := authorizedClient(t, app)

	// Requesting a quote with nothing selected is refused before the form.
	resp := client.do(http.MethodPost, "/api/v1/quote/open", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	client.do(http.MethodPut, "/api/v1/selection/A1", fiber.Map{"selected": true, "quantity": 2})
	client.do(http.MethodPut, "/api/v1/selection/B1", fiber.Map{"selected": true, "quantity": 1})

	resp = client.do(http.MethodPost, "/api/v1/quote/open", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Missing required contact fields: reported inline, nothing cleared.
	var failure struct {
		MissingFields []string `json:"missing_fields"`
	}
	decodeBody(t, client.do(http.MethodPost, "/api/v1/quote/", fiber.Map{
		"company_name":   " ",
		"customer_email": "acquisti@acme.example",
	}), &failure)
	assert.Equal(t, []string{"company_name", "customer_phone"}, failure.MissingFields)
	mailer.AssertNumberOfCalls(t, "Send", 0)

	var selection selectionBody
	decodeBody(t, client.do(http.MethodGet, "/api/v1/selection", nil), &selection)
	assert.Equal(t, 2, selection.Count)

	// A complete submission sends the operator and customer copies and
	// clears the selection.
	mailer.On("Send", "info@el4u.it", "Richiesta Offerta da ACME Srl", mock.AnythingOfType("string")).Return(nil).Once()
	mailer.On("Send", "acquisti@acme.example", "Conferma Richiesta Offerta", mock.AnythingOfType("string")).Return(nil).Once()

	resp = client.do(http.MethodPost, "/api/v1/quote/", fiber.Map{
		"company_name":   "ACME Srl",
		"customer_email": "acquisti@acme.example",
		"customer_phone": "+39 0432 000000",
		"notes":          "Consegna urgente",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	mailer.AssertExpectations(t)

	decodeBody(t, client.do(http.MethodGet, "/api/v1/selection", nil), &selection)
	assert.Equal(t, 0, selection.Count)
}

func TestQuoteDeliveryFailureKeepsStateForRetry(t *testing.T) {
	mailer := new(MockMailer)
	app := setupApp(t, mailer)
	client := authorizedClient(t, app)

	client.do(http.MethodPut, "/api/v1/selection/A1", fiber.Map{"selected": true, "quantity": 2})

	mailer.On("Send", "info@el4u.it", mock.Anything, mock.Anything).
		Return(fmt.Errorf("connection refused")).Once()

	resp := client.do(http.MethodPost, "/api/v1/quote/", fiber.Map{
		"company_name":   "ACME Srl",
		"customer_email": "acquisti@acme.example",
		"customer_phone": "+39 0432 000000",
	})
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// Selection and form state survive the failure so the user can retry.
	var selection selectionBody
	decodeBody(t, client.do(http.MethodGet, "/api/v1/selection", nil), &selection)
	assert.Equal(t, 1, selection.Count)

	mailer.On("Send", "info@el4u.it", mock.Anything, mock.Anything).Return(nil).Once()
	mailer.On("Send", "acquisti@acme.example", mock.Anything, mock.Anything).Return(nil).Once()

	resp = client.do(http.MethodPost, "/api/v1/quote/", fiber.Map{
		"company_name":   "ACME Srl",
		"customer_email": "acquisti@acme.example",
		"customer_phone": "+39 0432 000000",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	mailer.AssertExpectations(t)
}

func TestShrinkingFilteredSetResetsToFirstPage(t *testing.T) {
	app := setupApp(t, new(MockMailer))
	client := authorizedClient(t, app)

	client.do(http.MethodPost, "/api/v1/page/next", nil)
	client.do(http.MethodPost, "/api/v1/page/next", nil)

	var view catalogViewBody
	decodeBody(t, client.do(http.MethodGet, "/api/v1/catalog", nil), &view)
	assert.Equal(t, 3, view.Page)

	// Narrowing to one page of results clamps the session back to page 1.
	decodeBody(t, client.do(http.MethodPut, "/api/v1/filters", fiber.Map{"search": "toner"}), &view)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 1, view.Total)
}
