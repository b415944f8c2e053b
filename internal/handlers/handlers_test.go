package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AbdulKus/jshop-admin/internal/clients"
	"github.com/AbdulKus/jshop-admin/internal/console"
	"github.com/AbdulKus/jshop-admin/internal/domain"
	"github.com/AbdulKus/jshop-admin/internal/settings"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogAPI is a minimal stand-in for the catalog admin API.
type catalogAPI struct {
	mu    sync.Mutex
	calls []string
	lots  []domain.Lot
}

func (a *catalogAPI) record(r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	call := r.Method + " " + r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		call += "?" + r.URL.RawQuery
	}
	a.calls = append(a.calls, call)
}

func (a *catalogAPI) called(call string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (a *catalogAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.record(r)
	reply := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	switch path := strings.TrimPrefix(r.URL.Path, "/api/v1/admin"); {
	case r.Method == http.MethodGet && path == "/dashboard":
		reply(domain.Dashboard{LotsTotal: len(a.lots), LotsAvailable: len(a.lots), CategoriesTotal: 1, ContactsTotal: 1})
	case r.Method == http.MethodGet && path == "/categories":
		reply([]domain.Category{{Code: "lamps", Label: "Лампы"}})
	case r.Method == http.MethodGet && path == "/contacts":
		reply([]domain.Contact{{Code: "tg", Label: "Telegram", Hint: "@jshop", IsExternal: true}})
	case r.Method == http.MethodGet && path == "/lots":
		reply(a.lots)
	case r.Method == http.MethodPost && path == "/lots/bulk":
		reply(map[string]any{"created": []any{map[string]string{"slug": "x"}}, "errors": []any{}})
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		reply(map[string]string{"ok": "1"})
	}
}

type testApp struct {
	router  *gin.Engine
	api     *catalogAPI
	console *console.Console
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	api := &catalogAPI{lots: []domain.Lot{{Slug: "lamp one", Name: "Лампа", CategoryCode: "lamps", CategoryLabel: "Лампы", Price: 1200}}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	store := settings.Open(filepath.Join(t.TempDir(), "settings.json"), logger)
	require.NoError(t, store.Set(settings.KeyAPIBase, srv.URL))

	client := clients.NewCatalogHTTPClient("", 2*time.Second, logger)
	cons := console.New(client, store, console.Options{}, logger)

	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	NewConsoleHandler(cons, logger).RegisterRoutes(router)
	NewLotHandler(cons, logger).RegisterRoutes(router)
	NewCategoryHandler(cons, logger).RegisterRoutes(router)
	NewContactHandler(cons, logger).RegisterRoutes(router)

	return &testApp{router: router, api: api, console: cons}
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.router.ServeHTTP(w, req)
	return w
}

func TestIndexConnectsAndRenders(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `id="statusMessage" class="ok"`)
	assert.Contains(t, body, "Подключено к")
	assert.Contains(t, body, "Лоты всего")
	assert.Contains(t, body, "lamp one")
	assert.Contains(t, body, "В наличии")
	assert.Contains(t, body, "/lots/lamp%20one/edit")
	assert.Contains(t, body, "Лампы (lamps)")
	assert.Contains(t, body, "Новый лот")
	assert.Contains(t, body, "@jshop")
	assert.Contains(t, body, `onchange="this.form.requestSubmit(this.form.querySelector('[name=action][value=filter]'))"`)
	assert.True(t, app.api.called("GET /api/v1/admin/dashboard"))
}

func TestSaveLotRedirects(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	w := app.post("/lots", url.Values{"slug": {"new"}, "name": {"New"}, "price": {"10"}, "category_code": {"lamps"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/#lots", w.Header().Get("Location"))
	assert.True(t, app.api.called("POST /api/v1/admin/lots"))
	assert.Equal(t, "Лот сохранен", app.console.Snapshot().Status.Message)
}

func TestSaveLotNonFinitePriceSendsZero(t *testing.T) {
	for _, price := range []string{"NaN", "inf", "Infinity"} {
		t.Run(price, func(t *testing.T) {
			app := newTestApp(t)
			app.get("/")

			app.post("/lots", url.Values{"slug": {"odd"}, "name": {"Odd"}, "price": {price}, "sort_order": {"-inf"}})
			assert.True(t, app.api.called("POST /api/v1/admin/lots"))
			assert.Equal(t, console.Status{Message: "Лот сохранен", Kind: console.StatusOK}, app.console.Snapshot().Status)
		})
	}
}

func TestEditLotShowsEditTitle(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	w := app.post("/lots/lamp%20one/edit", nil)
	assert.Equal(t, http.StatusFound, w.Code)

	body := app.get("/").Body.String()
	assert.Contains(t, body, "Редактирование: lamp one")
}

func TestDeleteLotNeedsConfirmation(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	page := app.get("/lots/lamp%20one/delete")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Удалить лот lamp one?")
	assert.Contains(t, page.Body.String(), `action="/lots/lamp%20one/delete"`)

	w := app.post("/lots/lamp%20one/delete", url.Values{"confirm": {"no"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.False(t, app.api.called("DELETE /api/v1/admin/lots/lamp%20one"))

	w = app.post("/lots/lamp%20one/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, app.api.called("DELETE /api/v1/admin/lots/lamp%20one"))
	assert.Equal(t, "Лот lamp one удален", app.console.Snapshot().Status.Message)
}

func TestDuplicatePromptAndSubmit(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	page := app.get("/lots/lamp/duplicate")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `value="lamp-copy"`)

	app.post("/lots/lamp/duplicate", url.Values{"new_slug": {"lamp-2"}})
	assert.True(t, app.api.called("POST /api/v1/admin/lots/lamp/duplicate"))
}

func TestBulkInvalidJSONShowsError(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	w := app.post("/lots/bulk", url.Values{"bulk_json": {"{nope"}})
	assert.Equal(t, "/#lot-bulk", w.Header().Get("Location"))

	body := app.get("/").Body.String()
	assert.Contains(t, body, `id="statusMessage" class="error"`)
	assert.Contains(t, body, "Невалидный JSON")
	assert.False(t, app.api.called("POST /api/v1/admin/lots/bulk"))
}

func TestListLotsPassesFilter(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	w := app.get("/lots?q=lamp&category=lamps&action=search")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, app.api.called("GET /api/v1/admin/lots?category=lamps&q=lamp"))
}

func TestEditCategoryLocksCode(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	app.post("/categories/lamps/edit", nil)
	body := app.get("/").Body.String()
	assert.Contains(t, body, `name="code" value="lamps" disabled`)

	app.post("/categories", url.Values{"label": {"Светильники"}, "sort_order": {"2"}})
	assert.True(t, app.api.called("PATCH /api/v1/admin/categories/lamps"))
}

func TestDeleteContact(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	app.post("/contacts/tg/delete", url.Values{"confirm": {"yes"}})
	assert.True(t, app.api.called("DELETE /api/v1/admin/contacts/tg"))
	assert.Equal(t, "Контакт tg удален", app.console.Snapshot().Status.Message)
}

func TestConnectSwitchesBase(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	w := app.post("/connect", url.Values{"api_base": {"http://127.0.0.1:1/"}})
	assert.Equal(t, http.StatusFound, w.Code)

	state := app.console.Snapshot()
	assert.Equal(t, "http://127.0.0.1:1", state.APIBase)
	assert.Equal(t, console.StatusError, state.Status.Kind)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestFormatPrice(t *testing.T) {
	assert.True(t, strings.HasSuffix(formatPrice(1200), " ₽"))
	assert.Contains(t, formatPrice(1200), "200")
	assert.NotContains(t, formatPrice(1200), ",")
	assert.Equal(t, "12,5 ₽", formatPrice(12.5))
	assert.Equal(t, "1,235 ₽", formatPrice(1.2345))
	assert.Equal(t, "2 ₽", formatPrice(1.9999))
	assert.Equal(t, "0,1 ₽", formatPrice(0.1))
}
