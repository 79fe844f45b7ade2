package Controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/content"
	"github.com/yeremiapane/blackfish/controllers"
	"github.com/yeremiapane/blackfish/live"
	"github.com/yeremiapane/blackfish/middlewares"
	"github.com/yeremiapane/blackfish/models"
	"github.com/yeremiapane/blackfish/services"
	"github.com/yeremiapane/blackfish/utils"
	"github.com/yeremiapane/blackfish/web"
)

func init() {
	utils.SilenceLoggers()
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	Router *gin.Engine
	Store  *services.SessionStore
	Hub    *live.Hub
	Site   *content.Site
}

type envOptions struct {
	reservation components.ReservationConfig
	backOffice  components.BackOffice
	pongWait    time.Duration
}

// setupEnv wires the controllers the same way the router does, with short
// reservation delays so the deferred transitions can be observed.
func setupEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	site, err := content.Default()
	require.NoError(t, err)
	if opts.reservation.SubmitDelay == 0 {
		opts.reservation = components.ReservationConfig{
			SubmitDelay:   50 * time.Millisecond,
			ConfirmWindow: 250 * time.Millisecond,
		}
	}
	if opts.backOffice == nil {
		opts.backOffice = services.SimulatedBackOffice{}
	}

	hub := live.NewHub()
	store := services.NewSessionStore(func(id string) *components.Page {
		return components.NewPage(id, components.PageDeps{
			Site:        site,
			Reservation: opts.reservation,
			BackOffice:  opts.backOffice,
			Notifier:    hub,
		})
	}, 30*time.Minute)
	store.OnEvict = hub.CloseSession
	t.Cleanup(store.CloseAll)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(middlewares.PageSession(store, utils.NewSessionSigner("test-secret", time.Hour)))

	pageCtrl := controllers.NewPageController(site, "")
	navCtrl := controllers.NewNavbarController()
	galleryCtrl := controllers.NewGalleryController()
	reservationCtrl := controllers.NewReservationController()
	liveCtrl := controllers.NewLiveController(hub, nil)
	if opts.pongWait > 0 {
		liveCtrl.PongWait = opts.pongWait
	}

	router.GET("/", pageCtrl.Index)
	router.POST("/navbar/menu", navCtrl.ToggleMenu)
	router.POST("/gallery/category", galleryCtrl.SelectCategory)
	router.POST("/gallery/images/:image_id/open", galleryCtrl.Open)
	router.POST("/gallery/close", galleryCtrl.Close)
	router.POST("/reservations", reservationCtrl.Submit)
	router.GET("/live/ws", liveCtrl.Connect)

	router.GET("/api/state", pageCtrl.State)
	router.POST("/api/navbar/scroll", navCtrl.Scroll)
	router.POST("/api/navbar/menu", navCtrl.ToggleMenuJSON)
	router.POST("/api/gallery/category", galleryCtrl.SelectCategoryJSON)
	router.POST("/api/gallery/images/:image_id/open", galleryCtrl.OpenJSON)
	router.POST("/api/gallery/close", galleryCtrl.CloseJSON)
	router.POST("/api/gallery/inside", galleryCtrl.ClickInside)
	router.POST("/api/reservations", reservationCtrl.SubmitJSON)
	router.PATCH("/api/reservations/draft", reservationCtrl.UpdateDraft)
	router.POST("/api/reservations/revise", reservationCtrl.Revise)
	router.POST("/api/client-log", controllers.ClientLog)

	return &testEnv{Router: router, Store: store, Hub: hub, Site: site}
}

// visitor is one browser tab: it replays the visitor cookie and the page id
// of its own page view like site.js does.
type visitor struct {
	t      *testing.T
	env    *testEnv
	cookie *http.Cookie
	pageID string
}

func (e *testEnv) newVisitor(t *testing.T) *visitor {
	v := &visitor{t: t, env: e}
	v.do(http.MethodGet, "/api/state", "", nil)
	require.NotNil(t, v.cookie, "first request should issue a session cookie")
	require.NotEmpty(t, v.pageID)
	return v
}

// newTab opens another tab of the same browser: same cookie, own page view.
func (v *visitor) newTab() *visitor {
	tab := &visitor{t: v.t, env: v.env, cookie: v.cookie}
	tab.do(http.MethodGet, "/", "", nil)
	require.NotEmpty(v.t, tab.pageID)
	return tab
}

func (v *visitor) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, path, body)
	require.NoError(v.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if v.cookie != nil {
		req.AddCookie(v.cookie)
	}
	if v.pageID != "" {
		req.Header.Set(middlewares.PageHeader, v.pageID)
	}
	w := httptest.NewRecorder()
	v.env.Router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.SessionCookie {
			v.cookie = c
		}
	}
	if id := w.Header().Get(middlewares.PageHeader); id != "" {
		v.pageID = id
	}
	return w
}

func (v *visitor) postJSON(method, path string, payload interface{}) *httptest.ResponseRecorder {
	raw, err := json.Marshal(payload)
	require.NoError(v.t, err)
	return v.do(method, path, "application/json", bytes.NewReader(raw))
}

func (v *visitor) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return v.do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (v *visitor) page() *components.Page {
	page, ok := v.env.Store.Get(v.pageID)
	require.True(v.t, ok)
	return page
}

func (v *visitor) state() components.PageSnapshot {
	w := v.do(http.MethodGet, "/api/state", "", nil)
	require.Equal(v.t, http.StatusOK, w.Code)
	var resp struct {
		Data components.PageSnapshot `json:"data"`
	}
	require.NoError(v.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func visitorID(t *testing.T, v *visitor) string {
	claims, err := utils.NewSessionSigner("test-secret", time.Hour).Parse(v.cookie.Value)
	require.NoError(t, err)
	return claims.VisitorID
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func janeDoe() models.ReservationRequest {
	return models.ReservationRequest{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Phone:  "555-0100",
		Date:   "2026-11-20",
		Time:   "8:00 PM",
		Guests: "2",
	}
}

func janeDoeForm() url.Values {
	j := janeDoe()
	return url.Values{
		"name":   {j.Name},
		"email":  {j.Email},
		"phone":  {j.Phone},
		"date":   {j.Date},
		"time":   {j.Time},
		"guests": {j.Guests},
	}
}
