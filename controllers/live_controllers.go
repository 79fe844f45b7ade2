package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/live"
	"github.com/yeremiapane/blackfish/middlewares"
	"github.com/yeremiapane/blackfish/utils"
)

// EventError is pushed back on the live channel when an event is refused.
const EventError = "error"

const (
	readLimit = 8 << 10
	// DefaultPongWait is how long a connection may stay silent, pongs
	// included, before it is dropped. Pings go out at 9/10 of it.
	DefaultPongWait = 60 * time.Second
)

type LiveErrorPayload struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	State   interface{} `json:"state,omitempty"`
}

type LiveController struct {
	Hub      *live.Hub
	PongWait time.Duration
	upgrader websocket.Upgrader
}

// NewLiveController accepts websocket upgrades from allowedOrigins, or from
// the page's own host when the list is empty.
func NewLiveController(hub *live.Hub, allowedOrigins []string) *LiveController {
	lc := &LiveController{Hub: hub, PongWait: DefaultPongWait}
	if len(allowedOrigins) > 0 {
		allowed := make(map[string]bool, len(allowedOrigins))
		for _, o := range allowedOrigins {
			allowed[o] = true
		}
		lc.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		}
	}
	return lc
}

// Connect upgrades the request, sends the full page state and then applies
// client events until the socket closes.
func (lc *LiveController) Connect(c *gin.Context) {
	page := middlewares.CurrentPage(c)

	ws, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.InfoLogger.WithField("page_id", page.ID).Debugf("Websocket upgrade failed: %v", err)
		return
	}
	pongWait := lc.PongWait
	if pongWait <= 0 {
		pongWait = DefaultPongWait
	}
	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	unregister := lc.Hub.Register(page.ID, ws)
	defer unregister()

	done := make(chan struct{})
	defer close(done)
	go lc.keepAlive(ws, page.ID, pongWait*9/10, done)

	if err := lc.Hub.Send(ws, components.EventPageState, page.Snapshot()); err != nil {
		return
	}

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.InfoLogger.WithField("page_id", page.ID).Debugf("Live connection closed: %v", err)
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		page.Touch()
		lc.handle(ws, page, raw)
	}
}

// keepAlive pings the browser so an idle page outlives the read deadline.
func (lc *LiveController) keepAlive(ws *websocket.Conn, pageID string, period time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := lc.Hub.Ping(ws); err != nil {
				utils.InfoLogger.WithField("page_id", pageID).Debugf("Live ping failed: %v", err)
				_ = ws.Close()
				return
			}
		}
	}
}

func (lc *LiveController) handle(ws *websocket.Conn, page *components.Page, raw []byte) {
	var ev ClientEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		_ = lc.Hub.Send(ws, EventError, LiveErrorPayload{Message: "malformed event", Status: http.StatusBadRequest})
		return
	}

	reply, err := Dispatch(page, ev)
	if err != nil {
		_ = lc.Hub.Send(ws, EventError, LiveErrorPayload{
			Message: err.Error(),
			Status:  utils.StatusFor(err),
			State:   reply.Data,
		})
		return
	}
	if reply.Event == "" {
		return
	}
	// a reconnecting page may briefly hold two connections; both render it
	lc.Hub.Notify(page.ID, reply.Event, reply.Data)
}
