package middlewares

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/services"
	"github.com/yeremiapane/blackfish/utils"
)

const (
	SessionCookie = "blackfish_session"

	// PageHeader carries the page id on script requests; PageParam carries
	// it on form posts, redirects and the websocket URL.
	PageHeader = "X-Page-ID"
	PageParam  = "page"

	pageIDKey = "page_id"
	pageKey   = "page"
)

// PageSession binds the request to one page view. The cookie identifies the
// visitor; the page id picks which of the visitor's page views is meant. A
// request without a usable page id opens a new page view, so every tab keeps
// its own component state.
func PageSession(store *services.SessionStore, signer *utils.SessionSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var visitorID string
		if raw, err := c.Cookie(SessionCookie); err == nil {
			if claims, err := signer.Parse(raw); err == nil {
				visitorID = claims.VisitorID
			}
		}
		if visitorID == "" {
			visitorID = uuid.NewString()
			token, err := signer.Generate(visitorID)
			if err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				c.Abort()
				return
			}
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(signer.TTL.Seconds()),
				HttpOnly: true,
				Secure:   c.Request.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		pageID := c.GetHeader(PageHeader)
		if pageID == "" {
			pageID = c.Query(PageParam)
		}
		page, _ := store.Resolve(visitorID, pageID)

		c.Header(PageHeader, page.ID)
		c.Set(pageIDKey, page.ID)
		c.Set(pageKey, page)
		c.Next()
	}
}

// CurrentPage returns the page bound by PageSession.
func CurrentPage(c *gin.Context) *components.Page {
	if v, ok := c.Get(pageKey); ok {
		if page, ok := v.(*components.Page); ok {
			return page
		}
	}
	return nil
}

// PageURL links back to the current page view, keeping query and anchor.
func PageURL(c *gin.Context, query url.Values, anchor string) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if page := CurrentPage(c); page != nil {
		q.Set(PageParam, page.ID)
	}
	if len(q) == 0 {
		return "/" + anchor
	}
	return "/?" + q.Encode() + anchor
}
