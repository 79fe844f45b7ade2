package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/blackfish/content"
	"github.com/yeremiapane/blackfish/controllers"
	"github.com/yeremiapane/blackfish/live"
	"github.com/yeremiapane/blackfish/middlewares"
	"github.com/yeremiapane/blackfish/services"
	"github.com/yeremiapane/blackfish/utils"
	"github.com/yeremiapane/blackfish/web"
)

// Deps are the long-lived pieces the routes are wired to.
type Deps struct {
	Site           *content.Site
	Store          *services.SessionStore
	Signer         *utils.SessionSigner
	Hub            *live.Hub
	HeroVideo      string
	AllowedOrigins []string
	// SubmitRate caps reservation submissions and client logs per IP per minute.
	SubmitRate int
}

func SetupRouter(deps Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.Metrics())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.AllowedOrigins))

	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rate := deps.SubmitRate
	if rate <= 0 {
		rate = 10
	}
	limiter := middlewares.NewRateLimiter(rate)

	pageController := controllers.NewPageController(deps.Site, deps.HeroVideo)
	navbarController := controllers.NewNavbarController()
	galleryController := controllers.NewGalleryController()
	reservationController := controllers.NewReservationController()
	liveController := controllers.NewLiveController(deps.Hub, deps.AllowedOrigins)

	session := r.Group("/")
	session.Use(middlewares.PageSession(deps.Store, deps.Signer))
	{
		session.GET("/", pageController.Index)

		// no-script fallbacks, answered with a redirect back to the page
		session.POST("/navbar/menu", navbarController.ToggleMenu)
		session.POST("/gallery/category", galleryController.SelectCategory)
		session.POST("/gallery/images/:image_id/open", galleryController.Open)
		session.POST("/gallery/close", galleryController.Close)
		session.POST("/reservations", limiter.RateLimit(), reservationController.Submit)

		session.GET("/live/ws", liveController.Connect)
	}

	api := r.Group("/api")
	api.Use(middlewares.PageSession(deps.Store, deps.Signer))
	{
		api.GET("/state", pageController.State)

		api.POST("/navbar/scroll", navbarController.Scroll)
		api.POST("/navbar/menu", navbarController.ToggleMenuJSON)

		api.POST("/gallery/category", galleryController.SelectCategoryJSON)
		api.POST("/gallery/images/:image_id/open", galleryController.OpenJSON)
		api.POST("/gallery/close", galleryController.CloseJSON)
		api.POST("/gallery/inside", galleryController.ClickInside)

		api.POST("/reservations", limiter.RateLimit(), reservationController.SubmitJSON)
		api.PATCH("/reservations/draft", reservationController.UpdateDraft)
		api.POST("/reservations/revise", reservationController.Revise)

		api.POST("/client-log", limiter.RateLimit(), controllers.ClientLog)
	}

	return r, nil
}
