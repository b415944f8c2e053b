package handlers

import (
	"net/http"

	"github.com/AbdulKus/jshop-admin/internal/console"
	"github.com/AbdulKus/jshop-admin/internal/forms"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ConsoleHandler struct {
	console *console.Console
	log     *logrus.Logger
}

func NewConsoleHandler(cons *console.Console, logger *logrus.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		console: cons,
		log:     logger,
	}
}

func (h *ConsoleHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Index)
	router.GET("/health", h.Health)
	router.POST("/connect", h.Connect)
}

// Index renders the whole console. The first visit connects to the default API.
func (h *ConsoleHandler) Index(c *gin.Context) {
	h.console.Start(c.Request.Context(), requestScheme(c), c.Request.Host)
	c.HTML(http.StatusOK, "index.tmpl", newPageView(h.console.Snapshot()))
}

func (h *ConsoleHandler) Connect(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Connect")
	var form forms.ConnectForm
	if err := c.ShouldBind(&form); err != nil {
		handlerLogger.Warnf("Failed to bind connect form: %v", err)
	}

	fallback := h.console.DefaultAPIBase(requestScheme(c), c.Request.Host)
	if err := h.console.Connect(c.Request.Context(), form.APIBase, fallback); err != nil {
		handlerLogger.Warnf("Connect to %q failed: %v", form.APIBase, err)
	}
	backToConsole(c, "")
}

func (h *ConsoleHandler) Health(c *gin.Context) {
	state := h.console.Snapshot()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "api_base": state.APIBase})
}

func requestScheme(c *gin.Context) string {
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}

// backToConsole ends every mutation with a redirect to the page (post/redirect/get).
func backToConsole(c *gin.Context, anchor string) {
	location := "/"
	if anchor != "" {
		location += "#" + anchor
	}
	c.Redirect(http.StatusFound, location)
}
