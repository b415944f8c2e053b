package handlers

import (
	"net/http"
	"net/url"

	"github.com/AbdulKus/jshop-admin/internal/console"
	"github.com/AbdulKus/jshop-admin/internal/domain"
	"github.com/AbdulKus/jshop-admin/internal/forms"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LotHandler struct {
	console *console.Console
	log     *logrus.Logger
}

func NewLotHandler(cons *console.Console, logger *logrus.Logger) *LotHandler {
	return &LotHandler{
		console: cons,
		log:     logger,
	}
}

func (h *LotHandler) RegisterRoutes(router gin.IRouter) {
	lots := router.Group("/lots")
	{
		lots.GET("", h.ListLots)
		lots.POST("", h.SaveLot)
		lots.POST("/reset", h.ResetLotForm)
		lots.POST("/bulk", h.BulkCreateLots)
		lots.POST("/:slug/edit", h.EditLot)
		lots.GET("/:slug/duplicate", h.DuplicatePrompt)
		lots.POST("/:slug/duplicate", h.DuplicateLot)
		lots.GET("/:slug/delete", h.ConfirmDelete)
		lots.POST("/:slug/delete", h.DeleteLot)
	}
}

// ListLots reloads the lot list for the search box, the category filter or
// the refresh button.
func (h *LotHandler) ListLots(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ListLots")
	var form forms.LotFilterForm
	if err := c.ShouldBindQuery(&form); err != nil {
		handlerLogger.Warnf("Failed to bind lot filter: %v", err)
	}

	filter := domain.LotFilter{Search: form.Search, Category: form.Category}
	trigger := console.ParseLotTrigger(form.Action)
	if err := h.console.FilterLots(c.Request.Context(), filter, trigger); err != nil {
		handlerLogger.Warnf("Lot reload (%s) failed: %v", trigger, err)
	}
	backToConsole(c, "lots")
}

func (h *LotHandler) SaveLot(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SaveLot")
	var form forms.LotForm
	if err := c.ShouldBind(&form); err != nil {
		handlerLogger.Warnf("Failed to bind lot form: %v", err)
	}
	if err := h.console.SaveLot(c.Request.Context(), form); err != nil {
		handlerLogger.Warnf("Saving lot %q failed: %v", form.Slug, err)
		backToConsole(c, "lot-form")
		return
	}
	backToConsole(c, "lots")
}

func (h *LotHandler) ResetLotForm(c *gin.Context) {
	h.console.ResetLotForm()
	backToConsole(c, "lot-form")
}

func (h *LotHandler) BulkCreateLots(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "BulkCreateLots")
	var form forms.BulkForm
	if err := c.ShouldBind(&form); err != nil {
		handlerLogger.Warnf("Failed to bind bulk form: %v", err)
	}
	if _, err := h.console.BulkCreateLots(c.Request.Context(), form.JSON); err != nil {
		handlerLogger.Warnf("Bulk lot creation failed: %v", err)
	}
	backToConsole(c, "lot-bulk")
}

func (h *LotHandler) EditLot(c *gin.Context) {
	slug := c.Param("slug")
	if !h.console.EditLot(slug) {
		h.log.WithField("handler", "EditLot").Debugf("Lot %q is not in the current list", slug)
	}
	backToConsole(c, "lot-form")
}

func (h *LotHandler) DuplicatePrompt(c *gin.Context) {
	slug := c.Param("slug")
	c.HTML(http.StatusOK, "duplicate.tmpl", duplicateView{
		Slug:    slug,
		NewSlug: slug + "-copy",
		Action:  "/lots/" + url.PathEscape(slug) + "/duplicate",
	})
}

func (h *LotHandler) DuplicateLot(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "DuplicateLot")
	slug := c.Param("slug")
	var form forms.DuplicateForm
	if err := c.ShouldBind(&form); err != nil {
		handlerLogger.Warnf("Failed to bind duplicate form: %v", err)
	}
	if err := h.console.DuplicateLot(c.Request.Context(), slug, form.NewSlug); err != nil {
		handlerLogger.Warnf("Duplicating lot %q failed: %v", slug, err)
	}
	backToConsole(c, "lots")
}

func (h *LotHandler) ConfirmDelete(c *gin.Context) {
	slug := c.Param("slug")
	c.HTML(http.StatusOK, "confirm.tmpl", confirmView{
		Title:   "Удаление лота",
		Message: "Удалить лот " + slug + "?",
		Action:  "/lots/" + url.PathEscape(slug) + "/delete",
	})
}

func (h *LotHandler) DeleteLot(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "DeleteLot")
	slug := c.Param("slug")
	if !confirmed(c, handlerLogger) {
		backToConsole(c, "lots")
		return
	}
	if err := h.console.DeleteLot(c.Request.Context(), slug); err != nil {
		handlerLogger.Warnf("Deleting lot %q failed: %v", slug, err)
	}
	backToConsole(c, "lots")
}

// confirmed reports whether a deletion form carries confirm=yes. Anything
// else is a cancelled confirmation.
func confirmed(c *gin.Context, logger logrus.FieldLogger) bool {
	var form forms.ConfirmForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Infof("Deletion not confirmed: %v", err)
		return false
	}
	return true
}
