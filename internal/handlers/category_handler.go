package handlers

import (
	"net/http"
	"net/url"

	"github.com/AbdulKus/jshop-admin/internal/console"
	"github.com/AbdulKus/jshop-admin/internal/forms"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	console *console.Console
	log     *logrus.Logger
}

func NewCategoryHandler(cons *console.Console, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		console: cons,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.POST("", h.SaveCategory)
		categories.POST("/reset", h.ResetCategoryForm)
		categories.POST("/:code/edit", h.EditCategory)
		categories.GET("/:code/delete", h.ConfirmDelete)
		categories.POST("/:code/delete", h.DeleteCategory)
	}
}

func (h *CategoryHandler) SaveCategory(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SaveCategory")
	var form forms.CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		handlerLogger.Warnf("Failed to bind category form: %v", err)
	}
	if err := h.console.SaveCategory(c.Request.Context(), form); err != nil {
		handlerLogger.Warnf("Saving category failed: %v", err)
		backToConsole(c, "category-form")
		return
	}
	backToConsole(c, "categories")
}

func (h *CategoryHandler) ResetCategoryForm(c *gin.Context) {
	h.console.ResetCategoryForm()
	backToConsole(c, "category-form")
}

func (h *CategoryHandler) EditCategory(c *gin.Context) {
	code := c.Param("code")
	if !h.console.EditCategory(code) {
		h.log.WithField("handler", "EditCategory").Debugf("Category %q is not in the current list", code)
	}
	backToConsole(c, "category-form")
}

func (h *CategoryHandler) ConfirmDelete(c *gin.Context) {
	code := c.Param("code")
	c.HTML(http.StatusOK, "confirm.tmpl", confirmView{
		Title:   "Удаление категории",
		Message: "Удалить категорию " + code + "?",
		Action:  "/categories/" + url.PathEscape(code) + "/delete",
	})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "DeleteCategory")
	code := c.Param("code")
	if !confirmed(c, handlerLogger) {
		backToConsole(c, "categories")
		return
	}
	if err := h.console.DeleteCategory(c.Request.Context(), code); err != nil {
		handlerLogger.Warnf("Deleting category %q failed: %v", code, err)
	}
	backToConsole(c, "categories")
}
