package handlers

import (
	"net/http"
	"net/url"

	"github.com/AbdulKus/jshop-admin/internal/console"
	"github.com/AbdulKus/jshop-admin/internal/forms"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ContactHandler struct {
	console *console.Console
	log     *logrus.Logger
}

func NewContactHandler(cons *console.Console, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		console: cons,
		log:     logger,
	}
}

func (h *ContactHandler) RegisterRoutes(router gin.IRouter) {
	contacts := router.Group("/contacts")
	{
		contacts.POST("", h.SaveContact)
		contacts.POST("/reset", h.ResetContactForm)
		contacts.POST("/:code/edit", h.EditContact)
		contacts.GET("/:code/delete", h.ConfirmDelete)
		contacts.POST("/:code/delete", h.DeleteContact)
	}
}

func (h *ContactHandler) SaveContact(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SaveContact")
	var form forms.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		handlerLogger.Warnf("Failed to bind contact form: %v", err)
	}
	if err := h.console.SaveContact(c.Request.Context(), form); err != nil {
		handlerLogger.Warnf("Saving contact failed: %v", err)
		backToConsole(c, "contact-form")
		return
	}
	backToConsole(c, "contacts")
}

func (h *ContactHandler) ResetContactForm(c *gin.Context) {
	h.console.ResetContactForm()
	backToConsole(c, "contact-form")
}

func (h *ContactHandler) EditContact(c *gin.Context) {
	code := c.Param("code")
	if !h.console.EditContact(code) {
		h.log.WithField("handler", "EditContact").Debugf("Contact %q is not in the current list", code)
	}
	backToConsole(c, "contact-form")
}

func (h *ContactHandler) ConfirmDelete(c *gin.Context) {
	code := c.Param("code")
	c.HTML(http.StatusOK, "confirm.tmpl", confirmView{
		Title:   "Удаление контакта",
		Message: "Удалить контакт " + code + "?",
		Action:  "/contacts/" + url.PathEscape(code) + "/delete",
	})
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "DeleteContact")
	code := c.Param("code")
	if !confirmed(c, handlerLogger) {
		backToConsole(c, "contacts")
		return
	}
	if err := h.console.DeleteContact(c.Request.Context(), code); err != nil {
		handlerLogger.Warnf("Deleting contact %q failed: %v", code, err)
	}
	backToConsole(c, "contacts")
}
