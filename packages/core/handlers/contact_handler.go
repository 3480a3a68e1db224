package handlers

import (
	"errors"
	"net/http"

	"titans-lacrosse/packages/core/contact"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	relay  contact.Relay
	logger *zap.Logger
}

func NewContactHandler(relay contact.Relay, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		relay:  relay,
		logger: nopIfNil(logger),
	}
}

// SubmitContact relays a contact message
// @Summary Send a contact message
// @Description Validates the message and hands it to the configured relay. Invalid fields block the submission; a relay failure keeps the values so they can be resent.
// @Tags contact
// @Accept json
// @Produce json
// @Param message body contact.Values true "Contact message"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var values contact.Values
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := contact.NewForm(h.relay)
	for _, field := range contact.Fields() {
		form.Change(field, values.Get(field))
	}

	err := form.Submit(c.Request.Context())
	if err != nil {
		var invalid *contact.ValidationError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": form.Status(),
				"errors": invalid.Fields,
			})
			return
		}

		h.logger.Error("contact relay failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"status": form.Status(),
			"error":  "Failed to send message",
			"values": form.Values(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": form.Status()})
}
