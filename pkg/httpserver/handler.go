package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	contractx "github.com/pawquote/quote-agent/agent/contract"
	nodex "github.com/pawquote/quote-agent/agent/nodes"
)

type Handler struct {
	dispatcher contractx.Dispatcher
}

func NewHandler(d contractx.Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

func (h *Handler) Register(engine *gin.Engine) {
	engine.GET("/healthz", h.health)

	v1 := engine.Group("/api/v1")
	v1.GET("/plans", h.listPlans)

	sessions := v1.Group("/sessions/:sessionID")
	sessions.POST("/lookup", h.lookupEntity)
	sessions.POST("/profile", h.confirmProfile)
	sessions.POST("/quote", h.requestQuote)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listPlans(c *gin.Context) {
	h.dispatch(c, contractx.IntentCall{Intent: contractx.IntentListPlans})
}

func (h *Handler) lookupEntity(c *gin.Context) {
	var body contractx.LookupEntityArgs
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.dispatch(c, contractx.IntentCall{
		SessionID: c.Param("sessionID"),
		Intent:    contractx.IntentLookupEntity,
		Lookup:    &body,
	})
}

func (h *Handler) confirmProfile(c *gin.Context) {
	var body contractx.ConfirmProfileArgs
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.dispatch(c, contractx.IntentCall{
		SessionID: c.Param("sessionID"),
		Intent:    contractx.IntentConfirmProfile,
		Confirm:   &body,
	})
}

func (h *Handler) requestQuote(c *gin.Context) {
	var body contractx.RequestQuoteArgs
	// An empty body is fine: the plan defaults to standard.
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.dispatch(c, contractx.IntentCall{
		SessionID: c.Param("sessionID"),
		Intent:    contractx.IntentRequestQuote,
		Quote:     &body,
	})
}

// dispatch runs the call and maps errors: integration mistakes are 400s,
// everything else is a 500. Conversational outcomes are always 200 so the
// client can keep the dialogue going.
func (h *Handler) dispatch(c *gin.Context, call contractx.IntentCall) {
	res, err := h.dispatcher.Dispatch(c.Request.Context(), call)
	if err != nil {
		switch {
		case errors.Is(err, nodex.ErrInvalidSession),
			errors.Is(err, nodex.ErrInvalidIntent),
			errors.Is(err, contractx.ErrMissingArgs),
			errors.Is(err, contractx.ErrUnknownIntent),
			errors.Is(err, contractx.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}
