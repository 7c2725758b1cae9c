// Package orderhttp exposes the webhook endpoint that triggers order routing.
package orderhttp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderops/shipsplit/internal/domains/orders/application"
	"github.com/orderops/shipsplit/internal/domains/orders/ports"
	apierrors "github.com/orderops/shipsplit/internal/shared/errors"
)

// WebhookHandler receives ShipStation order-creation webhooks.
type WebhookHandler struct {
	orchestrator ports.WorkflowOrchestrator
}

// NewWebhookHandler wires the handler with the ingestion orchestrator.
func NewWebhookHandler(orchestrator ports.WorkflowOrchestrator) *WebhookHandler {
	return &WebhookHandler{orchestrator: orchestrator}
}

type webhookPayload struct {
	ResourceURL string `json:"resource_url" binding:"required"`
}

type outcomeView struct {
	OrderNumber string   `json:"orderNumber"`
	Action      string   `json:"action"`
	Warehouses  []string `json:"warehouses,omitempty"`
	Payloads    int      `json:"payloads,omitempty"`
	Error       string   `json:"error,omitempty"`
}

type webhookResponse struct {
	Message string `json:"message"`
	Data    struct {
		BatchID string        `json:"batchId"`
		Orders  []outcomeView `json:"orders"`
		Failed  int           `json:"failed"`
	} `json:"data"`
}

// HandleNewOrders fetches the order batch behind the webhook resource URL and
// routes every order. The response is 200 once the fetch succeeded, even when
// individual orders failed; those failures are reported in the body so they
// stay observable without breaking the platform's webhook retry semantics.
func (h *WebhookHandler) HandleNewOrders(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	summary, err := h.orchestrator.IngestWebhook(c.Request.Context(), payload.ResourceURL)
	if err != nil {
		respondIngestError(c, err)
		return
	}

	response := webhookResponse{
		Message: fmt.Sprintf("Analyzed %d new order(s).", summary.Processed()),
	}
	response.Data.BatchID = summary.BatchID
	response.Data.Failed = summary.Failed()
	response.Data.Orders = make([]outcomeView, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		view := outcomeView{
			OrderNumber: outcome.OrderNumber,
			Action:      string(outcome.Action),
			Payloads:    outcome.Payloads,
		}
		for _, warehouse := range outcome.Warehouses {
			view.Warehouses = append(view.Warehouses, string(warehouse))
		}
		view.Error = outcome.Error
		response.Data.Orders = append(response.Data.Orders, view)
	}
	c.JSON(http.StatusOK, response)
}

func respondIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidWebhook):
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	case errors.Is(err, ports.ErrGatewayTimeout):
		apierrors.Respond(c, apierrors.ErrUpstreamTimeout.WithDetail(err.Error()))
	case errors.Is(err, ports.ErrGatewayUnavailable):
		apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(err.Error()))
	default:
		apierrors.RespondError(c, err)
	}
}
