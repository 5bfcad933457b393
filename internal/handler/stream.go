package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// streamable collections — a client can only watch what the UI renders.
var streamableCollections = map[string]bool{
	"branches":        true,
	"workers":         true,
	"work_sessions":   true,
	"categories":      true,
	"inventory_items": true,
	"discounts":       true,
	"orders":          true,
}

const streamHeartbeat = 25 * time.Second

type StreamHandler struct{ hub *realtime.Hub }

func NewStreamHandler(hub *realtime.Hub) *StreamHandler { return &StreamHandler{hub: hub} }

// Stream godoc
// @Summary Server-sent events for a collection within a branch
// @Description Streams change events (created/updated/deleted) until the client disconnects. Heartbeat comments keep proxies from idling the connection out.
// @Tags realtime
// @Produce text/event-stream
// @Security BearerAuth
// @Param collection query string true "branches | workers | work_sessions | categories | inventory_items | discounts | orders"
// @Param branch_id query string true "Branch UUID"
// @Success 200
// @Failure 400 {object} apierror.APIError
// @Router /v1/stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	collection := c.Query("collection")
	if !streamableCollections[collection] {
		c.JSON(http.StatusBadRequest, apierror.New("Unknown collection"))
		return
	}
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("branch_id is required"))
		return
	}

	topic := realtime.Topic(collection, branchID.String())
	events, unsubscribe := h.hub.Subscribe(topic)
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}
