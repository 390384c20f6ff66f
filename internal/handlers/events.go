package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"genai-space-backend/internal/admin"
	"genai-space-backend/internal/cache"
	"genai-space-backend/internal/models"
	"genai-space-backend/internal/studio"
)

const DefaultKeepAlive = 25 * time.Second

// SubmissionFeed is the listener side of the submission cache.
type SubmissionFeed interface {
	Listen(fn cache.ListenerFunc) func()
}

// AdminSnapshot is the payload of the admin event stream.
type AdminSnapshot struct {
	Submissions []models.Submission    `json:"submissions"`
	Stats       models.SubmissionStats `json:"stats"`
}

type EventsHandler struct {
	studio    *studio.Service
	admin     *admin.Service
	feed      SubmissionFeed
	keepAlive time.Duration
}

func NewEventsHandler(s *studio.Service, a *admin.Service, feed SubmissionFeed, keepAlive time.Duration) *EventsHandler {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	return &EventsHandler{studio: s, admin: a, feed: feed, keepAlive: keepAlive}
}

func streamHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}

// stream sends render() once, then again after every signal, until the
// client goes away.
func (h *EventsHandler) stream(c *gin.Context, event string, signals <-chan struct{}, render func() any) {
	streamHeaders(c)
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	c.SSEvent(event, render())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-signals:
			c.SSEvent(event, render())
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"time": time.Now().UTC()})
			return true
		}
	})
}

// UserEvents godoc
// @Summary     Live user dashboard
// @Description Server-sent events: a "dashboard" event with the full dashboard whenever one of the caller's rows changes.
// @Tags        studio
// @Produce     text/event-stream
// @Security    Bearer
// @Router      /events [get]
func (h *EventsHandler) UserEvents(c *gin.Context) {
	userID := currentUser(c).ID
	signals, stop := h.studio.Projector().Watch(userID)
	defer stop()

	ctx := c.Request.Context()
	h.stream(c, "dashboard", signals, func() any {
		return h.studio.Dashboard(ctx, userID)
	})
}

// AdminEvents godoc
// @Summary     Live admin dashboard
// @Description Server-sent events: a "submissions" event with every submission and the counts whenever the collection changes.
// @Tags        admin
// @Produce     text/event-stream
// @Security    Bearer
// @Router      /admin/events [get]
func (h *EventsHandler) AdminEvents(c *gin.Context) {
	signals := make(chan struct{}, 1)
	stop := h.feed.Listen(func(_ []models.Submission, diff cache.Diff) {
		if diff.Empty() {
			return
		}
		select {
		case signals <- struct{}{}:
		default:
		}
	})
	defer stop()

	h.stream(c, "submissions", signals, func() any {
		return AdminSnapshot{
			Submissions: h.admin.List(admin.Filter{}),
			Stats:       h.admin.Stats(),
		}
	})
}
