package admin

import (
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/freshacres/go-farmstore/app/services"
)

type NotifyAdminHandler struct {
	notifier *services.DiscountNotifier
	render   *render.Render
}

func NewNotifyAdminHandler(notifier *services.DiscountNotifier, render *render.Render) *NotifyAdminHandler {
	return &NotifyAdminHandler{
		notifier: notifier,
		render:   render,
	}
}

// BroadcastDiscounts emails every deal subscriber about currently active
// discounts. Returns the send count so the admin can see the reach.
func (h *NotifyAdminHandler) BroadcastDiscounts(w http.ResponseWriter, r *http.Request) {
	sent, err := h.notifier.Broadcast(r.Context())
	if err != nil {
		log.Printf("NotifyAdminHandler.BroadcastDiscounts: broadcast failed: %v", err)
		http.Error(w, "failed to broadcast discounts", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"sent": sent})
}
