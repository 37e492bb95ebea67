package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/enactusftu/gatekeeper/internal/store"
	"github.com/enactusftu/gatekeeper/internal/verify"
)

// AdminHandler exposes operational insight into the verification
// workflow: the in-flight sessions and manual triggers for the sweep and
// individual expiry.  Everything here reads or drives the same machine
// the gateway events do, so the usual idempotency guards apply.
type AdminHandler struct {
	Sessions *store.SessionStore
	Machine  *verify.Machine
}

func NewAdminHandler(sessions *store.SessionStore, machine *verify.Machine) *AdminHandler {
	return &AdminHandler{Sessions: sessions, Machine: machine}
}

type sessionPart struct {
	SessionID string    `json:"session_id"`
	MemberID  string    `json:"member_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Ban       string    `json:"ban"`
	CreatedAt time.Time `json:"created_at"`
}

// ListSessions returns every pending verification.
func (h *AdminHandler) ListSessions(c echo.Context) error {
	sessions := h.Sessions.List()
	out := make([]sessionPart, 0, len(sessions))
	for _, pv := range sessions {
		out = append(out, sessionPart{
			SessionID: pv.SessionID,
			MemberID:  pv.MemberID,
			Email:     pv.Email,
			Name:      pv.Record.Name,
			Ban:       pv.Record.Ban,
			CreatedAt: pv.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(out), "sessions": out})
}

// TriggerSweep runs one reconciliation pass immediately.
func (h *AdminHandler) TriggerSweep(c echo.Context) error {
	h.Machine.Sweep(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"status": "sweep completed"})
}

// ExpireMember forces the expiry path for one member.  The machine's
// stale-timer guard still protects verified members, so this cannot be
// used to remove someone who already completed verification.
func (h *AdminHandler) ExpireMember(c echo.Context) error {
	memberID := c.Param("id")
	if memberID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	h.Machine.OnDeadlineFired(c.Request().Context(), memberID)
	return c.JSON(http.StatusOK, echo.Map{"status": "expiry processed", "member_id": memberID})
}
