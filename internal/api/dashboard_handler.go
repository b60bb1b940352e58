package api

import (
	"context"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/infra"
	"modconsole.com/internal/modapi"
	"modconsole.com/internal/service"
)

const dashboardSnapshot = "dashboard"

// DashboardHandler serves the landing page and the operator's logout.
type DashboardHandler struct {
	sessions   *infra.SessionStore
	audit      domain.AuditLog
	recorder   domain.ActionRecorder
	cookieName string
}

func NewDashboardHandler(sessions *infra.SessionStore, audit domain.AuditLog, recorder domain.ActionRecorder, cookieName string) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, audit: audit, recorder: recorder, cookieName: cookieName}
}

func (h *DashboardHandler) dashboard(c *fiber.Ctx) *service.Dashboard {
	s := requestScope(c)
	return service.NewDashboard(service.DashboardDeps{
		Stats:    s.conn,
		Users:    modapi.Users(s.conn),
		Session:  s.conn,
		Audit:    h.audit,
		Recorder: h.recorder,
		Actor:    s.actor,
	})
}

// Show renders counters, flagged users and recent actions.
// GET /dashboard
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	d := h.dashboard(c)
	d.Activate(c.UserContext())
	return h.renderDashboard(c, d)
}

// BanUser suspends a flagged user.
// POST /dashboard/user/:id/ban
func (h *DashboardHandler) BanUser(c *fiber.Ctx) error {
	return h.moderate(c, (*service.Dashboard).Ban)
}

// UnbanUser lifts a flagged user's suspension.
// POST /dashboard/user/:id/unban
func (h *DashboardHandler) UnbanUser(c *fiber.Ctx) error {
	return h.moderate(c, (*service.Dashboard).Unban)
}

func (h *DashboardHandler) moderate(c *fiber.Ctx, command func(*service.Dashboard, context.Context, int)) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	d := h.dashboard(c)
	var snapshot service.DashboardSnapshot
	ok, err := h.sessions.LoadView(c.UserContext(), requestScope(c).sessionID, dashboardSnapshot, &snapshot)
	if err != nil {
		log.Printf("DashboardHandler: Failed to restore dashboard: %v", err)
	}
	if ok {
		d.Restore(snapshot)
		d.LoadRecent(c.UserContext())
	} else {
		d.Activate(c.UserContext())
	}

	command(d, c.UserContext(), id)
	return h.renderDashboard(c, d)
}

// Logout ends the remote session and, once confirmed, the local one.
// POST /logout
func (h *DashboardHandler) Logout(c *fiber.Ctx) error {
	d := h.dashboard(c)
	d.Logout(c.UserContext())

	if !d.LoggedOut {
		for _, n := range d.Notices {
			flash(c, h.sessions, n)
		}
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	if err := h.sessions.Destroy(c.UserContext(), requestScope(c).sessionID); err != nil {
		log.Printf("DashboardHandler: Failed to destroy session: %v", err)
	}
	c.ClearCookie(h.cookieName)

	target := "/signin"
	if len(d.Notices) > 0 && d.Notices[0].Message != "" {
		target += "?message=" + url.QueryEscape(d.Notices[0].Message)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

func (h *DashboardHandler) renderDashboard(c *fiber.Ctx, d *service.Dashboard) error {
	if err := h.sessions.SaveView(c.UserContext(), requestScope(c).sessionID, dashboardSnapshot, d.Snapshot()); err != nil {
		log.Printf("DashboardHandler: Failed to save dashboard: %v", err)
	}
	return render(c, fiber.StatusOK, "dashboard", fiber.Map{
		"Title":              "Dashboard",
		"TotalUsers":         d.TotalUsers,
		"TotalReportedUsers": d.TotalReportedUsers,
		"Rows":               d.Rows(),
		"Recent":             d.Recent,
		"Notices":            pageNotices(c, h.sessions, d.Notices...),
	})
}
