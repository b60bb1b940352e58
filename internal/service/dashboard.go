package service

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

// RecentActionsLimit caps the audit entries shown on the dashboard.
const RecentActionsLimit = 10

// Dashboard aggregates the counters, the flagged users and the audit trail.
type Dashboard struct {
	stats    domain.StatsAPI
	users    domain.ResourceAPI[model.User]
	session  domain.SessionAPI
	audit    domain.AuditLog
	recorder domain.ActionRecorder
	actor    string

	TotalUsers         int64
	TotalReportedUsers int64
	Flagged            []model.User
	Recent             []model.ModerationAction
	Notices            []model.Notice
	LoggedOut          bool
}

// DashboardDeps groups the collaborators of a dashboard. Audit may be nil.
type DashboardDeps struct {
	Stats    domain.StatsAPI
	Users    domain.ResourceAPI[model.User]
	Session  domain.SessionAPI
	Audit    domain.AuditLog
	Recorder domain.ActionRecorder
	Actor    string
}

func NewDashboard(deps DashboardDeps) *Dashboard {
	return &Dashboard{
		stats:    deps.Stats,
		users:    deps.Users,
		session:  deps.Session,
		audit:    deps.Audit,
		recorder: deps.Recorder,
		actor:    deps.Actor,
		Flagged:  []model.User{},
		Recent:   []model.ModerationAction{},
	}
}

// Activate issues the independent reads concurrently. Each one fails alone.
func (d *Dashboard) Activate(ctx context.Context) {
	var (
		totalErr, reportedErr error
		total, reported       int64
		flagged               []model.User
	)

	var g errgroup.Group
	g.Go(func() error {
		total, totalErr = d.stats.TotalUsers(ctx)
		return nil
	})
	g.Go(func() error {
		reported, reportedErr = d.stats.TotalReportedUsers(ctx)
		return nil
	})
	g.Go(func() error {
		users, err := d.stats.ReportedUsers(ctx)
		if err != nil {
			log.Printf("Dashboard: Failed to fetch flagged users: %v", err)
			return nil
		}
		flagged = users
		return nil
	})
	g.Go(func() error {
		d.LoadRecent(ctx)
		return nil
	})
	_ = g.Wait()

	if totalErr != nil {
		log.Printf("Dashboard: Error fetching total users: %v", totalErr)
		d.notify(model.ErrorNotice("Error fetching total users"))
	} else {
		d.TotalUsers = total
	}
	if reportedErr != nil {
		log.Printf("Dashboard: Error fetching total reported users: %v", reportedErr)
		d.notify(model.ErrorNotice("Error fetching total reported users"))
	} else {
		d.TotalReportedUsers = reported
	}
	if flagged != nil {
		d.Flagged = flagged
	}
}

// LoadRecent reads the newest audit entries. Failure leaves the list empty.
func (d *Dashboard) LoadRecent(ctx context.Context) {
	if d.audit == nil {
		return
	}
	actions, err := d.audit.Recent(ctx, RecentActionsLimit)
	if err != nil {
		log.Printf("Dashboard: Failed to load recent actions: %v", err)
		return
	}
	if actions != nil {
		d.Recent = actions
	}
}

// Restore reinstates the previously rendered flagged list and counters.
func (d *Dashboard) Restore(snapshot DashboardSnapshot) {
	d.TotalUsers = snapshot.TotalUsers
	d.TotalReportedUsers = snapshot.TotalReportedUsers
	d.Flagged = snapshot.Flagged
	if d.Flagged == nil {
		d.Flagged = []model.User{}
	}
}

// Snapshot captures what Restore needs.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	return DashboardSnapshot{
		TotalUsers:         d.TotalUsers,
		TotalReportedUsers: d.TotalReportedUsers,
		Flagged:            d.Flagged,
	}
}

// DashboardSnapshot is the part of a dashboard kept between requests.
type DashboardSnapshot struct {
	TotalUsers         int64        `json:"total_users"`
	TotalReportedUsers int64        `json:"total_reported_users"`
	Flagged            []model.User `json:"flagged"`
}

func (d *Dashboard) Ban(ctx context.Context, id int) {
	res, err := d.users.Ban(ctx, id)
	recordAction(ctx, d.recorder, d.actor, model.UserKind, id, model.ActionBan, res, err)
	d.applyFlag(id, model.FlagBanned, res, err, "Failed to suspend user", "Error suspending user")
}

func (d *Dashboard) Unban(ctx context.Context, id int) {
	res, err := d.users.Unban(ctx, id)
	recordAction(ctx, d.recorder, d.actor, model.UserKind, id, model.ActionUnban, res, err)
	d.applyFlag(id, model.FlagActive, res, err, "Failed to unban user", "Error unbanning user")
}

func (d *Dashboard) applyFlag(id int, flag model.ActiveFlag, res model.ActionResult, err error, rejected, failed string) {
	switch {
	case err != nil:
		log.Printf("Dashboard: %s %d: %v", failed, id, err)
		d.notify(model.ErrorNotice(failed))
	case !res.Status:
		d.notify(model.ErrorNotice(rejected))
	default:
		d.notify(model.SuccessNotice(res.Message))
		d.Flagged = patchFlag(d.Flagged, id, flag)
	}
}

// Logout ends the remote session. LoggedOut is set only when the service
// confirms; the caller then drops the local session.
func (d *Dashboard) Logout(ctx context.Context) {
	res, err := d.session.Logout(ctx)
	recordAction(ctx, d.recorder, d.actor, model.OperatorKind, 0, model.ActionLogout, res, err)

	switch {
	case err != nil:
		log.Printf("Dashboard: Error during logout: %v", err)
		d.notify(model.ErrorNotice("Error during logout"))
	case res.Status:
		d.LoggedOut = true
		d.notify(model.SuccessNotice(res.Message))
	}
}

// Rows flattens the flagged users for rendering.
func (d *Dashboard) Rows() []ListRow {
	rows := make([]ListRow, 0, len(d.Flagged))
	for _, u := range d.Flagged {
		rows = append(rows, ListRow{
			ID:      u.UserID,
			Summary: u.Summary(),
			Active:  !u.IsActive.Banned(),
			Actions: model.ActionsFor(u.IsActive),
			Avatar:  model.UserKind.MediaPath(u.ImageFile),
		})
	}
	return rows
}

func (d *Dashboard) notify(n model.Notice) {
	d.Notices = append(d.Notices, n)
}
