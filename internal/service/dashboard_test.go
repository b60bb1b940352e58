package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

type fakeAudit struct {
	actions []model.ModerationAction
	err     error
	limit   int
}

func (a *fakeAudit) Recent(_ context.Context, limit int) ([]model.ModerationAction, error) {
	a.limit = limit
	return a.actions, a.err
}

func TestDashboardActivateIndependentFailures(t *testing.T) {
	stats := &fakeStats{
		totalErr:   errors.New("down"),
		reported:   4,
		flaggedErr: errors.New("down"),
	}
	audit := &fakeAudit{actions: []model.ModerationAction{{Action: model.ActionBan}}}
	d := NewDashboard(DashboardDeps{Stats: stats, Audit: audit})
	d.Activate(t.Context())

	assert.Equal(t, int64(0), d.TotalUsers)
	assert.Equal(t, int64(4), d.TotalReportedUsers)
	assert.NotNil(t, d.Flagged)
	assert.Empty(t, d.Flagged)
	assert.Len(t, d.Recent, 1)
	assert.Equal(t, RecentActionsLimit, audit.limit)
	assert.Equal(t, []model.Notice{model.ErrorNotice("Error fetching total users")}, d.Notices)
}

func TestDashboardActivateBothCountersFail(t *testing.T) {
	stats := &fakeStats{totalErr: errors.New("a"), reportedErr: errors.New("b")}
	d := NewDashboard(DashboardDeps{Stats: stats})
	d.Activate(t.Context())

	assert.Equal(t, []model.Notice{
		model.ErrorNotice("Error fetching total users"),
		model.ErrorNotice("Error fetching total reported users"),
	}, d.Notices)
}

func TestDashboardBanPatchesFlaggedSubset(t *testing.T) {
	users := &fakeResource[model.User]{
		banRes:   model.ActionResult{Status: true, Message: "suspended"},
		unbanRes: model.ActionResult{Status: false},
	}
	rec := &fakeRecorder{}
	d := NewDashboard(DashboardDeps{Users: users, Recorder: rec, Actor: "admin"})
	d.Restore(DashboardSnapshot{TotalUsers: 10, Flagged: twoUsers()})

	d.Ban(t.Context(), 43)
	assert.Equal(t, model.FlagActive, d.Flagged[0].IsActive)
	assert.Equal(t, model.FlagBanned, d.Flagged[1].IsActive)

	d.Unban(t.Context(), 43)
	assert.Equal(t, model.FlagBanned, d.Flagged[1].IsActive)

	assert.Equal(t, []model.Notice{
		model.SuccessNotice("suspended"),
		model.ErrorNotice("Failed to unban user"),
	}, d.Notices)
	assert.Equal(t, int64(10), d.Snapshot().TotalUsers)
	require.Len(t, rec.actions, 2)
	assert.False(t, rec.actions[1].Succeeded)
}

func TestDashboardBanTransportFailure(t *testing.T) {
	users := &fakeResource[model.User]{banErr: domain.NewUnavailableError(errors.New("refused"))}
	d := NewDashboard(DashboardDeps{Users: users})
	d.Restore(DashboardSnapshot{Flagged: twoUsers()})

	d.Ban(t.Context(), 42)

	assert.Equal(t, model.FlagActive, d.Flagged[0].IsActive)
	assert.Equal(t, []model.Notice{model.ErrorNotice("Error suspending user")}, d.Notices)
}

func TestDashboardLogout(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		session := &fakeSession{res: model.ActionResult{Status: true, Message: "bye"}}
		d := NewDashboard(DashboardDeps{Session: session})
		d.Logout(t.Context())
		assert.True(t, d.LoggedOut)
		assert.Equal(t, []model.Notice{model.SuccessNotice("bye")}, d.Notices)
	})

	t.Run("failed", func(t *testing.T) {
		session := &fakeSession{err: errors.New("timeout")}
		d := NewDashboard(DashboardDeps{Session: session})
		d.Logout(t.Context())
		assert.False(t, d.LoggedOut)
		assert.Equal(t, []model.Notice{model.ErrorNotice("Error during logout")}, d.Notices)
	})

	t.Run("declined", func(t *testing.T) {
		session := &fakeSession{res: model.ActionResult{Status: false}}
		d := NewDashboard(DashboardDeps{Session: session})
		d.Logout(t.Context())
		assert.False(t, d.LoggedOut)
		assert.Empty(t, d.Notices)
	})
}
