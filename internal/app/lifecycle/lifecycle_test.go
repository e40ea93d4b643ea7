package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func pendingReport() *models.Report {
	return &models.Report{
		ID:        "r-1",
		Title:     "Overflowing bins",
		Type:      models.ReportTypeWaste,
		Status:    models.ReportStatusPending,
		CreatedBy: "citizen-1",
	}
}

var (
	admin   = Actor{ID: "admin-1", Role: models.RoleAdmin}
	workerA = Actor{ID: "worker-a", Role: models.RoleWorker}
	workerB = Actor{ID: "worker-b", Role: models.RoleWorker}
	citizen = Actor{ID: "citizen-1", Role: models.RoleCitizen}
)

func TestDecideReportTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		status  models.ReportStatus
		action  Action
		actor   Actor
		payload ReportPayload
		wantTo  models.ReportStatus
		wantErr error
	}{
		{name: "admin approves pending", status: models.ReportStatusPending, action: ActionApprove, actor: admin, wantTo: models.ReportStatusApproved},
		{name: "admin rejects pending with comment", status: models.ReportStatusPending, action: ActionReject, actor: admin, payload: ReportPayload{Comment: "duplicate"}, wantTo: models.ReportStatusRejected},
		{name: "admin rejects pending without comment", status: models.ReportStatusPending, action: ActionReject, actor: admin, wantErr: apperrors.ErrValidationFailed},
		{name: "citizen cannot approve", status: models.ReportStatusPending, action: ActionApprove, actor: citizen, wantErr: apperrors.ErrForbidden},
		{name: "worker cannot approve", status: models.ReportStatusPending, action: ActionApprove, actor: workerA, wantErr: apperrors.ErrForbidden},
		{name: "worker claims approved", status: models.ReportStatusApproved, action: ActionStartWork, actor: workerA, wantTo: models.ReportStatusInProgress},
		{name: "admin cannot claim", status: models.ReportStatusApproved, action: ActionStartWork, actor: admin, wantErr: apperrors.ErrForbidden},
		{name: "no reject from approved", status: models.ReportStatusApproved, action: ActionReject, actor: admin, wantErr: apperrors.ErrInvalidState},
		{name: "admin completes resolved", status: models.ReportStatusResolved, action: ActionComplete, actor: admin, wantTo: models.ReportStatusCompleted},
		{name: "worker cannot complete", status: models.ReportStatusResolved, action: ActionComplete, actor: workerA, wantErr: apperrors.ErrForbidden},
		{name: "approve on in progress is invalid", status: models.ReportStatusInProgress, action: ActionApprove, actor: admin, wantErr: apperrors.ErrInvalidState},
		{name: "rejected is terminal", status: models.ReportStatusRejected, action: ActionApprove, actor: admin, wantErr: apperrors.ErrInvalidState},
		{name: "completed is terminal", status: models.ReportStatusCompleted, action: ActionStartWork, actor: workerA, wantErr: apperrors.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := pendingReport()
			report.Status = tt.status
			if tt.status == models.ReportStatusInProgress || tt.status == models.ReportStatusResolved {
				report.AssignedTo = strPtr(workerA.ID)
			}

			outcome, err := DecideReport(report, tt.action, tt.actor, tt.payload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantTo, outcome.Status)
			assert.True(t, outcome.NotifyCreator)
		})
	}
}

func TestDecideReportClaimConflict(t *testing.T) {
	report := pendingReport()
	report.Status = models.ReportStatusApproved
	report.AssignedTo = strPtr(workerA.ID)

	_, err := DecideReport(report, ActionStartWork, workerB, ReportPayload{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDecideReportResolveGuards(t *testing.T) {
	report := pendingReport()
	report.Status = models.ReportStatusInProgress
	report.AssignedTo = strPtr(workerA.ID)

	// Only the current assignee may resolve.
	_, err := DecideReport(report, ActionResolve, workerB, ReportPayload{ResolutionDetails: "done"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Resolution details are mandatory.
	_, err = DecideReport(report, ActionResolve, workerA, ReportPayload{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	outcome, err := DecideReport(report, ActionResolve, workerA, ReportPayload{
		ResolutionDetails: "fixed pothole",
		ResolutionImages:  []string{"img-1.jpg"},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, outcome.Status)
	assert.Equal(t, "fixed pothole", *outcome.ResolutionDetails)
	assert.Equal(t, []string{"img-1.jpg"}, outcome.ResolutionImages)
}

// Full happy path: Pending -> Approved -> InProgress -> Resolved -> Completed,
// with a losing concurrent claim along the way.
func TestReportLifecycleScenario(t *testing.T) {
	report := pendingReport()

	outcome, err := DecideReport(report, ActionApprove, admin, ReportPayload{})
	assert.NoError(t, err)
	report.Status = outcome.Status
	assert.Equal(t, models.ReportStatusApproved, report.Status)
	assert.Nil(t, report.AssignedTo)

	outcome, err = DecideReport(report, ActionStartWork, workerA, ReportPayload{})
	assert.NoError(t, err)
	report.Status = outcome.Status
	report.AssignedTo = outcome.AssignTo
	assert.Equal(t, models.ReportStatusInProgress, report.Status)
	assert.Equal(t, workerA.ID, *report.AssignedTo)

	// Worker B arrives late: the claim is gone.
	_, err = DecideReport(report, ActionStartWork, workerB, ReportPayload{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	outcome, err = DecideReport(report, ActionResolve, workerA, ReportPayload{ResolutionDetails: "fixed pothole"})
	assert.NoError(t, err)
	report.Status = outcome.Status
	report.ResolutionDetails = outcome.ResolutionDetails
	assert.Equal(t, models.ReportStatusResolved, report.Status)
	assert.Equal(t, "fixed pothole", *report.ResolutionDetails)

	outcome, err = DecideReport(report, ActionComplete, admin, ReportPayload{})
	assert.NoError(t, err)
	report.Status = outcome.Status
	assert.Equal(t, models.ReportStatusCompleted, report.Status)

	// Completed is terminal for every action and every role.
	for _, action := range []Action{ActionApprove, ActionReject, ActionStartWork, ActionResolve, ActionComplete} {
		for _, actor := range []Actor{admin, workerA, citizen} {
			_, err := DecideReport(report, action, actor, ReportPayload{Comment: "x", ResolutionDetails: "x"})
			assert.ErrorIs(t, err, apperrors.ErrInvalidState, "action %s by %s", action, actor.Role)
		}
	}
}

func TestCanDeleteReport(t *testing.T) {
	report := pendingReport()

	assert.NoError(t, CanDeleteReport(report, admin))
	assert.NoError(t, CanDeleteReport(report, citizen))
	assert.ErrorIs(t, CanDeleteReport(report, workerA), apperrors.ErrForbidden)

	report.Status = models.ReportStatusApproved
	assert.ErrorIs(t, CanDeleteReport(report, citizen), apperrors.ErrForbidden)
	assert.NoError(t, CanDeleteReport(report, admin))
}

func TestReportScope(t *testing.T) {
	own := pendingReport()
	foreign := pendingReport()
	foreign.ID = "r-2"
	foreign.CreatedBy = "citizen-2"

	pool := pendingReport()
	pool.ID = "r-3"
	pool.CreatedBy = "citizen-2"
	pool.Status = models.ReportStatusApproved

	mine := pendingReport()
	mine.ID = "r-4"
	mine.CreatedBy = "citizen-2"
	mine.Status = models.ReportStatusInProgress
	mine.AssignedTo = strPtr(workerA.ID)

	adminScope := ScopeFor(admin)
	for _, r := range []*models.Report{own, foreign, pool, mine} {
		assert.True(t, adminScope.Allows(r))
	}

	citizenScope := ScopeFor(citizen)
	assert.True(t, citizenScope.Allows(own))
	assert.False(t, citizenScope.Allows(foreign))
	assert.False(t, citizenScope.Allows(pool))

	workerScope := ScopeFor(workerA)
	assert.False(t, workerScope.Allows(own), "pending reports are not in the worker pool")
	assert.True(t, workerScope.Allows(pool), "approved pool is visible")
	assert.True(t, workerScope.Allows(mine), "own assignment is visible")

	otherWorkerScope := ScopeFor(workerB)
	assert.False(t, otherWorkerScope.Allows(mine), "another worker's assignment is hidden")
}
