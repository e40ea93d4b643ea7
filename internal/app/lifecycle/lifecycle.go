// Package lifecycle is the decision core of the application: given an
// entity's current state, the acting user's role and a requested action, it
// decides whether the transition is permitted, what the resulting state is
// and which side effects the store must apply. It performs no I/O; the
// repositories translate its outcomes into (conditional) writes.
package lifecycle

import (
	"strings"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
)

// Action identifies a requested lifecycle transition.
type Action string

const (
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionStartWork Action = "start_work"
	ActionResolve   Action = "resolve"
	ActionComplete  Action = "complete"
)

// Actor is the acting user as seen by the engine.
type Actor struct {
	ID   string
	Role models.RoleType
}

// ReportPayload carries the action-specific input of a report transition.
type ReportPayload struct {
	Comment           string   // reject: required rejection reason
	ResolutionDetails string   // resolve: required resolution summary
	ResolutionImages  []string // resolve: optional evidence images
}

// ReportOutcome describes the resulting state and the side effects the store
// must apply for a permitted transition.
type ReportOutcome struct {
	Status models.ReportStatus

	// AssignTo is set on start_work: the actor claims the report. The store
	// must apply it as a conditional write (assigned_to IS NULL) so that of
	// two concurrent claims exactly one wins; the loser gets ErrConflict.
	AssignTo *string

	ResolutionDetails *string
	ResolutionImages  []string
	Comment           *string

	// NotifyCreator indicates the report creator should receive a
	// best-effort status-change notification.
	NotifyCreator bool
}

type reportTransitionKey struct {
	from   models.ReportStatus
	action Action
}

type reportRule struct {
	role models.RoleType
	to   models.ReportStatus
}

// reportTransitions is the single authoritative transition table for the
// report lifecycle. Rejected and Completed are terminal; there is no reject
// from Approved and no reassignment of a claimed report.
var reportTransitions = map[reportTransitionKey]reportRule{
	{models.ReportStatusPending, ActionApprove}:     {models.RoleAdmin, models.ReportStatusApproved},
	{models.ReportStatusPending, ActionReject}:      {models.RoleAdmin, models.ReportStatusRejected},
	{models.ReportStatusApproved, ActionStartWork}:  {models.RoleWorker, models.ReportStatusInProgress},
	{models.ReportStatusInProgress, ActionResolve}:  {models.RoleWorker, models.ReportStatusResolved},
	{models.ReportStatusResolved, ActionComplete}:   {models.RoleAdmin, models.ReportStatusCompleted},
}

// DecideReport evaluates a requested report transition. It returns the
// outcome to apply, or one of the typed errors: ErrInvalidState when no
// transition is defined from the current state, ErrForbidden when the actor's
// role (or identity, for resolve) does not permit it, ErrConflict when the
// report is already claimed by another worker, and ErrValidationFailed when a
// required payload field is missing.
func DecideReport(report *models.Report, action Action, actor Actor, payload ReportPayload) (ReportOutcome, error) {
	// A claim on a report another worker already holds is a conflict, not an
	// undefined transition, even when the loser's read is stale and the
	// status has moved past Approved. Terminal states stay InvalidState.
	if action == ActionStartWork && actor.Role == models.RoleWorker && !report.Status.Terminal() &&
		report.AssignedTo != nil && *report.AssignedTo != actor.ID {
		return ReportOutcome{}, apperrors.NewConflictError("report is already assigned to another worker")
	}

	rule, ok := reportTransitions[reportTransitionKey{report.Status, action}]
	if !ok {
		return ReportOutcome{}, apperrors.NewInvalidStateError(
			"action " + string(action) + " is not defined from status " + string(report.Status))
	}

	if actor.Role != rule.role {
		return ReportOutcome{}, apperrors.NewForbiddenError(
			"role " + string(actor.Role) + " may not " + string(action) + " a report")
	}

	outcome := ReportOutcome{Status: rule.to, NotifyCreator: true}

	switch action {
	case ActionReject:
		if strings.TrimSpace(payload.Comment) == "" {
			return ReportOutcome{}, apperrors.NewValidationError("a rejection comment is required")
		}
		comment := payload.Comment
		outcome.Comment = &comment

	case ActionStartWork:
		// First worker to claim wins; the store's conditional write closes
		// the race between two claims that both read an unassigned report.
		id := actor.ID
		outcome.AssignTo = &id

	case ActionResolve:
		if report.AssignedTo == nil || *report.AssignedTo != actor.ID {
			return ReportOutcome{}, apperrors.NewForbiddenError("only the assigned worker may resolve this report")
		}
		if strings.TrimSpace(payload.ResolutionDetails) == "" {
			return ReportOutcome{}, apperrors.NewValidationError("resolution details are required")
		}
		details := payload.ResolutionDetails
		outcome.ResolutionDetails = &details
		outcome.ResolutionImages = payload.ResolutionImages
	}

	return outcome, nil
}

// CanDeleteReport decides whether the actor may delete a report: the owner
// while it is still Pending, or an admin at any time.
func CanDeleteReport(report *models.Report, actor Actor) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if report.CreatedBy == actor.ID && report.Status == models.ReportStatusPending {
		return nil
	}
	return apperrors.NewForbiddenError("only the owner of a pending report or an admin may delete it")
}
