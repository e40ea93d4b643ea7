package lifecycle

import (
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
)

// ReportScope is the role-dependent predicate determining which reports a
// caller may read. It is enforced identically for list queries and single
// record fetches so that no role can read outside its scope by direct ID
// lookup.
type ReportScope struct {
	// All grants unrestricted read access (admins).
	All bool
	// CreatedBy restricts reads to reports created by this user (citizens).
	CreatedBy string
	// WorkerID grants reads of reports assigned to this worker plus the
	// Approved pool available for claiming (workers).
	WorkerID string
}

// ScopeFor returns the read scope of the actor.
func ScopeFor(actor Actor) ReportScope {
	switch actor.Role {
	case models.RoleAdmin:
		return ReportScope{All: true}
	case models.RoleWorker:
		return ReportScope{WorkerID: actor.ID}
	default:
		return ReportScope{CreatedBy: actor.ID}
	}
}

// Allows reports whether the scope permits reading the given report.
func (s ReportScope) Allows(report *models.Report) bool {
	if s.All {
		return true
	}
	if s.CreatedBy != "" {
		return report.CreatedBy == s.CreatedBy
	}
	if s.WorkerID != "" {
		if report.AssignedTo != nil && *report.AssignedTo == s.WorkerID {
			return true
		}
		return report.Status == models.ReportStatusApproved
	}
	return false
}
