package routes

import (
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
)

// routePolicy names the roles allowed to call a route group. Authorization
// lives in this one table instead of being scattered over the handlers; the
// handlers only decide resource-level questions (ownership, lifecycle).
type routePolicy struct {
	roles []models.RoleType
}

var (
	anyAuthenticated = routePolicy{roles: []models.RoleType{models.RoleCitizen, models.RoleWorker, models.RoleAdmin}}
	adminOnly        = routePolicy{roles: []models.RoleType{models.RoleAdmin}}
	workerOnly       = routePolicy{roles: []models.RoleType{models.RoleWorker}}
)

// policies maps logical route groups to the roles that may reach them. The
// per-transition role checks inside the lifecycle engine are stricter; this
// table only keeps obviously foreign traffic out of whole endpoint families.
var policies = map[string]routePolicy{
	"reports.read":      anyAuthenticated,
	"reports.create":    anyAuthenticated,
	"reports.moderate":  adminOnly,
	"reports.work":      workerOnly,
	"reports.delete":    anyAuthenticated, // owner-or-admin decided per resource
	"forum.read":        anyAuthenticated,
	"forum.write":       anyAuthenticated,
	"forum.moderate":    adminOnly,
	"users.self":        anyAuthenticated,
	"admin.users":       adminOnly,
	"admin.invites":     adminOnly,
	"admin.stats":       adminOnly,
}

// rolesFor returns the allowed roles for a route group
func rolesFor(group string) []models.RoleType {
	policy, ok := policies[group]
	if !ok {
		// Unknown groups default to admin so a missing table entry fails
		// closed
		return adminOnly.roles
	}
	return policy.roles
}
