package core

import (
	"strings"

	"hrconsole/internal/domain/auth"
)

// FilterEmployeeFields blanks contact details the actor has no business
// seeing: elevated actors, the creator and the employee themself keep them.
func FilterEmployeeFields(emp *Employee, actor *auth.Actor) {
	if actor.Elevated() {
		return
	}
	if actor != nil && actor.ID != "" && (actor.ID == emp.CreatedBy || actor.ID == emp.UserID) {
		return
	}
	emp.Email = ""
	emp.Phone = ""
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
