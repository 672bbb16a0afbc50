package service

import (
	"fmt"

	"github.com/campuslabs/coworking-reservation/internal/model"
)

// Permission actions enforced by the reservation engine.
const (
	ActionManageReservations   = "coworking.reservation.manage"
	ActionManageOperatingHours = "coworking.operating_hours.manage"
)

// Authorizer decides whether a subject may perform an action on a
// resource. It fails with an error wrapping ErrUnauthorized when the
// permission is missing; the engine propagates that unchanged so the API
// layer can answer 403.
type Authorizer interface {
	Enforce(subject *model.User, action, resource string) error
}

// RoleAuthorizer grants actions by role name. It is the in-process stand-in
// for the campus permission service: staff and admins may manage any
// reservation and the operating schedule, students only their own rows
// (which the engine checks before consulting the authorizer at all).
type RoleAuthorizer struct {
	grants map[string][]string
}

// NewRoleAuthorizer builds the default role grant table.
func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{
		grants: map[string][]string{
			model.RoleStaff: {ActionManageReservations, ActionManageOperatingHours},
			model.RoleAdmin: {"*"},
		},
	}
}

// Enforce returns nil when the subject's role grants the action, otherwise
// an error wrapping ErrUnauthorized naming the action and resource.
func (a *RoleAuthorizer) Enforce(subject *model.User, action, resource string) error {
	if subject != nil {
		for _, granted := range a.grants[subject.Role] {
			if granted == "*" || granted == action {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrUnauthorized, action, resource)
}
