package service

import (
	"time"

	"github.com/campuslabs/coworking-reservation/internal/model"
)

// PolicyConfig carries the reservation policy knobs. Values are injected
// at construction so tests and deployments can substitute alternate
// policies instead of relying on compiled-in constants.
type PolicyConfig struct {
	WalkinWindow                      time.Duration // how far into the future a walk-in may begin
	WalkinInitialDuration             time.Duration // length of a fresh walk-in reservation
	ReservationWindow                 time.Duration // how far in advance a reservation may be booked
	MinimumReservationDuration        time.Duration // shortest bookable slot
	MaximumInitialReservationDuration time.Duration // longest initial booking before an extension is required
	ReservationDraftTimeout           time.Duration // how long a draft survives unconfirmed
	ReservationCheckinTimeout         time.Duration // grace period to check in after the start
}

// DefaultPolicyConfig returns the standing coworking policy.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		WalkinWindow:                      10 * time.Minute,
		WalkinInitialDuration:             2 * time.Hour,
		ReservationWindow:                 7 * 24 * time.Hour,
		MinimumReservationDuration:        10 * time.Minute,
		MaximumInitialReservationDuration: 2 * time.Hour,
		ReservationDraftTimeout:           5 * time.Minute,
		ReservationCheckinTimeout:         10 * time.Minute,
	}
}

// PolicyService answers policy questions for the reservation engine. Every
// method is a pure lookup with no side effects. The user-scoped methods
// accept the acting user so role-based limits can be added later; today
// the answers are uniform for everyone.
type PolicyService struct {
	cfg PolicyConfig
}

// NewPolicyService constructs a PolicyService over the given configuration.
func NewPolicyService(cfg PolicyConfig) *PolicyService {
	return &PolicyService{cfg: cfg}
}

// WalkinWindow returns how far into the future a walk-in may begin.
func (p *PolicyService) WalkinWindow(_ *model.User) time.Duration {
	return p.cfg.WalkinWindow
}

// WalkinInitialDuration returns the length of a fresh walk-in reservation.
func (p *PolicyService) WalkinInitialDuration(_ *model.User) time.Duration {
	return p.cfg.WalkinInitialDuration
}

// ReservationWindow returns how far in advance a non-walk-in reservation
// may be booked.
func (p *PolicyService) ReservationWindow(_ *model.User) time.Duration {
	return p.cfg.ReservationWindow
}

// MinimumReservationDuration returns the shortest bookable slot; free
// slivers below it are not offered as availability.
func (p *PolicyService) MinimumReservationDuration() time.Duration {
	return p.cfg.MinimumReservationDuration
}

// MaximumInitialReservationDuration returns the longest initial booking
// before an extension is required.
func (p *PolicyService) MaximumInitialReservationDuration(_ *model.User) time.Duration {
	return p.cfg.MaximumInitialReservationDuration
}

// ReservationDraftTimeout returns how long a draft reservation survives
// unconfirmed before the sweep cancels it.
func (p *PolicyService) ReservationDraftTimeout() time.Duration {
	return p.cfg.ReservationDraftTimeout
}

// ReservationCheckinTimeout returns how long a confirmed reservation
// survives past its start without a check-in before the sweep cancels it.
func (p *PolicyService) ReservationCheckinTimeout() time.Duration {
	return p.cfg.ReservationCheckinTimeout
}
