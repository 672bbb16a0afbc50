package service

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := NewPolicyService(DefaultPolicyConfig())

	if got := p.WalkinWindow(nil); got != 10*time.Minute {
		t.Errorf("WalkinWindow = %v, want 10m", got)
	}
	if got := p.WalkinInitialDuration(nil); got != 2*time.Hour {
		t.Errorf("WalkinInitialDuration = %v, want 2h", got)
	}
	if got := p.ReservationWindow(nil); got != 7*24*time.Hour {
		t.Errorf("ReservationWindow = %v, want 168h", got)
	}
	if got := p.MinimumReservationDuration(); got != 10*time.Minute {
		t.Errorf("MinimumReservationDuration = %v, want 10m", got)
	}
	if got := p.MaximumInitialReservationDuration(nil); got != 2*time.Hour {
		t.Errorf("MaximumInitialReservationDuration = %v, want 2h", got)
	}
	if got := p.ReservationDraftTimeout(); got != 5*time.Minute {
		t.Errorf("ReservationDraftTimeout = %v, want 5m", got)
	}
	if got := p.ReservationCheckinTimeout(); got != 10*time.Minute {
		t.Errorf("ReservationCheckinTimeout = %v, want 10m", got)
	}
}
