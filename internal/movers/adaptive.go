package movers

import "github.com/bioshell-go/bioshell/internal/bioshelllog"

// Ranged is implemented by movers whose step size can be read back and
// adjusted — every mover in this package, VolumeChange included,
// exposes this so the adaptive decorator can drive it without a type
// switch per mover kind.
type Ranged interface {
	Range() float64
	SetRange(v float64)
}

// Adaptive wraps a Mover and widens or narrows its step range every
// Every proposals (Accepted plus Rejected calls), targeting an
// acceptance rate near Target (spec.md
// §4.4: "A decorator sampler monitors success rate and widens or
// narrows max_range to track a target acceptance fraction, typically
// once every few hundred sweeps").
//
// Grounded on the teacher's sampling package, which tracked acceptance
// counts per mover but applied no feedback to step size; the adaptive
// feedback loop itself follows the general form described in spec.md.
type Adaptive struct {
	Mover
	ranged Ranged

	Target float64
	Every  int

	proposed int
	accepted int
}

// NewAdaptive wraps inner, which must also implement Ranged, with an
// adaptive step-size controller.
func NewAdaptive(inner interface {
	Mover
	Ranged
}, target float64, every int) *Adaptive {
	return &Adaptive{Mover: inner, ranged: inner, Target: target, Every: every}
}

// Accepted records an acceptance and, every Every proposals, adjusts range.
func (a *Adaptive) Accepted() {
	a.Mover.Accepted()
	a.proposed++
	a.accepted++
	a.maybeAdjust()
}

// Rejected records a rejection and, every Every proposals, adjusts range.
func (a *Adaptive) Rejected() {
	a.Mover.Rejected()
	a.proposed++
	a.maybeAdjust()
}

func (a *Adaptive) maybeAdjust() {
	if a.proposed < a.Every {
		return
	}
	rate := float64(a.accepted) / float64(a.proposed)
	current := a.ranged.Range()

	switch {
	case rate > a.Target:
		a.ranged.SetRange(current * 1.1)
	case rate < a.Target:
		a.ranged.SetRange(current * 0.9)
	}

	bioshelllog.Logger().WithField("mover", a.Mover.Name()).
		WithField("acceptance_rate", rate).
		WithField("new_range", a.ranged.Range()).
		Debug("adaptive range updated")

	a.proposed = 0
	a.accepted = 0
}

// AcceptanceRate returns the running acceptance fraction since the last adjustment.
func (a *Adaptive) AcceptanceRate() float64 {
	if a.proposed == 0 {
		return 0
	}
	return float64(a.accepted) / float64(a.proposed)
}
