package domain

import "time"

// ActionKind classifies what the scheduler should do for a user after
// evaluating their local day.
type ActionKind int

const (
	// ActionNone means the profile is not fully configured.
	ActionNone ActionKind = iota
	// ActionCelebrate means the local date is the user's effective birthday:
	// the marker role should be held, and possibly announced.
	ActionCelebrate
	// ActionEnd means the local date is not the birthday: retract the
	// marker role if present. Idempotent when the role is already absent.
	ActionEnd
)

// Action is the evaluator's verdict for one user on one local day.
type Action struct {
	Kind ActionKind
	// Announce is set on the first celebrating evaluation of a local year.
	// Continuing a celebration (role already granted, announcement already
	// sent this year) keeps the role without repeating the announcement.
	Announce bool
}

// Evaluate decides the celebration state for a profile at the given local
// time. Pure: it never touches storage or platform state; the caller commits
// the resulting bookkeeping.
func Evaluate(p *Profile, localNow time.Time) Action {
	if !p.Configured() {
		return Action{Kind: ActionNone}
	}
	effective := EffectiveBirthday(*p.Birthday, localNow.Year())
	if localNow.Format("01-02") != effective {
		return Action{Kind: ActionEnd}
	}
	announce := p.LastAnnounced == nil || *p.LastAnnounced != localNow.Year()
	return Action{Kind: ActionCelebrate, Announce: announce}
}
