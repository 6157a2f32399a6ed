package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/RobotSudo/time-bot/internal/domain"
	"github.com/RobotSudo/time-bot/internal/store"
)

// Member is a platform-level handle to a user within one guild.
type Member struct {
	ID          string
	DisplayName string
	Mention     string
	HasRole     bool // marker role currently held in this guild
}

// Platform is the minimal surface the scheduler needs from the chat
// platform. All calls are fallible network operations; the scheduler logs
// failures and keeps going.
type Platform interface {
	// Contexts lists the guilds the bot currently serves.
	Contexts() []string
	// Member resolves a user within a guild; false means not a member there.
	Member(ctx context.Context, guildID, userID string) (*Member, bool)
	GrantRole(ctx context.Context, guildID, userID string) error
	RevokeRole(ctx context.Context, guildID, userID string) error
	Announce(ctx context.Context, guildID string, m *Member) error
}

// Scheduler drives birthday evaluation on a fixed wall-clock tick. Each user
// is evaluated at most once per their local calendar day, in the tick whose
// minute window contains their local midnight.
type Scheduler struct {
	repo     store.Repo
	log      *zap.Logger
	platform Platform
	interval time.Duration

	// callTimeout bounds each individual platform call so one slow guild
	// never stalls the rest of the tick.
	callTimeout time.Duration
}

// New creates a Scheduler. The interval must stay well under 24h so no local
// midnight is missed; the intended value is one minute.
func New(repo store.Repo, log *zap.Logger, platform Platform, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		repo:        repo,
		log:         log,
		platform:    platform,
		interval:    interval,
		callTimeout: 10 * time.Second,
	}
}

// Run starts the loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx, time.Now().UTC())
		}
	}
}

// tick performs one scheduling cycle: scan all profiles, find users whose
// local clock is inside the midnight minute, gate on their local day, and
// apply the evaluator's verdict.
func (s *Scheduler) tick(ctx context.Context, utcNow time.Time) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("list profiles failed", zap.Error(err))
		return
	}
	guilds := s.platform.Contexts()

	for i := range profiles {
		p := &profiles[i]
		if !p.Configured() {
			continue
		}

		localNow := domain.AtOffset(utcNow, *p.UTCOffset)
		if localNow.Hour() != 0 || localNow.Minute() != 0 {
			continue
		}

		// Local-day gate: at most one evaluation per local calendar day,
		// even if the ticker fires twice inside the same minute or the
		// process restarts. Persisted before evaluating, so a crash can
		// skip a day but never double-run it. The stored date only moves
		// forward: an offset change that shifts the user's clock west
		// must not replay a date already evaluated. YYYY-MM-DD keys
		// order correctly as strings.
		todayKey := domain.DateKey(localNow)
		if p.LastChecked != nil && *p.LastChecked >= todayKey {
			continue
		}
		if err := s.repo.SetLastChecked(ctx, p.UserID, todayKey); err != nil {
			s.log.Error("persist day gate failed",
				zap.Error(err),
				zap.String("userID", p.UserID),
			)
			continue
		}

		s.apply(ctx, p, domain.Evaluate(p, localNow), localNow, guilds)
	}
}

// apply carries out the evaluator's verdict across every guild the user is a
// member of. Role state is per guild; the announcement-year gate is shared.
func (s *Scheduler) apply(ctx context.Context, p *domain.Profile, act domain.Action, localNow time.Time, guilds []string) {
	switch act.Kind {
	case domain.ActionCelebrate:
		announced := false
		for _, g := range guilds {
			m, ok := s.member(ctx, g, p.UserID)
			if !ok {
				continue
			}
			if !m.HasRole {
				if err := s.call(ctx, func(c context.Context) error {
					return s.platform.GrantRole(c, g, p.UserID)
				}); err != nil {
					s.log.Error("grant role failed",
						zap.Error(err),
						zap.String("guildID", g),
						zap.String("userID", p.UserID),
					)
				}
			}
			if act.Announce {
				if err := s.call(ctx, func(c context.Context) error {
					return s.platform.Announce(c, g, m)
				}); err != nil {
					s.log.Error("announce failed",
						zap.Error(err),
						zap.String("guildID", g),
						zap.String("userID", p.UserID),
					)
					continue
				}
				announced = true
			}
		}
		// The year gate closes only after an announcement actually went
		// out, so a tick where every send failed leaves it open.
		if act.Announce && announced {
			if err := s.repo.SetLastAnnounced(ctx, p.UserID, localNow.Year()); err != nil {
				s.log.Error("persist announce year failed",
					zap.Error(err),
					zap.String("userID", p.UserID),
				)
			}
		}

	case domain.ActionEnd:
		for _, g := range guilds {
			m, ok := s.member(ctx, g, p.UserID)
			if !ok || !m.HasRole {
				continue
			}
			if err := s.call(ctx, func(c context.Context) error {
				return s.platform.RevokeRole(c, g, p.UserID)
			}); err != nil {
				s.log.Error("revoke role failed",
					zap.Error(err),
					zap.String("guildID", g),
					zap.String("userID", p.UserID),
				)
			}
		}
	}
}

func (s *Scheduler) member(ctx context.Context, guildID, userID string) (*Member, bool) {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.platform.Member(cctx, guildID, userID)
}

func (s *Scheduler) call(ctx context.Context, fn func(context.Context) error) error {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return fn(cctx)
}
