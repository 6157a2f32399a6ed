// Package commands is the platform-agnostic command surface: the operations
// a chat frontend exposes to members for managing their profile.
package commands

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/RobotSudo/time-bot/internal/domain"
	"github.com/RobotSudo/time-bot/internal/store"
)

// ErrNotConfigured is returned when a query needs a field the user never set.
var ErrNotConfigured = errors.New("user has not set a timezone")

// Service executes profile commands against the store.
type Service struct {
	repo store.Repo
	log  *zap.Logger
}

func New(repo store.Repo, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// SetLocalTime resolves the user's UTC offset from the wall-clock time they
// claim it is at the given instant, and persists it. Returns the stored
// offset. A malformed time yields domain.ErrBadTime with no state change.
func (s *Service) SetLocalTime(ctx context.Context, userID, raw string, now time.Time) (float64, error) {
	offset, err := domain.ResolveOffset(raw, now)
	if err != nil {
		return 0, err
	}
	if err := s.repo.SetOffset(ctx, userID, offset); err != nil {
		return 0, err
	}
	s.log.Info("offset set",
		zap.String("userID", userID),
		zap.Float64("offset", offset),
	)
	return offset, nil
}

// SetBirthday validates and persists a birthday, returning the canonical
// MM-DD form. The store clears any prior announcement year in the same write.
func (s *Service) SetBirthday(ctx context.Context, userID, raw string) (string, error) {
	md, err := domain.ParseBirthday(raw)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetBirthday(ctx, userID, md); err != nil {
		return "", err
	}
	s.log.Info("birthday set",
		zap.String("userID", userID),
		zap.String("birthday", md),
	)
	return md, nil
}

// LocalTime returns the user's current local clock (12-hour format) and
// their stored offset. ErrNotConfigured if the user never set an offset.
func (s *Service) LocalTime(ctx context.Context, userID string, now time.Time) (string, float64, error) {
	p, err := s.repo.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return "", 0, ErrNotConfigured
	}
	if err != nil {
		return "", 0, err
	}
	if p.UTCOffset == nil {
		return "", 0, ErrNotConfigured
	}
	local := domain.AtOffset(now, *p.UTCOffset)
	return domain.FormatClock(local), *p.UTCOffset, nil
}
