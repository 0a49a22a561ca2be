package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/birrflow/birrflow/pkg/user"
)

type Service interface {
	// GetPreferences never fails on a missing or unreadable blob; it
	// falls back to the defaults so the projection always has a profile.
	GetPreferences(ctx context.Context) (Preferences, error)
	SavePreferences(ctx context.Context, prefs Preferences) (Preferences, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetPreferences(ctx context.Context) (Preferences, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Preferences{}, err
	}
	blob, err := s.repo.Get(ctx, userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultPreferences(), nil
		}
		return Preferences{}, err
	}
	var prefs Preferences
	if err := json.Unmarshal(blob, &prefs); err != nil {
		log.Warnf("Unreadable preferences for user %d, using defaults: %v", userId, err)
		return DefaultPreferences(), nil
	}
	if prefs.Version != CurrentVersion {
		log.Warnf("Preferences version %d for user %d is not current, using defaults", prefs.Version, userId)
		return DefaultPreferences(), nil
	}
	return prefs, nil
}

func (s *ServiceImpl) SavePreferences(ctx context.Context, prefs Preferences) (Preferences, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Preferences{}, err
	}
	prefs.Version = CurrentVersion
	if prefs.Multipliers.Regular == 0 {
		prefs.Multipliers.Regular = 1
	}
	blob, err := json.Marshal(prefs)
	if err != nil {
		return Preferences{}, err
	}
	if err := s.repo.Save(ctx, userId, blob); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}
