package login

import (
	"context"
	"strings"

	"channelengine-sync/internal/repository/settings"
	"github.com/sirupsen/logrus"
)

type credentialValidator interface {
	ValidateCredentials(ctx context.Context, accountName, apiKey string) bool
}

// Service validates operator-supplied ChannelEngine credentials and persists
// them on success. Credentials are never stored before the remote API has
// accepted them.
type Service struct {
	api      credentialValidator
	settings settings.Store
	logger   *logrus.Logger
}

func New(api credentialValidator, store settings.Store, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{api: api, settings: store, logger: logger}
}

// Login returns true when the credentials were accepted and persisted.
// Empty inputs are rejected without a network call. Repeating a successful
// login simply re-persists the same values. The error is non-nil only when
// persisting validated credentials fails.
func (s *Service) Login(ctx context.Context, accountName, apiKey string) (bool, error) {
	accountName = strings.TrimSpace(accountName)
	apiKey = strings.TrimSpace(apiKey)
	if accountName == "" || apiKey == "" {
		return false, nil
	}

	if !s.api.ValidateCredentials(ctx, accountName, apiKey) {
		s.logger.WithField("account", accountName).Info("login: credentials rejected")
		return false, nil
	}

	if err := s.settings.Set(ctx, settings.KeyAccountName, accountName); err != nil {
		return false, err
	}
	if err := s.settings.Set(ctx, settings.KeyAPIKey, apiKey); err != nil {
		return false, err
	}

	s.logger.WithField("account", accountName).Info("login: credentials saved")
	return true, nil
}
