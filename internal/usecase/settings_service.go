package usecase

import (
	"context"

	"github.com/cnfl/fantasy-cricket/internal/domain/sitesettings"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// SettingsService reads and patches the site presentation singleton.
type SettingsService struct {
	store  *store.Store
	logger *logging.Logger
}

func NewSettingsService(st *store.Store, logger *logging.Logger) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SettingsService{store: st, logger: logger}
}

func (s *SettingsService) GetSettings(ctx context.Context) (sitesettings.Settings, error) {
	_, span := startUsecaseSpan(ctx, "SettingsService.GetSettings")
	defer span.End()

	return s.store.Snapshot().Settings, nil
}

// UpdateSettings shallow-merges the provided fields over the current
// settings; omitted fields keep their value.
func (s *SettingsService) UpdateSettings(ctx context.Context, patch sitesettings.Settings) (sitesettings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "SettingsService.UpdateSettings")
	defer span.End()

	after := s.store.Dispatch(store.UpdateSiteSettings{Patch: patch})
	s.logger.InfoContext(ctx, "site settings updated")
	return after.Settings, nil
}
