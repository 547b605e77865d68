package services

import (
	"context"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/messaging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
)

// WarmingService pre-computes the default views on an interval shorter
// than the cache TTL so interactive requests rarely pay the compute
// cost. Disabled unless configured.
type WarmingService struct {
	analyticsService *AnalyticsService
	broadcaster      *messaging.Broadcaster
	logger           *logging.ChanneledLogger
	interval         time.Duration
	cancel           context.CancelFunc
	done             chan struct{}
}

// NewWarmingService creates the warming loop with the given interval.
func NewWarmingService(analyticsService *AnalyticsService, broadcaster *messaging.Broadcaster, interval time.Duration, logger *logging.ChanneledLogger) *WarmingService {
	return &WarmingService{
		analyticsService: analyticsService,
		broadcaster:      broadcaster,
		logger:           logger,
		interval:         interval,
		done:             make(chan struct{}),
	}
}

// Start launches the warming loop. One warm pass runs immediately,
// then one per interval until Stop is called.
func (s *WarmingService) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx)
}

// Stop halts the loop and waits for any in-flight pass to finish.
func (s *WarmingService) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *WarmingService) run(ctx context.Context) {
	defer close(s.done)
	s.warm(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

func (s *WarmingService) warm(ctx context.Context) {
	start := time.Now()
	warmed := make([]string, 0, len(analytics.ViewNames))
	for _, viewName := range analytics.ViewNames {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.analyticsService.Get(ctx, viewName, analytics.Params{}); err != nil {
			s.logger.Cache().Warn("Cache warming failed for view", "view", viewName, "error", err.Error())
			continue
		}
		warmed = append(warmed, viewName)
	}
	s.logger.Cache().Info("Cache warming pass completed", "views", len(warmed), "duration", time.Since(start))

	if s.broadcaster != nil && len(warmed) > 0 {
		s.broadcaster.NotifyRefresh(messaging.RefreshNotice{
			Kind:        "warm",
			CompletedAt: time.Now().UTC(),
			Views:       warmed,
		})
	}
}
