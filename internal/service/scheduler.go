package service

import (
	"context"
	"time"

	"crypto-dashboard/config"
	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/repository"
	"crypto-dashboard/pkg/cache"
	"crypto-dashboard/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CacheKeyLatestSignals adalah kunci cache batch sinyal komposit terakhir
// yang dihasilkan scheduler.
const CacheKeyLatestSignals = "mega_signals:latest"

// SignalSchedulerService menjalankan scoring ulang watchlist secara periodik:
// hasilnya di-cache untuk dashboard dan riwayatnya disimpan.
type SignalSchedulerService interface {
	Start(ctx context.Context) error
	Stop()
	RefreshSignals(ctx context.Context)
}

type signalSchedulerService struct {
	cfg           *config.Config
	log           *logger.Logger
	signalService SignalService
	signalRepo    repository.CompositeSignalRepository
	cache         cache.Cache
	cron          *cron.Cron
}

func NewSignalSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	signalService SignalService,
	signalRepo repository.CompositeSignalRepository,
	c cache.Cache,
) SignalSchedulerService {
	return &signalSchedulerService{
		cfg:           cfg,
		log:           log,
		signalService: signalService,
		signalRepo:    signalRepo,
		cache:         c,
		cron:          cron.New(),
	}
}

func (s *signalSchedulerService) Start(ctx context.Context) error {
	if !s.cfg.Scheduler.Enabled || len(s.cfg.Scheduler.Watchlist) == 0 {
		s.log.Info("Signal scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronSchedule, func() {
		s.RefreshSignals(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Signal scheduler started",
		logger.StringField("schedule", s.cfg.Scheduler.CronSchedule),
		logger.IntField("watchlist_size", len(s.cfg.Scheduler.Watchlist)),
	)
	return nil
}

func (s *signalSchedulerService) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(10 * time.Second):
		s.log.Warn("Timeout while waiting for running signal refresh to finish")
	}
}

// RefreshSignals menskor ulang seluruh watchlist, menyegarkan cache, dan
// mencatat batch ke riwayat sinyal.
func (s *signalSchedulerService) RefreshSignals(ctx context.Context) {
	signals := s.signalService.GenerateMegaSignals(ctx, s.cfg.Scheduler.Watchlist)
	if len(signals) == 0 {
		s.log.WarnContext(ctx, "Signal refresh produced no signals")
		return
	}

	s.cache.Set(CacheKeyLatestSignals, signals, cacheNoExpiration)

	if err := s.signalRepo.SaveBatch(ctx, signals); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist signal batch", logger.ErrorField(err))
	}

	s.log.InfoContext(ctx, "Signal refresh completed", logger.IntField("signals", len(signals)))
}

// cacheNoExpiration membiarkan batch terakhir tersedia sampai refresh berikutnya.
const cacheNoExpiration = time.Duration(-1)

// LatestSignals membaca batch terakhir dari cache, jika ada.
func LatestSignals(c cache.Cache) ([]dto.CompositeSignal, bool) {
	return cache.Typed[[]dto.CompositeSignal](c, CacheKeyLatestSignals)
}
