package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"crypto-dashboard/config"
	"crypto-dashboard/internal/dto"
	"crypto-dashboard/pkg/logger"
)

// Parameter kaskade compounding.
const (
	cascadeCapitalTarget       = 1_000_000.0
	cascadeBaseAllocation      = 0.3
	cascadeMaxSingleShare      = 0.5
	cascadeNoiseStdDev         = 0.2
	cascadeFailureLossFraction = 0.5
	cascadeTopOpportunityLimit = 5
	defaultCascadeCycles       = 10
)

// CascadeService menjalankan kaskade compounding: setiap siklus mengambil
// peluang teratas, mengalokasikan modal secara progresif, mensimulasikan
// hasilnya, lalu memutar kembali sebagian profit ke modal siklus berikutnya.
type CascadeService interface {
	ExecuteCycle(ctx context.Context) (*dto.CascadeCycle, error)
	RunCascade(ctx context.Context, req dto.RunCascadeRequest) (*dto.CascadeSummary, error)
	Summary() dto.CascadeSummary
}

type cascadeService struct {
	cfg           *config.Config
	log           *logger.Logger
	signalService SignalService

	mu             sync.Mutex
	initialCapital float64
	currentCapital float64
	bankedProfit   float64
	history        []dto.CascadeCycle
	rng            *rand.Rand
}

func NewCascadeService(cfg *config.Config, log *logger.Logger, signalService SignalService) CascadeService {
	return &cascadeService{
		cfg:            cfg,
		log:            log,
		signalService:  signalService,
		initialCapital: cfg.Trading.InitialCapital,
		currentCapital: cfg.Trading.InitialCapital,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ExecuteCycle menjalankan satu siklus kaskade terhadap peluang teratas saat
// ini. Mengembalikan nil tanpa error saat tidak ada posisi yang layak.
func (s *cascadeService) ExecuteCycle(ctx context.Context) (*dto.CascadeCycle, error) {
	opportunities, err := s.signalService.GetTopOpportunities(ctx, cascadeTopOpportunityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top opportunities: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.buildPositions(s.currentCapital, opportunities)
	if len(positions) == 0 {
		s.log.WarnContext(ctx, "No viable cascade positions, skipping cycle",
			logger.IntField("opportunities", len(opportunities)),
			logger.Float64Field("capital", s.currentCapital),
		)
		return nil, nil
	}

	trades := make([]dto.CascadeTrade, 0, len(positions))
	for _, pos := range positions {
		trades = append(trades, s.simulateTrade(pos))
	}

	cycle := s.applyCycle(trades)

	s.log.InfoContext(ctx, "Cascade cycle completed",
		logger.IntField("cycle", cycle.CycleNumber),
		logger.IntField("trades", len(cycle.Trades)),
		logger.Float64Field("total_pnl", cycle.TotalPnL),
		logger.Float64Field("capital", cycle.EndingCapital),
	)
	return &cycle, nil
}

// RunCascade menjalankan beberapa siklus berurutan. InitialCapital > 0
// mereset state kaskade, 0 melanjutkan modal yang ada. Berhenti lebih awal
// saat target modal tercapai atau modal jatuh di bawah ukuran posisi minimum.
func (s *cascadeService) RunCascade(ctx context.Context, req dto.RunCascadeRequest) (*dto.CascadeSummary, error) {
	cycles := req.Cycles
	if cycles <= 0 {
		cycles = defaultCascadeCycles
	}

	if req.InitialCapital > 0 {
		s.mu.Lock()
		s.initialCapital = req.InitialCapital
		s.currentCapital = req.InitialCapital
		s.bankedProfit = 0
		s.history = nil
		s.mu.Unlock()
	}

	for i := 0; i < cycles; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cycle, err := s.ExecuteCycle(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "Cascade cycle failed, continuing",
				logger.IntField("cycle", i+1),
				logger.ErrorField(err),
			)
			continue
		}
		if cycle == nil {
			break
		}

		if cycle.EndingCapital >= cascadeCapitalTarget {
			s.log.InfoContext(ctx, "Cascade reached capital target",
				logger.IntField("cycle", cycle.CycleNumber),
				logger.Float64Field("capital", cycle.EndingCapital),
			)
			break
		}
		if cycle.EndingCapital < s.cfg.Trading.MinTradeSize {
			s.log.WarnContext(ctx, "Cascade capital below minimum trade size, stopping",
				logger.IntField("cycle", cycle.CycleNumber),
				logger.Float64Field("capital", cycle.EndingCapital),
			)
			break
		}
	}

	summary := s.Summary()
	return &summary, nil
}

// Summary merangkum seluruh siklus yang sudah berjalan.
func (s *cascadeService) Summary() dto.CascadeSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	cycles := make([]dto.CascadeCycle, len(s.history))
	copy(cycles, s.history)

	summary := dto.CascadeSummary{
		InitialCapital:  s.initialCapital,
		CurrentCapital:  s.currentCapital,
		BankedProfit:    s.bankedProfit,
		CyclesCompleted: len(s.history),
		Cycles:          cycles,
	}
	if s.initialCapital > 0 {
		summary.TotalReturnPct = (s.currentCapital/s.initialCapital - 1) * 100
	}

	if len(s.history) == 0 {
		return summary
	}

	wins := 0
	totalReturn := 0.0
	for _, c := range s.history {
		if c.TotalPnL > 0 {
			wins++
		}
		totalReturn += c.ReturnPct
	}
	summary.WinRatePct = float64(wins) / float64(len(s.history)) * 100
	summary.AvgReturnPerCyclePct = totalReturn / float64(len(s.history))

	// Proyeksi jumlah siklus menuju target dengan pertumbuhan geometris
	// rata-rata. Tanpa pertumbuhan positif target tidak terjangkau.
	if summary.AvgReturnPerCyclePct > 0 && s.initialCapital > 0 {
		est := math.Log(cascadeCapitalTarget/s.initialCapital) /
			math.Log(1+summary.AvgReturnPerCyclePct/100)
		summary.EstimatedCyclesToTarget = &est
	}

	return summary
}

// buildPositions mengalokasikan modal secara progresif: peluang teringgi
// dapat porsi terbesar (faktor 1/(i+1) dari alokasi dasar 30%), dikalikan
// confidence dan pengali risiko, dibatasi 50% dari modal tersisa. Posisi di
// bawah ukuran minimum dilewati. Dipanggil dengan lock dipegang.
func (s *cascadeService) buildPositions(available float64, opportunities []dto.CompositeSignal) []dto.CascadePosition {
	var positions []dto.CascadePosition
	for i, opp := range opportunities {
		factor := 1.0 / float64(i+1)
		base := available * cascadeBaseAllocation * factor
		size := base * opp.Confidence * riskMultiplier(opp.RiskLevel)

		if maxSize := available * cascadeMaxSingleShare; size > maxSize {
			size = maxSize
		}
		if size < s.cfg.Trading.MinTradeSize {
			continue
		}

		positions = append(positions, dto.CascadePosition{
			Symbol:         opp.Symbol,
			PositionSize:   size,
			Confidence:     opp.Confidence,
			ExpectedReturn: opp.ExpectedReturn,
			RiskLevel:      opp.RiskLevel,
		})
		available -= size
	}
	return positions
}

// simulateTrade mensimulasikan hasil satu posisi: expected return diberi
// noise Gaussian, keberhasilan diundi terhadap confidence, dan kegagalan
// merealisasikan separuh besaran return sebagai rugi. Dipanggil dengan lock
// dipegang.
func (s *cascadeService) simulateTrade(pos dto.CascadePosition) dto.CascadeTrade {
	base := pos.ExpectedReturn / 100
	noise := s.rng.NormFloat64() * cascadeNoiseStdDev
	actual := base * (1 + noise)

	success := s.rng.Float64() < pos.Confidence
	if !success {
		actual = -math.Abs(actual) * cascadeFailureLossFraction
	}

	return dto.CascadeTrade{
		Symbol:       pos.Symbol,
		PositionSize: pos.PositionSize,
		ReturnPct:    actual * 100,
		PnL:          pos.PositionSize * actual,
		Success:      success,
		Timestamp:    time.Now(),
	}
}

// applyCycle membukukan hasil satu siklus: profit diputar kembali sebesar
// reinvestment rate, sisanya disimpan sebagai banked profit, rugi dibebankan
// penuh ke modal. Dipanggil dengan lock dipegang.
func (s *cascadeService) applyCycle(trades []dto.CascadeTrade) dto.CascadeCycle {
	starting := s.currentCapital

	totalPnL := 0.0
	for _, t := range trades {
		totalPnL += t.PnL
	}

	reinvested := totalPnL
	banked := 0.0
	if totalPnL > 0 {
		reinvested = totalPnL * s.cfg.Trading.ReinvestmentRate
		banked = totalPnL - reinvested
	}

	s.currentCapital = starting + reinvested
	s.bankedProfit += banked

	returnPct := 0.0
	if starting > 0 {
		returnPct = totalPnL / starting * 100
	}

	cycle := dto.CascadeCycle{
		CycleNumber:     len(s.history) + 1,
		StartingCapital: starting,
		EndingCapital:   s.currentCapital,
		TotalPnL:        totalPnL,
		ReturnPct:       returnPct,
		BankedProfit:    banked,
		Trades:          trades,
		Timestamp:       time.Now(),
	}
	s.history = append(s.history, cycle)
	return cycle
}

// riskMultiplier memperbesar posisi berisiko rendah dan memperkecil yang
// berisiko tinggi.
func riskMultiplier(level dto.RiskLevel) float64 {
	switch level {
	case dto.RiskLow:
		return 1.2
	case dto.RiskHigh:
		return 0.8
	default:
		return 1.0
	}
}
