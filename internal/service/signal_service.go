package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"crypto-dashboard/config"
	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/repository"
	"crypto-dashboard/pkg/logger"
	"crypto-dashboard/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// Ambang keputusan sinyal komposit dan batas tingkat risiko.
const (
	buyThreshold  = 0.3
	sellThreshold = -0.3

	riskMediumConfidence = 0.5
	riskHighConfidence   = 0.8

	// Normalisasi jumlah skor teknikal sebelum clamp ke [-1,1].
	technicalScoreDivisor = 5.0

	activeSymbolLimit = 20
)

// SignalService menggabungkan sinyal teknikal, prediksi ML, dan sentimen
// menjadi satu keputusan trading per simbol.
type SignalService interface {
	GenerateMegaSignals(ctx context.Context, symbols []string) []dto.CompositeSignal
	GetTopOpportunities(ctx context.Context, limit int) ([]dto.CompositeSignal, error)
	ScoreSymbol(ctx context.Context, symbol string) (*dto.CompositeSignal, error)
}

type signalService struct {
	cfg           *config.Config
	log           *logger.Logger
	indicatorRepo repository.IndicatorRepository
	sentimentRepo repository.SentimentRepository
	predictorRepo repository.MLPredictorRepository
	ohlcvRepo     repository.OHLCVRepository
}

func NewSignalService(
	cfg *config.Config,
	log *logger.Logger,
	indicatorRepo repository.IndicatorRepository,
	sentimentRepo repository.SentimentRepository,
	predictorRepo repository.MLPredictorRepository,
	ohlcvRepo repository.OHLCVRepository,
) SignalService {
	return &signalService{
		cfg:           cfg,
		log:           log,
		indicatorRepo: indicatorRepo,
		sentimentRepo: sentimentRepo,
		predictorRepo: predictorRepo,
		ohlcvRepo:     ohlcvRepo,
	}
}

// GenerateMegaSignals menskor banyak simbol sekaligus. Simbol yang gagal
// dicatat di log dan dilewati, batch tetap berjalan. Hasil diurutkan menurun
// berdasarkan confidence dikali besaran expected return.
func (s *signalService) GenerateMegaSignals(ctx context.Context, symbols []string) []dto.CompositeSignal {
	var (
		mu      sync.Mutex
		signals []dto.CompositeSignal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Trading.MaxConcurrency)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.log.ErrorContext(gctx, "Panic recovered during signal generation",
						logger.StringField("symbol", symbol),
						logger.StringField("panic", fmt.Sprintf("%v", r)),
					)
				}
			}()

			signal, err := s.ScoreSymbol(gctx, symbol)
			if err != nil {
				s.log.ErrorContext(gctx, "Signal generation failed, skipping symbol",
					logger.StringField("symbol", symbol),
					logger.ErrorField(err),
				)
				return nil
			}

			mu.Lock()
			signals = append(signals, *signal)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Ranking() > signals[j].Ranking()
	})

	return signals
}

// GetTopOpportunities mengembalikan peluang terkuat dari simbol-simbol yang
// paling aktif: confidence di atas 0.6 dan bukan HOLD.
func (s *signalService) GetTopOpportunities(ctx context.Context, limit int) ([]dto.CompositeSignal, error) {
	symbols, err := s.ohlcvRepo.ListActiveSymbols(ctx, activeSymbolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active symbols: %w", err)
	}

	signals := s.GenerateMegaSignals(ctx, symbols)

	strong := make([]dto.CompositeSignal, 0, limit)
	for _, sig := range signals {
		if sig.Confidence > 0.6 && sig.Signal != dto.SignalHold {
			strong = append(strong, sig)
		}
		if len(strong) == limit {
			break
		}
	}
	return strong, nil
}

// ScoreSymbol menskor satu simbol. Input yang hilang berkontribusi 0 pada
// skor komposit, bukan menggagalkan scoring.
func (s *signalService) ScoreSymbol(ctx context.Context, symbol string) (*dto.CompositeSignal, error) {
	techSignals, err := s.buildTechnicalSignals(ctx, symbol)
	if err != nil {
		s.log.WarnContext(ctx, "Technical signals unavailable, contributing zero",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		techSignals = nil
	}

	prediction, err := s.predictorRepo.Predict(ctx, symbol)
	if err != nil {
		s.log.WarnContext(ctx, "ML prediction unavailable, contributing zero",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		prediction = &dto.MLPrediction{Direction: dto.MLDirectionHold}
	}

	sentiment, err := s.sentimentRepo.GetSymbolSentiment(ctx, symbol)
	if err != nil {
		s.log.WarnContext(ctx, "Sentiment unavailable, contributing zero",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		sentiment = nil
	}

	signal := s.combine(symbol, techSignals, prediction, sentiment)
	return &signal, nil
}

// combine menerapkan pembobotan komposit: teknikal, ML, dan sentimen masing-
// masing dengan bobot dari konfigurasi.
func (s *signalService) combine(symbol string, techSignals []dto.TechnicalSignal, prediction *dto.MLPrediction, sentiment *dto.SentimentScore) dto.CompositeSignal {
	techScore := scoreTechnicalSignals(techSignals)

	mlScore := 0.0
	switch prediction.Direction {
	case dto.MLDirectionBuy:
		mlScore = prediction.Confidence
	case dto.MLDirectionSell:
		mlScore = -prediction.Confidence
	}

	sentimentScore := 0.0
	if sentiment != nil {
		sentimentScore = sentiment.CompoundScore
	}

	combined := techScore*s.cfg.Trading.TechnicalWeight +
		mlScore*s.cfg.Trading.MLWeight +
		sentimentScore*s.cfg.Trading.SentimentWeight

	direction := dto.SignalHold
	if combined > buyThreshold {
		direction = dto.SignalBuy
	} else if combined < sellThreshold {
		direction = dto.SignalSell
	}

	confidence := combined
	if confidence < 0 {
		confidence = -confidence
	}
	if confidence > 1 {
		confidence = 1
	}

	// Expected return milik model ML diskalakan dengan confidence komposit,
	// bukan confidence model itu sendiri: kesepakatan antar sumber sinyal
	// memperbesar ekspektasi. Jangan "diperbaiki" tanpa diskusi.
	expectedReturn := prediction.ExpectedReturn * confidence

	riskLevel := dto.RiskLow
	if confidence >= riskHighConfidence {
		riskLevel = dto.RiskHigh
	} else if confidence >= riskMediumConfidence {
		riskLevel = dto.RiskMedium
	}

	return dto.CompositeSignal{
		Symbol:         symbol,
		Signal:         direction,
		Confidence:     confidence,
		ExpectedReturn: expectedReturn,
		RiskLevel:      riskLevel,
		Scores: dto.ComponentScores{
			Technical: techScore,
			ML:        mlScore,
			Sentiment: sentimentScore,
		},
		Timestamp: time.Now(),
	}
}

// scoreTechnicalSignals memetakan sinyal diskrit menjadi satu skor [-1,1]:
// Strong=1.0, Moderate=0.6, Weak=0.3, negatif untuk Sell, dinormalisasi
// dengan pembagi tetap.
func scoreTechnicalSignals(signals []dto.TechnicalSignal) float64 {
	if len(signals) == 0 {
		return 0
	}

	strengthWeights := map[dto.SignalStrength]float64{
		dto.StrengthStrong:   1.0,
		dto.StrengthModerate: 0.6,
		dto.StrengthWeak:     0.3,
	}

	total := 0.0
	for _, sig := range signals {
		weight, ok := strengthWeights[sig.Strength]
		if !ok {
			weight = 0.5
		}
		switch sig.Signal {
		case dto.TechnicalBuy:
			total += weight
		case dto.TechnicalSell:
			total -= weight
		}
	}

	return utils.Clamp(total/technicalScoreDivisor, -1, 1)
}
