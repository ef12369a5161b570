package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crypto-dashboard/config"
	"crypto-dashboard/internal/dto"
	"crypto-dashboard/pkg/cache"
	"crypto-dashboard/pkg/httpclient"
	"crypto-dashboard/pkg/logger"

	"golang.org/x/time/rate"
)

// MLPredictorRepository adalah kolaborator prediksi ML: layanan eksternal
// yang mengembalikan arah, confidence, dan expected return untuk satu simbol.
type MLPredictorRepository interface {
	Predict(ctx context.Context, symbol string) (*dto.MLPrediction, error)
}

type mlPredictorRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	cache          cache.Cache
	requestLimiter *rate.Limiter
}

// NewMLPredictorRepository membuat repository prediksi ML dengan rate limiter
// dan cache hasil per simbol.
func NewMLPredictorRepository(cfg *config.Config, log *logger.Logger, c cache.Cache) MLPredictorRepository {
	maxPerMin := cfg.Predictor.MaxRequestPerMin
	if maxPerMin <= 0 {
		maxPerMin = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMin)

	return &mlPredictorRepository{
		httpClient:     httpclient.New(cfg.Predictor.BaseURL, cfg.Predictor.Timeout, cfg.Predictor.BearerToken),
		cfg:            cfg,
		log:            log,
		cache:          c,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *mlPredictorRepository) Predict(ctx context.Context, symbol string) (*dto.MLPrediction, error) {
	cacheKey := "ml_prediction:" + symbol
	if cached, ok := cache.Typed[*dto.MLPrediction](r.cache, cacheKey); ok {
		return cached, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var prediction dto.MLPrediction
	resp, err := r.httpClient.Get(ctx, "/predict", map[string]string{"symbol": symbol}, nil, &prediction)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prediction for %s: %w", symbol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prediction service returned status %d for %s", resp.StatusCode, symbol)
	}

	r.cache.Set(cacheKey, &prediction, r.cfg.Cache.DefaultExpiration)
	return &prediction, nil
}
