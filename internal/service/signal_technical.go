package service

import (
	"context"
	"fmt"

	"crypto-dashboard/internal/dto"
)

const indicatorHistoryLimit = 10

// buildTechnicalSignals menurunkan daftar sinyal indikator diskrit dari
// snapshot indikator terbaru. Aturan crossover butuh dua snapshot terakhir;
// indikator yang nilainya belum ada dilewati.
func (s *signalService) buildTechnicalSignals(ctx context.Context, symbol string) ([]dto.TechnicalSignal, error) {
	snapshots, err := s.indicatorRepo.GetLatestIndicators(ctx, symbol, indicatorHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load indicators: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no indicators found for %s", symbol)
	}

	latest := snapshots[len(snapshots)-1]
	var prev *dto.IndicatorSnapshot
	if len(snapshots) >= 2 {
		prev = &snapshots[len(snapshots)-2]
	}

	var signals []dto.TechnicalSignal

	// RSI: oversold di bawah 30, overbought di atas 70.
	if latest.RSI14 != nil {
		if *latest.RSI14 < 30 {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "RSI",
				Signal:      dto.TechnicalBuy,
				Strength:    dto.StrengthStrong,
				Value:       *latest.RSI14,
				Description: "RSI below 30 indicates oversold conditions",
			})
		} else if *latest.RSI14 > 70 {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "RSI",
				Signal:      dto.TechnicalSell,
				Strength:    dto.StrengthStrong,
				Value:       *latest.RSI14,
				Description: "RSI above 70 indicates overbought conditions",
			})
		}
	}

	// MACD crossover terhadap garis sinyalnya.
	if latest.MACD != nil && latest.MACDSignal != nil && prev != nil && prev.MACD != nil && prev.MACDSignal != nil {
		histogram := 0.0
		if latest.MACDHistogram != nil {
			histogram = *latest.MACDHistogram
		}
		if *latest.MACD > *latest.MACDSignal && *prev.MACD <= *prev.MACDSignal {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "MACD",
				Signal:      dto.TechnicalBuy,
				Strength:    dto.StrengthModerate,
				Value:       histogram,
				Description: "MACD crossed above signal line",
			})
		} else if *latest.MACD < *latest.MACDSignal && *prev.MACD >= *prev.MACDSignal {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "MACD",
				Signal:      dto.TechnicalSell,
				Strength:    dto.StrengthModerate,
				Value:       histogram,
				Description: "MACD crossed below signal line",
			})
		}
	}

	// Harga menembus Bollinger Band.
	if latest.BBUpper != nil && latest.BBLower != nil {
		if latest.Close < *latest.BBLower {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "Bollinger Bands",
				Signal:      dto.TechnicalBuy,
				Strength:    dto.StrengthModerate,
				Value:       latest.Close,
				Description: "Price below lower Bollinger Band indicates potential reversal",
			})
		} else if latest.Close > *latest.BBUpper {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "Bollinger Bands",
				Signal:      dto.TechnicalSell,
				Strength:    dto.StrengthModerate,
				Value:       latest.Close,
				Description: "Price above upper Bollinger Band indicates potential reversal",
			})
		}
	}

	// Golden cross / death cross SMA 50 vs SMA 200.
	if latest.SMA50 != nil && latest.SMA200 != nil && prev != nil && prev.SMA50 != nil && prev.SMA200 != nil {
		if *latest.SMA50 > *latest.SMA200 && *prev.SMA50 <= *prev.SMA200 {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "Moving Averages",
				Signal:      dto.TechnicalBuy,
				Strength:    dto.StrengthStrong,
				Description: "Golden Cross: 50-day SMA crossed above 200-day SMA",
			})
		} else if *latest.SMA50 < *latest.SMA200 && *prev.SMA50 >= *prev.SMA200 {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "Moving Averages",
				Signal:      dto.TechnicalSell,
				Strength:    dto.StrengthStrong,
				Description: "Death Cross: 50-day SMA crossed below 200-day SMA",
			})
		}
	}

	// Harga memotong SMA 20.
	if latest.SMA20 != nil && prev != nil && prev.SMA20 != nil {
		if latest.Close > *latest.SMA20 && prev.Close <= *prev.SMA20 {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "Moving Averages",
				Signal:      dto.TechnicalBuy,
				Strength:    dto.StrengthWeak,
				Description: "Price crossed above 20-day SMA",
			})
		} else if latest.Close < *latest.SMA20 && prev.Close >= *prev.SMA20 {
			signals = append(signals, dto.TechnicalSignal{
				Indicator:   "Moving Averages",
				Signal:      dto.TechnicalSell,
				Strength:    dto.StrengthWeak,
				Description: "Price crossed below 20-day SMA",
			})
		}
	}

	// Arah tren.
	if latest.Trend == "uptrend" || latest.Trend == "downtrend" {
		slope := 0.0
		if latest.TrendSlope != nil {
			slope = *latest.TrendSlope
		}
		direction := dto.TechnicalBuy
		description := "Price is in an uptrend"
		if latest.Trend == "downtrend" {
			direction = dto.TechnicalSell
			description = "Price is in a downtrend"
		}
		signals = append(signals, dto.TechnicalSignal{
			Indicator:   "Trend",
			Signal:      direction,
			Strength:    dto.StrengthModerate,
			Value:       slope,
			Description: description,
		})
	}

	return signals, nil
}
