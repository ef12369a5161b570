package dto

import "time"

// PriceBar adalah satu bar OHLCV, sumbernya kolaborator data harga.
type PriceBar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// TechnicalSignal adalah satu sinyal indikator diskrit hasil evaluasi
// snapshot indikator terakhir.
type TechnicalSignal struct {
	Indicator   string             `json:"indicator"`
	Signal      TechnicalDirection `json:"signal"`
	Strength    SignalStrength     `json:"strength"`
	Value       float64            `json:"value,omitempty"`
	Description string             `json:"description,omitempty"`
}

// MLPrediction adalah keluaran kolaborator prediksi ML untuk satu simbol.
type MLPrediction struct {
	Direction      MLDirection `json:"direction"`
	Confidence     float64     `json:"confidence"`
	ExpectedReturn float64     `json:"expected_return"`
}

// SentimentScore adalah skor sentimen gabungan [-1,1] untuk satu simbol.
type SentimentScore struct {
	CompoundScore float64 `json:"compound_score"`
}

// ComponentScores memecah skor komposit per sumber sinyal.
type ComponentScores struct {
	Technical float64 `json:"technical"`
	ML        float64 `json:"ml"`
	Sentiment float64 `json:"sentiment"`
}

// CompositeSignal adalah keputusan trading gabungan untuk satu simbol:
// teknikal + ML + sentimen menjadi satu sinyal berbobot.
type CompositeSignal struct {
	Symbol         string          `json:"symbol"`
	Signal         SignalDirection `json:"signal"`
	Confidence     float64         `json:"confidence"`
	ExpectedReturn float64         `json:"expected_return"`
	RiskLevel      RiskLevel       `json:"risk_level"`
	Scores         ComponentScores `json:"component_scores"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Ranking mengurutkan sinyal dari yang paling menarik: confidence dikali
// besaran expected return.
func (c CompositeSignal) Ranking() float64 {
	abs := c.ExpectedReturn
	if abs < 0 {
		abs = -abs
	}
	return c.Confidence * abs
}

// IndicatorSnapshot adalah nilai-nilai indikator teknikal terakhir dari
// kolaborator indikator. Dua baris terakhir dibutuhkan untuk deteksi crossover.
type IndicatorSnapshot struct {
	Symbol        string    `json:"symbol"`
	Timestamp     time.Time `json:"timestamp"`
	Close         float64   `json:"close"`
	RSI14         *float64  `json:"rsi_14"`
	MACD          *float64  `json:"macd"`
	MACDSignal    *float64  `json:"macd_signal"`
	MACDHistogram *float64  `json:"macd_histogram"`
	BBUpper       *float64  `json:"bb_upper"`
	BBLower       *float64  `json:"bb_lower"`
	SMA20         *float64  `json:"sma_20"`
	SMA50         *float64  `json:"sma_50"`
	SMA200        *float64  `json:"sma_200"`
	Trend         string    `json:"trend"`
	TrendSlope    *float64  `json:"trend_slope"`
}

// GenerateSignalsRequest adalah permintaan scoring batch lewat HTTP API.
type GenerateSignalsRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,dive,required"`
}
