package strategy

import (
	"errors"
	"fmt"

	"crypto-dashboard/internal/dto"
)

// ErrInvalidParams dikembalikan konstruktor ketika parameter strategi di luar
// domain yang valid. Validasi terjadi saat konstruksi, bukan di tengah run.
var ErrInvalidParams = errors.New("invalid strategy parameters")

// Kind membedakan varian strategi. Katalognya tertutup dan kecil, jadi
// dispatch lewat switch, bukan hirarki tipe terbuka.
type Kind string

const (
	KindMACrossover Kind = "ma_crossover"
	KindRSI         Kind = "rsi"
	KindMACD        Kind = "macd"
)

// Strategy adalah satu varian strategi terparameterisasi. Nilainya immutable:
// tidak ada state yang dibagi antar pemanggilan GenerateSignals.
type Strategy struct {
	Kind        Kind
	Name        string
	Description string

	// MA crossover
	ShortPeriod int
	LongPeriod  int

	// RSI
	RSIPeriod  int
	Overbought float64
	Oversold   float64

	// MACD
	FastPeriod   int
	SlowPeriod   int
	SignalPeriod int
}

// NewMACrossover membuat strategi moving average crossover.
func NewMACrossover(shortPeriod, longPeriod int) (Strategy, error) {
	if shortPeriod <= 0 || longPeriod <= 0 || shortPeriod >= longPeriod {
		return Strategy{}, fmt.Errorf("%w: ma crossover requires 0 < short (%d) < long (%d)", ErrInvalidParams, shortPeriod, longPeriod)
	}
	return Strategy{
		Kind:        KindMACrossover,
		Name:        fmt.Sprintf("MA Crossover (%d,%d)", shortPeriod, longPeriod),
		Description: fmt.Sprintf("Moving Average Crossover Strategy using %d and %d day periods", shortPeriod, longPeriod),
		ShortPeriod: shortPeriod,
		LongPeriod:  longPeriod,
	}, nil
}

// NewRSI membuat strategi ambang RSI.
func NewRSI(period int, overbought, oversold float64) (Strategy, error) {
	if period <= 0 || oversold <= 0 || overbought >= 100 || oversold >= overbought {
		return Strategy{}, fmt.Errorf("%w: rsi requires period > 0 and 0 < oversold (%.0f) < overbought (%.0f) < 100", ErrInvalidParams, oversold, overbought)
	}
	return Strategy{
		Kind:        KindRSI,
		Name:        fmt.Sprintf("RSI (%d)", period),
		Description: fmt.Sprintf("RSI Strategy using %d day period, overbought at %.0f, oversold at %.0f", period, overbought, oversold),
		RSIPeriod:   period,
		Overbought:  overbought,
		Oversold:    oversold,
	}, nil
}

// NewMACD membuat strategi MACD crossover.
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) (Strategy, error) {
	if fastPeriod <= 0 || signalPeriod <= 0 || fastPeriod >= slowPeriod {
		return Strategy{}, fmt.Errorf("%w: macd requires 0 < fast (%d) < slow (%d) and signal > 0", ErrInvalidParams, fastPeriod, slowPeriod)
	}
	return Strategy{
		Kind:         KindMACD,
		Name:         fmt.Sprintf("MACD (%d,%d,%d)", fastPeriod, slowPeriod, signalPeriod),
		Description:  fmt.Sprintf("MACD Strategy using fast=%d, slow=%d, signal=%d", fastPeriod, slowPeriod, signalPeriod),
		FastPeriod:   fastPeriod,
		SlowPeriod:   slowPeriod,
		SignalPeriod: signalPeriod,
	}, nil
}

// GenerateSignals menghasilkan satu sinyal numerik per bar (+1 beli, -1 jual,
// 0 tahan) tanpa memutasi deret input.
func (s Strategy) GenerateSignals(bars []dto.PriceBar) []int {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	switch s.Kind {
	case KindMACrossover:
		return s.maCrossoverSignals(closes)
	case KindRSI:
		return s.rsiSignals(closes)
	case KindMACD:
		return s.macdSignals(closes)
	default:
		return make([]int, len(bars))
	}
}

// maCrossoverSignals: beli saat MA pendek memotong ke atas MA panjang, jual
// saat memotong ke bawah.
func (s Strategy) maCrossoverSignals(closes []float64) []int {
	shortMA := rollingMean(closes, s.ShortPeriod)
	longMA := rollingMean(closes, s.LongPeriod)

	signals := make([]int, len(closes))
	for i := 1; i < len(closes); i++ {
		if shortMA[i-1] <= longMA[i-1] && shortMA[i] > longMA[i] {
			signals[i] = dto.BarSignalBuy
		} else if shortMA[i-1] >= longMA[i-1] && shortMA[i] < longMA[i] {
			signals[i] = dto.BarSignalSell
		}
	}
	return signals
}

// rsiSignals: beli saat RSI naik menembus ambang oversold, jual saat turun
// menembus ambang overbought.
func (s Strategy) rsiSignals(closes []float64) []int {
	values := rsi(closes, s.RSIPeriod)

	signals := make([]int, len(closes))
	for i := 1; i < len(closes); i++ {
		if values[i-1] <= s.Oversold && values[i] > s.Oversold {
			signals[i] = dto.BarSignalBuy
		} else if values[i-1] >= s.Overbought && values[i] < s.Overbought {
			signals[i] = dto.BarSignalSell
		}
	}
	return signals
}

// macdSignals: beli saat garis MACD memotong ke atas garis sinyal, jual saat
// memotong ke bawah.
func (s Strategy) macdSignals(closes []float64) []int {
	emaFast := ema(closes, s.FastPeriod)
	emaSlow := ema(closes, s.SlowPeriod)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	macdSignal := ema(macd, s.SignalPeriod)

	signals := make([]int, len(closes))
	for i := 1; i < len(closes); i++ {
		if macd[i-1] <= macdSignal[i-1] && macd[i] > macdSignal[i] {
			signals[i] = dto.BarSignalBuy
		} else if macd[i-1] >= macdSignal[i-1] && macd[i] < macdSignal[i] {
			signals[i] = dto.BarSignalSell
		}
	}
	return signals
}

// Catalog mengembalikan katalog strategi bawaan sesuai urutan tetap.
func Catalog() []Strategy {
	catalog := make([]Strategy, 0, 7)
	for _, build := range []func() (Strategy, error){
		func() (Strategy, error) { return NewMACrossover(20, 50) },
		func() (Strategy, error) { return NewMACrossover(10, 30) },
		func() (Strategy, error) { return NewMACrossover(5, 20) },
		func() (Strategy, error) { return NewRSI(14, 70, 30) },
		func() (Strategy, error) { return NewRSI(7, 75, 25) },
		func() (Strategy, error) { return NewMACD(12, 26, 9) },
		func() (Strategy, error) { return NewMACD(8, 17, 9) },
	} {
		s, err := build()
		if err != nil {
			// Katalognya statis, parameter di atas selalu valid.
			continue
		}
		catalog = append(catalog, s)
	}
	return catalog
}

// FindByName mencari strategi pada katalog berdasarkan namanya.
func FindByName(name string) (Strategy, bool) {
	for _, s := range Catalog() {
		if s.Name == name {
			return s, true
		}
	}
	return Strategy{}, false
}
