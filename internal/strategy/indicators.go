package strategy

import "math"

// Helper indikator untuk pembangkitan sinyal strategi. Semuanya pure: input
// tidak pernah dimutasi, nilai yang belum terdefinisi diisi NaN sehingga
// aturan crossing otomatis gagal pada bar awal (perbandingan dengan NaN
// selalu false).

// rollingMean menghitung simple moving average dengan jendela window.
// Indeks sebelum window-1 bernilai NaN. Entri NaN di dalam jendela membuat
// hasilnya NaN.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		valid := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				valid = false
				break
			}
			sum += values[j]
		}
		if valid {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// ema menghitung exponential moving average dengan smoothing span
// (alpha = 2/(span+1), seed nilai pertama).
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// rsi menghitung Relative Strength Index dengan rata-rata gain/loss
// berjendela sederhana.
func rsi(closes []float64, period int) []float64 {
	n := len(closes)
	if n == 0 {
		return nil
	}
	gains := make([]float64, n)
	losses := make([]float64, n)
	gains[0] = math.NaN()
	losses[0] = math.NaN()
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
			losses[i] = 0
		} else {
			gains[i] = 0
			losses[i] = -delta
		}
	}

	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) {
			out[i] = math.NaN()
			continue
		}
		// avgLoss nol berarti rs tak hingga dan RSI mendekati 100.
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
