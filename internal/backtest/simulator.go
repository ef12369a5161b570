package backtest

import (
	"context"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/pkg/logger"
)

// Config adalah parameter simulasi satu backtest.
type Config struct {
	InitialCapital float64
	PositionSize   float64 // fraksi cash yang dipakai saat entry
	StopLoss       float64 // fraksi di bawah harga entry
}

// Simulator memutar ulang deret harga ber-sinyal menjadi jejak cash/equity,
// bar demi bar. Satu posisi long-only, deterministik untuk input yang sama.
type Simulator struct {
	log *logger.Logger
	cfg Config
}

func NewSimulator(log *logger.Logger, cfg Config) *Simulator {
	return &Simulator{log: log, cfg: cfg}
}

// Run menjalankan simulasi. Mesin status: FLAT --(BUY)--> LONG --(SELL atau
// close <= stop)--> FLAT; sinyal HOLD hanya meneruskan nilai bar sebelumnya.
// Input tidak pernah dimutasi. Data cacat (panjang tidak cocok, harga close
// tidak positif) tidak membuat simulasi panik: dicatat di log dan Run
// mengembalikan nil sebagai kontrak keluaran terdegradasi.
func (s *Simulator) Run(ctx context.Context, bars []dto.PriceBar, signals []int) []dto.PortfolioSnapshot {
	if len(bars) == 0 || len(signals) != len(bars) {
		s.log.ErrorContext(ctx, "Malformed simulation input",
			logger.IntField("bars", len(bars)),
			logger.IntField("signals", len(signals)),
		)
		return nil
	}
	for _, bar := range bars {
		if bar.Close <= 0 {
			s.log.ErrorContext(ctx, "Non-positive close price in simulation input",
				logger.Float64Field("close", bar.Close),
				logger.StringField("timestamp", bar.Timestamp.String()),
			)
			return nil
		}
	}

	trace := make([]dto.PortfolioSnapshot, len(bars))

	cash := s.cfg.InitialCapital
	equity := 0.0
	shares := 0.0
	entryPrice := 0.0
	stopPrice := 0.0
	position := dto.PositionFlat

	for i, bar := range bars {
		signal := signals[i]
		close := bar.Close

		snap := dto.PortfolioSnapshot{
			Timestamp: bar.Timestamp,
			Close:     close,
			Signal:    signal,
		}

		switch {
		case signal == dto.BarSignalBuy && position == dto.PositionFlat:
			positionValue := cash * s.cfg.PositionSize
			shares = positionValue / close

			position = dto.PositionLong
			entryPrice = close
			stopPrice = entryPrice * (1 - s.cfg.StopLoss)

			cash -= positionValue
			equity = shares * close
			snap.EntryPrice = entryPrice

		case (signal == dto.BarSignalSell || close <= stopPrice) && position == dto.PositionLong:
			// Nilai posisi pada harga exit; pnl terhadap nilai saat entry.
			exitEquity := shares * close
			pnl := (close/entryPrice - 1) * (shares * entryPrice)

			position = dto.PositionFlat
			cash += exitEquity
			equity = 0
			shares = 0

			snap.ExitPrice = close
			snap.PnL = pnl

		default:
			// HOLD: cash tetap, posisi long di-mark-to-market ke close bar ini.
			if position == dto.PositionLong {
				equity = shares * close
			} else {
				equity = 0
			}
		}

		snap.Position = position
		snap.Cash = cash
		snap.Equity = equity
		snap.PortfolioValue = cash + equity
		trace[i] = snap
	}

	return trace
}
