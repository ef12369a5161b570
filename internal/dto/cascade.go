package dto

import "time"

// RunCascadeRequest adalah permintaan menjalankan kaskade compounding lewat
// HTTP API. Cycles 0 memakai default service, InitialCapital 0 melanjutkan
// modal kaskade yang sedang berjalan.
type RunCascadeRequest struct {
	Cycles         int     `json:"cycles" validate:"gte=0,lte=100"`
	InitialCapital float64 `json:"initial_capital" validate:"gte=0"`
}

// CascadePosition adalah alokasi modal pada satu peluang teratas sebelum
// hasilnya disimulasikan.
type CascadePosition struct {
	Symbol         string    `json:"symbol"`
	PositionSize   float64   `json:"position_size"`
	Confidence     float64   `json:"confidence"`
	ExpectedReturn float64   `json:"expected_return"`
	RiskLevel      RiskLevel `json:"risk_level"`
}

// CascadeTrade adalah hasil simulasi satu posisi kaskade.
type CascadeTrade struct {
	Symbol       string    `json:"symbol"`
	PositionSize float64   `json:"position_size"`
	ReturnPct    float64   `json:"return_pct"`
	PnL          float64   `json:"pnl"`
	Success      bool      `json:"success"`
	Timestamp    time.Time `json:"timestamp"`
}

// CascadeCycle merangkum satu siklus kaskade: modal awal, hasil seluruh
// posisi, dan modal akhir setelah reinvestasi.
type CascadeCycle struct {
	CycleNumber     int            `json:"cycle_number"`
	StartingCapital float64        `json:"starting_capital"`
	EndingCapital   float64        `json:"ending_capital"`
	TotalPnL        float64        `json:"total_pnl"`
	ReturnPct       float64        `json:"return_pct"`
	BankedProfit    float64        `json:"banked_profit"`
	Trades          []CascadeTrade `json:"trades"`
	Timestamp       time.Time      `json:"timestamp"`
}

// CascadeSummary merangkum keseluruhan run kaskade. EstimatedCyclesToTarget
// nil saat rata-rata return tidak positif sehingga target tidak terjangkau.
type CascadeSummary struct {
	InitialCapital          float64        `json:"initial_capital"`
	CurrentCapital          float64        `json:"current_capital"`
	BankedProfit            float64        `json:"banked_profit"`
	TotalReturnPct          float64        `json:"total_return_pct"`
	CyclesCompleted         int            `json:"cycles_completed"`
	WinRatePct              float64        `json:"win_rate_pct"`
	AvgReturnPerCyclePct    float64        `json:"avg_return_per_cycle_pct"`
	EstimatedCyclesToTarget *float64       `json:"estimated_cycles_to_target"`
	Cycles                  []CascadeCycle `json:"cycles"`
}
