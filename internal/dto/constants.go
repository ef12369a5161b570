package dto

// Arah sinyal komposit.
type SignalDirection string

const (
	SignalBuy  SignalDirection = "BUY"
	SignalSell SignalDirection = "SELL"
	SignalHold SignalDirection = "HOLD"
)

// Sinyal numerik per bar yang dihasilkan strategi: +1 beli, -1 jual, 0 tahan.
const (
	BarSignalBuy  = 1
	BarSignalHold = 0
	BarSignalSell = -1
)

// Kekuatan sinyal teknikal diskrit.
type SignalStrength string

const (
	StrengthStrong   SignalStrength = "Strong"
	StrengthModerate SignalStrength = "Moderate"
	StrengthWeak     SignalStrength = "Weak"
)

// Arah sinyal teknikal diskrit.
type TechnicalDirection string

const (
	TechnicalBuy  TechnicalDirection = "Buy"
	TechnicalSell TechnicalDirection = "Sell"
)

// Tingkat risiko sinyal komposit, diturunkan dari confidence.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Arah prediksi model ML.
type MLDirection string

const (
	MLDirectionBuy  MLDirection = "buy"
	MLDirectionSell MLDirection = "sell"
	MLDirectionHold MLDirection = "hold"
)
