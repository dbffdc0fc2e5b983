package lightning

import (
	"fmt"
	"math"
	"strings"

	"github.com/marinhotg/satshack24/internal/apperr"
)

const (
	SatsPerBTC  = 100_000_000
	MsatsPerSat = 1_000

	// Invoice bounds after conversion: [1 satoshi, 0.1 BTC].
	MaxInvoiceBTC = 0.1
	MinInvoiceBTC = 1.0 / SatsPerBTC
)

// ComputeSettlementAmount is the sum the reserver is compensated: the
// bill's base amount plus its bonus. Always >= base for bonusRate >= 0.
func ComputeSettlementAmount(base, bonusRatePercent float64) float64 {
	return base * (1 + bonusRatePercent/100)
}

// NormalizeToBTC interprets amount according to unit ("btc" or "sats").
// An empty unit falls back to the inherited heuristic: values greater
// than 1 are taken as satoshis, anything else as BTC already.
func NormalizeToBTC(amount float64, unit string) (float64, error) {
	if amount <= 0 {
		return 0, apperr.Validation("Amount must be greater than zero")
	}
	switch strings.ToLower(unit) {
	case "btc":
		return amount, nil
	case "sats", "sat":
		return amount / SatsPerBTC, nil
	case "":
		if amount > 1 {
			return amount / SatsPerBTC, nil
		}
		return amount, nil
	default:
		return 0, apperr.Validation(fmt.Sprintf("Unknown amount unit %q, expected \"btc\" or \"sats\"", unit))
	}
}

// ValidateBTCAmount enforces the invoice bounds. Exactly 0.1 BTC passes;
// anything above it or below one satoshi fails.
func ValidateBTCAmount(btc float64) error {
	if btc > MaxInvoiceBTC {
		return apperr.Validation(fmt.Sprintf("Amount %.8f BTC exceeds the 0.1 BTC maximum", btc))
	}
	if btc < MinInvoiceBTC {
		return apperr.Validation(fmt.Sprintf("Amount %.10f BTC is below the 1 satoshi minimum", btc))
	}
	return nil
}

func BTCToMsats(btc float64) int64 {
	sats := btc * SatsPerBTC
	return int64(math.Round(sats * MsatsPerSat))
}

func MsatsToBTC(msats int64) float64 {
	return float64(msats) / MsatsPerSat / SatsPerBTC
}
