package lightning_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/lightning"
)

func TestComputeSettlementAmount(t *testing.T) {
	tests := []struct {
		name      string
		base      float64
		bonusRate float64
		want      float64
	}{
		{name: "FivePercentBonus", base: 100, bonusRate: 5, want: 105},
		{name: "ZeroBonusEqualsBase", base: 100, bonusRate: 0, want: 100},
		{name: "FractionalBonus", base: 80, bonusRate: 2.5, want: 82},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lightning.ComputeSettlementAmount(tt.base, tt.bonusRate)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, tt.base)
		})
	}
}

func TestNormalizeToBTC(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		unit    string
		want    float64
		wantErr bool
	}{
		{name: "ExplicitBTC", amount: 0.05, unit: "btc", want: 0.05},
		{name: "ExplicitSats", amount: 150_000, unit: "sats", want: 0.0015},
		{name: "ExplicitSatsLargeStaysSats", amount: 5, unit: "sats", want: 0.00000005},
		{name: "HeuristicAboveOneIsSats", amount: 150_000_000, unit: "", want: 1.5},
		{name: "HeuristicBelowOneIsBTC", amount: 0.5, unit: "", want: 0.5},
		{name: "HeuristicExactlyOneIsBTC", amount: 1, unit: "", want: 1},
		{name: "ZeroAmount", amount: 0, unit: "btc", wantErr: true},
		{name: "NegativeAmount", amount: -3, unit: "sats", wantErr: true},
		{name: "UnknownUnit", amount: 10, unit: "eur", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lightning.NormalizeToBTC(tt.amount, tt.unit)
			if tt.wantErr {
				var validation *apperr.ValidationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &validation))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestValidateBTCAmount(t *testing.T) {
	tests := []struct {
		name    string
		btc     float64
		wantErr bool
	}{
		{name: "ExactMaximumAccepted", btc: 0.1},
		{name: "JustAboveMaximumRejected", btc: 0.1 + 1e-8, wantErr: true},
		{name: "OneSatoshiAccepted", btc: 1.0 / 100_000_000},
		{name: "BelowOneSatoshiRejected", btc: 0.0000000005, wantErr: true},
		{name: "TypicalAmount", btc: 0.0015},
		{name: "OverLimitFromSatsHeuristic", btc: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lightning.ValidateBTCAmount(tt.btc)
			if tt.wantErr {
				var validation *apperr.ValidationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &validation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBTCToMsats(t *testing.T) {
	assert.Equal(t, int64(150_000_000), lightning.BTCToMsats(0.0015))
	assert.Equal(t, int64(1_000), lightning.BTCToMsats(1.0/100_000_000))
	assert.Equal(t, int64(10_000_000_000), lightning.BTCToMsats(0.1))
}

func TestMsatsRoundTrip(t *testing.T) {
	// 1 msat is 1e-11 BTC; the round trip must stay within that.
	for _, btc := range []float64{0.1, 0.0015, 0.023, 1.0 / 100_000_000} {
		got := lightning.MsatsToBTC(lightning.BTCToMsats(btc))
		assert.InDelta(t, btc, got, 1e-11)
	}
}
