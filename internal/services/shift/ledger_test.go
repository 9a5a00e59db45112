package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

func TestLedger_RecordCheckout(t *testing.T) {
	visitor := models.Visitor{
		ID:     "some-id",
		Name:   "Alice",
		TimeIn: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
		Price:  15,
	}

	tests := []struct {
		name        string
		rawPaid     string
		wantErr     string
		wantNominal float64
		wantIncome  float64
		wantProfit  float64
	}{
		{
			name:        "paid equals advisory price",
			rawPaid:     "15.0",
			wantNominal: 115,
			wantIncome:  15,
			wantProfit:  15,
		},
		{
			name:        "paid differs from advisory price",
			rawPaid:     "20",
			wantNominal: 120,
			wantIncome:  20,
			wantProfit:  20,
		},
		{
			name:        "zero paid is allowed",
			rawPaid:     "0",
			wantNominal: 100,
			wantIncome:  0,
			wantProfit:  0,
		},
		{
			name:    "blank paid",
			rawPaid: "",
			wantErr: "please fill 'paid' field",
		},
		{
			name:    "non-numeric paid",
			rawPaid: "abc",
			wantErr: "'paid' must be a number",
		},
		{
			name:    "negative paid",
			rawPaid: "-5",
			wantErr: "'paid' must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := Open(100)

			left, err := ledger.RecordCheckout(visitor, tt.rawPaid)

			if tt.wantErr != "" {
				var inputErr *InvalidInputError
				require.ErrorAs(t, err, &inputErr)
				assert.Equal(t, "paid", inputErr.Field)
				assert.Equal(t, tt.wantErr, inputErr.Message)

				// Журнал не изменился
				snapshot := ledger.Snapshot()
				assert.Equal(t, 100.0, snapshot.NominalCash)
				assert.Empty(t, snapshot.LeftVisitors)
				assert.Equal(t, StateOpen, ledger.State())
				return
			}

			require.NoError(t, err)
			assert.Empty(t, left.ID, "visitor id must be stripped on checkout")
			assert.Equal(t, "Alice", left.Name)

			snapshot := ledger.Snapshot()
			assert.Equal(t, tt.wantNominal, snapshot.NominalCash)
			assert.Equal(t, tt.wantIncome, snapshot.Income)
			assert.Equal(t, tt.wantProfit, snapshot.Profit)
			require.Len(t, snapshot.LeftVisitors, 1)
			assert.Empty(t, snapshot.LeftVisitors[0].ID)
		})
	}
}

func TestLedger_RecordDischarge(t *testing.T) {
	tests := []struct {
		name        string
		rawAmount   string
		reason      string
		wantErr     string
		wantNominal float64
		wantOutcome float64
		wantProfit  float64
	}{
		{
			name:        "regular discharge",
			rawAmount:   "20.0",
			reason:      "supplies",
			wantNominal: 80,
			wantOutcome: 20,
			wantProfit:  -20,
		},
		{
			name:    "blank amount",
			wantErr: "please fill 'amount' field",
		},
		{
			name:      "non-numeric amount",
			rawAmount: "twenty",
			wantErr:   "'amount' must be a number",
		},
		{
			name:      "negative amount",
			rawAmount: "-1",
			wantErr:   "'amount' must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := Open(100)

			err := ledger.RecordDischarge(tt.rawAmount, tt.reason)

			if tt.wantErr != "" {
				var inputErr *InvalidInputError
				require.ErrorAs(t, err, &inputErr)
				assert.Equal(t, "amount", inputErr.Field)
				assert.Equal(t, tt.wantErr, inputErr.Message)

				snapshot := ledger.Snapshot()
				assert.Equal(t, 100.0, snapshot.NominalCash)
				assert.Empty(t, snapshot.Discharges)
				return
			}

			require.NoError(t, err)
			snapshot := ledger.Snapshot()
			assert.Equal(t, tt.wantNominal, snapshot.NominalCash)
			assert.Equal(t, tt.wantOutcome, snapshot.Outcome)
			assert.Equal(t, tt.wantProfit, snapshot.Profit)
			require.Len(t, snapshot.Discharges, 1)
			assert.Equal(t, tt.reason, snapshot.Discharges[0].Reason)
			assert.Equal(t, 20.0, snapshot.Discharges[0].Amount)
			assert.False(t, snapshot.Discharges[0].Timestamp.IsZero())
		})
	}
}

// Сквозной сценарий: открытие с остатком 100, выход посетителя с оплатой 15,
// затем расход 20 — итоги должны сходиться на каждом шаге.
func TestLedger_RunningTotals(t *testing.T) {
	ledger := Open(100)

	timeIn := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	quote := Estimate(timeIn, timeIn.Add(5400*time.Second), 10)
	assert.Equal(t, 15.0, quote.Price)

	visitor := models.Visitor{
		ID:              "alice-id",
		Name:            "Alice",
		TimeIn:          timeIn,
		TimeOut:         timeIn.Add(5400 * time.Second),
		DurationSeconds: 5400,
		Price:           quote.Price,
	}

	_, err := ledger.RecordCheckout(visitor, "15.0")
	require.NoError(t, err)

	snapshot := ledger.Snapshot()
	assert.Equal(t, 115.0, snapshot.NominalCash)
	assert.Equal(t, 15.0, snapshot.Income)
	assert.Equal(t, 15.0, snapshot.Profit)

	require.NoError(t, ledger.RecordDischarge("20.0", "supplies"))

	snapshot = ledger.Snapshot()
	assert.Equal(t, 95.0, snapshot.NominalCash)
	assert.Equal(t, 20.0, snapshot.Outcome)
	assert.Equal(t, -5.0, snapshot.Profit)
	assert.Equal(t, 15.0, snapshot.Income)
}

func TestLedger_Finalize(t *testing.T) {
	tests := []struct {
		name        string
		rawRealCash string
		wantErr     string
	}{
		{
			name:        "valid real cash",
			rawRealCash: "93.5",
		},
		{
			name:        "blank real cash",
			rawRealCash: "",
			wantErr:     "please fill 'real_cash' field",
		},
		{
			name:        "non-numeric real cash",
			rawRealCash: "all of it",
			wantErr:     "'real_cash' must be a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := Open(100)
			require.NoError(t, ledger.RecordDischarge("10", "change"))
			before := ledger.Snapshot()

			record, err := ledger.Finalize(tt.rawRealCash, "olga")

			if tt.wantErr != "" {
				var inputErr *InvalidInputError
				require.ErrorAs(t, err, &inputErr)
				assert.Equal(t, "real_cash", inputErr.Field)
				assert.Equal(t, tt.wantErr, inputErr.Message)

				// Смена осталась открытой и нетронутой
				assert.Equal(t, StateOpen, ledger.State())
				assert.Equal(t, before, ledger.Snapshot())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 93.5, record.RealCash)
			assert.Equal(t, "olga", record.Username)
			assert.False(t, record.TimeClosed.IsZero())
			assert.Equal(t, before.NominalCash, record.NominalCash)

			// Finalize сам по себе не закрывает смену
			assert.Equal(t, StateOpen, ledger.State())
		})
	}
}

func TestLedger_ClosedIsTerminal(t *testing.T) {
	ledger := Open(50)
	ledger.MarkClosed()

	_, err := ledger.RecordCheckout(models.Visitor{Name: "Bob"}, "10")
	assert.ErrorIs(t, err, ErrShiftClosed)

	assert.ErrorIs(t, ledger.RecordDischarge("5", "x"), ErrShiftClosed)

	_, err = ledger.Finalize("50", "olga")
	assert.ErrorIs(t, err, ErrShiftClosed)

	snapshot := ledger.Snapshot()
	assert.Equal(t, 50.0, snapshot.NominalCash)
}
