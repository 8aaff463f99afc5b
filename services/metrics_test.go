package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paper-rank/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestComputeDisplayNoMatch(t *testing.T) {
	d := ComputeDisplay(nil)
	assert.Equal(t, NotAvailable, d.ImpactFactor)
	assert.Equal(t, NotAvailable, d.Percentile)
}

func TestComputeDisplayFullRow(t *testing.T) {
	row := &models.JCRRanking{
		ImpactFactor: floatPtr(49.962),
		CategoryRank: intPtr(5),
		CategorySize: intPtr(150),
	}
	d := ComputeDisplay(row)
	assert.Equal(t, "49.962", d.ImpactFactor)
	assert.Equal(t, "3.3%", d.Percentile)
}

func TestComputeDisplayPadsImpactFactor(t *testing.T) {
	row := &models.JCRRanking{
		ImpactFactor: floatPtr(7.1),
		CategoryRank: intPtr(2),
		CategorySize: intPtr(50),
	}
	d := ComputeDisplay(row)
	assert.Equal(t, "7.100", d.ImpactFactor)
	assert.Equal(t, "4.0%", d.Percentile)
}

func TestComputeDisplayMissingImpactFactor(t *testing.T) {
	row := &models.JCRRanking{
		CategoryRank: intPtr(10),
		CategorySize: intPtr(100),
	}
	d := ComputeDisplay(row)
	assert.Equal(t, NotAvailable, d.ImpactFactor)
	assert.Equal(t, "10.0%", d.Percentile)
}

func TestComputeDisplayNeverDivides(t *testing.T) {
	cases := []struct {
		name string
		row  *models.JCRRanking
	}{
		{"size zero", &models.JCRRanking{CategoryRank: intPtr(5), CategorySize: intPtr(0)}},
		{"rank zero", &models.JCRRanking{CategoryRank: intPtr(0), CategorySize: intPtr(100)}},
		{"rank negative", &models.JCRRanking{CategoryRank: intPtr(-3), CategorySize: intPtr(100)}},
		{"rank absent", &models.JCRRanking{CategorySize: intPtr(100)}},
		{"size absent", &models.JCRRanking{CategoryRank: intPtr(5)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, NotAvailable, ComputeDisplay(tc.row).Percentile)
		})
	}
}

// 1/16 ergibt exakt 6.25% und unterscheidet halb-aufrundend (6.3) von
// banker's rounding (6.2).
func TestComputeDisplayRoundsHalfUp(t *testing.T) {
	row := &models.JCRRanking{
		CategoryRank: intPtr(1),
		CategorySize: intPtr(16),
	}
	assert.Equal(t, "6.3%", ComputeDisplay(row).Percentile)
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 6.3, roundHalfUp(6.25, 1))
	assert.Equal(t, 2.5, roundHalfUp(2.5, 1))
	assert.Equal(t, 0.13, roundHalfUp(0.125, 2))
}
