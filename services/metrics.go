package services

import (
	"fmt"
	"math"

	"paper-rank/models"
)

// NotAvailable ist der Platzhalter für fehlende Anzeige-Werte.
const NotAvailable = "N/A"

// DisplayMetrics sind die fertig formatierten Anzeige-Strings eines Papers.
type DisplayMetrics struct {
	ImpactFactor string `json:"impact_factor"`
	Percentile   string `json:"percentile"`
}

// ComputeDisplay leitet die Anzeige-Strings aus einer aufgelösten
// Ranking-Zeile ab. Ohne Zeile oder ohne hinterlegten Wert bleibt es bei
// "N/A". Ein Rang <= 0 oder eine Kategoriegröße <= 0 wird wie "kein Wert"
// behandelt, damit nie eine unsinnige Prozentzahl oder eine Division durch
// null entsteht.
func ComputeDisplay(row *models.JCRRanking) DisplayMetrics {
	d := DisplayMetrics{ImpactFactor: NotAvailable, Percentile: NotAvailable}
	if row == nil {
		return d
	}

	if row.ImpactFactor != nil {
		d.ImpactFactor = fmt.Sprintf("%.3f", roundHalfUp(*row.ImpactFactor, 3))
	}

	if row.CategoryRank != nil && row.CategorySize != nil &&
		*row.CategoryRank > 0 && *row.CategorySize > 0 {
		pct := 100 * float64(*row.CategoryRank) / float64(*row.CategorySize)
		d.Percentile = fmt.Sprintf("%.1f%%", roundHalfUp(pct, 1))
	}

	return d
}

// roundHalfUp rundet kaufmännisch auf die gegebene Anzahl Nachkommastellen.
// Die gespeicherten Strings sind unveränderliche Historie und werden nie neu
// abgeleitet, daher muss das Rundungsverfahren über alle Versionen gleich
// bleiben: halb-aufrundend, nicht banker's rounding.
func roundHalfUp(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Floor(v*scale+0.5) / scale
}
