package models

// JCRRanking ist eine Zeile der lokal gehaltenen Journal-Ranking-Tabelle.
// Ein Journal kann mehrfach vorkommen: pro Fachkategorie eine Zeile mit
// eigenem Rang, und Print- und Online-ISSN erzeugen jeweils eigene Zeilen.
type JCRRanking struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// ISSN wird so gespeichert, wie die Quelle sie liefert. Der Vergleich
	// läuft immer über die normalisierte Form (services.NormalizeISSN).
	ISSN         string `json:"issn" gorm:"column:issn;index"`
	JournalTitle string `json:"journal_title"`
	Category     string `json:"category"`

	// nil bedeutet: kein Wert hinterlegt. Eine Zeile ohne Impact Factor
	// verliert bei der Auflösung immer gegen eine Zeile mit Wert.
	ImpactFactor *float64 `json:"impact_factor,omitempty"`
	CategoryRank *int     `json:"category_rank,omitempty"`
	CategorySize *int     `json:"category_size,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (JCRRanking) TableName() string {
	return "jcr_impact_factors"
}
