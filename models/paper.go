package models

import (
	"time"
)

// Paper repräsentiert eine registrierte Publikation samt bibliometrischer Anreicherung.
type Paper struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Die DOI wird bewusst nicht unique indiziert: Duplikat-Erkennung ist
	// Sache der aufrufenden Ebene, nicht des Stores.
	DOI   string `json:"doi" gorm:"column:doi;index;not null"`
	Title string `json:"title" gorm:"type:text"`

	// Journal ist der Titel aus der Ranking-Tabelle, wenn eine Zuordnung
	// gelang, sonst der Container-Titel aus den CrossRef-Metadaten.
	Journal string `json:"journal"`
	Year    int    `json:"year"`

	// Anzeige-Strings, einmal beim Anlegen berechnet und danach nie neu
	// abgeleitet. "N/A" wenn keine Ranking-Zeile aufgelöst werden konnte.
	ImpactFactor string `json:"impact_factor"`
	Percentile   string `json:"percentile"`
}
