package models

// WorkMetadata sind die pro DOI von der Metadatenquelle gelieferten Felder.
// Wird einmal pro Lookup gebaut und danach nicht mehr verändert.
type WorkMetadata struct {
	DOI            string `json:"doi"`
	Title          string `json:"title"`
	ContainerTitle string `json:"container_title"`

	// Kandidaten in Quellen-Reihenfolge; typischerweise Print- und
	// Online-ISSN desselben Journals. Darf leer sein.
	ISSNCandidates []string `json:"issn_candidates"`

	Year int `json:"year"`
}
