package crossref

// worksResponse ist die Top-Level-Struktur der CrossRef works-API-Antwort.
type worksResponse struct {
	Status  string `json:"status"`
	Message Work   `json:"message"`
}

// Work repräsentiert ein einzelnes Werk in der API-Antwort. CrossRef liefert
// Titel und Container-Titel als Arrays und die ISSNs in Quellen-Reihenfolge
// (üblicherweise Print vor Online, aber nicht garantiert).
type Work struct {
	DOI            string   `json:"DOI"`
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	ISSN           []string `json:"ISSN"`
	Created        struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"created"`
}

// createdYear extrahiert das Jahr aus dem verschachtelten date-parts-Array.
// 0, wenn kein Datum vorhanden ist.
func (w *Work) createdYear() int {
	if len(w.Created.DateParts) == 0 || len(w.Created.DateParts[0]) == 0 {
		return 0
	}
	return w.Created.DateParts[0][0]
}
