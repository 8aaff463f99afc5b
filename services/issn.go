package services

import "strings"

// NormalizeISSN reduziert eine ISSN auf Ziffern plus Prüfzeichen X und setzt
// das X groß. Bindestriche, Leerzeichen und sonstige Formatierung fallen weg,
// damit "1234-5678" und "12345678" denselben Vergleichsschlüssel ergeben.
// Leere Eingabe ergibt leere Ausgabe. Die Funktion ist idempotent.
func NormalizeISSN(raw string) string {
	var out strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == 'X' || r == 'x':
			out.WriteRune('X')
		}
	}
	return out.String()
}

// normalizeCandidates normalisiert alle Kandidaten und entfernt Duplikate
// unter Beibehaltung der Reihenfolge. Leere Ergebnisse werden verworfen.
func normalizeCandidates(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	var keys []string
	for _, c := range candidates {
		key := NormalizeISSN(c)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}
