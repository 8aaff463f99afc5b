package services

import (
	"context"
	"sort"

	"paper-rank/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RankingService löst ISSN-Kandidaten gegen die lokal gehaltene
// JCR-Ranking-Tabelle auf.
type RankingService struct {
	DB     *gorm.DB
	Logger *zap.Logger

	// FuzzyMatch aktiviert den verankerten LIKE-Fallback, falls der exakte
	// normalisierte Vergleich leer ausgeht. Siehe fuzzyLookup.
	FuzzyMatch bool
}

// NewRankingService erstellt eine neue Instanz des RankingService.
func NewRankingService(db *gorm.DB, logger *zap.Logger, fuzzyMatch bool) *RankingService {
	return &RankingService{DB: db, Logger: logger, FuzzyMatch: fuzzyMatch}
}

// Lookup liefert alle Ranking-Zeilen zu den Kandidaten, absteigend nach
// Impact Factor sortiert (Zeilen ohne Wert zuletzt, Reihenfolge bei
// Gleichstand stabil). Fehler der Datenbank werden geloggt und als leeres
// Ergebnis behandelt: ein fehlender Treffer ist ein erwarteter Ausgang,
// kein Fehlerfall für den Aufrufer.
func (s *RankingService) Lookup(ctx context.Context, candidates []string) []models.JCRRanking {
	keys := normalizeCandidates(candidates)
	if len(keys) == 0 {
		return nil
	}

	// Die Tabelle speichert ISSNs so, wie die Quelle sie liefert. Für den
	// Vergleich werden beide Seiten auf den Ziffernschlüssel gebracht.
	var rows []models.JCRRanking
	err := s.DB.WithContext(ctx).
		Where("REPLACE(REPLACE(UPPER(issn), '-', ''), ' ', '') IN ?", keys).
		Find(&rows).Error
	if err != nil {
		s.Logger.Warn("Ranking-Lookup fehlgeschlagen, fahre ohne Treffer fort",
			zap.Strings("issn_keys", keys), zap.Error(err))
		return nil
	}

	if len(rows) == 0 && s.FuzzyMatch {
		rows = s.fuzzyLookup(ctx, keys)
	}

	sortByImpactFactor(rows)
	return rows
}

// fuzzyLookup ist der letzte Ausweg, wenn die gespeicherte Formatierung sich
// nicht per REPLACE normalisieren lässt. Das Muster ist an beiden Enden
// verankert und deckt immer die volle Ziffernfolge ab ("1234%5678"), damit
// ein Schlüssel nie mitten in einer fremden ISSN matchen kann.
func (s *RankingService) fuzzyLookup(ctx context.Context, keys []string) []models.JCRRanking {
	var rows []models.JCRRanking
	for _, key := range keys {
		if len(key) != 8 {
			continue
		}
		pattern := key[:4] + "%" + key[4:]
		var found []models.JCRRanking
		err := s.DB.WithContext(ctx).
			Where("UPPER(issn) LIKE ?", pattern).
			Find(&found).Error
		if err != nil {
			s.Logger.Warn("Fuzzy-Lookup fehlgeschlagen", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		rows = append(rows, found...)
	}
	return rows
}

// Resolve führt Lookup und Auswahl in einem Schritt aus.
func (s *RankingService) Resolve(ctx context.Context, candidates []string) *models.JCRRanking {
	return ResolveMatch(s.Lookup(ctx, candidates))
}

// ResolveMatch wählt die beste Zeile aus einer bereits nach Impact Factor
// sortierten Kandidatenliste: die mit dem höchsten Wert über alle
// ISSN-Varianten und Kategorien hinweg. nil bedeutet "kein Treffer".
func ResolveMatch(rows []models.JCRRanking) *models.JCRRanking {
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// sortByImpactFactor sortiert absteigend nach Impact Factor. Zeilen ohne
// Wert kommen ans Ende, bei Gleichstand bleibt die Eingabereihenfolge
// erhalten.
func sortByImpactFactor(rows []models.JCRRanking) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].ImpactFactor, rows[j].ImpactFactor
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a > *b
	})
}
