package services

import (
	"context"
	"errors"
	"fmt"

	"paper-rank/models"
	"paper-rank/providers/crossref"

	"go.uber.org/zap"
)

var (
	// ErrFetchFailed: die Metadatenquelle war nicht erreichbar oder hat
	// eine unbrauchbare Antwort geliefert. Es wurde nichts gespeichert.
	ErrFetchFailed = errors.New("metadata fetch failed")
	// ErrStoreFailed: der Insert in den Paper-Store ist fehlgeschlagen.
	ErrStoreFailed = errors.New("paper store write failed")
	// ErrPaperNotFound: Delete auf eine unbekannte ID. Der Bestand bleibt
	// unverändert.
	ErrPaperNotFound = errors.New("paper not found")
)

// MetadataFetcher liefert die Metadaten zu einer DOI.
type MetadataFetcher interface {
	FetchWork(ctx context.Context, doi string) (*models.WorkMetadata, error)
}

// RankingResolver löst ISSN-Kandidaten zur besten Ranking-Zeile auf.
// nil bedeutet "kein Treffer" und ist kein Fehler.
type RankingResolver interface {
	Resolve(ctx context.Context, candidates []string) *models.JCRRanking
}

// PaperStore ist die Persistenzschicht für Paper-Datensätze. ListAll liefert
// neueste zuerst; Insert vergibt ID und CreatedAt; DeleteByID meldet
// ErrPaperNotFound für unbekannte IDs.
type PaperStore interface {
	ListAll(ctx context.Context) ([]models.Paper, error)
	Insert(ctx context.Context, paper *models.Paper) error
	DeleteByID(ctx context.Context, id uint) error
}

// PaperService orchestriert die komplette Pipeline zum Registrieren einer
// Publikation. Alle Kollaborateure werden injiziert, damit jeder Schritt
// einzeln testbar bleibt.
type PaperService struct {
	Fetcher MetadataFetcher
	Ranking RankingResolver
	Store   PaperStore
	Logger  *zap.Logger
}

// NewPaperService erstellt eine neue Instanz des PaperService.
func NewPaperService(fetcher MetadataFetcher, ranking RankingResolver, store PaperStore, logger *zap.Logger) *PaperService {
	return &PaperService{
		Fetcher: fetcher,
		Ranking: ranking,
		Store:   store,
		Logger:  logger,
	}
}

// AddPaper führt die Pipeline für eine DOI aus: Metadaten holen, ISSNs gegen
// die Ranking-Tabelle auflösen, Anzeige-Werte berechnen, Datensatz bauen und
// speichern. Ein Fetch-Fehler bricht vor jedem Schreibzugriff ab; eine
// fehlende Ranking-Zuordnung degradiert nur die Anzeige-Felder.
func (s *PaperService) AddPaper(ctx context.Context, doi string) (*models.Paper, error) {
	work, err := s.Fetcher.FetchWork(ctx, doi)
	if err != nil {
		if errors.Is(err, crossref.ErrWorkNotFound) {
			return nil, err
		}
		s.Logger.Error("Metadaten-Abruf fehlgeschlagen", zap.String("doi", doi), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	row := s.Ranking.Resolve(ctx, work.ISSNCandidates)
	display := ComputeDisplay(row)
	paper := BuildPaper(doi, work, row, display)

	if err := s.Store.Insert(ctx, paper); err != nil {
		s.Logger.Error("Paper konnte nicht gespeichert werden", zap.String("doi", doi), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	s.Logger.Info("Paper gespeichert",
		zap.Uint("id", paper.ID),
		zap.String("doi", doi),
		zap.String("journal", paper.Journal),
		zap.String("impact_factor", paper.ImpactFactor))
	return paper, nil
}

// BuildPaper setzt den Datensatz aus Metadaten, aufgelöster Ranking-Zeile
// und Anzeige-Werten zusammen. Reine Zuordnung, kein I/O: der Journal-Name
// kommt aus der Ranking-Tabelle, wenn dort einer steht, sonst aus den
// gefetchten Metadaten.
func BuildPaper(doi string, work *models.WorkMetadata, row *models.JCRRanking, display DisplayMetrics) *models.Paper {
	journal := work.ContainerTitle
	if row != nil && row.JournalTitle != "" {
		journal = row.JournalTitle
	}
	return &models.Paper{
		DOI:          doi,
		Title:        work.Title,
		Journal:      journal,
		Year:         work.Year,
		ImpactFactor: display.ImpactFactor,
		Percentile:   display.Percentile,
	}
}

// List liefert alle gespeicherten Papers, neueste zuerst.
func (s *PaperService) List(ctx context.Context) ([]models.Paper, error) {
	return s.Store.ListAll(ctx)
}

// Delete entfernt ein Paper über seine ID. Eine unbekannte ID ergibt
// ErrPaperNotFound, der Bestand bleibt dann unverändert.
func (s *PaperService) Delete(ctx context.Context, id uint) error {
	return s.Store.DeleteByID(ctx, id)
}
