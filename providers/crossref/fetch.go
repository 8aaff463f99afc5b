package crossref

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"paper-rank/config"
	"paper-rank/models"

	"go.uber.org/zap"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

var (
	// ErrWorkNotFound: die DOI ist der Quelle unbekannt.
	ErrWorkNotFound = errors.New("crossref: work not found")
	// ErrMalformedWork: die Antwort war erfolgreich, aber Pflichtfelder
	// (Titel, Container-Titel, Erstellungsdatum) fehlen.
	ErrMalformedWork = errors.New("crossref: malformed work response")
)

// Fetcher kapselt die Logik für die CrossRef works-API.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen CrossRef-Fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{Config: cfg, Logger: logger}
}

// FetchWork holt die Metadaten zu einer DOI. Die DOI wird unverändert an die
// Quelle durchgereicht, es findet keine eigene Validierung statt.
func (f *Fetcher) FetchWork(ctx context.Context, doi string) (*models.WorkMetadata, error) {
	reqURL := fmt.Sprintf("%s/works/%s", f.Config.CrossRefBaseURL, url.PathEscape(doi))
	if f.Config.CrossRefMailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(f.Config.CrossRefMailto)
	}
	log := f.Logger.With(zap.String("doi", doi))
	log.Debug("Rufe CrossRef API auf", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrWorkNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crossref request failed with status: %d", resp.StatusCode)
	}

	var wr worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWork, err)
	}

	work, err := mapWorkToMetadata(&wr.Message)
	if err != nil {
		return nil, err
	}
	work.DOI = doi

	log.Info("Metadaten über CrossRef geladen",
		zap.String("container_title", work.ContainerTitle),
		zap.Int("issn_candidates", len(work.ISSNCandidates)))
	return work, nil
}

// mapWorkToMetadata konvertiert ein CrossRef Work-Objekt in unser internes
// Metadaten-Modell und prüft dabei die Pflichtfelder.
func mapWorkToMetadata(w *Work) (*models.WorkMetadata, error) {
	if len(w.Title) == 0 || w.Title[0] == "" {
		return nil, fmt.Errorf("%w: missing title", ErrMalformedWork)
	}
	if len(w.ContainerTitle) == 0 || w.ContainerTitle[0] == "" {
		return nil, fmt.Errorf("%w: missing container-title", ErrMalformedWork)
	}
	year := w.createdYear()
	if year == 0 {
		return nil, fmt.Errorf("%w: missing created date", ErrMalformedWork)
	}

	return &models.WorkMetadata{
		Title:          w.Title[0],
		ContainerTitle: w.ContainerTitle[0],
		ISSNCandidates: w.ISSN,
		Year:           year,
	}, nil
}
