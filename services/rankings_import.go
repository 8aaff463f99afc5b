package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paper-rank/config"
	"paper-rank/models"
)

// RankingImportService lädt die JCR-Ranking-Tabelle als CSV aus dem
// S3-Bucket und ersetzt damit den lokalen Bestand.
type RankingImportService struct {
	Config   *config.Config
	DB       *gorm.DB
	S3Client *s3.Client
	Logger   *zap.Logger
}

// NewRankingImportService erstellt eine neue Instanz des Import-Service.
func NewRankingImportService(cfg *config.Config, db *gorm.DB, s3Client *s3.Client, logger *zap.Logger) *RankingImportService {
	return &RankingImportService{Config: cfg, DB: db, S3Client: s3Client, Logger: logger}
}

// ImportFromS3 holt das CSV-Objekt und ersetzt die Tabelle in einer
// Transaktion, damit Lookups nie einen halb importierten Stand sehen.
// Gibt die Anzahl der importierten Zeilen zurück.
func (s *RankingImportService) ImportFromS3(ctx context.Context) (int, error) {
	out, err := s.S3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Config.RankingsS3Bucket),
		Key:    aws.String(s.Config.RankingsS3Object),
	})
	if err != nil {
		return 0, fmt.Errorf("rankings csv aus s3 laden: %w", err)
	}
	defer out.Body.Close()

	rows, err := ParseRankingsCSV(out.Body)
	if err != nil {
		return 0, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.JCRRanking{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return 0, fmt.Errorf("rankings import: %w", err)
	}

	s.Logger.Info("JCR-Ranking-Tabelle importiert",
		zap.Int("rows", len(rows)),
		zap.String("object", s.Config.RankingsS3Object))
	return len(rows), nil
}

// ParseRankingsCSV liest die Ranking-Tabelle aus einem CSV-Stream. Erwartet
// eine Header-Zeile; die Spalten dürfen in beliebiger Reihenfolge stehen.
// Erkannte Spalten: issn, journal_title, category, impact_factor,
// category_rank, category_size. Zeilen ohne ISSN werden übersprungen,
// leere Zahlenfelder bleiben nil.
func ParseRankingsCSV(r io.Reader) ([]models.JCRRanking, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("rankings csv: header lesen: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["issn"]; !ok {
		return nil, fmt.Errorf("rankings csv: spalte issn fehlt")
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []models.JCRRanking
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("rankings csv: zeile %d: %w", line, err)
		}

		issn := field(record, "issn")
		if issn == "" {
			continue
		}
		row := models.JCRRanking{
			ISSN:         issn,
			JournalTitle: field(record, "journal_title"),
			Category:     field(record, "category"),
		}

		if v := field(record, "impact_factor"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("rankings csv: zeile %d: impact_factor %q: %w", line, v, err)
			}
			row.ImpactFactor = &f
		}
		if v := field(record, "category_rank"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("rankings csv: zeile %d: category_rank %q: %w", line, v, err)
			}
			row.CategoryRank = &n
		}
		if v := field(record, "category_size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("rankings csv: zeile %d: category_size %q: %w", line, v, err)
			}
			row.CategorySize = &n
		}

		rows = append(rows, row)
	}
	return rows, nil
}
