package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`

	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// CrossRef liefert die Metadaten pro DOI. Die Mailto-Adresse landet als
	// Höflichkeits-Parameter in jeder Anfrage (polite pool).
	CrossRefBaseURL string `envconfig:"CROSSREF_BASE_URL" default:"https://api.crossref.org"`
	CrossRefMailto  string `envconfig:"CROSSREF_MAILTO"`

	// Fuzzy-Fallback für die ISSN-Auflösung. Standardmäßig aus, weil der
	// exakte normalisierte Vergleich alle bekannten Fälle abdeckt.
	RankingFuzzyMatch bool `envconfig:"RANKING_FUZZY_MATCH" default:"false"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"0 3 * * *"`

	// S3-Bucket, in dem die JCR-Ranking-Tabelle als CSV gepflegt wird.
	RankingsS3Key    string `envconfig:"RANKINGS_S3_KEY" required:"true"`
	RankingsS3Secret string `envconfig:"RANKINGS_S3_SECRET" required:"true"`
	RankingsS3URL    string `envconfig:"RANKINGS_S3_URL" required:"true"`
	RankingsS3Region string `envconfig:"RANKINGS_S3_REGION" required:"true"`
	RankingsS3Bucket string `envconfig:"RANKINGS_S3_BUCKET" required:"true"`
	RankingsS3Object string `envconfig:"RANKINGS_S3_OBJECT" default:"jcr_impact_factors.csv"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
