package storage

import (
	"context"

	"gorm.io/gorm"

	"paper-rank/models"
	"paper-rank/services"
)

// PaperStore ist die gorm-basierte Umsetzung von services.PaperStore.
// ID und CreatedAt vergibt die Datenbank beim Insert; konkurrierende
// Schreibzugriffe serialisiert Postgres selbst.
type PaperStore struct {
	DB *gorm.DB
}

// NewPaperStore erstellt einen neuen PaperStore.
func NewPaperStore(db *gorm.DB) *PaperStore {
	return &PaperStore{DB: db}
}

// ListAll liefert alle Papers, neueste zuerst.
func (s *PaperStore) ListAll(ctx context.Context) ([]models.Paper, error) {
	var papers []models.Paper
	err := s.DB.WithContext(ctx).Order("created_at desc").Find(&papers).Error
	return papers, err
}

// Insert speichert ein neues Paper. Ein einzelnes INSERT, daher kann kein
// halb geschriebener Datensatz sichtbar werden.
func (s *PaperStore) Insert(ctx context.Context, paper *models.Paper) error {
	return s.DB.WithContext(ctx).Create(paper).Error
}

// DeleteByID entfernt ein Paper über seine ID. Eine unbekannte ID ergibt
// services.ErrPaperNotFound.
func (s *PaperStore) DeleteByID(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Paper{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrPaperNotFound
	}
	return nil
}
