package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord - сохранённая сводка одного анализа для истории
type AnalysisRecord struct {
	ID              uuid.UUID `json:"id" db:"id"`
	FileName        string    `json:"file_name" db:"file_name"`
	Checksum        string    `json:"checksum" db:"checksum"`
	TotalEntities   int       `json:"total_entities" db:"total_entities"`
	ValidEntities   int       `json:"valid_entities" db:"valid_entities"`
	PhantomEntities int       `json:"phantom_entities" db:"phantom_entities"`
	CutLengthMM     float64   `json:"cut_length_mm" db:"cut_length_mm"`
	MaxDimension    float64   `json:"max_dimension" db:"max_dimension"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// NewAnalysisRecord собирает запись истории из отчёта
func NewAnalysisRecord(fileName, checksum string, report *AnalysisReport) AnalysisRecord {
	return AnalysisRecord{
		ID:              uuid.New(),
		FileName:        fileName,
		Checksum:        checksum,
		TotalEntities:   report.Statistics.TotalEntities,
		ValidEntities:   report.Statistics.ValidEntities,
		PhantomEntities: report.Statistics.PhantomEntities,
		CutLengthMM:     report.CutLength.TotalMM,
		MaxDimension:    report.Statistics.MaxDesignDimension,
		CreatedAt:       time.Now().UTC(),
	}
}
