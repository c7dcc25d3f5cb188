package models

import "time"

// BackupDocument is the import/export file format. The field names match the
// legacy application's backup files so old exports remain importable.
type BackupDocument struct {
	Studies        []StudySession `json:"studies"`
	CustomSubjects []Subject      `json:"customSubjects"`
	ExportDate     time.Time      `json:"exportDate"`
}
