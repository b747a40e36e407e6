package repository

import (
	"gorm.io/gorm"

	"github.com/saludmental/mindtrack/internal/importer"
)

// NewImportRepos builds the repository bundle the import engine consumes.
// Pass a transaction handle to scope a whole run to one transaction.
func NewImportRepos(db *gorm.DB) importer.Repos {
	return importer.Repos{
		Patients:     NewPatientRepository(db),
		Disorders:    NewDisorderRepository(db),
		Attempts:     NewAttemptRepository(db),
		Consumptions: NewConsumptionRepository(db),
		Followups:    NewFollowupRepository(db),
	}
}
