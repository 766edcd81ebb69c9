package storage

import "github.com/VeraSamohina/skypro-course-work-OOP/models"

// VacancyWriter is the interface any persistence backend must satisfy.
type VacancyWriter interface {
	Write(vacs []*models.Vacancy) error
	Close() error
}
