package service

import (
	"slices"

	"mediguide/internal/disease/catalog"
	"mediguide/platform/apperr"
)

const msgNoKnownSymptoms = "select at least one known symptom"

// Service predicts a disease from selected symptoms.
type Service struct {
	catalog *catalog.Catalog
	// profiles holds each disease as a 0/1 vector over the symptom columns.
	profiles [][]int
}

func New(c *catalog.Catalog) *Service {
	profiles := make([][]int, len(c.Diseases))
	for i, d := range c.Diseases {
		profiles[i] = make([]int, len(c.Symptoms))
		for _, symptom := range d.Symptoms {
			col, _ := c.Column(symptom)
			profiles[i][col] = 1
		}
	}
	return &Service{catalog: c, profiles: profiles}
}

// Symptoms returns the columns in vector order.
func (s *Service) Symptoms() []string {
	return slices.Clone(s.catalog.Symptoms)
}

// Vector marks each column selected with 1. Unknown names are ignored.
func (s *Service) Vector(selected []string) []int {
	vector := make([]int, len(s.catalog.Symptoms))
	for _, symptom := range selected {
		if col, ok := s.catalog.Column(symptom); ok {
			vector[col] = 1
		}
	}
	return vector
}

// Predict returns the disease whose symptoms overlap the selection best,
// scored by matched / union. Earlier catalog entries win ties.
func (s *Service) Predict(selected []string) (string, error) {
	vector := s.Vector(selected)
	if !slices.Contains(vector, 1) {
		return "", apperr.Validation(msgNoKnownSymptoms)
	}

	best, bestScore := -1, -1.0
	for i, profile := range s.profiles {
		if score := overlap(vector, profile); score > bestScore {
			best, bestScore = i, score
		}
	}
	return s.catalog.Diseases[best].Name, nil
}

func overlap(a, b []int) float64 {
	matched, union := 0, 0
	for i := range a {
		if a[i] == 1 && b[i] == 1 {
			matched++
		}
		if a[i] == 1 || b[i] == 1 {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(matched) / float64(union)
}
