package service

import (
	"context"
	"fmt"

	"clinic-access-api/internal/models"

	"github.com/rs/zerolog"
)

// LocationSource provides the location dataset, from files or the database
type LocationSource interface {
	LoadLocations(ctx context.Context) (models.LocationDataset, error)
}

// CityService builds the clinic-per-city table
type CityService struct {
	repo   LocationSource
	logger zerolog.Logger
}

// NewCityService creates a new city service
func NewCityService(repo LocationSource, logger zerolog.Logger) *CityService {
	return &CityService{repo: repo, logger: logger.With().Str("service", "city").Logger()}
}

// CityCounts loads the locations and returns every city count in ascending order
func (s *CityService) CityCounts(ctx context.Context) ([]models.CityCount, error) {
	locations, err := s.repo.LoadLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load locations: %w", err)
	}

	counts := CountByCity(locations)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	s.logger.Debug().
		Int("cities", len(counts)).
		Int("counted", total).
		Int("skipped", locations.ClinicCount()-total).
		Msg("counted clinics by city")

	return counts, nil
}

// TopCities returns the n cities with the most clinics, ascending
func (s *CityService) TopCities(ctx context.Context, n int) ([]models.CityCount, error) {
	if n <= 0 {
		return nil, fmt.Errorf("service: %w: got %d", ErrInvalidTopN, n)
	}

	counts, err := s.CityCounts(ctx)
	if err != nil {
		return nil, err
	}

	return TopCities(counts, n), nil
}
