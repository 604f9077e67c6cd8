package service

import (
	"context"
	"fmt"

	"clinic-access-api/internal/models"

	"github.com/rs/zerolog"
)

// PolicySource provides the gestational policy dataset and the abbreviation table
type PolicySource interface {
	LoadGestationalPolicies(ctx context.Context) (models.GestationalPolicies, error)
	LoadStateAbbrevs(ctx context.Context) (models.StateAbbrevs, error)
}

// StateService builds the per-state table behind the USA map
type StateService struct {
	locations LocationSource
	policies  PolicySource
	strict    bool
	logger    zerolog.Logger
}

// NewStateService creates a new state service. In strict mode any state that
// fails to match in a join turns into a *JoinMismatchError.
func NewStateService(locations LocationSource, policies PolicySource, strict bool, logger zerolog.Logger) *StateService {
	return &StateService{
		locations: locations,
		policies:  policies,
		strict:    strict,
		logger:    logger.With().Str("service", "state").Logger(),
	}
}

// StateTable counts clinics per state and joins the counts with postal codes
// and gestational policies.
func (s *StateService) StateTable(ctx context.Context) ([]models.StateRow, models.JoinReport, error) {
	locations, err := s.locations.LoadLocations(ctx)
	if err != nil {
		return nil, models.JoinReport{}, fmt.Errorf("service: failed to load locations: %w", err)
	}

	policies, err := s.policies.LoadGestationalPolicies(ctx)
	if err != nil {
		return nil, models.JoinReport{}, fmt.Errorf("service: failed to load gestational policies: %w", err)
	}

	abbrevs, err := s.policies.LoadStateAbbrevs(ctx)
	if err != nil {
		return nil, models.JoinReport{}, fmt.Errorf("service: failed to load state abbreviations: %w", err)
	}

	rows, report := JoinStates(CountByState(locations), policies, abbrevs)

	for _, state := range report.MissingPolicy {
		s.logger.Warn().Str("state", state).Msg("state has clinics but no gestational policy, dropped")
	}
	for _, state := range report.MissingLocations {
		s.logger.Warn().Str("state", state).Msg("state has a gestational policy but no locations, dropped")
	}
	for _, state := range report.MissingCode {
		s.logger.Warn().Str("state", state).Msg("state has no postal code")
	}

	if s.strict && !report.Empty() {
		return nil, report, &JoinMismatchError{Report: report}
	}

	return rows, report, nil
}
