package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"clinic-access-api/internal/models"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	// ErrFileAccess is returned when an input file is missing or unreadable.
	ErrFileAccess = errors.New("file access error")
	// ErrParse is returned when an input file is not well-formed JSON or CSV.
	ErrParse = errors.New("parse error")
)

// FilePaths names the three input files of the visualizations.
type FilePaths struct {
	Locations    string
	Gestational  string
	StateAbbrevs string
}

// FileRepository loads the visualization datasets from disk. Every read goes
// through the same text encoding.
type FileRepository struct {
	paths    FilePaths
	encoding encoding.Encoding
}

// NewFileRepository creates a file repository reading text in the named encoding
func NewFileRepository(paths FilePaths, encodingName string) (*FileRepository, error) {
	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		return nil, fmt.Errorf("repository: unsupported encoding %q: %w", encodingName, err)
	}
	return &FileRepository{paths: paths, encoding: enc}, nil
}

// LoadLocations reads the state -> zip code -> clinics dataset
func (r *FileRepository) LoadLocations(ctx context.Context) (models.LocationDataset, error) {
	var locations models.LocationDataset
	if err := r.readJSON(ctx, r.paths.Locations, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// LoadGestationalPolicies reads the state -> gestational policy dataset
func (r *FileRepository) LoadGestationalPolicies(ctx context.Context) (models.GestationalPolicies, error) {
	var policies models.GestationalPolicies
	if err := r.readJSON(ctx, r.paths.Gestational, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// LoadStateAbbrevs reads the state abbreviation CSV. Columns are looked up by
// header name so extra columns and column order do not matter.
func (r *FileRepository) LoadStateAbbrevs(ctx context.Context) (models.StateAbbrevs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := r.open(r.paths.StateAbbrevs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(r.encoding.NewDecoder().Reader(file))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to read header of %s: %w: %w", r.paths.StateAbbrevs, ErrParse, err)
	}

	stateCol, codeCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "state":
			stateCol = i
		case "code":
			codeCol = i
		}
	}
	if stateCol < 0 || codeCol < 0 {
		return nil, fmt.Errorf("repository: %s: %w: header needs 'state' and 'code' columns, got %v", r.paths.StateAbbrevs, ErrParse, header)
	}

	var abbrevs models.StateAbbrevs
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("repository: failed to read record of %s: %w: %w", r.paths.StateAbbrevs, ErrParse, err)
		}

		if len(record) <= stateCol || len(record) <= codeCol {
			return nil, fmt.Errorf("repository: %s: %w: short record %v", r.paths.StateAbbrevs, ErrParse, record)
		}

		abbrevs = append(abbrevs, models.StateAbbrev{
			State: strings.TrimSpace(record[stateCol]),
			Code:  strings.ToUpper(strings.TrimSpace(record[codeCol])),
		})
	}

	return abbrevs, nil
}

func (r *FileRepository) readJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := r.open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(r.encoding.NewDecoder().Reader(file)).Decode(v); err != nil {
		return fmt.Errorf("repository: failed to decode %s: %w: %w", path, ErrParse, err)
	}
	return nil
}

func (r *FileRepository) open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open file: %w: %w", ErrFileAccess, err)
	}
	return file, nil
}
