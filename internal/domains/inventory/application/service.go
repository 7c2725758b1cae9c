package application

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/orderops/shipsplit/internal/domains/inventory/domain"
	"github.com/orderops/shipsplit/internal/domains/inventory/ports"
)

var (
	// ErrMissingHeader signals the upload had no header row.
	ErrMissingHeader = errors.New("inventory upload is missing a header row")
	// ErrMissingColumn signals a required column is absent from the header.
	ErrMissingColumn = errors.New("inventory upload is missing a required column")
)

// Service converts uploaded tab-separated inventory sheets into the persisted
// SKU mapping the classifier consults.
type Service struct {
	store ports.Store
}

// NewService wires the ingestion service with its store.
func NewService(store ports.Store) *Service {
	return &Service{store: store}
}

// IngestTSV parses a tab-separated sheet whose first line is the column
// header (data starts at line two), replaces the persisted mapping with the
// parsed records, and returns them. Rows with an empty SKU are skipped.
func (s *Service) IngestTSV(ctx context.Context, r io.Reader) ([]domain.Record, error) {
	records, err := ParseTSV(r)
	if err != nil {
		return nil, err
	}
	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return nil, fmt.Errorf("persist inventory: %w", err)
	}
	return records, nil
}

// Records returns the currently persisted mapping.
func (s *Service) Records(ctx context.Context) ([]domain.Record, error) {
	return s.store.List(ctx)
}

// ParseTSV reads header-keyed tab-separated records. SKU and Available are
// required columns; Name and Location are carried through when present.
func ParseTSV(r io.Reader) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("read inventory header: %w", err)
	}
	columns := indexColumns(header)
	skuCol, ok := columns["sku"]
	if !ok {
		return nil, fmt.Errorf("%w: SKU", ErrMissingColumn)
	}
	availableCol, ok := columns["available"]
	if !ok {
		return nil, fmt.Errorf("%w: Available", ErrMissingColumn)
	}
	nameCol, hasName := columns["name"]
	locationCol, hasLocation := columns["location"]

	var records []domain.Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read inventory line %d: %w", line, err)
		}
		sku := strings.TrimSpace(field(row, skuCol))
		if sku == "" {
			continue
		}
		available, err := strconv.Atoi(strings.TrimSpace(field(row, availableCol)))
		if err != nil {
			return nil, fmt.Errorf("inventory line %d: bad Available value %q", line, field(row, availableCol))
		}
		record := domain.Record{SKU: sku, Available: available}
		if hasName {
			record.Name = strings.TrimSpace(field(row, nameCol))
		}
		if hasLocation {
			record.Location = strings.TrimSpace(field(row, locationCol))
		}
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("inventory line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
