package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"pharmstore/m/domain"
	"pharmstore/m/internal/repository"
	"pharmstore/m/internal/validation"
)

var drugColumns = []string{"code", "name", "manufacturer", "price"}

// Summary counts the outcome of a catalog load.
type Summary struct {
	Inserted int
	Skipped  int
}

// LoadDrugsFile opens csvPath and loads it with LoadDrugs.
func LoadDrugsFile(ctx context.Context, drugs *repository.Table[domain.Drug, domain.DrugCreate], csvPath string, logger zerolog.Logger) (Summary, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return Summary{}, fmt.Errorf("open drug catalog: %w", err)
	}
	defer file.Close()
	return LoadDrugs(ctx, drugs, file, logger)
}

// LoadDrugs ingests a CSV drug catalog with a code,name,manufacturer,price
// header (any column order). Rows that fail validation or collide with an
// existing code are skipped; other store errors abort the load.
func LoadDrugs(ctx context.Context, drugs *repository.Table[domain.Drug, domain.DrugCreate], r io.Reader, logger zerolog.Logger) (Summary, error) {
	var sum Summary
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return sum, fmt.Errorf("read drug header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return sum, err
	}

	v := validation.New()
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn().Err(err).Int("line", line).Msg("unable to read drug row")
			sum.Skipped++
			continue
		}

		payload, err := rowPayload(record, index)
		if err == nil {
			err = v.Struct(payload)
		}
		if err != nil {
			logger.Warn().Err(err).Int("line", line).Msg("skipping invalid drug row")
			sum.Skipped++
			continue
		}

		if _, err := drugs.Create(ctx, payload.Create()); err != nil {
			if errors.Is(err, domain.ErrConstraint) {
				logger.Debug().Str("code", *payload.Code).Msg("drug already present")
				sum.Skipped++
				continue
			}
			return sum, fmt.Errorf("insert drug on line %d: %w", line, err)
		}
		sum.Inserted++
	}

	logger.Info().Int("inserted", sum.Inserted).Int("skipped", sum.Skipped).Msg("seeded drug catalog")
	return sum, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(drugColumns))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range drugColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("drug catalog header missing %q column", c)
		}
	}
	return index, nil
}

func rowPayload(record []string, index map[string]int) (validation.DrugPayload, error) {
	field := func(name string) (string, bool) {
		i := index[name]
		if i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}

	var p validation.DrugPayload
	if s, ok := field("code"); ok {
		p.Code = &s
	}
	if s, ok := field("name"); ok {
		p.Name = &s
	}
	if s, ok := field("manufacturer"); ok {
		p.Manufacturer = &s
	}
	if s, ok := field("price"); ok && s != "" {
		price, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return p, domain.NewValidationError("price", "type", "must be of type integer")
		}
		p.Price = &price
	}
	return p, nil
}
