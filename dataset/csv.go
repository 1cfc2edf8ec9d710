package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// Load reads a CSV file with a header row (conventionally "km,price") followed
// by numeric rows. See Read for the row rules.
func Load(path string, logger log.Logger) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer file.Close()

	ds, skipped, err := read(file)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("Dataset loaded",
			log.OperationKey, log.OperationLoad,
			log.PathKey, path,
			log.SamplesKey, ds.Len(),
			log.SkippedRowsKey, skipped,
		)
	}
	return ds, nil
}

// Read parses CSV data from r.
//
// Blank lines are ignored everywhere, so the header is the first non-blank
// line. The header must have at least 2 columns. A row with fewer than 2 fields, or
// whose first two fields do not parse as numbers, is skipped. Extra columns are
// ignored. If no row survives, Read returns an error wrapping ErrNoValidRows.
func Read(r io.Reader) (*Dataset, error) {
	ds, _, err := read(r)
	return ds, err
}

func read(r io.Reader) (*Dataset, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, errors.NewModelError("dataset.Read", "empty CSV, expect header 'km,price' and numeric rows", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, 0, errors.NewModelError("dataset.Read", "unreadable header", err)
	}
	if len(header) < 2 {
		return nil, 0, errors.NewModelError("dataset.Read", "invalid header", errors.ErrInvalidHeader)
	}

	ds := &Dataset{}
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a row the CSV reader cannot tokenize (e.g. a stray quote) is malformed like any other
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, 0, errors.Wrap(err, "failed to read dataset")
		}

		x, y, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		ds.X = append(ds.X, x)
		ds.Y = append(ds.Y, y)
	}

	if ds.Len() == 0 {
		return nil, skipped, errors.NewModelError("dataset.Read", "no valid data", errors.ErrNoValidRows)
	}
	return ds, skipped, nil
}

func parseRow(row []string) (x, y float64, ok bool) {
	if len(row) < 2 {
		return 0, 0, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	return x, y, true
}
