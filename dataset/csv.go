package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/knnloo/pkg/errors"
)

// ReadOptions controls how records are turned into samples.
type ReadOptions struct {
	// NFeatures is the expected feature count F. Zero derives it from the
	// header (or the first record when NoHeader is set): columns - 2.
	NFeatures int
	// NoHeader treats the first line as a record.
	NoHeader bool
	// Comma is the field delimiter, ',' when zero.
	Comma rune
	// Source names the input in error messages.
	Source string
}

/*
ReadCSV reads a dataset from r. Each record is laid out as

	identifier, feature_1, ..., feature_F, label

The first line is a header unless opts.NoHeader is set. A record with a
missing feature or label, a feature that is not a number, or a label other
than P or H aborts the read with a MalformedRecordError naming the record.
*/
func ReadCSV(r io.Reader, opts ReadOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	nFeatures := opts.NFeatures
	first, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewEmptyDatasetError("ReadCSV")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	nFeatures, err = resolveFeatureCount(len(first), nFeatures)
	if err != nil {
		return nil, err
	}

	var samples []Sample
	if opts.NoHeader {
		s, err := parseRecord(first, 1, nFeatures, opts.Source)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading record %d", len(samples)+1)
		}
		if isBlank(row) {
			continue
		}
		s, err := parseRecord(row, len(samples)+1, nFeatures, opts.Source)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		return nil, errors.NewEmptyDatasetError("ReadCSV")
	}
	return NewDataset(samples)
}

// ReadCSVFromFilePath opens path and reads it with ReadCSV. An empty path
// reads from standard input.
func ReadCSVFromFilePath(path string, opts ReadOptions) (*Dataset, error) {
	var f *os.File
	if path == "" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening dataset %s", path)
		}
		defer f.Close()
	}
	if opts.Source == "" {
		opts.Source = path
	}
	ds, err := ReadCSV(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", path)
	}
	return ds, nil
}

// resolveFeatureCount checks the declared feature count against the number
// of columns in the header line.
func resolveFeatureCount(columns, declared int) (int, error) {
	observed := columns - 2
	if observed < 1 {
		return 0, errors.NewConfigurationError("features",
			"input needs an identifier, at least one feature and a label column", columns)
	}
	if declared == 0 {
		return observed, nil
	}
	if declared != observed {
		return 0, errors.NewConfigurationError("features",
			fmt.Sprintf("declared feature count does not match the %d feature columns in the input", observed), declared)
	}
	return declared, nil
}

// parseRecord converts one record. record is 1-based.
func parseRecord(row []string, record, nFeatures int, source string) (Sample, error) {
	features := make([]float64, nFeatures)
	for f := 0; f < nFeatures; f++ {
		col := f + 1
		column := fmt.Sprintf("feature_%d", f+1)
		if col >= len(row) {
			return Sample{}, errors.NewMalformedRecordError(source, record, column, "missing value")
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return Sample{}, errors.NewMalformedRecordError(source, record, column,
				fmt.Sprintf("%q is not a number", row[col]))
		}
		features[f] = v
	}

	if nFeatures+1 >= len(row) {
		return Sample{}, errors.NewMalformedRecordError(source, record, "label", "missing value")
	}
	if len(row) > nFeatures+2 {
		return Sample{}, errors.NewMalformedRecordError(source, record, "record",
			fmt.Sprintf("expected %d columns, got %d", nFeatures+2, len(row)))
	}
	label, ok := ParseLabel(row[nFeatures+1])
	if !ok {
		reason := "missing value"
		if strings.TrimSpace(row[nFeatures+1]) != "" {
			reason = fmt.Sprintf("%q is not P or H", row[nFeatures+1])
		}
		return Sample{}, errors.NewMalformedRecordError(source, record, "label", reason)
	}

	return Sample{
		ID:       strings.TrimSpace(row[0]),
		Features: features,
		Label:    label,
	}, nil
}

func isBlank(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}
