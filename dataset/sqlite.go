package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/knnloo/pkg/errors"
	// registers the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// DefaultTable is the table read by ReadSQLite when none is given.
const DefaultTable = "samples"

/*
ReadSQLite reads a dataset from a table of the SQLite3 database at path.
Columns are taken in table order with the same layout as the CSV input:
the first column is the identifier, the last one the label, and every
column in between a feature. Rows are read in rowid order.
*/
func ReadSQLite(ctx context.Context, path, table string, opts ReadOptions) (*Dataset, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, errors.Wrapf(err, "opening SQLite3 database %s", path)
	}
	defer db.Close()
	if opts.Source == "" {
		opts.Source = path
	}
	return ReadSQL(ctx, db, table, opts)
}

// ReadSQL reads a dataset from table using an already opened database.
func ReadSQL(ctx context.Context, db *sql.DB, table string, opts ReadOptions) (*Dataset, error) {
	if table == "" {
		table = DefaultTable
	}
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", quoteIdentifier(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "reading column names")
	}
	nFeatures, err := resolveFeatureCount(len(columns), opts.NFeatures)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var samples []Sample
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrapf(err, "scanning record %d", len(samples)+1)
		}
		record := make([]string, 0, len(values))
		for _, v := range values {
			if v == nil {
				// NULL ends the record so that parseRecord reports the
				// first missing column.
				break
			}
			record = append(record, sqlValueString(v))
		}
		s, err := parseRecord(record, len(samples)+1, nFeatures, opts.Source)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating records")
	}
	if len(samples) == 0 {
		return nil, errors.NewEmptyDatasetError("ReadSQL")
	}
	return NewDataset(samples)
}

func sqlValueString(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
