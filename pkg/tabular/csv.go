package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/openmetab/keggmatch/pkg/errors"
)

// ReadCSV parses CSV data whose first record is the header.  Records are
// required to be rectangular, which encoding/csv already enforces.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTableRead, "invalid CSV input")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeTableRead, "CSV input has no header row")
	}

	t := New(records[0])
	for _, rec := range records[1:] {
		if err := t.AppendRow(rec); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadCSVFile reads a CSV table from the named file.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTableRead, "cannot open input file")
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes the table as CSV, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return errors.Wrap(err, errors.ErrCodeTableWrite, "cannot write header")
	}
	for i, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrCodeTableWrite, "cannot write row").
				WithDetail("row " + strconv.Itoa(i))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeTableWrite, "flush failed")
	}
	return nil
}

// WriteCSVFile writes the table to the named file, truncating any existing
// content.
func (t *Table) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTableWrite, "cannot create output file")
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeTableWrite, "close failed")
	}
	return nil
}
