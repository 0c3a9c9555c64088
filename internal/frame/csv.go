package frame

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ReadCSV loads a CSV/TSV file into a Table.
func ReadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	t, err := DecodeCSV(f, filepath.Base(path), opt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DecodeCSV reads a table from r. name is used for delimiter sniffing
// (".tsv" implies tab) and becomes the table's Name.
func DecodeCSV(r io.Reader, name string, opt Options) (*Table, error) {
	br := bufio.NewReader(r)
	delim := opt.Delimiter
	if delim == 0 {
		// Peek the header line without consuming it.
		line, _ := br.Peek(br.Size())
		if i := strings.IndexByte(string(line), '\n'); i >= 0 {
			line = line[:i]
		}
		delim = sniffDelimiter(name, string(line))
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{Name: name, units: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	var rows [][]string
	for n := 0; ; n++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", n+1, err)
		}
		if len(rows) >= maxRows {
			break
		}
		rows = append(rows, rec)
	}
	t, err := FromRecords(header, rows, opt)
	if err != nil {
		return nil, err
	}
	t.Name = name
	return t, nil
}

// Records renders the table as string rows, header first. Columns with a
// unit are headed "name (unit)" so the file reloads with the same metadata.
// Missing cells are empty strings and numbers use the shortest exact
// formatting.
func (t *Table) Records() ([][]string, error) {
	names := t.Names()
	out := make([][]string, t.Nrow()+1)
	out[0] = make([]string, len(names))
	for j, name := range names {
		out[0][j] = name
		if u := t.Unit(name); u != "" {
			out[0][j] = fmt.Sprintf("%s (%s)", name, u)
		}
	}
	for r := 1; r < len(out); r++ {
		out[r] = make([]string, len(names))
	}
	for j, name := range names {
		keys, _, err := t.Values(name)
		if err != nil {
			return nil, err
		}
		for r, k := range keys {
			out[r+1][j] = k
		}
	}
	return out, nil
}

// WriteCSV writes the table with a header row to w.
func (t *Table) WriteCSV(w io.Writer) error {
	recs, err := t.Records()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(recs); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Load picks a reader by file extension. Sheet selection applies to .xlsx
// only: sheetName wins over the 1-based sheetIndex.
func Load(path string, opt Options, sheetName string, sheetIndex int) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return ReadXLSX(path, opt, sheetName, sheetIndex)
	}
	return ReadCSV(path, opt)
}
