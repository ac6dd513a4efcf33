package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVOptions controls CSV loading.
type CSVOptions struct {
	// Delimiter is the field separator. Default: ','.
	Delimiter rune

	// NullTokens are cell values treated as null, compared case-insensitively.
	// Default: "", "null", "na".
	NullTokens []string

	// TimeLayout is the layout used for time inference and parsing.
	// Default: time.RFC3339.
	TimeLayout string
}

// DefaultCSVOptions returns the default CSV loading options.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:  ',',
		NullTokens: []string{"", "null", "na"},
		TimeLayout: time.RFC3339,
	}
}

// ReadCSV loads a DataFrame from CSV data. The first record is the header.
// Column dtypes are inferred from the non-null cells of each column: the
// narrowest of int, float, bool, time that parses every cell wins, falling
// back to string. A column with no non-null cells is typed as string.
func ReadCSV(r io.Reader, opts CSVOptions) (*DataFrame, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.NullTokens == nil {
		opts.NullTokens = DefaultCSVOptions().NullTokens
	}
	if opts.TimeLayout == "" {
		opts.TimeLayout = time.RFC3339
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read rows: %w", err)
	}

	nullSet := make(map[string]struct{}, len(opts.NullTokens))
	for _, tok := range opts.NullTokens {
		nullSet[strings.ToLower(tok)] = struct{}{}
	}
	isNull := func(cell string) bool {
		_, ok := nullSet[strings.ToLower(cell)]
		return ok
	}

	series := make([]*Series, len(header))
	for col, name := range header {
		cells := make([]string, len(records))
		for row, rec := range records {
			cells[row] = rec[col]
		}
		dtype := inferDType(cells, isNull, opts.TimeLayout)

		s, err := NewSeries(name, dtype)
		if err != nil {
			return nil, fmt.Errorf("csv: column %d: %w", col, err)
		}
		for row, cell := range cells {
			if isNull(cell) {
				s.AppendNull()
				continue
			}
			v, err := parseCell(cell, dtype, opts.TimeLayout)
			if err != nil {
				return nil, fmt.Errorf("csv: row %d column %q: %w", row, name, err)
			}
			if err := s.Append(v); err != nil {
				return nil, err
			}
		}
		series[col] = s
	}

	return New(series...)
}

// inferDType picks the narrowest dtype that parses every non-null cell.
func inferDType(cells []string, isNull func(string) bool, timeLayout string) DType {
	sawValue := false
	couldBe := map[DType]bool{Int: true, Float: true, Bool: true, Time: true}

	for _, cell := range cells {
		if isNull(cell) {
			continue
		}
		sawValue = true
		if couldBe[Int] {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				couldBe[Int] = false
			}
		}
		if couldBe[Float] {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				couldBe[Float] = false
			}
		}
		if couldBe[Bool] {
			if !isBoolLiteral(cell) {
				couldBe[Bool] = false
			}
		}
		if couldBe[Time] {
			if _, err := time.Parse(timeLayout, cell); err != nil {
				couldBe[Time] = false
			}
		}
	}

	if !sawValue {
		return String
	}
	for _, dtype := range []DType{Int, Float, Bool, Time} {
		if couldBe[dtype] {
			return dtype
		}
	}
	return String
}

func isBoolLiteral(cell string) bool {
	switch strings.ToLower(cell) {
	case "true", "false":
		return true
	}
	return false
}

func parseCell(cell string, dtype DType, timeLayout string) (any, error) {
	switch dtype {
	case Int:
		return strconv.ParseInt(cell, 10, 64)
	case Float:
		return strconv.ParseFloat(cell, 64)
	case Bool:
		return strings.EqualFold(cell, "true"), nil
	case Time:
		return time.Parse(timeLayout, cell)
	default:
		return cell, nil
	}
}
