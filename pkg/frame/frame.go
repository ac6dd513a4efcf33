package frame

import "fmt"

// DataFrame is an ordered collection of equally sized columns. Column order
// is significant: pattern resolution and error reporting follow it.
type DataFrame struct {
	cols  []*Series
	index map[string]int
}

// New assembles a DataFrame from the given series. All series must have the
// same length and distinct names.
func New(series ...*Series) (*DataFrame, error) {
	df := &DataFrame{index: make(map[string]int, len(series))}
	for i, s := range series {
		if s == nil {
			return nil, fmt.Errorf("series %d is nil", i)
		}
		if _, dup := df.index[s.Name()]; dup {
			return nil, fmt.Errorf("duplicate column %q", s.Name())
		}
		if i > 0 && s.Len() != df.cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", s.Name(), s.Len(), df.cols[0].Len())
		}
		df.index[s.Name()] = i
		df.cols = append(df.cols, s)
	}
	return df, nil
}

// Columns returns the column names in order. The returned slice is a copy.
func (df *DataFrame) Columns() []string {
	names := make([]string, len(df.cols))
	for i, s := range df.cols {
		names[i] = s.name
	}
	return names
}

// NumRows returns the row count.
func (df *DataFrame) NumRows() int {
	if len(df.cols) == 0 {
		return 0
	}
	return df.cols[0].Len()
}

// NumColumns returns the column count.
func (df *DataFrame) NumColumns() int { return len(df.cols) }

// Column returns the named series, or false if absent.
func (df *DataFrame) Column(name string) (*Series, bool) {
	i, ok := df.index[name]
	if !ok {
		return nil, false
	}
	return df.cols[i], true
}

// HasColumn reports whether the named column exists.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.index[name]
	return ok
}

// Row is a read-only view over one row of a DataFrame.
type Row struct {
	df  *DataFrame
	idx int
}

// Row returns a view over row i. It panics if i is out of range.
func (df *DataFrame) Row(i int) Row {
	if i < 0 || i >= df.NumRows() {
		panic(fmt.Sprintf("row index %d out of range [0,%d)", i, df.NumRows()))
	}
	return Row{df: df, idx: i}
}

// Index returns the row's position in the frame.
func (r Row) Index() int { return r.idx }

// Value returns the cell in the named column and whether it is non-null.
// The second return is also false when the column does not exist.
func (r Row) Value(column string) (any, bool) {
	s, ok := r.df.Column(column)
	if !ok {
		return nil, false
	}
	return s.Value(r.idx)
}
