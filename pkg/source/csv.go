// Package source reads tabular input and binds its headers to data roles.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ritzau/pivot-slicer/pkg/config"
	"github.com/ritzau/pivot-slicer/pkg/graph"
	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

// ErrEmpty is returned for input without a header record
var ErrEmpty = errors.New("input has no header")

// ReadFile reads a CSV file. The table name defaults to the file name
// without extension.
func ReadFile(path string, cols config.Columns) (*graph.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	table := cols.Table
	if table == "" {
		table = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	t, err := Read(f, table, cols)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	logging.Debug("read input", "path", path, "columns", len(t.Columns), "rows", t.Rows())
	return t, nil
}

// Read parses CSV records into a table. The first record is the header;
// headers bound to no role are dropped.
func Read(r io.Reader, table string, cols config.Columns) (*graph.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	indices, columns := bind(header, table, cols)

	values := make([][]any, len(columns))
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", line, err)
		}
		for c, idx := range indices {
			var cell any = ""
			if idx < len(record) {
				cell = strings.TrimSpace(record[idx])
			}
			values[c] = append(values[c], cell)
		}
	}

	return &graph.Table{Columns: columns, Values: values}, nil
}

// bind resolves the roles of each header. It returns the record index of
// every kept column alongside the column descriptions.
func bind(header []string, table string, cols config.Columns) ([]int, []model.Column) {
	bindings := cols.Bindings()
	roles := make(map[string][]model.Role)
	for _, role := range model.SingleRoles {
		name, ok := bindings[role]
		if !ok {
			continue
		}
		key := normalize(name)
		roles[key] = append(roles[key], role)
	}
	for _, name := range cols.Attributes {
		key := normalize(name)
		roles[key] = append(roles[key], model.RoleNodeAttributes)
	}

	var indices []int
	var columns []model.Column
	found := make(map[string]bool)
	for i, h := range header {
		key := normalize(h)
		bound, ok := roles[key]
		if !ok || found[key] {
			continue
		}
		found[key] = true
		indices = append(indices, i)
		columns = append(columns, model.Column{
			DisplayName: strings.TrimSpace(h),
			Table:       table,
			Roles:       bound,
		})
	}

	for key := range roles {
		if !found[key] {
			logging.Debug("bound header not found", "header", key)
		}
	}
	return indices, columns
}

func normalize(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
