package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// dumpTables lists every table in dependency order, parents first.
var dumpTables = []string{
	"exercises",
	"routines",
	"routine_exercises",
	"profiles",
	"active_session",
	"workout_records",
	"record_exercises",
	"record_sets",
}

var columnName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Dump maps table names to their rows. NULL columns are left out of a row.
type Dump map[string][]map[string]any

// ExportDump writes every table as TOML to w.
func (s *Storage) ExportDump(ctx context.Context, w io.Writer) error {
	dump := make(Dump, len(dumpTables))
	for _, table := range dumpTables {
		rows, err := s.dumpTable(ctx, table)
		if err != nil {
			return err
		}
		dump[table] = rows
	}

	if err := toml.NewEncoder(w).Encode(dump); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}
	return nil
}

func (s *Storage) dumpTable(ctx context.Context, table string) ([]map[string]any, error) {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns for table %s: %w", table, err)
	}

	out := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row in table %s: %w", table, err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case nil:
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ImportDump replaces the content of every table present in the dump, in one
// transaction. Foreign keys are checked at commit.
func (s *Storage) ImportDump(ctx context.Context, r io.Reader) error {
	var dump Dump
	if _, err := toml.NewDecoder(r).Decode(&dump); err != nil {
		return fmt.Errorf("decoding TOML: %w", err)
	}

	known := make(map[string]bool, len(dumpTables))
	for _, t := range dumpTables {
		known[t] = true
	}
	for table := range dump {
		if !known[table] {
			return fmt.Errorf("unknown table %q in dump", table)
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "PRAGMA defer_foreign_keys = ON"); err != nil {
		return fmt.Errorf("deferring foreign keys: %w", err)
	}

	// Children first when clearing, parents first when inserting.
	for i := len(dumpTables) - 1; i >= 0; i-- {
		table := dumpTables[i]
		if _, ok := dump[table]; !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("clearing table %s: %w", table, err)
		}
	}

	total := 0
	for _, table := range dumpTables {
		for _, row := range dump[table] {
			columns := make([]string, 0, len(row))
			placeholders := make([]string, 0, len(row))
			values := make([]any, 0, len(row))
			for col, val := range row {
				if !columnName.MatchString(col) {
					return fmt.Errorf("invalid column %q in table %s", col, table)
				}
				columns = append(columns, col)
				placeholders = append(placeholders, "?")
				values = append(values, val)
			}
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
			if _, err := tx.ExecContext(ctx, query, values...); err != nil {
				return fmt.Errorf("inserting into table %s: %w", table, err)
			}
			total++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.log.WithField("rows", total).Info("dump imported")
	return nil
}
