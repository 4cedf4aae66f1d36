package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/misterclayt0n/liftlog/internal/models"
)

//go:embed catalog/*.toml
var catalogFS embed.FS

// SeedCatalog upserts the built-in exercises and inserts the recommended
// routines that don't exist yet. It is safe to run more than once.
func (s *Storage) SeedCatalog(ctx context.Context) error {
	data, err := catalogFS.ReadFile("catalog/exercises.toml")
	if err != nil {
		return err
	}
	var catalog models.ExerciseImport
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("invalid exercise catalog: %w", err)
	}

	createdAt := formatTime(s.now())
	for _, def := range catalog.Exercises {
		category, err := models.ParseCategory(def.Category)
		if err != nil {
			return fmt.Errorf("catalog exercise %q: %w", def.ID, err)
		}
		_, err = s.DB.ExecContext(ctx,
			`INSERT INTO exercises (id, kind, name, category, created_at)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					category = excluded.category`,
			def.ID,
			string(models.ExerciseBuiltin),
			def.Name,
			string(category),
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed exercise %q: %w", def.ID, err)
		}
	}

	routines, err := catalogFS.ReadFile("catalog/routines.toml")
	if err != nil {
		return err
	}
	seeded, err := s.importRoutines(ctx, routines, true)
	if err != nil {
		return fmt.Errorf("failed to seed routines: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"exercises": len(catalog.Exercises),
		"routines":  len(seeded),
	}).Info("catalog seeded")
	return nil
}

// ImportExercises adds custom exercises from TOML. Exercises without a
// category get one inferred from their name. Existing names are skipped.
func (s *Storage) ImportExercises(ctx context.Context, data []byte) ([]models.Exercise, error) {
	var imp models.ExerciseImport
	if err := toml.Unmarshal(data, &imp); err != nil {
		return nil, fmt.Errorf("invalid TOML format: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var added []models.Exercise
	for _, def := range imp.Exercises {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, errors.New("exercise without a name")
		}

		var category models.Category
		if def.Category == "" {
			category = models.InferCategory(name)
		} else if category, err = models.ParseCategory(def.Category); err != nil {
			return nil, fmt.Errorf("exercise %q: %w", name, err)
		}

		if _, err := findExercise(ctx, tx, name); err == nil {
			continue
		} else if !errors.Is(err, ErrExerciseNotFound) {
			return nil, err
		}

		ex, err := s.insertCustomExercise(ctx, tx, name, category)
		if err != nil {
			return nil, err
		}
		added = append(added, ex)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit exercises: %w", err)
	}
	return added, nil
}

func (s *Storage) insertCustomExercise(ctx context.Context, q queryer, name string, category models.Category) (models.Exercise, error) {
	ex := models.Exercise{
		Name:      name,
		Category:  category,
		CreatedAt: s.now(),
	}
	ex.Ref = models.CustomRef(uuid.NewString(), name)

	_, err := q.ExecContext(ctx,
		`INSERT INTO exercises (id, kind, name, category, created_at) VALUES (?, ?, ?, ?, ?)`,
		ex.Ref.ID,
		string(models.ExerciseCustom),
		ex.Name,
		string(ex.Category),
		formatTime(ex.CreatedAt),
	)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("failed to create exercise %q: %w", name, err)
	}
	return ex, nil
}

func (s *Storage) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, kind, name, category, created_at FROM exercises ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercises: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

// ResolveExercise finds an exercise by name, case-insensitively, preferring
// the built-in catalog over custom exercises.
func (s *Storage) ResolveExercise(ctx context.Context, name string) (models.Exercise, error) {
	return findExercise(ctx, s.DB, name)
}

func findExercise(ctx context.Context, q queryer, name string) (models.Exercise, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, kind, name, category, created_at FROM exercises
		WHERE name = ? COLLATE NOCASE
		ORDER BY CASE kind WHEN 'builtin' THEN 0 ELSE 1 END
		LIMIT 1`,
		strings.TrimSpace(name),
	)
	ex, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Exercise{}, fmt.Errorf("%w: %q", ErrExerciseNotFound, name)
	}
	return ex, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExercise(sc scanner) (models.Exercise, error) {
	var (
		ex                        models.Exercise
		id, kind, category, added string
	)
	if err := sc.Scan(&id, &kind, &ex.Name, &category, &added); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ex, err
		}
		return ex, fmt.Errorf("failed to scan exercise: %w", err)
	}
	ex.Ref = exerciseRef(models.ExerciseKind(kind), id, ex.Name)
	ex.Category = models.Category(category)
	created, err := parseTime(added)
	if err != nil {
		return ex, fmt.Errorf("exercise %s: %w", id, err)
	}
	ex.CreatedAt = created
	return ex, nil
}
