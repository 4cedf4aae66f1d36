package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/misterclayt0n/liftlog/internal/models"
)

// GetProfile returns an empty profile for a user who never set one.
func (s *Storage) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var (
		weight    sql.NullFloat64
		updatedAt sql.NullString
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT body_weight, updated_at FROM profiles WHERE user_id = ?`, userID,
	).Scan(&weight, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	updated, err := timePtr(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", userID, err)
	}
	return &models.Profile{
		UserID:     userID,
		BodyWeight: floatPtr(weight),
		UpdatedAt:  updated,
	}, nil
}

func (s *Storage) SetBodyWeight(ctx context.Context, userID string, kg float64) error {
	if kg <= 0 {
		return fmt.Errorf("invalid body weight %.1f", kg)
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO profiles (user_id, body_weight, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				body_weight = excluded.body_weight,
				updated_at = excluded.updated_at`,
		userID, kg, formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to set body weight: %w", err)
	}
	return nil
}
