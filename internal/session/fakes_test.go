package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/misterclayt0n/liftlog/internal/models"
)

var errStoreDown = errors.New("store down")

// memStore implements every store interface the manager needs. The active slot
// is kept as JSON so callers never share memory with it.
type memStore struct {
	mu sync.Mutex

	slot      []byte
	records   []models.WorkoutRecord
	touched   map[string]time.Time
	weights   map[string]float64
	nextID    int
	failSave  bool
	failRec   bool
	failClear bool
	failProf  bool
}

func newMemStore() *memStore {
	return &memStore{
		touched: map[string]time.Time{},
		weights: map[string]float64{},
	}
}

func (m *memStore) GetActiveSession(_ context.Context) (*models.WorkoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slot == nil {
		return nil, nil
	}
	var s models.WorkoutSession
	if err := json.Unmarshal(m.slot, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *memStore) SaveActiveSession(_ context.Context, s *models.WorkoutSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errStoreDown
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.slot = b
	return nil
}

// FinishSession applies nothing unless both the record write and the slot
// clear succeed.
func (m *memStore) FinishSession(_ context.Context, userID string, rec models.NewRecord) (*models.WorkoutRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRec || m.failClear {
		return nil, errStoreDown
	}
	m.nextID++
	r := models.WorkoutRecord{
		ID:              fmt.Sprintf("rec-%d", m.nextID),
		UserID:          userID,
		Date:            rec.Date,
		RoutineID:       rec.RoutineID,
		RoutineName:     rec.RoutineName,
		Status:          rec.Status,
		Exercises:       rec.Exercises,
		DurationMinutes: rec.DurationMinutes,
		TotalVolume:     rec.TotalVolume,
		CompletionRate:  rec.CompletionRate,
		BodyWeight:      rec.BodyWeight,
		Memo:            rec.Memo,
		StartTime:       rec.StartTime,
	}
	m.records = append(m.records, r)
	m.slot = nil
	return &r, nil
}

func (m *memStore) TouchRoutine(_ context.Context, routineID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched[routineID] = at
	return nil
}

func (m *memStore) SetBodyWeight(_ context.Context, userID string, kg float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failProf {
		return errStoreDown
	}
	m.weights[userID] = kg
	return nil
}
