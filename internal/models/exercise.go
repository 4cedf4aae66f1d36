package models

import (
	"fmt"
	"strings"
	"time"
)

type ExerciseKind string

const (
	ExerciseBuiltin ExerciseKind = "builtin"
	ExerciseCustom  ExerciseKind = "custom"
)

// ExerciseRef identifies an exercise either in the built-in catalog or in the
// user's custom library. Name is only carried for custom exercises; built-in
// names come from the catalog.
type ExerciseRef struct {
	Kind ExerciseKind `json:"kind"`
	ID   string       `json:"id"`
	Name string       `json:"name,omitempty"`
}

func BuiltinRef(id string) ExerciseRef {
	return ExerciseRef{Kind: ExerciseBuiltin, ID: id}
}

func CustomRef(id, name string) ExerciseRef {
	return ExerciseRef{Kind: ExerciseCustom, ID: id, Name: name}
}

// Key is stable across renames and unique across both kinds.
func (r ExerciseRef) Key() string {
	return string(r.Kind) + ":" + r.ID
}

func (r ExerciseRef) Validate() error {
	switch r.Kind {
	case ExerciseBuiltin:
		if r.ID == "" {
			return fmt.Errorf("builtin exercise reference without id")
		}
	case ExerciseCustom:
		if r.ID == "" || r.Name == "" {
			return fmt.Errorf("custom exercise reference needs id and name")
		}
	default:
		return fmt.Errorf("unknown exercise kind %q", r.Kind)
	}
	return nil
}

type Category string

const (
	CategoryChest     Category = "chest"
	CategoryBack      Category = "back"
	CategoryLegs      Category = "legs"
	CategoryShoulders Category = "shoulders"
	CategoryArms      Category = "arms"
	CategoryCore      Category = "core"
	CategoryCardio    Category = "cardio"
	CategoryFullBody  Category = "full_body"
	CategoryOther     Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryChest, CategoryBack, CategoryLegs, CategoryShoulders,
		CategoryArms, CategoryCore, CategoryCardio, CategoryFullBody, CategoryOther:
		return true
	default:
		return false
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// categoryKeywords is only consulted by InferCategory.
var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryCardio, []string{"run", "rowing", "bike", "cycling", "jump rope", "burpee"}},
	{CategoryChest, []string{"bench", "chest", "push-up", "pushup", "fly", "dip"}},
	{CategoryBack, []string{"row", "pull-up", "pullup", "chin-up", "deadlift", "lat "}},
	{CategoryLegs, []string{"squat", "lunge", "leg ", "calf", "hip thrust"}},
	{CategoryShoulders, []string{"overhead press", "shoulder", "lateral raise", "military"}},
	{CategoryArms, []string{"curl", "tricep", "extension", "skull"}},
	{CategoryCore, []string{"plank", "crunch", "sit-up", "situp", "ab ", "hollow"}},
}

// InferCategory guesses a category from a free-text exercise name. It is a
// migration shim for imported exercises that carry no category; new exercises
// must declare one.
func InferCategory(name string) Category {
	n := " " + strings.ToLower(name) + " "
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(n, w) {
				return ck.category
			}
		}
	}
	return CategoryOther
}

type Exercise struct {
	Ref       ExerciseRef `json:"ref"`
	Name      string      `json:"name"`
	Category  Category    `json:"category"`
	CreatedAt time.Time   `json:"created_at"`
}

//
// For TOML parsing only
//

type ExerciseDefTOML struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

type ExerciseImport struct {
	Exercises []ExerciseDefTOML `toml:"exercise"`
}
