// Package repository maps the app's records onto the key-value store.
// Collections are persisted as whole JSON arrays, singletons as single JSON
// objects. Unreadable or malformed records degrade to absent/empty and are
// logged, never surfaced.
package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/JoeAtk/GymPT/internal/domain"
	apperrors "github.com/JoeAtk/GymPT/internal/errors"
	"github.com/JoeAtk/GymPT/internal/storage"
	"github.com/JoeAtk/GymPT/internal/utils"
)

// Record keys.
const (
	keyChatHistory = "gympt_chat_history"
	keyLifts       = "gympt_lifts"
	keyGoal        = "gympt_goal"
	keyFoodLog     = "gympt_food_log"
	keyLatestSplit = "gympt_latest_split"
	keyTargets     = "gympt_nutrition_targets"
	keyProfile     = "gympt_user_profile"
	keyCategoryMap = "gympt_exercise_categories"
)

// Repository is the record-oriented store. A single end-user owns the data;
// appends are read-modify-write over the whole collection, so two concurrent
// appends to the same list can lose an update. Accepted limitation.
type Repository struct {
	kv       storage.KV
	errs     *apperrors.Handler
	watchers *splitWatchers
}

// New creates a repository over the given KV backend.
func New(kv storage.KV, errs *apperrors.Handler) *Repository {
	return &Repository{
		kv:       kv,
		errs:     errs,
		watchers: newSplitWatchers(),
	}
}

// getList reads a JSON array record, degrading to nil on any failure.
func getList[T any](r *Repository, ctx context.Context, key string) []T {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		r.errs.Handle(ctx, apperrors.NewStorageReadError(err, key))
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.errs.Handle(ctx, apperrors.NewStorageReadError(err, key))
		return nil
	}
	return items
}

// getObject reads a JSON object record, degrading to nil on any failure.
func getObject[T any](r *Repository, ctx context.Context, key string) *T {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		r.errs.Handle(ctx, apperrors.NewStorageReadError(err, key))
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var item T
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		r.errs.Handle(ctx, apperrors.NewStorageReadError(err, key))
		return nil
	}
	return &item
}

func (r *Repository) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewStorageWriteError(err, key)
	}
	if err := r.kv.Set(ctx, key, string(data)); err != nil {
		return apperrors.NewStorageWriteError(err, key)
	}
	return nil
}

// Chat history

func (r *Repository) History(ctx context.Context) []domain.ChatMessage {
	return getList[domain.ChatMessage](r, ctx, keyChatHistory)
}

func (r *Repository) AppendMessage(ctx context.Context, msg domain.ChatMessage) error {
	cur := r.History(ctx)
	return r.set(ctx, keyChatHistory, append(cur, msg))
}

func (r *Repository) ClearHistory(ctx context.Context) error {
	if err := r.kv.Remove(ctx, keyChatHistory); err != nil {
		return apperrors.NewStorageWriteError(err, keyChatHistory)
	}
	return nil
}

// Lifts

func (r *Repository) Lifts(ctx context.Context) []domain.LiftEntry {
	return getList[domain.LiftEntry](r, ctx, keyLifts)
}

func (r *Repository) AddLift(ctx context.Context, entry domain.LiftEntry) error {
	cur := r.Lifts(ctx)
	return r.set(ctx, keyLifts, append(cur, entry))
}

// Food log

func (r *Repository) FoodLog(ctx context.Context) []domain.FoodEntry {
	return getList[domain.FoodEntry](r, ctx, keyFoodLog)
}

func (r *Repository) AddFoodEntry(ctx context.Context, entry domain.FoodEntry) error {
	cur := r.FoodLog(ctx)
	return r.set(ctx, keyFoodLog, append(cur, entry))
}

// Goal

func (r *Repository) Goal(ctx context.Context) *domain.Goal {
	return getObject[domain.Goal](r, ctx, keyGoal)
}

// SetGoal overwrites the goal wholesale, including any generated display
// text.
func (r *Repository) SetGoal(ctx context.Context, goal domain.Goal) error {
	return r.set(ctx, keyGoal, goal)
}

// User profile

func (r *Repository) Profile(ctx context.Context) *domain.UserProfile {
	return getObject[domain.UserProfile](r, ctx, keyProfile)
}

func (r *Repository) SetProfile(ctx context.Context, profile domain.UserProfile) error {
	profile.UpdatedAt = utils.NowMillis()
	return r.set(ctx, keyProfile, profile)
}

// Nutrition targets

func (r *Repository) Targets(ctx context.Context) *domain.NutritionTargets {
	return getObject[domain.NutritionTargets](r, ctx, keyTargets)
}

func (r *Repository) SetTargets(ctx context.Context, targets domain.NutritionTargets) error {
	return r.set(ctx, keyTargets, targets)
}

// Exercise category overrides

// ExerciseCategory looks up the persisted override for an exercise name.
// Keys are case-insensitive.
func (r *Repository) ExerciseCategory(ctx context.Context, name string) (domain.Split, bool) {
	m := getObject[map[string]string](r, ctx, keyCategoryMap)
	if m == nil {
		return domain.SplitUnknown, false
	}
	raw, ok := (*m)[strings.ToLower(name)]
	if !ok {
		return domain.SplitUnknown, false
	}
	return domain.NormalizeSplit(raw), true
}

// SetExerciseCategory upserts one override. The map only grows; entries are
// never removed individually.
func (r *Repository) SetExerciseCategory(ctx context.Context, name string, split domain.Split) error {
	m := getObject[map[string]string](r, ctx, keyCategoryMap)
	categories := map[string]string{}
	if m != nil {
		categories = *m
	}
	categories[strings.ToLower(name)] = split.Display()
	return r.set(ctx, keyCategoryMap, categories)
}

func (r *Repository) ClearExerciseCategories(ctx context.Context) error {
	if err := r.kv.Remove(ctx, keyCategoryMap); err != nil {
		return apperrors.NewStorageWriteError(err, keyCategoryMap)
	}
	return nil
}

// Latest split override

func (r *Repository) LatestSplit(ctx context.Context) (domain.Split, bool) {
	raw, ok, err := r.kv.Get(ctx, keyLatestSplit)
	if err != nil {
		r.errs.Handle(ctx, apperrors.NewStorageReadError(err, keyLatestSplit))
		return domain.SplitUnknown, false
	}
	if !ok || raw == "" {
		return domain.SplitUnknown, false
	}
	return domain.NormalizeSplit(raw), true
}

// SetLatestSplit persists the override and synchronously notifies all
// registered watchers on success.
func (r *Repository) SetLatestSplit(ctx context.Context, split domain.Split) error {
	if err := r.kv.Set(ctx, keyLatestSplit, split.Display()); err != nil {
		return apperrors.NewStorageWriteError(err, keyLatestSplit)
	}
	r.watchers.notify(split)
	return nil
}

// WatchLatestSplit registers a callback invoked synchronously on every
// successful split-override write. The returned func unregisters and is safe
// to call more than once.
func (r *Repository) WatchLatestSplit(fn func(domain.Split)) func() {
	return r.watchers.add(fn)
}
