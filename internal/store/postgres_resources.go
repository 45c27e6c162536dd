// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Fitness resources are stored relationally with JSONB columns for the nested
// document parts (exercise days, meals, logs). Every query is scoped to the
// owning user, so a record owned by someone else is indistinguishable from a
// missing one.

func marshalJSONB(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode jsonb payload: %w", err)
	}
	return string(data), nil
}

func unmarshalJSONB(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode jsonb payload: %w", err)
	}
	return nil
}

// CreateWorkoutPlan inserts a plan, assigning its id and creation time.
func (p *Postgres) CreateWorkoutPlan(ctx context.Context, plan *WorkoutPlan) error {
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()

	workouts, err := marshalJSONB(plan.Workouts)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO workout_plans (id, user_id, plan_name, goal, level, workouts, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`,
		plan.ID, plan.UserID, plan.PlanName, plan.Goal, plan.Level, workouts, plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanWorkoutPlan(row pgx.Row) (*WorkoutPlan, error) {
	plan := &WorkoutPlan{}
	var workouts []byte
	err := row.Scan(&plan.ID, &plan.UserID, &plan.PlanName, &plan.Goal, &plan.Level,
		&workouts, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := unmarshalJSONB(workouts, &plan.Workouts); err != nil {
		return nil, err
	}
	return plan, nil
}

const workoutColumns = `id, user_id, plan_name, goal, level, workouts, created_at`

// ListWorkoutPlans returns the user's plans ordered by creation time.
func (p *Postgres) ListWorkoutPlans(ctx context.Context, userID string) ([]*WorkoutPlan, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+workoutColumns+` FROM workout_plans WHERE user_id = $1 ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var plans []*WorkoutPlan
	for rows.Next() {
		plan, err := scanWorkoutPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// FindWorkoutPlan returns the plan only if it belongs to userID.
func (p *Postgres) FindWorkoutPlan(ctx context.Context, userID, id string) (*WorkoutPlan, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := p.pool.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workout_plans WHERE id = $1 AND user_id = $2`,
		id, userID)
	return scanWorkoutPlan(row)
}

// UpdateWorkoutPlan replaces the plan's mutable fields, scoped to its owner.
func (p *Postgres) UpdateWorkoutPlan(ctx context.Context, plan *WorkoutPlan) error {
	if !validID(plan.ID) {
		return ErrNotFound
	}
	workouts, err := marshalJSONB(plan.Workouts)
	if err != nil {
		return err
	}

	tag, err := p.pool.Exec(ctx,
		`UPDATE workout_plans
		 SET plan_name = $3, goal = $4, level = $5, workouts = $6::jsonb
		 WHERE id = $1 AND user_id = $2`,
		plan.ID, plan.UserID, plan.PlanName, plan.Goal, plan.Level, workouts)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWorkoutPlan removes the plan, scoped to its owner.
func (p *Postgres) DeleteWorkoutPlan(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM workout_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const nutritionColumns = `id, user_id, plan_name, goal, calories, macros, meals, created_at`

// CreateNutritionPlan inserts a plan, assigning its id and creation time.
func (p *Postgres) CreateNutritionPlan(ctx context.Context, plan *NutritionPlan) error {
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()

	macros, err := marshalJSONB(plan.Macros)
	if err != nil {
		return err
	}
	meals, err := marshalJSONB(plan.Meals)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO nutrition_plans (id, user_id, plan_name, goal, calories, macros, meals, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)`,
		plan.ID, plan.UserID, plan.PlanName, plan.Goal, plan.Calories, macros, meals, plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanNutritionPlan(row pgx.Row) (*NutritionPlan, error) {
	plan := &NutritionPlan{}
	var macros, meals []byte
	err := row.Scan(&plan.ID, &plan.UserID, &plan.PlanName, &plan.Goal, &plan.Calories,
		&macros, &meals, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := unmarshalJSONB(macros, &plan.Macros); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(meals, &plan.Meals); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListNutritionPlans returns the user's plans ordered by creation time.
func (p *Postgres) ListNutritionPlans(ctx context.Context, userID string) ([]*NutritionPlan, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+nutritionColumns+` FROM nutrition_plans WHERE user_id = $1 ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var plans []*NutritionPlan
	for rows.Next() {
		plan, err := scanNutritionPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// FindNutritionPlan returns the plan only if it belongs to userID.
func (p *Postgres) FindNutritionPlan(ctx context.Context, userID, id string) (*NutritionPlan, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := p.pool.QueryRow(ctx,
		`SELECT `+nutritionColumns+` FROM nutrition_plans WHERE id = $1 AND user_id = $2`,
		id, userID)
	return scanNutritionPlan(row)
}

// UpdateNutritionPlan replaces the plan's mutable fields, scoped to its owner.
func (p *Postgres) UpdateNutritionPlan(ctx context.Context, plan *NutritionPlan) error {
	if !validID(plan.ID) {
		return ErrNotFound
	}
	macros, err := marshalJSONB(plan.Macros)
	if err != nil {
		return err
	}
	meals, err := marshalJSONB(plan.Meals)
	if err != nil {
		return err
	}

	tag, err := p.pool.Exec(ctx,
		`UPDATE nutrition_plans
		 SET plan_name = $3, goal = $4, calories = $5, macros = $6::jsonb, meals = $7::jsonb
		 WHERE id = $1 AND user_id = $2`,
		plan.ID, plan.UserID, plan.PlanName, plan.Goal, plan.Calories, macros, meals)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNutritionPlan removes the plan, scoped to its owner.
func (p *Postgres) DeleteNutritionPlan(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM nutrition_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const metricColumns = `id, user_id, date, weight, height, activity_level, daily_steps, sleep_hours, water_intake, food_log, workout_log`

// CreateHealthMetric inserts a snapshot, assigning its id. A zero date
// defaults to the current time.
func (p *Postgres) CreateHealthMetric(ctx context.Context, metric *HealthMetric) error {
	metric.ID = uuid.NewString()
	if metric.Date.IsZero() {
		metric.Date = time.Now().UTC()
	}

	foodLog, err := marshalJSONB(metric.FoodLog)
	if err != nil {
		return err
	}
	workoutLog, err := marshalJSONB(metric.WorkoutLog)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO health_metrics (`+metricColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11::jsonb)`,
		metric.ID, metric.UserID, metric.Date, metric.Weight, metric.Height,
		metric.ActivityLevel, metric.DailySteps, metric.SleepHours, metric.WaterIntake,
		foodLog, workoutLog)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanHealthMetric(row pgx.Row) (*HealthMetric, error) {
	m := &HealthMetric{}
	var foodLog, workoutLog []byte
	err := row.Scan(&m.ID, &m.UserID, &m.Date, &m.Weight, &m.Height, &m.ActivityLevel,
		&m.DailySteps, &m.SleepHours, &m.WaterIntake, &foodLog, &workoutLog)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := unmarshalJSONB(foodLog, &m.FoodLog); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(workoutLog, &m.WorkoutLog); err != nil {
		return nil, err
	}
	return m, nil
}

// ListHealthMetrics returns the user's snapshots ordered by date.
func (p *Postgres) ListHealthMetrics(ctx context.Context, userID string) ([]*HealthMetric, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+metricColumns+` FROM health_metrics WHERE user_id = $1 ORDER BY date`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var metrics []*HealthMetric
	for rows.Next() {
		m, err := scanHealthMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// FindHealthMetric returns the snapshot only if it belongs to userID.
func (p *Postgres) FindHealthMetric(ctx context.Context, userID, id string) (*HealthMetric, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := p.pool.QueryRow(ctx,
		`SELECT `+metricColumns+` FROM health_metrics WHERE id = $1 AND user_id = $2`,
		id, userID)
	return scanHealthMetric(row)
}

// UpdateHealthMetric replaces the snapshot's mutable fields, scoped to its owner.
func (p *Postgres) UpdateHealthMetric(ctx context.Context, metric *HealthMetric) error {
	if !validID(metric.ID) {
		return ErrNotFound
	}
	foodLog, err := marshalJSONB(metric.FoodLog)
	if err != nil {
		return err
	}
	workoutLog, err := marshalJSONB(metric.WorkoutLog)
	if err != nil {
		return err
	}

	tag, err := p.pool.Exec(ctx,
		`UPDATE health_metrics
		 SET date = $3, weight = $4, height = $5, activity_level = $6, daily_steps = $7,
		     sleep_hours = $8, water_intake = $9, food_log = $10::jsonb, workout_log = $11::jsonb
		 WHERE id = $1 AND user_id = $2`,
		metric.ID, metric.UserID, metric.Date, metric.Weight, metric.Height,
		metric.ActivityLevel, metric.DailySteps, metric.SleepHours, metric.WaterIntake,
		foodLog, workoutLog)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteHealthMetric removes the snapshot, scoped to its owner.
func (p *Postgres) DeleteHealthMetric(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM health_metrics WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
