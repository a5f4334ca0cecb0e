// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/preferences"
)

const userColumns = `user_id, name, age, gender, cuisine_preferences, dietary_restrictions, location`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (models.User, error) {
	var u models.User
	var prefs, restrictions string
	if err := s.Scan(&u.UserID, &u.Name, &u.Age, &u.Gender, &prefs, &restrictions, &u.Location); err != nil {
		return models.User{}, err
	}
	u.CuisinePreferences = preferences.Parse(prefs)
	u.DietaryRestrictions = preferences.Parse(restrictions)
	return u, nil
}

// LookupUser returns the user profile and whether it exists.
func (db *DB) LookupUser(ctx context.Context, userID string) (models.User, bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("select", "users", time.Since(start), nil)
		return models.User{}, false, nil
	}
	metrics.RecordDBQuery("select", "users", time.Since(start), err)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	return u, true, nil
}

// ListUsers returns every user ordered by user_id.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		metrics.RecordDBQuery("select", "users", time.Since(start), err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer closeWithLog(rows, "rows")

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "users", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// ListFoods returns the catalog in insertion order.
func (db *DB) ListFoods(ctx context.Context) ([]models.FoodItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT food_id, name, cuisine, category, price, tags, attributes
		FROM food_items
		ORDER BY seq`)
	if err != nil {
		metrics.RecordDBQuery("select", "food_items", time.Since(start), err)
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer closeWithLog(rows, "rows")

	foods := make([]models.FoodItem, 0)
	for rows.Next() {
		var f models.FoodItem
		var tags string
		if err := rows.Scan(&f.FoodID, &f.Name, &f.Cuisine, &f.Category, &f.Price, &tags, &f.Attributes); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		f.Tags = preferences.Parse(tags)
		foods = append(foods, f)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "food_items", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate foods: %w", err)
	}
	return foods, nil
}
