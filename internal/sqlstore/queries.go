// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/preferences"
)

// Row types carry list columns in their stored TEXT form.
type userRow struct {
	UserID              string `db:"user_id"`
	Name                string `db:"name"`
	Age                 int    `db:"age"`
	Gender              string `db:"gender"`
	CuisinePreferences  string `db:"cuisine_preferences"`
	DietaryRestrictions string `db:"dietary_restrictions"`
	Location            string `db:"location"`
}

func (r *userRow) toModel() models.User {
	return models.User{
		UserID:              r.UserID,
		Name:                r.Name,
		Age:                 r.Age,
		Gender:              r.Gender,
		CuisinePreferences:  preferences.Parse(r.CuisinePreferences),
		DietaryRestrictions: preferences.Parse(r.DietaryRestrictions),
		Location:            r.Location,
	}
}

func userRowFrom(u *models.User) userRow {
	return userRow{
		UserID:              u.UserID,
		Name:                u.Name,
		Age:                 u.Age,
		Gender:              u.Gender,
		CuisinePreferences:  preferences.Format(u.CuisinePreferences),
		DietaryRestrictions: preferences.Format(u.DietaryRestrictions),
		Location:            u.Location,
	}
}

type foodRow struct {
	FoodID     string  `db:"food_id"`
	Seq        int64   `db:"seq"`
	Name       string  `db:"name"`
	Cuisine    string  `db:"cuisine"`
	Category   string  `db:"category"`
	Price      float64 `db:"price"`
	Tags       string  `db:"tags"`
	Attributes string  `db:"attributes"`
}

type orderRow struct {
	OrderID   string        `db:"order_id"`
	UserID    string        `db:"user_id"`
	FoodID    string        `db:"food_id"`
	Timestamp time.Time     `db:"timestamp"`
	Mood      string        `db:"mood"`
	Weather   string        `db:"weather"`
	Location  string        `db:"location"`
	Rating    sql.NullInt64 `db:"rating"`
}

func (r *orderRow) toModel() models.Order {
	o := models.Order{
		OrderID:   r.OrderID,
		UserID:    r.UserID,
		FoodID:    r.FoodID,
		Timestamp: r.Timestamp.UTC(),
		Mood:      r.Mood,
		Weather:   r.Weather,
		Location:  r.Location,
	}
	if r.Rating.Valid {
		v := int(r.Rating.Int64)
		o.Rating = &v
	}
	return o
}

func orderRowFrom(o *models.Order) orderRow {
	r := orderRow{
		OrderID:   o.OrderID,
		UserID:    o.UserID,
		FoodID:    o.FoodID,
		Timestamp: o.Timestamp.UTC(),
		Mood:      o.Mood,
		Weather:   o.Weather,
		Location:  o.Location,
	}
	if o.Rating != nil {
		r.Rating = sql.NullInt64{Int64: int64(*o.Rating), Valid: true}
	}
	return r
}

const (
	selectUsers = `SELECT user_id, name, age, gender, cuisine_preferences, dietary_restrictions, location FROM users`

	insertUser = `INSERT INTO users (user_id, name, age, gender, cuisine_preferences, dietary_restrictions, location)
		VALUES (:user_id, :name, :age, :gender, :cuisine_preferences, :dietary_restrictions, :location)
		ON CONFLICT DO NOTHING`

	insertFood = `INSERT INTO food_items (food_id, seq, name, cuisine, category, price, tags, attributes)
		VALUES (:food_id, :seq, :name, :cuisine, :category, :price, :tags, :attributes)
		ON CONFLICT DO NOTHING`

	insertOrder = `INSERT INTO orders (order_id, user_id, food_id, "timestamp", mood, weather, location, rating)
		VALUES (:order_id, :user_id, :food_id, :timestamp, :mood, :weather, :location, :rating)
		ON CONFLICT DO NOTHING`
)

// LookupUser returns the user profile and whether it exists.
func (s *Store) LookupUser(ctx context.Context, userID string) (models.User, bool, error) {
	start := time.Now()
	var row userRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(selectUsers+` WHERE user_id = ?`), userID)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("select", "users", time.Since(start), nil)
		return models.User{}, false, nil
	}
	metrics.RecordDBQuery("select", "users", time.Since(start), err)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	return row.toModel(), true, nil
}

// ListUsers returns every user ordered by user_id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	start := time.Now()
	var rows []userRow
	err := s.db.SelectContext(ctx, &rows, selectUsers+` ORDER BY user_id`)
	metrics.RecordDBQuery("select", "users", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]models.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toModel()
	}
	return users, nil
}

// ListFoods returns the catalog in insertion order.
func (s *Store) ListFoods(ctx context.Context) ([]models.FoodItem, error) {
	start := time.Now()
	var rows []foodRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT food_id, seq, name, cuisine, category, price, tags, attributes FROM food_items ORDER BY seq`)
	metrics.RecordDBQuery("select", "food_items", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	foods := make([]models.FoodItem, len(rows))
	for i, r := range rows {
		foods[i] = models.FoodItem{
			FoodID:     r.FoodID,
			Name:       r.Name,
			Cuisine:    r.Cuisine,
			Category:   r.Category,
			Price:      r.Price,
			Tags:       preferences.Parse(r.Tags),
			Attributes: r.Attributes,
		}
	}
	return foods, nil
}

// ListOrders returns every order, oldest first, ties by order_id.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	start := time.Now()
	var rows []orderRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT order_id, user_id, food_id, "timestamp", mood, weather, location, rating
		FROM orders ORDER BY "timestamp", order_id`)
	metrics.RecordDBQuery("select", "orders", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders := make([]models.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].toModel()
	}
	return orders, nil
}

// InsertOrder appends one order, generating an ID and timestamp when unset.
// An existing order_id is left untouched.
func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	prepareOrder(order)

	start := time.Now()
	_, err := s.db.NamedExecContext(ctx, insertOrder, orderRowFrom(order))
	metrics.RecordDBQuery("insert", "orders", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.OrderID, err)
	}
	return nil
}

func prepareOrder(order *models.Order) {
	if order.OrderID == "" {
		order.OrderID = uuid.NewString()
	}
	if order.Timestamp.IsZero() {
		order.Timestamp = time.Now().UTC()
	}
}

// ImportDataset writes users, foods and orders in one transaction. Foods are
// appended after the current catalog in slice order.
func (s *Store) ImportDataset(ctx context.Context, ds *models.Dataset) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("import", "dataset", time.Since(start), err)
	}()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error().Err(rbErr).AnErr("original_error", err).Msg("transaction rollback failed")
			}
		}
	}()

	for i := range ds.Users {
		if _, err = tx.NamedExecContext(ctx, insertUser, userRowFrom(&ds.Users[i])); err != nil {
			return fmt.Errorf("failed to import user %s: %w", ds.Users[i].UserID, err)
		}
	}

	var maxSeq int64
	if err = tx.GetContext(ctx, &maxSeq, `SELECT COALESCE(MAX(seq), 0) FROM food_items`); err != nil {
		return fmt.Errorf("failed to read catalog sequence: %w", err)
	}
	for i := range ds.Foods {
		f := &ds.Foods[i]
		row := foodRow{
			FoodID:     f.FoodID,
			Seq:        maxSeq + int64(i) + 1,
			Name:       f.Name,
			Cuisine:    f.Cuisine,
			Category:   f.Category,
			Price:      f.Price,
			Tags:       preferences.Format(f.Tags),
			Attributes: f.Attributes,
		}
		if _, err = tx.NamedExecContext(ctx, insertFood, row); err != nil {
			return fmt.Errorf("failed to import food %s: %w", f.FoodID, err)
		}
	}

	for i := range ds.Orders {
		prepareOrder(&ds.Orders[i])
		if _, err = tx.NamedExecContext(ctx, insertOrder, orderRowFrom(&ds.Orders[i])); err != nil {
			return fmt.Errorf("failed to import order %s: %w", ds.Orders[i].OrderID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	s.logger.Info().
		Int("users", len(ds.Users)).
		Int("foods", len(ds.Foods)).
		Int("orders", len(ds.Orders)).
		Dur("duration", time.Since(start)).
		Msg("dataset imported")
	return nil
}

// Counts returns the row count of each input table.
func (s *Store) Counts(ctx context.Context) (models.Counts, error) {
	start := time.Now()
	var c models.Counts
	err := s.db.QueryRowxContext(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM food_items),
		(SELECT COUNT(*) FROM orders)`).Scan(&c.Users, &c.Foods, &c.Orders)
	metrics.RecordDBQuery("select", "counts", time.Since(start), err)
	if err != nil {
		return models.Counts{}, fmt.Errorf("failed to count rows: %w", err)
	}
	return c, nil
}

// Reset deletes every row from the three input tables.
func (s *Store) Reset(ctx context.Context) error {
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, table := range []string{"orders", "food_items", "users"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
