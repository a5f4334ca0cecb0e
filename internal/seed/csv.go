// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package seed

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/preferences"
)

// CSV file names inside a data directory.
const (
	UsersFile  = "users.csv"
	FoodsFile  = "food_items.csv"
	OrdersFile = "orders.csv"
)

var (
	userHeader  = []string{"user_id", "name", "age", "gender", "cuisine_preferences", "dietary_restrictions", "location"}
	foodHeader  = []string{"food_id", "name", "cuisine", "category", "price", "tags", "attributes"}
	orderHeader = []string{"order_id", "user_id", "food_id", "timestamp", "mood", "weather", "location", "rating"}
)

// timestampLayouts are tried in order when reading order timestamps. The
// space-separated forms are what pandas writes.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// WriteDir writes the dataset as three CSV files under dir.
func WriteDir(dir string, ds *models.Dataset) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	users := make([][]string, len(ds.Users))
	for i, u := range ds.Users {
		users[i] = []string{u.UserID, u.Name, strconv.Itoa(u.Age), u.Gender,
			preferences.Format(u.CuisinePreferences), preferences.Format(u.DietaryRestrictions), u.Location}
	}
	foods := make([][]string, len(ds.Foods))
	for i, f := range ds.Foods {
		foods[i] = []string{f.FoodID, f.Name, f.Cuisine, f.Category,
			strconv.FormatFloat(f.Price, 'f', -1, 64), preferences.Format(f.Tags), f.Attributes}
	}
	orders := make([][]string, len(ds.Orders))
	for i, o := range ds.Orders {
		rating := ""
		if o.Rating != nil {
			rating = strconv.Itoa(*o.Rating)
		}
		orders[i] = []string{o.OrderID, o.UserID, o.FoodID, o.Timestamp.UTC().Format(time.RFC3339),
			o.Mood, o.Weather, o.Location, rating}
	}

	for _, t := range []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{UsersFile, userHeader, users},
		{FoodsFile, foodHeader, foods},
		{OrdersFile, orderHeader, orders},
	} {
		if err := writeCSV(filepath.Join(dir, t.name), t.header, t.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is operator supplied
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadDir reads users.csv, food_items.csv and orders.csv from dir. Columns
// are matched by header name, so extra or reordered columns are fine.
// Preference lists may be comma separated or Python list literals.
func ReadDir(dir string) (*models.Dataset, error) {
	ds := &models.Dataset{}

	if err := readCSV(filepath.Join(dir, UsersFile), userHeader[:1], func(r record) error {
		age, err := r.int("age")
		if err != nil {
			return err
		}
		ds.Users = append(ds.Users, models.User{
			UserID:              r.get("user_id"),
			Name:                r.get("name"),
			Age:                 age,
			Gender:              r.get("gender"),
			CuisinePreferences:  preferences.Parse(r.get("cuisine_preferences")),
			DietaryRestrictions: preferences.Parse(r.get("dietary_restrictions")),
			Location:            r.get("location"),
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readCSV(filepath.Join(dir, FoodsFile), foodHeader[:1], func(r record) error {
		price, err := r.float("price")
		if err != nil {
			return err
		}
		ds.Foods = append(ds.Foods, models.FoodItem{
			FoodID:     r.get("food_id"),
			Name:       r.get("name"),
			Cuisine:    r.get("cuisine"),
			Category:   r.get("category"),
			Price:      price,
			Tags:       preferences.Parse(r.get("tags")),
			Attributes: r.get("attributes"),
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readCSV(filepath.Join(dir, OrdersFile), orderHeader[:3], func(r record) error {
		ts, err := parseTimestamp(r.get("timestamp"))
		if err != nil {
			return err
		}
		o := models.Order{
			OrderID:   r.get("order_id"),
			UserID:    r.get("user_id"),
			FoodID:    r.get("food_id"),
			Timestamp: ts,
			Mood:      r.get("mood"),
			Weather:   r.get("weather"),
			Location:  r.get("location"),
		}
		if raw := r.get("rating"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid rating %q: %w", raw, err)
			}
			rating := int(v)
			o.Rating = &rating
		}
		ds.Orders = append(ds.Orders, o)
		return nil
	}); err != nil {
		return nil, err
	}

	return ds, nil
}

// record is one CSV row addressed by column name.
type record struct {
	cols   map[string]int
	fields []string
}

func (r record) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r record) int(name string) (int, error) {
	raw := r.get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return int(v), nil
}

func (r record) float(name string) (float64, error) {
	raw := r.get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

// readCSV streams path row by row. required lists columns the header must
// contain.
func readCSV(path string, required []string, fn func(record) error) error {
	f, err := os.Open(path) //nolint:gosec // path is operator supplied
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("%s: missing column %q", path, name)
		}
	}

	line := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
		if err := fn(record{cols: cols, fields: fields}); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}
