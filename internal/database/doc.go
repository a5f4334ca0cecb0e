// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Package database is the default FoodAware store, backed by an embedded DuckDB
database.

It holds the three input tables (users, food_items, orders) and implements
recommend.DataProvider for the filters and the combiner, plus the order
writer used by the event consumer and the API.

# Schema

	users(user_id, name, age, gender, cuisine_preferences, dietary_restrictions, location)
	food_items(food_id, seq, name, cuisine, category, price, tags, attributes)
	orders(order_id, user_id, food_id, timestamp, mood, weather, location, rating)

List-valued columns are TEXT. Rows written by this package use the comma
delimited form; rows loaded from elsewhere may hold a list literal such as
"['Italian', 'Thai']". Both decode through preferences.Parse.

Indexes are applied as versioned migrations tracked in schema_migrations.

# Usage

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
	    return err
	}
	defer db.Close()

	foods, err := db.ListFoods(ctx)

# Concurrency

The connection pool allows NumCPU concurrent connections. Reads never take
locks; InsertOrder and ImportDataset rely on DuckDB's MVCC. Every method
applies a 30 second timeout when the caller's context has no deadline.
*/
package database
