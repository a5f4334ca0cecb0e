// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package seed produces the demo dataset. It can generate a synthetic one
// from a seed, read and write the three tables as CSV, and load either into
// an empty store.
package seed

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/foodaware/internal/models"
)

// Vocabulary shared by the generator and the context rules.
var (
	Cuisines = []string{"Italian", "Chinese", "Indian", "Mexican", "Japanese", "Thai", "American"}

	CuisineDishes = map[string][]string{
		"Italian":  {"Spaghetti Carbonara", "Margherita Pizza", "Lasagna", "Risotto", "Penne Arrabbiata"},
		"Chinese":  {"Kung Pao Chicken", "Sweet and Sour Pork", "Dumplings", "Mapo Tofu", "Chow Mein"},
		"Indian":   {"Butter Chicken", "Palak Paneer", "Biryani", "Chole Bhature", "Tandoori Roti"},
		"Mexican":  {"Beef Tacos", "Burrito Bowl", "Quesadillas", "Guacamole", "Chicken Enchiladas"},
		"Japanese": {"Sushi Roll", "Ramen", "Tempura", "Tonkatsu", "Yakitori"},
		"Thai":     {"Pad Thai", "Green Curry", "Tom Yum Soup", "Thai Basil Chicken", "Massaman Curry"},
		"American": {"Cheeseburger", "Mac and Cheese", "BBQ Ribs", "Chicken Wings", "Cobb Salad"},
	}

	Categories  = []string{"Breakfast", "Lunch", "Dinner", "Appetizer", "Main Course", "Dessert"}
	Moods       = []string{"Happy", "Sad", "Stressed", "Relaxed", "Adventurous"}
	Weathers    = []string{"Sunny", "Rainy", "Snowy", "Cloudy", "Windy"}
	DietaryTags = []string{"Vegan", "Vegetarian", "Gluten-Free", "Keto", "Halal", "Kosher"}
	Attributes  = []string{"Spicy", "Sweet", "Savory", "Tangy"}
)

var (
	firstNames = []string{"Ava", "Liam", "Maya", "Noah", "Zara", "Ethan", "Priya", "Lucas", "Sofia", "Kenji",
		"Amara", "Diego", "Lena", "Omar", "Chloe", "Ravi", "Ines", "Mateo", "Hana", "Felix"}
	lastNames = []string{"Garcia", "Chen", "Patel", "Smith", "Okafor", "Rossi", "Tanaka", "Nguyen", "Muller",
		"Silva", "Kim", "Haddad", "Novak", "Brown", "Sato"}
	cities = []string{"New York", "Chicago", "Austin", "Seattle", "Denver", "Boston", "Miami", "Portland",
		"San Diego", "Atlanta"}
	genders = []string{"Male", "Female"}
)

// Options sizes the generated dataset.
type Options struct {
	Users  int
	Foods  int
	Orders int
	// Now anchors order timestamps, which fall in the two years before it.
	Now time.Time
}

// DefaultOptions returns the demo dataset size.
func DefaultOptions() Options {
	return Options{Users: 20, Foods: 100, Orders: 5000, Now: time.Now().UTC()}
}

// Generate builds a synthetic dataset. The same seed and options always
// produce the same dataset.
func Generate(seed int64, opts Options) *models.Dataset {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible demo data
	g := generator{rng: rng}

	ds := &models.Dataset{
		Users: make([]models.User, opts.Users),
		Foods: make([]models.FoodItem, opts.Foods),
	}
	for i := range ds.Users {
		ds.Users[i] = g.user()
	}
	for i := range ds.Foods {
		ds.Foods[i] = g.food()
	}
	if len(ds.Users) == 0 || len(ds.Foods) == 0 {
		ds.Orders = []models.Order{}
		return ds
	}

	ds.Orders = make([]models.Order, opts.Orders)
	start := opts.Now.Add(-2 * 365 * 24 * time.Hour)
	span := opts.Now.Sub(start)
	for i := range ds.Orders {
		u := &ds.Users[rng.Intn(len(ds.Users))]
		f := &ds.Foods[rng.Intn(len(ds.Foods))]
		rating := 1 + rng.Intn(5)
		ds.Orders[i] = models.Order{
			OrderID:   g.id(),
			UserID:    u.UserID,
			FoodID:    f.FoodID,
			Timestamp: start.Add(time.Duration(rng.Int63n(int64(span)))).Truncate(time.Second),
			Mood:      g.pick(Moods),
			Weather:   g.pick(Weathers),
			Location:  u.Location,
			Rating:    &rating,
		}
	}
	return ds
}

type generator struct {
	rng *rand.Rand
}

func (g generator) id() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (g generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

// sample returns k distinct values in random order.
func (g generator) sample(values []string, k int) []string {
	perm := g.rng.Perm(len(values))
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = values[perm[i]]
	}
	return out
}

func (g generator) user() models.User {
	return models.User{
		UserID:              g.id(),
		Name:                g.pick(firstNames) + " " + g.pick(lastNames),
		Age:                 18 + g.rng.Intn(48),
		Gender:              g.pick(genders),
		CuisinePreferences:  g.sample(Cuisines, 3),
		DietaryRestrictions: g.sample(DietaryTags, 2),
		Location:            g.pick(cities),
	}
}

func (g generator) food() models.FoodItem {
	cuisine := g.pick(Cuisines)
	price := 5 + g.rng.Float64()*25
	return models.FoodItem{
		FoodID:     g.id(),
		Name:       g.pick(CuisineDishes[cuisine]),
		Cuisine:    cuisine,
		Category:   g.pick(Categories),
		Price:      math.Round(price*100) / 100,
		Tags:       g.sample(DietaryTags, 2),
		Attributes: g.pick(Attributes),
	}
}
