// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

// DefaultCategory is returned for weather or mood values without a rule.
const DefaultCategory = "Main Course"

// Weather conditions with a rule.
const (
	WeatherSunny  = "Sunny"
	WeatherRainy  = "Rainy"
	WeatherSnowy  = "Snowy"
	WeatherCloudy = "Cloudy"
	WeatherWindy  = "Windy"
)

// Moods with a rule.
const (
	MoodHappy       = "Happy"
	MoodSad         = "Sad"
	MoodStressed    = "Stressed"
	MoodRelaxed     = "Relaxed"
	MoodAdventurous = "Adventurous"
)

var weatherRules = map[string][]string{
	WeatherSunny:  {"Salad", "Appetizer", "Cold Drinks", "Dessert"},
	WeatherRainy:  {"Soup", "Hot Coffee", "Main Course", "Stew"},
	WeatherSnowy:  {"Hot Chocolate", "Stew", "Main Course", "Soup"},
	WeatherCloudy: {"Tea", "Appetizer", "Sandwich", "Dessert"},
	WeatherWindy:  {"Main Course", "Appetizer", "Wrap", "Soup"},
}

var moodRules = map[string][]string{
	MoodHappy:       {"Dessert", "Appetizer", "Salad", "Beverage"},
	MoodSad:         {"Dessert", "Main Course", "Pasta", "Comfort Food"},
	MoodStressed:    {"Main Course", "Appetizer", "Comfort Food", "Beverage"},
	MoodRelaxed:     {"Soup", "Tea", "Appetizer", "Salad"},
	MoodAdventurous: {"Spicy", "Main Course", "Curry", "Exotic"},
}

// Weathers lists the weather conditions with a rule, in table order.
func Weathers() []string {
	return []string{WeatherSunny, WeatherRainy, WeatherSnowy, WeatherCloudy, WeatherWindy}
}

// Moods lists the moods with a rule, in table order.
func Moods() []string {
	return []string{MoodHappy, MoodSad, MoodStressed, MoodRelaxed, MoodAdventurous}
}

// WeatherCategories returns the categories suited to weather.
func WeatherCategories(weather string) []string {
	return lookupRule(weatherRules, weather)
}

// MoodCategories returns the categories suited to mood.
func MoodCategories(mood string) []string {
	return lookupRule(moodRules, mood)
}

func lookupRule(table map[string][]string, key string) []string {
	cats, ok := table[key]
	if !ok {
		return []string{DefaultCategory}
	}
	out := make([]string, len(cats))
	copy(out, cats)
	return out
}
