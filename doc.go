// Package schoolmeal analyses the meals served by a school.
//
// Meals are supplied by a Fetcher for a given day. Each meal comes with a
// semi-structured nutrient text ("탄수화물(g) : 120.5<br/>단백질(g) : 35.1")
// that ParseNutrients turns into an ordered mapping of values.
//
// The core functionalities are:
//   - Parsing: ParseNutrients drops any segment that is not a "name:value" pair
//     with a non-negative number, units being stripped from the value.
//   - Comparison: Compare relates a meal's nutrients to a table of recommended
//     daily intake, as a percentage rounded to one decimal.
//   - Aggregation: WeeklyAverage sums the nutrients of every meal over the last
//     seven days and divides by seven, whether or not each day had meals.
//
// Fetch failures never abort a report: FetchOrEmpty turns the expected kinds
// (network, decode, missing field, no data) into "no meal" and hands any other
// error back so that it can be displayed.
package schoolmeal
