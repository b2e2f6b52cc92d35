package service

import "github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/model"

// EstimateNutrition averages the macro values of the retrieved set. A record
// joins the single shared denominator as soon as it supplies at least one
// macro; each key's sum is then divided by that same count, even for keys the
// record did not supply. This mirrors the historical estimator exactly, so
// generated numbers stay comparable with previously served ones.
//
// Returns an empty map when the input is empty or no record carries any macro
// at all, which callers use to distinguish "no data" from an all-zero average.
func EstimateNutrition(retrieved []model.ScoredRecipe) map[string]float64 {
	nutrition := map[string]float64{}
	if len(retrieved) == 0 {
		return nutrition
	}

	var calories, fat, carbs, protein float64
	count := 0
	for _, r := range retrieved {
		valid := false
		if r.Calories != nil {
			calories += *r.Calories
			valid = true
		}
		if r.Fat != nil {
			fat += *r.Fat
			valid = true
		}
		if r.Carbs != nil {
			carbs += *r.Carbs
			valid = true
		}
		if r.Protein != nil {
			protein += *r.Protein
			valid = true
		}
		if valid {
			count++
		}
	}
	if count == 0 {
		return nutrition
	}

	n := float64(count)
	nutrition["calories"] = calories / n
	nutrition["fat"] = fat / n
	nutrition["carbs"] = carbs / n
	nutrition["protein"] = protein / n
	return nutrition
}
