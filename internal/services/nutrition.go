package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
)

var (
	gramsPattern      = regexp.MustCompile(`^\d+(\.\d+)?g$`)
	milligramsPattern = regexp.MustCompile(`^\d+(\.\d+)?mg$`)
)

// ValidateNutrition checks the shape of per-100g values
func ValidateNutrition(n domain.Nutrition) error {
	var problems []string
	if n.Calories < 0 {
		problems = append(problems, "calories must not be negative")
	}
	for _, f := range []struct {
		name  string
		value string
	}{
		{"protein", n.Protein},
		{"carbs", n.Carbs},
		{"fat", n.Fat},
	} {
		if !gramsPattern.MatchString(f.value) {
			problems = append(problems, fmt.Sprintf("%s must look like 12.5g", f.name))
		}
	}
	if !milligramsPattern.MatchString(n.Sodium) {
		problems = append(problems, "sodium must look like 300mg")
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
