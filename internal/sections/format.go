package sections

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatSalary renders an annual salary in rupees. Amounts of one lakh and
// above are shown in lakhs with one decimal; smaller amounts use grouped
// digits.
func FormatSalary(amount int64) string {
	if amount < 0 {
		amount = 0
	}
	if amount >= 100000 {
		return fmt.Sprintf("INR %.1fL/yr", float64(amount)/100000)
	}
	return printer.Sprintf("INR %d/yr", amount)
}

// FormatScore renders a match score clamped to [0, 100] with at most one
// decimal.
func FormatScore(score float64) string {
	if math.IsNaN(score) || score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return strconv.FormatFloat(math.Round(score*10)/10, 'f', -1, 64)
}
