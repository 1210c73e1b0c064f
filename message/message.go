// Package message composes the daily forecast text sent to the recipient.
package message

import (
	"fmt"

	"github.com/angas/weatherbot-go/convert"
	"github.com/angas/weatherbot-go/forecast"
)

type RiskLabel string

const (
	RiskLow      RiskLabel = "Low"
	RiskMedium   RiskLabel = "Medium"
	RiskHigh     RiskLabel = "High"
	RiskVeryHigh RiskLabel = "Very High"
	RiskExtreme  RiskLabel = "Extreme"
)

// UvRisk buckets a UV index into a risk label. Breakpoints are exclusive
// upper bounds, so a UV index of exactly 3.0 is Medium, not Low.
func UvRisk(uvIndex float64) RiskLabel {
	switch {
	case uvIndex < 3:
		return RiskLow
	case uvIndex < 6:
		return RiskMedium
	case uvIndex < 8:
		return RiskHigh
	case uvIndex < 11:
		return RiskVeryHigh
	default:
		return RiskExtreme
	}
}

// Compose renders the fixed message template. The <@id> token is Discord's
// mention syntax and must embed the recipient id verbatim.
func Compose(userID, displayName string, daily forecast.DailyRecord) string {
	high := convert.OneDecimal(daily.TemperatureMax)
	low := convert.OneDecimal(daily.TemperatureMin)
	uv := convert.OneDecimal(daily.UvIndexMax)
	risk := UvRisk(daily.UvIndexMax)

	return fmt.Sprintf("<@%s>\n"+
		"Good morning %s!\n\n"+
		"Today's forecast:\n"+
		"- High: %.1f °F\n"+
		"- Low: %.1f °F\n"+
		"- UV Index: %.1f - %s Risk\n"+
		"\n\n",
		userID, displayName, high, low, uv, risk)
}
