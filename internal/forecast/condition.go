package forecast

// Condition is a coarse sky category derived from a WMO weather code.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionMostlyClear  Condition = "mostly_clear"
	ConditionCloudy       Condition = "cloudy"
	ConditionFog          Condition = "fog"
	ConditionDrizzle      Condition = "drizzle"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionThunderstorm Condition = "thunderstorm"
)

// ConditionFor maps a WMO code to its Condition. Unknown codes read as clear.
func ConditionFor(code int) Condition {
	switch code {
	case 0:
		return ConditionClear
	case 1:
		return ConditionMostlyClear
	case 2, 3:
		return ConditionCloudy
	case 45, 48:
		return ConditionFog
	case 51, 53, 55, 56, 57:
		return ConditionDrizzle
	case 61, 63, 65, 66, 67, 80, 81, 82:
		return ConditionRain
	case 71, 73, 75, 77, 85, 86:
		return ConditionSnow
	case 95, 96, 99:
		return ConditionThunderstorm
	default:
		return ConditionClear
	}
}
