package common

// Color is a raw MiLight color value, 0x00 to 0xFF around the color wheel
type Color uint8

// Palette colors, in the order exposed to the controller
const (
	ColorAqua     Color = 0x85
	ColorBlue     Color = 0xBA
	ColorGreen    Color = 0x7A
	ColorLavender Color = 0xD9
	ColorLime     Color = 0x54
	ColorOrange   Color = 0x1E
	ColorRed      Color = 0xFF
	ColorYellow   Color = 0x3B
)

// Temperature is a white temperature percentage, 0 (2700K) to 100 (6500K)
type Temperature uint8

// Palette temperatures, in the order exposed to the controller
const (
	TemperatureWarm         Temperature = 0
	TemperatureWarmWhite    Temperature = 8
	TemperatureCoolWhite    Temperature = 35
	TemperatureDaylight     Temperature = 61
	TemperatureCoolDaylight Temperature = 100
)

var (
	colorPalette = [...]Color{
		ColorAqua, ColorBlue, ColorGreen, ColorLavender,
		ColorLime, ColorOrange, ColorRed, ColorYellow,
	}
	temperaturePalette = [...]Temperature{
		TemperatureWarm, TemperatureWarmWhite, TemperatureCoolWhite,
		TemperatureDaylight, TemperatureCoolDaylight,
	}
)

// PaletteColor returns the color at the 1-based palette index, or
// ErrOutOfRange
func PaletteColor(index int) (Color, error) {
	if index < 1 || index > len(colorPalette) {
		return 0, ErrOutOfRange
	}
	return colorPalette[index-1], nil
}

// PaletteTemperature returns the temperature at the 1-based palette index, or
// ErrOutOfRange
func PaletteTemperature(index int) (Temperature, error) {
	if index < 1 || index > len(temperaturePalette) {
		return 0, ErrOutOfRange
	}
	return temperaturePalette[index-1], nil
}

// ColorPaletteSize is the number of entries in the color palette
func ColorPaletteSize() int { return len(colorPalette) }

// TemperaturePaletteSize is the number of entries in the temperature palette
func TemperaturePaletteSize() int { return len(temperaturePalette) }

// Kelvin approximates the color temperature of t
func (t Temperature) Kelvin() int {
	return 2700 + 38*int(t)
}
