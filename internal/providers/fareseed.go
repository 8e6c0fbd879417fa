package providers

import "unicode/utf16"

const (
	seedModulus = 9973
	seedFloor   = 120
	seedBand    = 160
)

// FareSeed derives a baseline fare in [120, 279] from the route and date.
// The same triple always yields the same seed.
func FareSeed(origin, destination, departDate string) int {
	acc := 0
	for _, unit := range utf16.Encode([]rune(origin + "-" + destination + "-" + departDate)) {
		acc = (acc*33 + int(unit)) % seedModulus
	}
	return seedFloor + acc%seedBand
}
