package editor

import "math"

// alphaLevels is the number of transparency steps in the reflection gradient;
// 0 is opaque and alphaLevels is fully transparent.
const alphaLevels = 127

// reflectionOpacity returns, for each of the height reflected lines, the
// fraction of alpha the line keeps. Line 0 is adjacent to the image.
//
// The gradient runs between the base opacity and full transparency. With
// fadeIn the line next to the image is the most opaque and the reflection
// fades out downward; without it the line next to the image is transparent
// and the reflection becomes more opaque toward the bottom.
func reflectionOpacity(height, opacity int, fadeIn bool) []float64 {
	base := math.Round(math.Abs(float64(opacity)*alphaLevels/100 - alphaLevels))

	steps := float64(height)
	if steps <= 0 {
		steps = 1
	}
	stepping := alphaLevels / steps
	if base < alphaLevels {
		stepping = (alphaLevels - base) / steps
	}

	lines := make([]float64, max(height, 0))
	for offset := range lines {
		var alpha float64
		if fadeIn {
			alpha = math.Round(base + stepping*float64(offset))
		} else {
			alpha = math.Round(base + stepping*float64(height-offset))
		}
		alpha = math.Min(math.Max(alpha, 0), alphaLevels)
		lines[offset] = 1 - alpha/alphaLevels
	}
	return lines
}
