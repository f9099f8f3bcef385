package scheduler

import "math"

// CalculateFairnessScore returns a percentage (0-100) representing how evenly
// hours are distributed. 100% is perfectly fair (Standard Deviation = 0).
func CalculateFairnessScore(weeklyHours map[string]int) float64 {
	if len(weeklyHours) == 0 {
		return 100.0
	}

	var sum float64
	for _, h := range weeklyHours {
		sum += float64(h)
	}
	if sum == 0 {
		return 100.0
	}

	n := float64(len(weeklyHours))
	mean := sum / n

	var varianceSum float64
	for _, h := range weeklyHours {
		diff := float64(h) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / n)

	// 0% once the spread reaches the mean
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
