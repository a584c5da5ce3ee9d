package utils

import "math"

func CalculateImpactScore(cleanups, trashKg, crewSize int) float64 {
	cleanupScore := math.Pow(float64(cleanups), 2) * 0.5
	trashScore := float64(trashKg) * 0.2
	crewScore := float64(crewSize) * 1.0

	return cleanupScore + trashScore + crewScore
}
