package stats

// EpleyOneRM estimates a one-rep max from a set: weight × (1 + reps/30).
func EpleyOneRM(weight float64, reps int) float64 {
	if reps <= 0 || weight <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}
