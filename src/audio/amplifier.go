package audio

// vca scales an oscillator sample by envelope level and velocity.
func vca(sample, envelope, velocity float64) float64 {
	return clamp(sample, -1, 1) * clamp(envelope, 0, 1) * clamp(velocity, 0, 1)
}
