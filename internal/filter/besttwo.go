package filter

// BestTwo returns the mean of the two samples closest to each other, dropping the outlier.
func BestTwo(x, y, z int16) int16 {
	da := abs(x - y)
	db := abs(x - z)
	dc := abs(z - y)

	switch {
	case da <= db && da <= dc:
		return (x + y) >> 1
	case db <= da && db <= dc:
		return (x + z) >> 1
	default:
		return (y + z) >> 1
	}
}

func abs(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}
