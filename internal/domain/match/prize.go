package match

const (
	WinPrize  = 2.5
	DrawPrize = 1.0
)

// Prize is the money credited to the user's club for a result.
func Prize(r Result) float64 {
	switch {
	case r.Win:
		return WinPrize
	case r.Draw:
		return DrawPrize
	default:
		return 0
	}
}
