package catalog

import "fmt"

// IsEdgeCase reports whether a true count lands within one point of the
// index, the borderline zone where both plays are close in value.
func IsEdgeCase(trueCount, index int) bool {
	diff := trueCount - index
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// EdgeCaseExplanation renders the proximity commentary shown alongside
// borderline scenarios. Keyed by the sign and magnitude of trueCount-index.
func EdgeCaseExplanation(trueCount, index int, deviation, basicStrategy string) string {
	diff := trueCount - index
	display := fmt.Sprintf("%+d", trueCount)
	switch {
	case diff == 0:
		return fmt.Sprintf("This is AT the index (%d). Both plays are nearly equal in value here.", index)
	case diff == 1:
		return fmt.Sprintf("True count (%s) is 1 above the index (%d). The deviation is clearly correct.", display, index)
	case diff == -1:
		return fmt.Sprintf("True count (%s) is 1 below the index (%d). Basic strategy is correct here, but it's close.", display, index)
	case diff > 1:
		return fmt.Sprintf("True count (%s) is well above the index (%d). The deviation is strongly correct.", display, index)
	default:
		return fmt.Sprintf("True count (%s) is well below the index (%d). Stick to basic strategy.", display, index)
	}
}
