package utils

import (
	"os"
	"strconv"

	"golang.org/x/exp/constraints"
)

func FormatMilliSat(milliSat int64) string {
	return strconv.FormatFloat(float64(milliSat)/1000, 'f', 3, 64)
}

func Satoshis[V constraints.Integer](sat V) string {
	return strconv.FormatInt(int64(sat), 10) + " satoshis"
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// MultiplyChecked returns a*b and false if the product does not fit into T
func MultiplyChecked[T constraints.Signed](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	result := a * b
	if result/b != a {
		return 0, false
	}
	// the division check misses the most negative value multiplied by -1
	if (a == -1 || b == -1) && (a < 0) == (b < 0) && result < 0 {
		return 0, false
	}
	return result, true
}
