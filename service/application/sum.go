package application

import (
	"math"
	"strconv"
	"strings"

	"compute-service/service/domain"
)

// ParseSum soma uma lista de inteiros separados por vírgula.
//
// Tokens vazios são descartados ("1,,3" == "1,3"). Cada token restante é
// aparado e lido como int64. O primeiro token inválido interrompe a leitura
// com BadRequest citando seu índice entre os tokens não vazios. Overflow na
// soma é Internal.
func ParseSum(input string) (int64, error) {
	var total int64
	idx := 0
	for _, token := range strings.Split(input, ",") {
		if token == "" {
			continue
		}
		t := strings.TrimSpace(token)
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			de := domain.BadRequest("nums item %d is not a valid integer: %s", idx, t)
			de.Err = err
			return 0, de
		}
		if addOverflows(total, v) {
			return 0, domain.Internal("sum overflows int64 at nums item %d", idx)
		}
		total += v
		idx++
	}
	return total, nil
}

func addOverflows(a, b int64) bool {
	if b > 0 {
		return a > math.MaxInt64-b
	}
	return a < math.MinInt64-b
}
