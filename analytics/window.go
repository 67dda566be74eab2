package analytics

// Window helpers shared by the ranked and period-over-period reports.
// Rows must already be sorted so that partitions are contiguous and values
// appear in ranking order within each partition; the helpers only assign.

// DenseRanks returns a dense rank for every row: tied values share a rank
// and the next distinct value gets the previous rank plus one, so the ranks
// used within a partition have no gaps.
func DenseRanks[T any](rows []T, samePartition, sameValue func(a, b T) bool) []int {
	ranks := make([]int, len(rows))
	for i := range rows {
		switch {
		case i == 0 || !samePartition(rows[i-1], rows[i]):
			ranks[i] = 1
		case sameValue(rows[i-1], rows[i]):
			ranks[i] = ranks[i-1]
		default:
			ranks[i] = ranks[i-1] + 1
		}
	}
	return ranks
}

// Lag returns, for every row, the previous row's value within the same
// partition, or nil at a partition start.
func Lag[T any, V any](rows []T, samePartition func(a, b T) bool, value func(T) V) []*V {
	out := make([]*V, len(rows))
	for i := 1; i < len(rows); i++ {
		if samePartition(rows[i-1], rows[i]) {
			v := value(rows[i-1])
			out[i] = &v
		}
	}
	return out
}
