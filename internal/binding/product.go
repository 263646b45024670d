package binding

// Product returns the cartesian product of lists, preserving list order and
// varying the last list fastest. The product of zero lists is one empty
// tuple; any empty list makes the product empty.
func Product[T any](lists [][]T) [][]T {
	out := [][]T{{}}
	for _, list := range lists {
		next := make([][]T, 0, len(out)*len(list))
		for _, prefix := range out {
			for _, item := range list {
				tuple := make([]T, len(prefix), len(prefix)+1)
				copy(tuple, prefix)
				next = append(next, append(tuple, item))
			}
		}
		out = next
	}
	return out
}
