package utils

func MapSlice[A any, B any](input []A, mapper func(A) B) (output []B) {
	output = make([]B, len(input))
	for i, value := range input {
		output[i] = mapper(value)
	}
	return
}

// Unique returns the input without repeated values, keeping the first occurrence.
func Unique[T comparable](input []T) []T {
	seen := make(map[T]struct{}, len(input))
	output := make([]T, 0, len(input))
	for _, value := range input {
		if _, found := seen[value]; found {
			continue
		}
		seen[value] = struct{}{}
		output = append(output, value)
	}
	return output
}
