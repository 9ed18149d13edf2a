package common

func Map[I, O any](p func(I) O, xs []I) []O {
	result := make([]O, len(xs))
	for i, x := range xs {
		result[i] = p(x)
	}
	return result
}

func MapIf[I, O any](p func(I) (O, bool), xs []I) []O {
	result := make([]O, 0, len(xs))
	for _, x := range xs {
		if r, ok := p(x); ok {
			result = append(result, r)
		}
	}
	return result
}

func MapError[I, O any](p func(I) (O, error), xs []I) ([]O, error) {
	result := make([]O, len(xs))
	for i, x := range xs {
		r, err := p(x)
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

func Any[T any](p func(T) bool, xs []T) bool {
	for _, x := range xs {
		if p(x) {
			return true
		}
	}
	return false
}

func Fold[T, A any](p func(T, A) A, acc A, xs []T) A {
	for _, x := range xs {
		acc = p(x, acc)
	}
	return acc
}
