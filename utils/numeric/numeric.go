package numeric

import "golang.org/x/exp/constraints"

// DivRoundUp divide redondeando hacia arriba. size debe ser positivo.
//
// Ejemplo:
//
//	pages := numeric.DivRoundUp(5120, 128) // 40
func DivRoundUp[T constraints.Integer](n, size T) T {
	return (n + size - 1) / size
}

// RoundUp lleva n al siguiente múltiplo de size.
func RoundUp[T constraints.Integer](n, size T) T {
	return DivRoundUp(n, size) * size
}
