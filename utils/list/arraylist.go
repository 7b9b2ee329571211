package list

import (
	"fmt"
	"sync"
)

// List es la interfaz mínima que usan la memoria y el kernel para llevar colas de marcos.
type List[T any] interface {
	Add(item T)                                 // Agrega un elemento al final
	Dequeue() (T, error)                        // Quita y devuelve el primer elemento
	Find(predicate func(T) bool) (T, int, bool) // Busca el primer elemento que cumple el predicado
	Get(index int) (T, error)                   // Devuelve el elemento en la posición index
	GetAll() []T                                // Copia de todos los elementos
	Remove(index int)                           // Elimina el elemento en la posición index
	RemoveWhere(match func(T) bool)             // Elimina todos los elementos que cumplen match
	Size() int                                  // Cantidad de elementos
}

// ArrayList implementa List sobre un slice protegido por un RWMutex.
type ArrayList[T any] struct {
	mu    sync.RWMutex
	items []T
}

// Add agrega un elemento al final de la lista.
//
// Ejemplo:
//
//	func main() {
//		frames := &list.ArrayList[int]{}
//		frames.Add(3)
//		frames.Add(7)
//	}
func (list *ArrayList[T]) Add(item T) {
	list.mu.Lock()
	defer list.mu.Unlock()

	list.items = append(list.items, item)
}

// Dequeue quita y devuelve el primer elemento. Si la lista está vacía devuelve el valor cero de T y un error.
//
// Ejemplo:
//
//	func main() {
//		frames := &list.ArrayList[int]{}
//		frames.Add(3)
//		frames.Add(7)
//		victim, _ := frames.Dequeue()
//		fmt.Println(victim) //output: 3
//	}
func (list *ArrayList[T]) Dequeue() (T, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if len(list.items) == 0 {
		var zero T
		return zero, fmt.Errorf("list is empty")
	}
	value := list.items[0]
	list.items = list.items[1:]
	return value, nil
}

// Find devuelve el primer elemento que cumple el predicado junto con su índice.
//
// Parámetros:
//   - predicate: función que identifica el elemento buscado.
func (list *ArrayList[T]) Find(predicate func(T) bool) (T, int, bool) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	for i, item := range list.items {
		if predicate(item) {
			return item, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// Get devuelve el elemento en la posición index o un error si el índice está fuera de rango.
func (list *ArrayList[T]) Get(index int) (T, error) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	if index < 0 || index >= len(list.items) {
		var zero T
		return zero, fmt.Errorf("index out of range: %d", index)
	}
	return list.items[index], nil
}

// GetAll devuelve una copia de los elementos, así quien la recorre no compite con el lock.
func (list *ArrayList[T]) GetAll() []T {
	list.mu.RLock()
	defer list.mu.RUnlock()

	items := make([]T, len(list.items))
	copy(items, list.items)
	return items
}

// Remove elimina el elemento en la posición index. Un índice inválido se ignora.
func (list *ArrayList[T]) Remove(index int) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if index < 0 || index >= len(list.items) {
		return
	}
	list.items = append(list.items[:index], list.items[index+1:]...)
}

// RemoveWhere elimina todos los elementos para los que match devuelve true, conservando el orden del resto.
//
// Ejemplo:
//
//	func main() {
//		frames := &list.ArrayList[int]{}
//		frames.Add(1)
//		frames.Add(2)
//		frames.RemoveWhere(func(f int) bool { return f == 1 })
//	}
func (list *ArrayList[T]) RemoveWhere(match func(T) bool) {
	list.mu.Lock()
	defer list.mu.Unlock()

	kept := list.items[:0]
	for _, item := range list.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	list.items = kept
}

// Size devuelve la cantidad de elementos.
func (list *ArrayList[T]) Size() int {
	list.mu.RLock()
	defer list.mu.RUnlock()

	return len(list.items)
}
