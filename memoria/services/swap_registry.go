package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
)

// SwapRegistry lleva qué espacio de direcciones usa cada archivo de swap. Un nombre tomado no se
// vuelve a dar hasta que su dueño lo libera.
type SwapRegistry struct {
	mu     sync.Mutex
	owners map[string]models.Owner
}

func NewSwapRegistry() *SwapRegistry {
	return &SwapRegistry{owners: make(map[string]models.Owner)}
}

// Reserve devuelve el primer nombre libre entre base+suffix, base.1+suffix, base.2+suffix, ...
// y lo asigna a owner. Dos cargas de halt reciben halt.swp y halt.1.swp.
func (r *SwapRegistry) Reserve(owner models.Owner, base string, suffix string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := base + suffix
	for n := 1; ; n++ {
		if _, taken := r.owners[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s.%d%s", base, n, suffix)
	}
	r.owners[name] = owner
	return name
}

// Release libera name solo si sigue siendo de owner.
func (r *SwapRegistry) Release(owner models.Owner, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owners[name] == owner {
		delete(r.owners, name)
	}
}

// Owner devuelve quién tiene reservado name.
func (r *SwapRegistry) Owner(name string) (models.Owner, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, taken := r.owners[name]
	return owner, taken
}

// Stem devuelve el nombre sin el sufijo, para derivar archivos asociados (p. ej. la revisión).
func Stem(name string, suffix string) string {
	return strings.TrimSuffix(name, suffix)
}
