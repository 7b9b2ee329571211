package models

// TranslationEntry es una entrada de la tabla de páginas lineal: traduce una página
// virtual a un marco físico y guarda los bits de residencia y acceso.
type TranslationEntry struct {
	VirtualPage  int  `json:"virtual_page"`
	PhysicalPage int  `json:"physical_page"`
	Valid        bool `json:"valid"`     // La página está en memoria física
	Use          bool `json:"use"`       // La MMU la marca en cada acceso
	Dirty        bool `json:"dirty"`     // La MMU la marca en cada escritura
	ReadOnly     bool `json:"read_only"` // Escribirla produce ErrReadOnly
}
