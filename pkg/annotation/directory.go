package annotation

// Gene is one entry of the organism's gene directory
type Gene struct {
	OrganismID int
	ID         int64
	Symbol     string
}

// Directory resolves gene IDs to symbols for one organism
type Directory struct {
	symbols map[int64]string
}

// NewDirectory indexes genes by ID. A repeated ID keeps its first symbol.
func NewDirectory(genes []Gene) *Directory {
	d := &Directory{symbols: make(map[int64]string, len(genes))}
	for _, g := range genes {
		if _, ok := d.symbols[g.ID]; !ok {
			d.symbols[g.ID] = g.Symbol
		}
	}
	return d
}

// Symbol returns the symbol of gene id
func (d *Directory) Symbol(id int64) (string, bool) {
	s, ok := d.symbols[id]
	return s, ok
}

// Len returns the number of genes in the directory
func (d *Directory) Len() int {
	return len(d.symbols)
}
