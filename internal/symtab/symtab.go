// Package symtab implements the symbol table described in spec.md §3 and
// §4.3: an ordered, insertion-order sequence of symbols supporting
// lookup, extern insertion, entry promotion, and the data-symbol
// relocation pass that runs once between the first and second pass.
//
// Grounded in original_source/src/symbol_table.c (the C implementation
// this assembler was distilled from) and in the teacher's
// internal/asm/labels.go, which documents the same "named position in
// the code" concept for a different architecture.
package symtab

import "fmt"

// Kind classifies how a symbol came to exist.
type Kind int

const (
	Regular Kind = iota
	Extern
	Entry
)

func (k Kind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Extern:
		return "extern"
	case Entry:
		return "entry"
	default:
		return "unknown"
	}
}

// Area records which table a Regular/Entry symbol's address was drawn
// from. Extern symbols do not use Area.
type Area int

const (
	Code Area = iota
	Data
)

// Symbol is a single named position in the assembled program.
type Symbol struct {
	Name    string
	Address uint16
	Kind    Kind
	Area    Area
}

// Table is the ordered symbol table for a single input file. The zero
// value is ready to use.
type Table struct {
	order []string
	byName map[string]*Symbol
}

// New returns an empty Table.
func New() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// ErrDuplicateSymbol is returned by Insert and InsertExtern when name
// already exists in the table, regardless of the existing entry's kind.
type ErrDuplicateSymbol struct {
	Name string
}

func (e *ErrDuplicateSymbol) Error() string {
	return fmt.Sprintf("symbol %q is already defined", e.Name)
}

// Insert adds a Regular symbol with the given address and area. It fails
// with ErrDuplicateSymbol if name is already present under any kind —
// spec.md's invariant that "each name appears at most once across all
// kinds".
func (t *Table) Insert(name string, address uint16, area Area) error {
	if _, exists := t.byName[name]; exists {
		return &ErrDuplicateSymbol{Name: name}
	}
	t.insert(&Symbol{Name: name, Address: address, Kind: Regular, Area: area})
	return nil
}

// InsertExtern adds an Extern symbol (address 0, Area unused). Per the
// resolution of spec.md §9 open question 1, a second .extern declaration
// of the same name is rejected exactly like any other duplicate
// definition, rather than silently deduplicated.
func (t *Table) InsertExtern(name string) error {
	if _, exists := t.byName[name]; exists {
		return &ErrDuplicateSymbol{Name: name}
	}
	t.insert(&Symbol{Name: name, Address: 0, Kind: Extern})
	return nil
}

func (t *Table) insert(sym *Symbol) {
	if t.byName == nil {
		t.byName = make(map[string]*Symbol)
	}
	t.order = append(t.order, sym.Name)
	t.byName[sym.Name] = sym
}

// Find looks up a symbol by name.
func (t *Table) Find(name string) (Symbol, bool) {
	sym, ok := t.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return *sym, true
}

// All iterates symbols in insertion order.
func (t *Table) All() []Symbol {
	result := make([]Symbol, 0, len(t.order))
	for _, name := range t.order {
		result = append(result, *t.byName[name])
	}
	return result
}

// ErrUndefined is returned by PromoteToEntry when name has no symbol.
type ErrUndefined struct{ Name string }

func (e *ErrUndefined) Error() string { return fmt.Sprintf("symbol %q is not defined", e.Name) }

// ErrEntryExternConflict is returned by PromoteToEntry when name is
// already Extern — spec.md §4.2's "entry/extern conflict" rule.
type ErrEntryExternConflict struct{ Name string }

func (e *ErrEntryExternConflict) Error() string {
	return fmt.Sprintf("symbol %q cannot be both entry and extern", e.Name)
}

// PromoteToEntry transitions an existing Regular symbol to Entry. Entry
// never arises from a fresh definition — only from promoting a Regular
// symbol, per spec.md §3's invariant.
func (t *Table) PromoteToEntry(name string) error {
	sym, ok := t.byName[name]
	if !ok {
		return &ErrUndefined{Name: name}
	}
	if sym.Kind == Extern {
		return &ErrEntryExternConflict{Name: name}
	}
	sym.Kind = Entry
	return nil
}

// RelocateDataSymbols adds 100+ic to the address of every symbol whose
// Area is Data, leaving Code-area and Extern symbols untouched. Must be
// invoked exactly once, between the first and second pass (spec.md
// §4.3).
func (t *Table) RelocateDataSymbols(ic int) {
	offset := uint16(100 + ic)
	for _, name := range t.order {
		sym := t.byName[name]
		if sym.Kind != Extern && sym.Area == Data {
			sym.Address += offset
		}
	}
}

// Entries returns every symbol of Kind Entry, in insertion order — the
// set that ends up in the .ent output file.
func (t *Table) Entries() []Symbol {
	var result []Symbol
	for _, name := range t.order {
		if sym := t.byName[name]; sym.Kind == Entry {
			result = append(result, *sym)
		}
	}
	return result
}
