// Package symtab holds the flat symbol table built as a side effect of
// parsing. There is one namespace per compilation unit: function parameters
// and locals of different functions share it, and redeclaring a name silently
// overwrites the prior entry. Both are defined behavior, not accidents.
package symtab

type Kind int

const (
	Variable Kind = iota
	Array
	Function
	Param
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Array:
		return "array"
	case Function:
		return "function"
	case Param:
		return "param"
	default:
		return "unknown"
	}
}

// ParamInfo describes one parameter of a function entry.
type ParamInfo struct {
	Type  string
	Name  string
	Array bool
}

// Entry is the recorded metadata for one declared name. Size is set for
// arrays, Params for functions.
type Entry struct {
	Type   string
	Kind   Kind
	Size   int64
	Params []ParamInfo
}

// Table maps declared names to entries, preserving first-insertion order for
// display.
type Table struct {
	names   []string
	entries map[string]Entry
}

func New() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Define records name unconditionally, overwriting any prior entry. A
// redefined name keeps its original position in the ordering.
func (t *Table) Define(name string, e Entry) {
	if _, ok := t.entries[name]; !ok {
		t.names = append(t.names, name)
	}
	t.entries[name] = e
}

func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Names returns the declared names in first-insertion order.
func (t *Table) Names() []string {
	return t.names
}

func (t *Table) Len() int {
	return len(t.names)
}
