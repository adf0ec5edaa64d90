package lib

import "fmt"

type VarType int

const (
	VarTypeInt VarType = iota
	VarTypeReal
	VarTypeBool
)

func (t VarType) String() string {
	switch t {
	case VarTypeInt:
		return "INT"
	case VarTypeReal:
		return "REAL"
	case VarTypeBool:
		return "BOOL"
	default:
		return fmt.Sprintf("VarType(%d)", int(t))
	}
}

var typeKeywords = map[string]VarType{
	"integer": VarTypeInt,
	"real":    VarTypeReal,
	"boolean": VarTypeBool,
}

type Declaration struct {
	Name     string
	Type     VarType
	Location Location
}

// Program is what a successful validation yields: the program name and the
// declaration block in source order, duplicates included.
type Program struct {
	Name         string
	Declarations []Declaration
}

// symbolTable is the flat declared-variable namespace. Entries may only be
// added until the table is sealed, which happens when the declaration block
// ends. Redeclaring a name adds a second entry; lookups see the first.
type symbolTable struct {
	entries []Declaration
	first   map[string]int
	sealed  bool
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		entries: []Declaration{},
		first:   map[string]int{},
	}
}

func (s *symbolTable) declare(d Declaration) error {
	if s.sealed {
		return fmt.Errorf("Cannot declare '%s' after the declaration block", d.Name)
	}

	if _, exists := s.first[d.Name]; !exists {
		s.first[d.Name] = len(s.entries)
	}
	s.entries = append(s.entries, d)
	return nil
}

func (s *symbolTable) lookup(name string) (Declaration, bool) {
	i, ok := s.first[name]
	if !ok {
		return Declaration{}, false
	}
	return s.entries[i], true
}

func (s *symbolTable) seal() {
	s.sealed = true
}

func (s *symbolTable) declarations() []Declaration {
	out := make([]Declaration, len(s.entries))
	copy(out, s.entries)
	return out
}
