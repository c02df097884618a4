package universe

import "sort"

//Template represents the seeding template which can be used to settle the universe with predefined data
type Template struct {
	Name  string       //template name
	Descr string       //template descr
	Cells []Coordinate //alive cells
}

var builtinTemplates = []Template{
	{"block", "2x2 still life", []Coordinate{{1, 1}, {1, 2}, {2, 1}, {2, 2}}},
	{"blinker", "period 2 oscillator", []Coordinate{{1, 2}, {2, 2}, {3, 2}}},
	{"toad", "period 2 oscillator", []Coordinate{{2, 2}, {2, 3}, {2, 4}, {3, 1}, {3, 2}, {3, 3}}},
	{"beacon", "period 2 oscillator", []Coordinate{{1, 1}, {1, 2}, {2, 1}, {4, 3}, {4, 4}, {3, 4}}},
	{"glider", "moves one cell diagonally every 4 generations", []Coordinate{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
	{"sample", "a block with a few cells that settle into stable patterns", []Coordinate{
		{1, 1}, {2, 1},
		{1, 2}, {2, 2},
		{3, 3},
		{2, 4},
		{3, 4},
		{3, 5},
	}},
}

//BuiltinTemplateNames returns the names of the templates every Game starts with
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtinTemplates))
	for _, t := range builtinTemplates {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func sortedTemplates(m map[string]Template) []Template {
	l := make([]Template, 0, len(m))
	for _, t := range m {
		l = append(l, t)
	}
	sort.Slice(l, func(i, j int) bool { return l[i].Name < l[j].Name })
	return l
}
