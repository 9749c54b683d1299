package universe

import "sort"

//Template represent the seeding template which can used to settle the grid with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

var templates = map[string]Template{}

func init() {
	for _, t := range []Template{
		{"block", "2x2 still life", [][]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}}},
		{"blinker", "period 2 oscillator", [][]int{{1, 2}, {2, 2}, {3, 2}}},
		{"glider", "moves one cell diagonally every 4 generations", [][]int{{2, 1}, {3, 2}, {1, 3}, {2, 3}, {3, 3}}},
		{"sample", "the test sample with 3 stable patterns", [][]int{
			{1, 1}, {1, 2},
			{2, 1}, {2, 2},
			{3, 3},
			{4, 2},
			{4, 3},
			{5, 3},
		}},
	} {
		AddTemplate(t)
	}
}

//AddTemplate adds the seeding template to the registry
func AddTemplate(tmpl Template) {
	templates[tmpl.Name] = tmpl
}

//LookupTemplate returns the registered template
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

//TemplateNames returns the sorted names of all registered templates
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Settle revives the cells at the template coordinates
//coordinates outside the grid are skipped
//returns the number of cells placed
func (g *Grid) Settle(tmpl Template) int {
	placed := 0
	for _, v := range tmpl.Coordinates {
		if len(v) != 2 || !g.Contains(v[1], v[0]) {
			continue
		}
		g.area.Entities[v[1]][v[0]] = true
		placed++
	}
	return placed
}
