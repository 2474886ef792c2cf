package category

import "sort"

type Category struct {
	Code string
	Name string
}

var known = map[string]string{
	"ro":         "RO Water Purifier",
	"uv":         "UV Water Purifier",
	"ro+uv":      "RO+UV Water Purifier",
	"alkaline":   "Alkaline Water Purifier",
	"gravity":    "Gravity Based",
	"commercial": "Commercial Purifier",
}

// DisplayName falls back to the raw code for categories outside the table.
func DisplayName(code string) string {
	if name, ok := known[code]; ok {
		return name
	}
	return code
}

func IsKnown(code string) bool {
	_, ok := known[code]
	return ok
}

func List() []Category {
	out := make([]Category, 0, len(known))
	for code, name := range known {
		out = append(out, Category{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
