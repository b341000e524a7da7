package course

// Course describes a golf course returned by the structured course search.
type Course struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}
