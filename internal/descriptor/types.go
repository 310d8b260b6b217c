package descriptor

// Module is the parsed form of a module descriptor file.
type Module struct {
	ID           string       `yaml:"id,omitempty" json:"id,omitempty"`
	Name         string       `yaml:"name" json:"name"`
	Version      string       `yaml:"version" json:"version"`
	Description  string       `yaml:"description" json:"description"`
	Tags         []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Author       string       `yaml:"author,omitempty" json:"author,omitempty"`
	Dependencies []Dependency `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// Dependency declares that a module requires another module to be linked
// alongside it. Version, when set, is a semver constraint (e.g., ">=1.0.0").
type Dependency struct {
	ID      string `yaml:"id" json:"id"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// Collection is the parsed form of a collection descriptor file. Modules is
// the ordered list of member module IDs.
type Collection struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Modules     []string `yaml:"modules" json:"modules"`
}

// Recognized descriptor file names, in lookup priority order.
var (
	ModuleFileNames     = []string{"module.json", "module.yaml"}
	CollectionFileNames = []string{"collection.json", "collection.yaml"}
)
