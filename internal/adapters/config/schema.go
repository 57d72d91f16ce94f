package config

// Workfile represents the structure of the elab.yaml workspace file.
type Workfile struct {
	Version    string `yaml:"version"`
	Documents  string `yaml:"documents"`
	References string `yaml:"references"`
	Theories   string `yaml:"theories"`
	Debounce   string `yaml:"debounce"`
}
