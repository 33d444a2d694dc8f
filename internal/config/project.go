package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the name of the optional per-directory settings file.
const ProjectFile = ".tip.yaml"

// Project is the optional on-disk configuration for a directory of TIP
// programs: which output sections to print and whether to colorize
// terminal output.
type Project struct {
	PrintTypes bool `yaml:"printTypes"`
	PrintSigns bool `yaml:"printSigns"`
	Color      bool `yaml:"color"`
}

// DefaultProject is used when no .tip.yaml is present.
func DefaultProject() Project {
	return Project{PrintTypes: true, PrintSigns: true, Color: true}
}

// LoadProject reads dir/.tip.yaml if it exists, falling back to
// DefaultProject when the file is absent.
func LoadProject(dir string) (Project, error) {
	proj := DefaultProject()
	data, err := os.ReadFile(dir + string(os.PathSeparator) + ProjectFile)
	if err != nil {
		if os.IsNotExist(err) {
			return proj, nil
		}
		return proj, err
	}
	if err := yaml.Unmarshal(data, &proj); err != nil {
		return proj, err
	}
	return proj, nil
}
