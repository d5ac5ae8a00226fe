package config

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectType represents the kind of codebase being analyzed
type ProjectType string

const (
	ProjectTypeGeneric    ProjectType = "generic"
	ProjectTypeRust       ProjectType = "rust"
	ProjectTypeJavaScript ProjectType = "javascript"
	ProjectTypePython     ProjectType = "python"
)

// ProjectPreset holds exclude patterns for different project types
type ProjectPreset struct {
	ExcludePatterns []string
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			ExcludePatterns: []string{
				".git",
				"vendor",
			},
		},
		ProjectTypeRust: {
			ExcludePatterns: []string{
				".git",
				"target",
				"examples",
				"benches",
			},
		},
		ProjectTypeJavaScript: {
			ExcludePatterns: []string{
				".git",
				"node_modules",
				"dist",
				"build",
				"*.min.js",
			},
		},
		ProjectTypePython: {
			ExcludePatterns: []string{
				".git",
				".venv",
				"venv",
				"__pycache__",
				"build",
			},
		},
	}
}

// GetFullConfigTemplate returns the documented YAML config template
func GetFullConfigTemplate(projectType ProjectType) string {
	preset := GetProjectPresets()[projectType]

	return `# spacecheck configuration

# ==============================================================================
# EXTERNAL METRICS TOOL
# ==============================================================================
# The executable producing one JSON metrics record per source file.
tool:
  # Executable name or absolute path
  path: ` + DefaultToolPath + `

  # Fixed arguments; the target directory is appended last
  args:
` + formatYAMLList(DefaultToolArgs(), "    ") + `

# ==============================================================================
# CHECK RUN REPORTING
# ==============================================================================
checks:
  # Check run name shown on the pull request
  name: ` + DefaultCheckName + `

  # Maximum annotations per update call (the API caps this at 50)
  annotation_batch_size: ` + strconv.Itoa(DefaultAnnotationBatchSize) + `

# ==============================================================================
# ANALYSIS SCOPE
# ==============================================================================
analysis:
  # Gitignore-style patterns; records whose file path matches are dropped
  exclude_patterns:
` + formatYAMLList(preset.ExcludePatterns, "    ") + `
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# spacecheck configuration (minimal)

tool:
  path: ` + DefaultToolPath + `

checks:
  name: ` + DefaultCheckName + `
`
}

// formatYAMLList renders a string slice as an indented YAML sequence
func formatYAMLList(items []string, indent string) string {
	out, err := yaml.Marshal(items)
	if err != nil {
		return indent + "[]"
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
