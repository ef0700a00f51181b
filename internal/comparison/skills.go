package comparison

import (
	"strings"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// skillAliases maps common skill name variants to a canonical key
var skillAliases = map[string]string{
	"golang":    "go",
	"go lang":   "go",
	"js":        "javascript",
	"ts":        "typescript",
	"k8s":       "kubernetes",
	"react.js":  "react",
	"reactjs":   "react",
	"vue.js":    "vue",
	"vuejs":     "vue",
	"nodejs":    "node.js",
	"node":      "node.js",
	"postgres":  "postgresql",
	"psql":      "postgresql",
	"aws cloud": "aws",
	"gcp":       "google cloud",
	"c sharp":   "c#",
	"csharp":    "c#",
	"py":        "python",
	"python3":   "python",
	"tf":        "terraform",
	"docker ce": "docker",
}

// canonicalSkill folds a skill name to its comparison key.
func canonicalSkill(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ""
	}
	key = strings.Join(strings.Fields(key), " ")
	if canonical, ok := skillAliases[key]; ok {
		return canonical
	}
	return key
}

// skillSet collects the canonical names of every language, framework and tool.
func skillSet(tech types.TechnicalSkills) map[string]bool {
	set := make(map[string]bool)
	for _, group := range [][]types.SkillEntry{tech.ProgrammingLanguages, tech.Frameworks, tech.Tools} {
		for _, s := range group {
			if key := canonicalSkill(s.Name); key != "" {
				set[key] = true
			}
		}
	}
	return set
}

// requiredSkillCoverage returns the matched fraction of required skills and the names that are missing.
// With no requirements the coverage is reported as -1.
func requiredSkillCoverage(tech types.TechnicalSkills, required []string) (float64, []string) {
	wanted := make([]string, 0, len(required))
	seen := make(map[string]bool)
	for _, r := range required {
		key := canonicalSkill(r)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		wanted = append(wanted, r)
	}
	if len(wanted) == 0 {
		return -1, nil
	}

	have := skillSet(tech)
	var missing []string
	for _, r := range wanted {
		if !have[canonicalSkill(r)] {
			missing = append(missing, strings.TrimSpace(r))
		}
	}
	return float64(len(wanted)-len(missing)) / float64(len(wanted)), missing
}
