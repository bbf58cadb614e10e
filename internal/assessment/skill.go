package assessment

import "strings"

// Category is one bucket of the fixed skill taxonomy used to select questions.
type Category string

const (
	CategoryPython             Category = "python"
	CategoryJava               Category = "java"
	CategoryC                  Category = "c"
	CategoryCPP                Category = "cpp"
	CategoryWebDevelopment     Category = "web_development"
	CategoryIoT                Category = "iot"
	CategoryCybersecurity      Category = "cybersecurity"
	CategoryGeneralProgramming Category = "general_programming"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryPython,
	CategoryJava,
	CategoryC,
	CategoryCPP,
	CategoryWebDevelopment,
	CategoryIoT,
	CategoryCybersecurity,
	CategoryGeneralProgramming,
}

var categoryLabels = map[Category]string{
	CategoryPython:             "Python",
	CategoryJava:               "Java",
	CategoryC:                  "C",
	CategoryCPP:                "C++",
	CategoryWebDevelopment:     "Web Development",
	CategoryIoT:                "IoT",
	CategoryCybersecurity:      "Cybersecurity",
	CategoryGeneralProgramming: "General Programming",
}

// Label returns the human-readable category name.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is part of the taxonomy.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// skillRule maps a lower-cased skill token to a category when match returns true.
type skillRule struct {
	category Category
	match    func(skill string) bool
}

// skillRules is evaluated top to bottom and the first match wins.
// cpp sits above c so that "c++" never falls into the plain C bucket,
// and java excludes "javascript" which belongs to web development.
var skillRules = []skillRule{
	{CategoryPython, func(s string) bool {
		return strings.Contains(s, "python") || s == "py"
	}},
	{CategoryCPP, func(s string) bool {
		return strings.Contains(s, "c++") || s == "cpp"
	}},
	{CategoryC, func(s string) bool {
		return s == "c" || strings.Contains(s, " c language") || strings.HasPrefix(s, "c ")
	}},
	{CategoryJava, func(s string) bool {
		return s == "java" || (strings.Contains(s, "java") && !strings.Contains(s, "script"))
	}},
	{CategoryWebDevelopment, func(s string) bool {
		return s == "js" || containsAny(s, "web", "frontend", "backend", "full stack", "fullstack", "javascript", "typescript")
	}},
	{CategoryIoT, func(s string) bool {
		return containsAny(s, "iot", "internet of things", "embedded")
	}},
	{CategoryCybersecurity, func(s string) bool {
		return containsAny(s, "cyber", "security")
	}},
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ParseSkills splits free text on commas, semicolons and newlines and returns
// the trimmed, non-empty tokens in input order.
func ParseSkills(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			skills = append(skills, t)
		}
	}
	return skills
}

// ResolveSkill maps one skill name to its category. Unknown skills land in
// CategoryGeneralProgramming.
func ResolveSkill(name string) Category {
	value := strings.ToLower(strings.TrimSpace(name))
	for _, rule := range skillRules {
		if rule.match(value) {
			return rule.category
		}
	}
	return CategoryGeneralProgramming
}

// ResolveSkills parses free text and returns the distinct categories in
// first-seen order. It returns nil when the text has no usable token.
func ResolveSkills(text string) []Category {
	return resolveNames(ParseSkills(text))
}

func resolveNames(names []string) []Category {
	if len(names) == 0 {
		return nil
	}

	seen := make(map[Category]struct{}, len(names))
	categories := make([]Category, 0, len(names))
	for _, name := range names {
		c := ResolveSkill(name)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	return categories
}
