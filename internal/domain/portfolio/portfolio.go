// Package portfolio holds the read-only content records served by the
// portfolio backend.
package portfolio

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// About is the owner's biographical record.
type About struct {
	ID           string `json:"id,omitempty" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Title        string `json:"title" yaml:"title"`
	Bio          string `json:"bio" yaml:"bio"`
	Email        string `json:"email,omitempty" yaml:"email"`
	Phone        string `json:"phone,omitempty" yaml:"phone"`
	Location     string `json:"location,omitempty" yaml:"location"`
	GithubURL    string `json:"githubUrl,omitempty" yaml:"githubUrl"`
	LinkedinURL  string `json:"linkedinUrl,omitempty" yaml:"linkedinUrl"`
	Tagline      string `json:"tagline,omitempty" yaml:"tagline"`
	Expertise    string `json:"expertise,omitempty" yaml:"expertise"`
	CurrentFocus string `json:"currentFocus,omitempty" yaml:"currentFocus"`
	Availability string `json:"availability,omitempty" yaml:"availability"`
	ResumeURL    string `json:"resumeUrl,omitempty" yaml:"resumeUrl"`
}

// ExpertiseItems splits the bullet-separated expertise text into entries.
func (a About) ExpertiseItems() []string {
	return splitNonEmpty(a.Expertise, "•")
}

// Skill is a single technology with a proficiency percentage.
type Skill struct {
	ID          string `json:"id,omitempty" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Proficiency int    `json:"proficiency" yaml:"proficiency"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
	Color       string `json:"color,omitempty" yaml:"color"`
}

// Project is a portfolio entry.
type Project struct {
	ID            string     `json:"id,omitempty" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description" yaml:"description"`
	Category      string     `json:"category,omitempty" yaml:"category"`
	Technologies  StringList `json:"technologies,omitempty" yaml:"technologies"`
	Featured      bool       `json:"featured,omitempty" yaml:"featured"`
	GithubLink    string     `json:"githubLink,omitempty" yaml:"githubLink"`
	LiveLink      string     `json:"liveLink,omitempty" yaml:"liveLink"`
	ImageURL      string     `json:"imageUrl,omitempty" yaml:"imageUrl"`
	CompletedDate string     `json:"completedDate,omitempty" yaml:"completedDate"`
	Highlights    StringList `json:"highlights,omitempty" yaml:"highlights"`
}

// Experience is one position on the career timeline.
type Experience struct {
	ID           string     `json:"id,omitempty" yaml:"id"`
	Company      string     `json:"company" yaml:"company"`
	Position     string     `json:"position" yaml:"position"`
	Location     string     `json:"location,omitempty" yaml:"location"`
	StartDate    string     `json:"startDate,omitempty" yaml:"startDate"`
	EndDate      string     `json:"endDate,omitempty" yaml:"endDate"`
	Current      bool       `json:"current,omitempty" yaml:"current"`
	Duration     string     `json:"duration,omitempty" yaml:"duration"`
	Description  string     `json:"description,omitempty" yaml:"description"`
	Achievements StringList `json:"achievements,omitempty" yaml:"achievements"`
}

// Period renders the date range, preferring the backend's own duration text.
func (e Experience) Period() string {
	if e.Duration != "" {
		return e.Duration
	}
	end := e.EndDate
	if e.Current || end == "" {
		end = "Present"
	}
	if e.StartDate == "" {
		return end
	}
	return e.StartDate + " - " + end
}

// StringList decodes either a JSON array of strings or a single
// comma-separated string. The backend uses both shapes for technologies.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decode string list: %w", err)
		}
		*l = items
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	*l = splitNonEmpty(joined, ",")
	return nil
}

// String joins the entries for display.
func (l StringList) String() string {
	return strings.Join(l, ", ")
}

// SkillGroup is one category of skills in display order.
type SkillGroup struct {
	Category string
	Skills   []Skill
}

// GroupSkills buckets skills by category. Categories keep first-seen order and
// skills inside a category are sorted by descending proficiency.
func GroupSkills(skills []Skill) []SkillGroup {
	index := make(map[string]int)
	groups := make([]SkillGroup, 0)
	for _, skill := range skills {
		category := skill.Category
		if category == "" {
			category = "Other"
		}
		pos, ok := index[category]
		if !ok {
			pos = len(groups)
			index[category] = pos
			groups = append(groups, SkillGroup{Category: category})
		}
		groups[pos].Skills = append(groups[pos].Skills, skill)
	}
	for i := range groups {
		sort.SliceStable(groups[i].Skills, func(a, b int) bool {
			return groups[i].Skills[a].Proficiency > groups[i].Skills[b].Proficiency
		})
	}
	return groups
}

// AllCategories is the filter value that matches every project.
const AllCategories = "All"

// ProjectCategories lists AllCategories followed by each distinct project
// category in first-seen order.
func ProjectCategories(projects []Project) []string {
	seen := map[string]bool{}
	categories := []string{AllCategories}
	for _, p := range projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// FilterProjects returns the projects in category, or all of them for
// AllCategories or an empty category.
func FilterProjects(projects []Project, category string) []Project {
	if category == "" || category == AllCategories {
		return projects
	}
	filtered := make([]Project, 0, len(projects))
	for _, p := range projects {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Owner identifies the person the portfolio belongs to. It comes from
// configuration and backs every place the UI needs a name before content
// has loaded.
type Owner struct {
	Name     string
	FullName string
	Title    string
	Email    string
	Phone    string
	Location string
	Roles    []string
}

// DisplayName prefers the full name.
func (o Owner) DisplayName() string {
	if o.FullName != "" {
		return o.FullName
	}
	return o.Name
}
