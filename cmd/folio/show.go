package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
	"github.com/rajshekhar/folio/internal/infrastructure/api"
)

var showResources = []string{"about", "skills", "projects", "experience"}

type showOptions struct {
	jsonOutput bool
	category   string
	featured   bool
	all        bool
	id         string
}

func newShowCmd(app *AppContext) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:       "show <about|skills|projects|experience>",
		Short:     "Print one section of the portfolio",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: showResources,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.show")
			client, err := app.APIClient(logger)
			if err != nil {
				return err
			}
			err = runShow(ctx, cmd.OutOrStdout(), client, args[0], opts)
			if err != nil {
				logger.Error(ctx, "show command failed", "resource", args[0], "error", err)
				return newCommandError("show "+args[0], client.BaseURL(), err, backendSuggestion)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.category, "category", "", "Only skills or projects in this category")
	cmd.Flags().BoolVar(&opts.featured, "featured", false, "Only featured projects")
	cmd.Flags().BoolVar(&opts.all, "all", false, "List every about record instead of the primary one")
	cmd.Flags().StringVar(&opts.id, "id", "", "Show the about record with this ID")

	return cmd
}

func runShow(ctx context.Context, out io.Writer, client *api.Client, resource string, opts *showOptions) error {
	if opts.category != "" && resource != "skills" && resource != "projects" {
		return fmt.Errorf("--category applies to skills and projects only")
	}
	if opts.featured && resource != "projects" {
		return fmt.Errorf("--featured applies to projects only")
	}
	if (opts.all || opts.id != "") && resource != "about" {
		return fmt.Errorf("--all and --id apply to about only")
	}

	switch resource {
	case "about":
		records, err := fetchAbout(ctx, client, opts)
		if err != nil {
			return err
		}
		if opts.jsonOutput {
			return writeJSON(out, records)
		}
		renderAbout(out, records)

	case "skills":
		var (
			skills []portfolio.Skill
			err    error
		)
		if opts.category != "" {
			skills, err = client.GetSkillsByCategory(ctx, opts.category)
		} else {
			skills, err = client.GetSkills(ctx)
		}
		if err != nil {
			return err
		}
		if opts.jsonOutput {
			return writeJSON(out, skills)
		}
		renderSkills(out, skills)

	case "projects":
		projects, err := fetchProjects(ctx, client, opts)
		if err != nil {
			return err
		}
		if opts.jsonOutput {
			return writeJSON(out, projects)
		}
		renderProjects(out, projects)

	case "experience":
		experience, err := client.GetExperience(ctx)
		if err != nil {
			return err
		}
		if opts.jsonOutput {
			return writeJSON(out, experience)
		}
		renderExperience(out, experience)
	}
	return nil
}

func fetchAbout(ctx context.Context, client *api.Client, opts *showOptions) ([]portfolio.About, error) {
	if opts.id != "" {
		about, err := client.GetAboutByID(ctx, opts.id)
		if err != nil {
			return nil, err
		}
		return []portfolio.About{about}, nil
	}
	fetch := client.GetAbout
	if opts.all {
		fetch = client.ListAbout
	}
	resource, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	return resource.Items, nil
}

// fetchProjects combines --featured and --category by asking the backend for
// featured projects and filtering the category locally.
func fetchProjects(ctx context.Context, client *api.Client, opts *showOptions) ([]portfolio.Project, error) {
	switch {
	case opts.featured:
		projects, err := client.GetFeaturedProjects(ctx)
		if err != nil {
			return nil, err
		}
		return portfolio.FilterProjects(projects, opts.category), nil
	case opts.category != "":
		return client.GetProjectsByCategory(ctx, opts.category)
	default:
		return client.GetProjects(ctx)
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func renderAbout(out io.Writer, records []portfolio.About) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No about information available yet.")
		return
	}
	for i, a := range records {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s\n%s\n", a.Name, a.Title)
		if a.Tagline != "" {
			fmt.Fprintf(out, "\n%s\n", a.Tagline)
		}
		if a.Bio != "" {
			fmt.Fprintf(out, "\n%s\n", a.Bio)
		}
		if items := a.ExpertiseItems(); len(items) > 0 {
			fmt.Fprintln(out, "\nExpertise:")
			for _, item := range items {
				fmt.Fprintf(out, "  • %s\n", item)
			}
		}
		printField(out, "Focus", a.CurrentFocus)
		printField(out, "Availability", a.Availability)
		printField(out, "Location", a.Location)
		printField(out, "Email", a.Email)
		printField(out, "GitHub", a.GithubURL)
		printField(out, "LinkedIn", a.LinkedinURL)
		printField(out, "Resume", a.ResumeURL)
	}
}

func renderSkills(out io.Writer, skills []portfolio.Skill) {
	if len(skills) == 0 {
		fmt.Fprintln(out, "No skills found.")
		return
	}
	for i, group := range portfolio.GroupSkills(skills) {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, group.Category)
		for _, s := range group.Skills {
			fmt.Fprintf(out, "  %-20s %s %3d%%\n", s.Name, bar(s.Proficiency, 20), s.Proficiency)
		}
	}
}

func renderProjects(out io.Writer, projects []portfolio.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found in this category.")
		return
	}
	for i, p := range projects {
		if i > 0 {
			fmt.Fprintln(out)
		}
		title := p.Title
		if p.Featured {
			title = "★ " + title
		}
		fmt.Fprintln(out, title)
		printField(out, "Category", p.Category)
		if p.Description != "" {
			fmt.Fprintf(out, "  %s\n", p.Description)
		}
		if len(p.Technologies) > 0 {
			printField(out, "Tech", strings.Join(p.Technologies, ", "))
		}
		printField(out, "Code", p.GithubLink)
		printField(out, "Live", p.LiveLink)
	}
}

func renderExperience(out io.Writer, experience []portfolio.Experience) {
	if len(experience) == 0 {
		fmt.Fprintln(out, "No experience entries yet.")
		return
	}
	for i, e := range experience {
		if i > 0 {
			fmt.Fprintln(out)
		}
		period := e.Period()
		if e.Current {
			period += " • Current"
		}
		fmt.Fprintf(out, "%s @ %s\n  %s\n", e.Position, e.Company, period)
		printField(out, "Location", e.Location)
		if e.Description != "" {
			fmt.Fprintf(out, "  %s\n", e.Description)
		}
		for _, a := range e.Achievements {
			fmt.Fprintf(out, "  • %s\n", a)
		}
	}
}

func printField(out io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(out, "  %-13s %s\n", label+":", value)
}

func bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
