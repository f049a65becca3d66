package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

// GetAbout fetches the primary about record. The backend may answer with a
// bare object or a list; the shape is preserved in the returned Resource.
func (c *Client) GetAbout(ctx context.Context) (portfolio.Resource[portfolio.About], error) {
	return c.getAboutResource(ctx, "get about", "/about/primary")
}

// ListAbout fetches every about record.
func (c *Client) ListAbout(ctx context.Context) (portfolio.Resource[portfolio.About], error) {
	return c.getAboutResource(ctx, "list about", "/about")
}

// GetAboutByID fetches one about record.
func (c *Client) GetAboutByID(ctx context.Context, id string) (portfolio.About, error) {
	var about portfolio.About
	err := c.getJSON(ctx, "get about by id", "/about/"+url.PathEscape(id), &about)
	return about, err
}

func (c *Client) getAboutResource(ctx context.Context, op, path string) (portfolio.Resource[portfolio.About], error) {
	body, err := c.get(ctx, op, path)
	if err != nil {
		return portfolio.Resource[portfolio.About]{}, err
	}
	res, err := portfolio.DecodeResource[portfolio.About](body)
	if err != nil {
		return portfolio.Resource[portfolio.About]{}, folioerrors.NewTransportError(op, 0, fmt.Errorf("decoding response: %w", err))
	}
	return res, nil
}

// GetSkills fetches every skill.
func (c *Client) GetSkills(ctx context.Context) ([]portfolio.Skill, error) {
	var skills []portfolio.Skill
	err := c.getJSON(ctx, "get skills", "/skills", &skills)
	return skills, err
}

// GetSkillsByCategory fetches the skills of one category.
func (c *Client) GetSkillsByCategory(ctx context.Context, category string) ([]portfolio.Skill, error) {
	var skills []portfolio.Skill
	err := c.getJSON(ctx, "get skills by category", "/skills/category/"+url.PathEscape(category), &skills)
	return skills, err
}

// GetProjects fetches every project.
func (c *Client) GetProjects(ctx context.Context) ([]portfolio.Project, error) {
	var projects []portfolio.Project
	err := c.getJSON(ctx, "get projects", "/projects", &projects)
	return projects, err
}

// GetFeaturedProjects fetches the featured projects.
func (c *Client) GetFeaturedProjects(ctx context.Context) ([]portfolio.Project, error) {
	var projects []portfolio.Project
	err := c.getJSON(ctx, "get featured projects", "/projects/featured", &projects)
	return projects, err
}

// GetProjectsByCategory fetches the projects of one category.
func (c *Client) GetProjectsByCategory(ctx context.Context, category string) ([]portfolio.Project, error) {
	var projects []portfolio.Project
	err := c.getJSON(ctx, "get projects by category", "/projects/category/"+url.PathEscape(category), &projects)
	return projects, err
}

// GetExperience fetches the career timeline.
func (c *Client) GetExperience(ctx context.Context) ([]portfolio.Experience, error) {
	var experience []portfolio.Experience
	err := c.getJSON(ctx, "get experience", "/experience", &experience)
	return experience, err
}
