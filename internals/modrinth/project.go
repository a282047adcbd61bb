package modrinth

import (
	"context"
)

// GetProject returns a project by its id or slug
func (c *Client) GetProject(ctx context.Context, idOrSlug string) (*Project, error) {
	if idOrSlug == "" {
		return nil, ErrInvalidProjectIDOrSlug
	}

	res, err := c.get(ctx, c.url("v2/project", idOrSlug).String())
	if err != nil {
		return nil, err
	}

	var project Project
	if err = decode(res, &project, ErrProjectNotFound); err != nil {
		return nil, err
	}

	return &project, nil
}
