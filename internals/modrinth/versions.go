package modrinth

import (
	"context"
)

// GetVersion returns a single version for a project given a 8 char id (`IIJJKKLL`)
func (c *Client) GetVersion(ctx context.Context, id string) (*Version, error) {
	if id == "" {
		return nil, ErrInvalidVersionID
	}

	res, err := c.get(ctx, c.url("v2/version", id).String())
	if err != nil {
		return nil, err
	}

	var result Version
	if err = decode(res, &result, ErrVersionNotFound); err != nil {
		return nil, err
	}

	return &result, nil
}
