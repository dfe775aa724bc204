package youtrack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// ListProjects returns all projects sorted by name.
func (c *Client) ListProjects(ctx context.Context, token string) ([]domain.ProjectRef, error) {
	q := url.Values{}
	q.Set("fields", "id,name")

	var wire []domain.ProjectRef
	if err := c.do(ctx, token, http.MethodGet, "/admin/projects", q, nil, &wire); err != nil {
		return nil, err
	}
	sort.Slice(wire, func(i, j int) bool { return wire[i].Name < wire[j].Name })
	return wire, nil
}

// GetFieldBundle returns the allowed values of a project custom field.
func (c *Client) GetFieldBundle(ctx context.Context, token, projectID, fieldName string) (*domain.FieldBundle, error) {
	type wireField struct {
		Field struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"field"`
		Bundle struct {
			Values []struct {
				Name string `json:"name"`
			} `json:"values"`
		} `json:"bundle"`
	}

	q := url.Values{}
	q.Set("fields", "field(id,name),bundle(values(name))")

	var wire []wireField
	path := "/admin/projects/" + url.PathEscape(projectID) + "/customFields"
	if err := c.do(ctx, token, http.MethodGet, path, q, nil, &wire); err != nil {
		return nil, err
	}

	for _, w := range wire {
		if w.Field.Name != fieldName {
			continue
		}
		bundle := &domain.FieldBundle{FieldID: w.Field.ID, FieldName: w.Field.Name}
		for _, v := range w.Bundle.Values {
			bundle.Values = append(bundle.Values, v.Name)
		}
		return bundle, nil
	}
	return nil, fmt.Errorf("%w: project has no %q field", domain.ErrNotFound, fieldName)
}
