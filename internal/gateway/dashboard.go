package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openshelf/biblio-admin/internal/domain/model"
)

// Dashboard returns the aggregate statistics shown on the admin landing page.
func (c *Client) Dashboard(ctx context.Context, token string) (model.DashboardData, error) {
	var out model.DashboardData
	err := c.do(ctx, http.MethodGet, "/dashboard", token, nil, &out)
	return out, err
}

// MostBorrowedCategories returns the category popularity summary.
func (c *Client) MostBorrowedCategories(ctx context.Context, token string) ([]model.CategoryStatistics, error) {
	return fetchList[model.CategoryStatistics](ctx, c, token, "/dashboard/categories")
}

// RecentActivities returns the latest circulation events, newest first.
func (c *Client) RecentActivities(ctx context.Context, token string, limit int) ([]model.RecentActivity, error) {
	if limit <= 0 {
		limit = 5
	}
	return fetchList[model.RecentActivity](ctx, c, token, fmt.Sprintf("/dashboard/activities?limit=%d", limit))
}
