package gateway

// Catalog and circulation endpoints. These are thin wrappers; the session
// controller owns the token, callers pass it per request.

import (
	"context"
	"fmt"
	"net/http"

	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
	"github.com/openshelf/biblio-admin/internal/domain/model"
)

// ListBooks returns the full catalog.
func (c *Client) ListBooks(ctx context.Context, token string) ([]model.Book, error) {
	return fetchList[model.Book](ctx, c, token, "/books")
}

// GetBook returns one catalog entry.
func (c *Client) GetBook(ctx context.Context, token string, id int64) (model.Book, error) {
	var book model.Book
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), token, nil, &book)
	return book, err
}

// CreateBook adds a catalog entry.
func (c *Client) CreateBook(ctx context.Context, token string, book model.Book) (model.Book, error) {
	var out model.Book
	err := c.do(ctx, http.MethodPost, "/books", token, book, &out)
	return out, err
}

// UpdateBook replaces a catalog entry.
func (c *Client) UpdateBook(ctx context.Context, token string, id int64, book model.Book) (model.Book, error) {
	var out model.Book
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), token, book, &out)
	return out, err
}

// DeleteBook removes a catalog entry.
func (c *Client) DeleteBook(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), token, nil, nil)
}

// ListAuthors returns all authors. The server pages this endpoint; a large
// page is requested and unwrapped.
func (c *Client) ListAuthors(ctx context.Context, token string) ([]model.Author, error) {
	return fetchList[model.Author](ctx, c, token, "/authors?size=100")
}

// GetAuthor returns one author.
func (c *Client) GetAuthor(ctx context.Context, token string, id int64) (model.Author, error) {
	var author model.Author
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/authors/%d", id), token, nil, &author)
	return author, err
}

// CreateAuthor adds an author.
func (c *Client) CreateAuthor(ctx context.Context, token string, author model.Author) (model.Author, error) {
	var out model.Author
	err := c.do(ctx, http.MethodPost, "/authors", token, author, &out)
	return out, err
}

// UpdateAuthor replaces an author.
func (c *Client) UpdateAuthor(ctx context.Context, token string, id int64, author model.Author) (model.Author, error) {
	var out model.Author
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/authors/%d", id), token, author, &out)
	return out, err
}

// DeleteAuthor removes an author.
func (c *Client) DeleteAuthor(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/authors/%d", id), token, nil, nil)
}

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	return fetchList[model.Category](ctx, c, token, "/categories")
}

// GetCategory returns one category.
func (c *Client) GetCategory(ctx context.Context, token string, id int64) (model.Category, error) {
	var category model.Category
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), token, nil, &category)
	return category, err
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, token string, category model.Category) (model.Category, error) {
	var out model.Category
	err := c.do(ctx, http.MethodPost, "/categories", token, category, &out)
	return out, err
}

// UpdateCategory replaces a category.
func (c *Client) UpdateCategory(ctx context.Context, token string, id int64, category model.Category) (model.Category, error) {
	var out model.Category
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), token, category, &out)
	return out, err
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), token, nil, nil)
}

// ListLoans returns all loans.
func (c *Client) ListLoans(ctx context.Context, token string) ([]model.Loan, error) {
	return fetchList[model.Loan](ctx, c, token, "/loans")
}

// GetLoan returns one loan.
func (c *Client) GetLoan(ctx context.Context, token string, id int64) (model.Loan, error) {
	var loan model.Loan
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/loans/%d", id), token, nil, &loan)
	return loan, err
}

// CreateLoan opens a loan.
func (c *Client) CreateLoan(ctx context.Context, token string, loan model.Loan) (model.Loan, error) {
	var out model.Loan
	err := c.do(ctx, http.MethodPost, "/loans", token, loan, &out)
	return out, err
}

// ReturnLoan marks a loan as returned.
func (c *Client) ReturnLoan(ctx context.Context, token string, id int64) (model.Loan, error) {
	var out model.Loan
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/loans/%d/return", id), token, nil, &out)
	return out, err
}

// RenewLoan extends a loan's expected return date.
func (c *Client) RenewLoan(ctx context.Context, token string, id int64) (model.Loan, error) {
	var out model.Loan
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/loans/%d/renew", id), token, nil, &out)
	return out, err
}

// DeleteLoan removes a loan record.
func (c *Client) DeleteLoan(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/loans/%d", id), token, nil, nil)
}

// ListUsers returns all user accounts.
func (c *Client) ListUsers(ctx context.Context, token string) ([]domainauth.UserProfile, error) {
	return fetchList[domainauth.UserProfile](ctx, c, token, "/users")
}

// GetUser returns one user account.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (domainauth.UserProfile, error) {
	var user domainauth.UserProfile
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), token, nil, &user)
	return user, err
}

// CreateUser adds a user account.
func (c *Client) CreateUser(ctx context.Context, token string, user domainauth.UserProfile) (domainauth.UserProfile, error) {
	var out domainauth.UserProfile
	err := c.do(ctx, http.MethodPost, "/users", token, user, &out)
	return out, err
}

// UpdateUser replaces a user account.
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, user domainauth.UserProfile) (domainauth.UserProfile, error) {
	var out domainauth.UserProfile
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), token, user, &out)
	return out, err
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil, nil)
}
