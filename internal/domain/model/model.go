package model

// Package model contains the catalog and circulation types exchanged with the
// library API. These mirror the server's JSON payloads; the client does not
// own them and performs no validation beyond decoding.

import "time"

// Book is a catalog entry.
type Book struct {
	ID                int64    `json:"id"`
	ISBN              string   `json:"isbn"`
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	PublishDate       string   `json:"publishDate,omitempty"`
	Publisher         string   `json:"publisher,omitempty"`
	AvailableQuantity int      `json:"availableQuantity"`
	TotalQuantity     int      `json:"totalQuantity"`
	CategoryID        int64    `json:"categoryId,omitempty"`
	CategoryName      string   `json:"categoryName,omitempty"`
	AuthorIDs         []int64  `json:"authorIds,omitempty"`
	AuthorNames       []string `json:"authorNames,omitempty"`
}

// Author is a book author.
type Author struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Biography string `json:"biography,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// Category is a catalog category.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LoanStatus enumerates the circulation states of a loan.
type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
	LoanOverdue  LoanStatus = "OVERDUE"
)

// Fine is a late-return penalty attached to a loan.
type Fine struct {
	ID      int64   `json:"id"`
	Amount  float64 `json:"amount"`
	Paid    bool    `json:"paid"`
	DueDate string  `json:"dueDate"`
}

// Loan is a circulation record.
type Loan struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"userId"`
	UserName           string     `json:"userName,omitempty"`
	BookID             int64      `json:"bookId"`
	BookTitle          string     `json:"bookTitle,omitempty"`
	LoanDate           string     `json:"loanDate,omitempty"`
	ExpectedReturnDate string     `json:"expectedReturnDate,omitempty"`
	ReturnDate         string     `json:"returnDate,omitempty"`
	Status             LoanStatus `json:"status"`
	Fine               *Fine      `json:"fine,omitempty"`
}

// Page is the server's Spring-style pagination envelope. Some list endpoints
// return it, others return a bare array; the gateway normalizes both.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

// CategoryStatistics is one slice of the most-borrowed-categories summary.
type CategoryStatistics struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// RecentActivity is one row of the dashboard activity feed.
type RecentActivity struct {
	ID           int64     `json:"id"`
	ActivityType string    `json:"activityType"`
	Description  string    `json:"description"`
	Timestamp    time.Time `json:"timestamp"`
	UserName     string    `json:"userName,omitempty"`
	BookTitle    string    `json:"bookTitle,omitempty"`
}

// DashboardData aggregates the statistics shown on the admin dashboard.
type DashboardData struct {
	TotalBooks             int                  `json:"totalBooks"`
	TotalLoans             int                  `json:"totalLoans"`
	ActiveLoans            int                  `json:"activeLoans"`
	OverdueLoans           int                  `json:"overdueLoans"`
	TotalUsers             int                  `json:"totalUsers"`
	MostBorrowedCategories []CategoryStatistics `json:"mostBorrowedCategories"`
	RecentActivities       []RecentActivity     `json:"recentActivities"`
}
