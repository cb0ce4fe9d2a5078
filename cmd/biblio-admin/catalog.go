package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/openshelf/biblio-admin/internal/bootstrap"
	"github.com/openshelf/biblio-admin/internal/gateway"
	"github.com/openshelf/biblio-admin/internal/session"
)

func bootstrapGateway(cmdCtx *commandContext) (*gateway.Client, error) {
	return bootstrap.BuildGateway(cmdCtx.Config.API, cmdCtx.Logger)
}

// withAuthedGateway opens the session, requires a token, and hands both to fn.
func withAuthedGateway(cmdCtx *commandContext, fn func(ctrl *session.Controller, gw *gateway.Client, token string) error) error {
	ctrl, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	token, err := requireToken(ctrl)
	if err != nil {
		return err
	}

	gw, err := bootstrapGateway(cmdCtx)
	if err != nil {
		return err
	}
	return fn(ctrl, gw, token)
}

func runBooks(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("books", flag.ContinueOnError)
	id := fs.Int64("id", 0, "show one book instead of listing")
	del := fs.Int64("delete", 0, "delete a book by id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withAuthedGateway(cmdCtx, func(_ *session.Controller, gw *gateway.Client, token string) error {
		switch {
		case *del != 0:
			if err := gw.DeleteBook(cmdCtx.Ctx, token, *del); err != nil {
				return fmt.Errorf("delete book %d: %w", *del, err)
			}
			return writef(os.Stdout, "deleted book %d\n", *del)

		case *id != 0:
			book, err := gw.GetBook(cmdCtx.Ctx, token, *id)
			if err != nil {
				return fmt.Errorf("get book %d: %w", *id, err)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%d\n", book.ID)
			fmt.Fprintf(w, "Title\t%s\n", book.Title)
			fmt.Fprintf(w, "ISBN\t%s\n", book.ISBN)
			fmt.Fprintf(w, "Category\t%s\n", book.CategoryName)
			fmt.Fprintf(w, "Authors\t%s\n", strings.Join(book.AuthorNames, ", "))
			fmt.Fprintf(w, "Available\t%d/%d\n", book.AvailableQuantity, book.TotalQuantity)
			return w.Flush()

		default:
			books, err := gw.ListBooks(cmdCtx.Ctx, token)
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tISBN\tAVAILABLE")
			for _, b := range books {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\n", b.ID, b.Title, b.ISBN, b.AvailableQuantity, b.TotalQuantity)
			}
			return w.Flush()
		}
	})
}

func runAuthors(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("authors", flag.ContinueOnError)
	id := fs.Int64("id", 0, "show one author instead of listing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withAuthedGateway(cmdCtx, func(_ *session.Controller, gw *gateway.Client, token string) error {
		if *id != 0 {
			author, err := gw.GetAuthor(cmdCtx.Ctx, token, *id)
			if err != nil {
				return fmt.Errorf("get author %d: %w", *id, err)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%d\n", author.ID)
			fmt.Fprintf(w, "Name\t%s\n", author.Name)
			fmt.Fprintf(w, "Born\t%s\n", author.BirthDate)
			return w.Flush()
		}

		authors, err := gw.ListAuthors(cmdCtx.Ctx, token)
		if err != nil {
			return fmt.Errorf("list authors: %w", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tBORN")
		for _, a := range authors {
			fmt.Fprintf(w, "%d\t%s\t%s\n", a.ID, a.Name, a.BirthDate)
		}
		return w.Flush()
	})
}

func runCategories(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withAuthedGateway(cmdCtx, func(_ *session.Controller, gw *gateway.Client, token string) error {
		categories, err := gw.ListCategories(cmdCtx.Ctx, token)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
		}
		return w.Flush()
	})
}
