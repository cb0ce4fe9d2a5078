package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/openshelf/biblio-admin/internal/gateway"
	"github.com/openshelf/biblio-admin/internal/session"
)

func runLoans(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("loans", flag.ContinueOnError)
	returnID := fs.Int64("return", 0, "mark a loan as returned by id")
	renewID := fs.Int64("renew", 0, "renew a loan by id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withAuthedGateway(cmdCtx, func(_ *session.Controller, gw *gateway.Client, token string) error {
		switch {
		case *returnID != 0:
			loan, err := gw.ReturnLoan(cmdCtx.Ctx, token, *returnID)
			if err != nil {
				return fmt.Errorf("return loan %d: %w", *returnID, err)
			}
			return writef(os.Stdout, "loan %d returned (%s)\n", loan.ID, loan.Status)

		case *renewID != 0:
			loan, err := gw.RenewLoan(cmdCtx.Ctx, token, *renewID)
			if err != nil {
				return fmt.Errorf("renew loan %d: %w", *renewID, err)
			}
			return writef(os.Stdout, "loan %d renewed, due %s\n", loan.ID, loan.ExpectedReturnDate)

		default:
			loans, err := gw.ListLoans(cmdCtx.Ctx, token)
			if err != nil {
				return fmt.Errorf("list loans: %w", err)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSER\tBOOK\tSTATUS\tDUE")
			for _, l := range loans {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", l.ID, l.UserName, l.BookTitle, l.Status, l.ExpectedReturnDate)
			}
			return w.Flush()
		}
	})
}

func runUsers(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users", flag.ContinueOnError)
	id := fs.Int64("id", 0, "show one user instead of listing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withAuthedGateway(cmdCtx, func(_ *session.Controller, gw *gateway.Client, token string) error {
		if *id != 0 {
			user, err := gw.GetUser(cmdCtx.Ctx, token, *id)
			if err != nil {
				return fmt.Errorf("get user %d: %w", *id, err)
			}
			return printProfile(&user)
		}

		users, err := gw.ListUsers(cmdCtx.Ctx, token)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
		}
		return w.Flush()
	})
}

func runDashboard(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	activities := fs.Int("activities", 5, "number of recent activities to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withAuthedGateway(cmdCtx, func(_ *session.Controller, gw *gateway.Client, token string) error {
		data, err := gw.Dashboard(cmdCtx.Ctx, token)
		if err != nil {
			return fmt.Errorf("fetch dashboard: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Books\t%d\n", data.TotalBooks)
		fmt.Fprintf(w, "Users\t%d\n", data.TotalUsers)
		fmt.Fprintf(w, "Loans\t%d\n", data.TotalLoans)
		fmt.Fprintf(w, "Active loans\t%d\n", data.ActiveLoans)
		fmt.Fprintf(w, "Overdue loans\t%d\n", data.OverdueLoans)
		if err := w.Flush(); err != nil {
			return err
		}

		recent, err := gw.RecentActivities(cmdCtx.Ctx, token, *activities)
		if err != nil {
			return fmt.Errorf("fetch recent activities: %w", err)
		}
		if len(recent) == 0 {
			return nil
		}

		if err := writef(os.Stdout, "\nRecent activity:\n"); err != nil {
			return err
		}
		aw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, a := range recent {
			fmt.Fprintf(aw, "%s\t%s\t%s\n", a.Timestamp.Format("2006-01-02 15:04"), a.ActivityType, a.Description)
		}
		return aw.Flush()
	})
}
