package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/openshelf/biblio-admin/internal/bootstrap"
	domainauth "github.com/openshelf/biblio-admin/internal/domain/auth"
	"github.com/openshelf/biblio-admin/internal/ports"
	"github.com/openshelf/biblio-admin/internal/session"
)

// openSession builds and starts a session controller over the configured
// credential store, restoring any persisted session.
func openSession(cmdCtx *commandContext) (*session.Controller, error) {
	ctrl, err := bootstrap.BuildSessionController(cmdCtx.Config, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	if startErr := ctrl.Start(cmdCtx.Ctx); startErr != nil {
		ctrl.Close()
		return nil, fmt.Errorf("start session: %w", startErr)
	}
	return ctrl, nil
}

// requireToken returns the session token, or an error telling the caller to
// log in first.
func requireToken(ctrl *session.Controller) (string, error) {
	token := ctrl.Token()
	if token == "" {
		return "", errors.New("not logged in; run 'biblio-admin login' first")
	}
	return token, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login: -email is required")
	}

	if *password == "" {
		pw, err := promptPassword()
		if err != nil {
			return err
		}
		*password = pw
	}

	ctrl, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if loginErr := ctrl.Login(cmdCtx.Ctx, *email, *password); loginErr != nil {
		return fmt.Errorf("login: %w", loginErr)
	}

	return printProfile(ctrl.Snapshot().User)
}

func promptPassword() (string, error) {
	if err := writef(os.Stderr, "Password: "); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	return pw, nil
}

func runLogout(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if logoutErr := ctrl.Logout(cmdCtx.Ctx); logoutErr != nil {
		return fmt.Errorf("logout: %w", logoutErr)
	}
	return writef(os.Stdout, "logged out\n")
}

func runRegister(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "full name (required)")
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (prompted when omitted)")
	role := fs.String("role", string(domainauth.RoleReader), "account role (ADMIN, LIBRARIAN, READER)")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "postal address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		return errors.New("register: -name and -email are required")
	}
	if !domainauth.Role(*role).Valid() {
		return fmt.Errorf("register: invalid role %q", *role)
	}

	if *password == "" {
		pw, err := promptPassword()
		if err != nil {
			return err
		}
		*password = pw
	}

	ctrl, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	in := ports.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Phone:    *phone,
		Address:  *address,
		Role:     domainauth.Role(*role),
	}
	if regErr := ctrl.Register(cmdCtx.Ctx, in); regErr != nil {
		return fmt.Errorf("register: %w", regErr)
	}
	return writef(os.Stdout, "registered %s\n", *email)
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	snap := ctrl.Snapshot()
	if !snap.IsAuthenticated() {
		return errors.New("not logged in")
	}
	return printProfile(snap.User)
}

func printProfile(user *domainauth.UserProfile) error {
	if user == nil {
		return errors.New("no user profile")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%d\n", user.ID)
	fmt.Fprintf(w, "Name\t%s\n", user.Name)
	fmt.Fprintf(w, "Email\t%s\n", user.Email)
	fmt.Fprintf(w, "Role\t%s\n", user.Role)
	if user.Phone != "" {
		fmt.Fprintf(w, "Phone\t%s\n", user.Phone)
	}
	if user.Status != "" {
		fmt.Fprintf(w, "Status\t%s\n", user.Status)
	}
	return w.Flush()
}
