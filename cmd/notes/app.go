package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"text/tabwriter"

	"github.com/YouWantToPinch/pincher-notes/internal/client"
)

const usage = `usage: notes <command> [flags]

commands:
  register [-email E] [-role R] <username>
  login <username>
  logout
  whoami
  list [-q QUERY]
  add -title T [-content C] [-category K]
  edit [-title T] [-content C] [-category K] <id>
  rm <id>
  profile [-username U] [-email E] [-new-password]
`

type app struct {
	in          *bufio.Reader
	out         io.Writer
	sessionPath string
	apiURL      string
}

func newApp(in io.Reader, out io.Writer, sessionPath, apiURL string) *app {
	return &app{
		in:          bufio.NewReader(in),
		out:         out,
		sessionPath: sessionPath,
		apiURL:      apiURL,
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errors.New("no command given")
	}
	cmd, rest := args[0], args[1:]

	sess, err := client.LoadSession(a.sessionPath)
	if err != nil {
		return err
	}
	c := a.clientFor(sess)

	switch cmd {
	case "register":
		err = a.register(ctx, c, rest)
	case "login":
		err = a.login(ctx, c, rest)
	case "logout":
		err = a.logout()
	case "whoami":
		err = a.whoami(sess)
	case "list", "ls":
		err = a.list(ctx, c, rest)
	case "add":
		err = a.add(ctx, c, rest)
	case "edit":
		err = a.edit(ctx, c, rest)
	case "rm":
		err = a.remove(ctx, c, rest)
	case "profile":
		err = a.profile(ctx, c, sess, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	return a.explain(err)
}

func (a *app) clientFor(sess client.Session) *client.Client {
	url := a.apiURL
	if url == "" {
		url = sess.APIURL
	}
	return client.New(url, client.WithToken(sess.Token))
}

// explain rewrites client errors into something a person can act on and
// drops a session the server no longer accepts.
func (a *app) explain(err error) error {
	if errors.Is(err, client.ErrAuthRequired) {
		return errors.New("not logged in; run `notes login <username>`")
	}
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	slog.Debug("api error", slog.String("code", apiErr.Code), slog.Int("status", apiErr.Status))
	switch {
	case apiErr.Status == http.StatusUnauthorized:
		if cerr := client.ClearSession(a.sessionPath); cerr != nil {
			slog.Warn("could not clear session", slog.Any("error", cerr))
		}
		return fmt.Errorf("session expired, log in again (%s)", apiErr.Message)
	case apiErr.Code == client.CodeNetwork:
		return fmt.Errorf("cannot reach %s: is the server running?", a.apiURLOrDefault())
	case apiErr.Code == client.CodeTimeout:
		return errors.New("the server took too long to answer")
	default:
		return fmt.Errorf("%s [%s]", apiErr.Message, apiErr.Code)
	}
}

func (a *app) apiURLOrDefault() string {
	if a.apiURL != "" {
		return a.apiURL
	}
	return client.DefaultBaseURL
}

func (a *app) saveLogin(c *client.Client, res client.AuthResult) error {
	return client.SaveSession(a.sessionPath, client.Session{
		Token:    res.Token,
		Username: res.Username,
		APIURL:   c.BaseURL(),
	})
}

func oneArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one %s", fs.Name(), what)
	}
	return fs.Arg(0), nil
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) register(ctx context.Context, c *client.Client, args []string) error {
	fs := a.newFlagSet("register")
	email := fs.String("email", "", "email address")
	role := fs.String("role", "", "admin or user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	username, err := oneArg(fs, "username")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		return err
	}
	res, err := c.Register(ctx, client.RegisterInput{
		Username: username,
		Password: password,
		Email:    *email,
		Role:     *role,
	})
	if err != nil {
		return err
	}
	if err := a.saveLogin(c, res); err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Message)
	return nil
}

func (a *app) login(ctx context.Context, c *client.Client, args []string) error {
	fs := a.newFlagSet("login")
	if err := fs.Parse(args); err != nil {
		return err
	}
	username, err := oneArg(fs, "username")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		return err
	}
	res, err := c.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.saveLogin(c, res); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", res.Username)
	return nil
}

func (a *app) logout() error {
	if err := client.ClearSession(a.sessionPath); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) whoami(sess client.Session) error {
	if !sess.LoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintln(a.out, sess.Username)
	return nil
}

func (a *app) list(ctx context.Context, c *client.Client, args []string) error {
	fs := a.newFlagSet("list")
	query := fs.String("q", "", "only notes whose title, content or category contain this text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	notes, err := c.ListNotes(ctx)
	if err != nil {
		return err
	}
	notes = client.FilterNotes(notes, *query)
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Title, n.Category, n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *app) add(ctx context.Context, c *client.Client, args []string) error {
	fs := a.newFlagSet("add")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note body")
	category := fs.String("category", "", "note category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		t, err := promptLine(a.in, a.out, "Title")
		if err != nil {
			return err
		}
		*title = t
	}
	n, err := c.CreateNote(ctx, client.NoteInput{Title: *title, Content: *content, Category: *category})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s\n", n.ID)
	return nil
}

// edit changes only the fields given as flags; the rest keep their
// current values.
func (a *app) edit(ctx context.Context, c *client.Client, args []string) error {
	fs := a.newFlagSet("edit")
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new body")
	category := fs.String("category", "", "new category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := oneArg(fs, "note id")
	if err != nil {
		return err
	}
	current, err := c.GetNote(ctx, id)
	if err != nil {
		return err
	}
	in := client.NoteInput{Title: current.Title, Content: current.Content, Category: current.Category}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			in.Title = *title
		case "content":
			in.Content = *content
		case "category":
			in.Category = *category
		}
	})
	n, err := c.UpdateNote(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s\n", n.ID)
	return nil
}

func (a *app) remove(ctx context.Context, c *client.Client, args []string) error {
	fs := a.newFlagSet("rm")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := oneArg(fs, "note id")
	if err != nil {
		return err
	}
	if err := c.DeleteNote(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note deleted")
	return nil
}

func (a *app) profile(ctx context.Context, c *client.Client, sess client.Session, args []string) error {
	fs := a.newFlagSet("profile")
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email")
	changePassword := fs.Bool("new-password", false, "prompt for a new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !sess.LoggedIn() {
		return client.ErrAuthRequired
	}

	current, err := promptPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	upd := client.ProfileUpdate{Username: *username, Email: *email, CurrentPassword: current}
	if *changePassword {
		if upd.NewPassword, err = promptPassword(a.out, "New password"); err != nil {
			return err
		}
	}

	p, err := c.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	// keep the cached username in step with the server
	sess.Username = p.Username
	if err := client.SaveSession(a.sessionPath, sess); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", p.Username, p.Email)
	return nil
}
