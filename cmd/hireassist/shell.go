package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/hiring-assistant/internal/ingestion"
	"github.com/jonathan/hiring-assistant/internal/session"
	"github.com/jonathan/hiring-assistant/internal/workspace"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

// shellCommand is one REPL verb. Workspace verbs are hidden until a session exists.
type shellCommand struct {
	usage     string
	help      string
	workspace bool
	run       func(args []string) error
}

type shell struct {
	app      *app
	cmd      *cobra.Command
	commands map[string]shellCommand
}

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive hiring workspace",
		Long:  "Start an interactive session with the login form and, once authenticated, the job description, resume queue and results.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			return newShell(a, cmd).run()
		},
	}
}

func newShell(a *app, cmd *cobra.Command) *shell {
	s := &shell{app: a, cmd: cmd}
	s.commands = map[string]shellCommand{
		"login":    {usage: "login [email]", help: "Log in with email and password", run: s.login},
		"register": {usage: "register [email]", help: "Create an account", run: s.register},
		"toggle":   {usage: "toggle", help: "Switch the form between login and register", run: s.toggle},
		"help":     {usage: "help", help: "List commands", run: s.help},
		"quit":     {usage: "quit", help: "Leave the shell", run: func([]string) error { return errQuit }},

		"whoami":  {usage: "whoami", help: "Show the session", workspace: true, run: s.whoami},
		"jd":      {usage: "jd <text>", help: "Set the job description text", workspace: true, run: s.setJD},
		"jd-file": {usage: "jd-file <path>", help: "Load the job description from a file", workspace: true, run: s.jdFile},
		"jd-url":  {usage: "jd-url <url>", help: "Load the job description from a posting URL", workspace: true, run: s.jdURL},
		"blur":    {usage: "blur", help: "Extract skills from the job description", workspace: true, run: s.blur},
		"skills":  {usage: "skills", help: "Show extracted skills", workspace: true, run: s.skills},
		"add":     {usage: "add <file>...", help: "Queue resumes as picked files", workspace: true, run: s.add},
		"drop":    {usage: "drop <path>...", help: "Queue resumes as a drop", workspace: true, run: s.drop},
		"queue":   {usage: "queue", help: "Show queued resumes", workspace: true, run: s.queue},
		"clear":   {usage: "clear", help: "Empty the queue", workspace: true, run: s.clear},
		"upload":  {usage: "upload", help: "Analyze the queued resumes", workspace: true, run: s.upload},
		"results": {usage: "results", help: "Show analyzed resumes", workspace: true, run: s.results},
		"show":    {usage: "show <n>", help: "Open the analysis of result n", workspace: true, run: s.show},
		"close":   {usage: "close", help: "Close the analysis view", workspace: true, run: s.closeView},
		"logout":  {usage: "logout", help: "End the session", workspace: true, run: s.logout},
	}

	a.session.OnChange(func(state session.State) {
		if state == session.Unauthenticated {
			a.workspace.Reset()
		}
		_, _ = fmt.Fprintf(a.out, "-- %s --\n", viewName(state))
	})
	return s
}

func viewName(state session.State) string {
	if state == session.Authenticated {
		return "workspace"
	}
	return "login"
}

func (s *shell) run() error {
	a := s.app
	_, _ = fmt.Fprintf(a.out, "hireassist shell (%s). Type 'help' for commands.\n", a.client.BaseURL())
	_, _ = fmt.Fprintf(a.out, "-- %s --\n", viewName(a.session.State()))

	for {
		line, err := a.prompt(s.promptLabel())
		if err != nil {
			if errors.Is(err, io.EOF) {
				_, _ = fmt.Fprintln(a.out)
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := s.dispatch(fields[0], fields[1:]); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			_, _ = fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

func (s *shell) promptLabel() string {
	if cur := s.app.session.Current(); cur != nil {
		return cur.Name + "> "
	}
	return s.app.auth.Mode().String() + "> "
}

func (s *shell) dispatch(name string, args []string) error {
	c, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if c.workspace && s.app.session.State() != session.Authenticated {
		return fmt.Errorf("%q needs a session: %w", name, workspace.ErrNotAuthenticated)
	}
	return c.run(args)
}

func (s *shell) help([]string) error {
	names := make([]string, 0, len(s.commands))
	for name, c := range s.commands {
		if c.workspace && s.app.session.State() != session.Authenticated {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := s.commands[name]
		_, _ = fmt.Fprintf(s.app.out, "  %-18s %s\n", c.usage, c.help)
	}
	return nil
}

func (s *shell) login(args []string) error {
	return s.submit(workspace.ModeLogin, args)
}

func (s *shell) register(args []string) error {
	return s.submit(workspace.ModeRegister, args)
}

func (s *shell) toggle([]string) error {
	s.app.auth.Toggle()
	_, _ = fmt.Fprintf(s.app.out, "Form mode: %s\n", s.app.auth.Mode())
	return nil
}

func (s *shell) submit(mode workspace.Mode, args []string) error {
	a := s.app
	if a.session.State() == session.Authenticated {
		return fmt.Errorf("already logged in; logout first")
	}

	var creds workspace.Credentials
	var err error
	if len(args) > 0 {
		creds.Email = args[0]
	} else if creds.Email, err = a.prompt("Email: "); err != nil {
		return err
	}
	if mode == workspace.ModeRegister {
		if creds.Name, err = a.prompt("Name: "); err != nil {
			return err
		}
	}
	return a.submitAuth(s.cmd, mode, creds)
}

func (s *shell) whoami([]string) error {
	return s.app.printWhoami(time.Now())
}

func (s *shell) setJD(args []string) error {
	text := strings.Join(args, " ")
	s.app.workspace.SetJobDescription(ingestion.FromText(text).Text)
	_, _ = fmt.Fprintf(s.app.out, "Job description set (%d chars)\n", len(s.app.workspace.JobDescription()))
	return nil
}

func (s *shell) jdFile(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: jd-file <path>")
	}
	return s.loadJD(jdFlags{file: args[0]})
}

func (s *shell) jdURL(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: jd-url <url>")
	}
	return s.loadJD(jdFlags{url: args[0]})
}

func (s *shell) loadJD(f jdFlags) error {
	desc, err := f.load(s.cmd, s.app)
	if err != nil {
		return err
	}
	s.app.workspace.SetJobDescription(desc.Text)
	_, _ = fmt.Fprintf(s.app.out, "Job description loaded (%d chars)\n", len(desc.Text))
	return nil
}

func (s *shell) blur([]string) error {
	w := s.app.workspace
	if err := w.Blur(s.cmd.Context()); err != nil {
		return err
	}
	if err := w.Skills.LastError(); err != nil {
		_, _ = fmt.Fprintf(s.app.out, "skill extraction failed: %v\n", err)
	}
	return s.skills(nil)
}

func (s *shell) skills([]string) error {
	w := s.app.workspace
	s.app.printer.PrintSkills(w.Skills.Skills(), w.Skills.Extracting())
	return nil
}

func (s *shell) add(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add <file>...")
	}
	s.app.queueFiles(args, nil)
	return s.queue(nil)
}

func (s *shell) drop(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: drop <path>...")
	}
	s.app.queueFiles(nil, args)
	return s.queue(nil)
}

func (s *shell) queue([]string) error {
	q := s.app.workspace.Queue
	s.app.printer.PrintQueue(q.Files(), q.Dragging())
	return nil
}

func (s *shell) clear([]string) error {
	s.app.workspace.Queue.Clear()
	return s.queue(nil)
}

func (s *shell) upload([]string) error {
	if err := s.app.upload(s.cmd); err != nil && !errors.Is(err, workspace.ErrNoFiles) {
		return err
	}
	return s.results(nil)
}

func (s *shell) results([]string) error {
	w := s.app.workspace
	s.app.printer.PrintResults(w.Results.All(), w.Uploading())
	return nil
}

func (s *shell) show(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid result number %q", args[0])
	}
	return s.app.showResult(n)
}

func (s *shell) closeView([]string) error {
	s.app.workspace.Results.Close()
	return nil
}

func (s *shell) logout([]string) error {
	return s.app.session.Logout()
}
