package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"taskdeck/internal/client"
	"taskdeck/internal/domain"
)

const usage = `usage: taskdeck [-data FILE] [-api URL] COMMAND [args]

commands:
  register EMAIL PASSWORD   create an account and log in
  login EMAIL PASSWORD      log in
  guest                     switch to guest mode (local data only)
  logout                    drop the stored token and guest flag
  mode                      print the active mode
  list                      list tasks
  add TITLE                 add a task (-desc, -due, -labels, -priority)
  toggle ID                 flip a task's done flag
  rm ID                     delete a task
  projects                  list projects
  import                    copy local guest data to the server (once)
`

func main() {
	dataPath := flag.String("data", defaultDataPath(), "local data file")
	apiURL := flag.String("api", "http://localhost:8080", "API server base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*dataPath, *apiURL, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskdeck.db"
	}
	return filepath.Join(home, ".taskdeck.db")
}

func run(dataPath, apiURL string, args []string) error {
	session, err := client.Open(dataPath, apiURL)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		if len(rest) != 2 {
			return fmt.Errorf("register needs EMAIL and PASSWORD")
		}
		if err := session.Register(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("registered and logged in as", rest[0])
		return nil

	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("login needs EMAIL and PASSWORD")
		}
		if err := session.Login(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("logged in as", rest[0])
		return nil

	case "guest":
		if err := session.GuestLogin(); err != nil {
			return err
		}
		fmt.Println("guest mode: data stays on this machine")
		return nil

	case "logout":
		if err := session.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "mode":
		fmt.Println(session.Mode())
		return nil

	case "list":
		return listTasks(ctx, session.Store())

	case "add":
		return addTask(ctx, session.Store(), rest)

	case "toggle":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		task, err := session.Store().ToggleTask(ctx, id)
		if err != nil {
			return err
		}
		printTask(task)
		return nil

	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return session.Store().DeleteTask(ctx, id)

	case "projects":
		return listProjects(ctx, session.Store())

	case "import":
		report, err := session.Import(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d tasks, %d projects\n", report.Tasks, report.Projects)
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a task ID")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task ID %q", args[0])
	}
	return id, nil
}

func addTask(ctx context.Context, store client.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	desc := fs.String("desc", "", "description")
	due := fs.String("due", "", "due date")
	labels := fs.String("labels", "", "comma-separated labels")
	priority := fs.String("priority", domain.PriorityMedium, "low, medium or high")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("add needs a TITLE")
	}

	var labelList []string
	for _, l := range strings.Split(*labels, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labelList = append(labelList, l)
		}
	}

	task, err := store.CreateTask(ctx, domain.Task{
		Title:       fs.Arg(0),
		Description: *desc,
		DueDate:     *due,
		Labels:      labelList,
		Priority:    *priority,
	})
	if err != nil {
		return err
	}
	printTask(task)
	return nil
}

func listTasks(ctx context.Context, store client.Store) error {
	tasks, err := store.Tasks(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		printTask(t)
	}
	return nil
}

func printTask(t *domain.Task) {
	mark := " "
	if t.Done {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %d  %s", mark, t.ID, t.Title)
	if t.DueDate != "" {
		line += "  due " + t.DueDate
	}
	if len(t.Labels) > 0 {
		line += "  (" + strings.Join(t.Labels, ", ") + ")"
	}
	fmt.Println(line)
}

func listProjects(ctx context.Context, store client.Store) error {
	projects, err := store.Projects(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		done := 0
		for _, st := range p.Tasks {
			if st.Done {
				done++
			}
		}
		line := fmt.Sprintf("%d  %s  %d/%d tasks", p.ID, p.Name, done, len(p.Tasks))
		if p.Due != "" {
			line += "  due " + p.Due
		}
		fmt.Println(line)
	}
	return nil
}
