package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/config"
	"github.com/taskforge/client-go/internal/repository"
	"github.com/taskforge/client-go/internal/service"
	"github.com/taskforge/client-go/internal/state"
)

func main() {
	log := logrus.New()

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using process environment")
	}

	cfg := config.Load()
	if cfg.AccessToken == "" {
		log.Fatal("TASKFORGE_ACCESS_TOKEN is not set")
	}

	db, err := repository.InitDB(cfg.StateDBPath)
	if err != nil {
		log.WithError(err).Fatal("could not open local store")
	}
	defer db.Close()

	api, err := client.New(cfg.APIBaseURL, cfg.AccessToken, log)
	if err != nil {
		log.WithError(err).Fatal("could not build API client")
	}

	tasks := state.NewTasks(service.NewTaskService(api), log)
	members := state.NewMembers(service.NewMemberService(api), log)
	messages := state.NewMessages(service.NewMessageService(api), log)
	deletions := state.NewDeletions()
	projects := state.NewProjects(service.NewProjectService(api), tasks, members, messages, deletions, log)
	auth := state.NewAuth(service.NewAuthService(api), log)
	toasts := state.NewNotifications(0)
	sessions := repository.NewSessionRepository(db)

	lock := state.NewLock(cfg.AppLocked, cfg.UnlockCode, repository.NewAppLockRepository(db), log)
	if lock.Locked() {
		fmt.Print("Code de déverrouillage : ")
		var code string
		fmt.Scanln(&code)
		if err := lock.Unlock(code); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if auth.Probe(ctx) != state.AuthAuthenticated {
		email := os.Getenv("TASKFORGE_EMAIL")
		password := os.Getenv("TASKFORGE_PASSWORD")
		if email == "" {
			if last, _, ok, err := sessions.Last(); err == nil && ok {
				email = last
			}
		}
		if email == "" || password == "" {
			log.Fatal("no active session and TASKFORGE_EMAIL / TASKFORGE_PASSWORD not set")
		}
		if err := auth.Login(ctx, email, password); err != nil {
			toasts.Error(auth.Err())
			log.Fatal(auth.Err())
		}
		if err := sessions.Remember(email); err != nil {
			log.WithError(err).Warn("could not remember session")
		}
	}

	user := auth.User()
	fmt.Printf("Connecté : %s <%s>\n", user.FullName(), user.Email)
	toasts.Success("Connexion réussie")

	if err := projects.OnAuthChange(ctx, auth.Status()); err != nil {
		log.Fatal(projects.Err())
	}

	fmt.Printf("\nProjets (%d) :\n", len(projects.All()))
	for _, p := range projects.All() {
		fmt.Printf("  [%d] %-30s %-12s %3d%%  fin %s\n",
			p.Id, p.Name, projects.GetStatus(p), projects.GetProgress(p), humanize.Time(p.EndDate))
	}

	if len(os.Args) > 1 {
		id, err := strconv.ParseInt(os.Args[1], 10, 64)
		if err != nil {
			log.Fatalf("invalid project id %q", os.Args[1])
		}
		printProjectDetail(ctx, projects, log, id)
	}
}

func printProjectDetail(ctx context.Context, projects *state.Projects, log *logrus.Logger, id int64) {
	cp, err := projects.LoadComplete(ctx, id)
	if err != nil {
		log.Fatal(projects.Err())
	}

	fmt.Printf("\n%s : %s\n", cp.Project.Name, cp.Project.Description)
	fmt.Printf("  Statut       : %s\n", projects.GetStatus(cp.Project))
	fmt.Printf("  Avancement   : %d%% (%d/%d tâches)\n",
		cp.Stats.ProgressPct, cp.Stats.CompletedTasks, cp.Stats.TotalTasks)
	fmt.Printf("  Membres      : %d\n", cp.Stats.TotalMembers)
	if cp.Stats.Overdue {
		fmt.Printf("  En retard depuis %s\n", humanize.Time(cp.Project.EndDate))
	} else {
		fmt.Printf("  Jours restants : %d\n", cp.Stats.DaysRemaining)
	}

	fmt.Println("\n  Tâches :")
	for _, t := range cp.Tasks {
		fmt.Printf("    [%s] %s (échéance %s)\n", t.Status, t.Title, humanize.Time(t.DueDate))
	}

	fmt.Println("\n  Derniers messages :")
	for _, m := range cp.Messages {
		fmt.Printf("    %s %s: %s\n", humanize.Time(m.SentAt), m.Author.Name, m.Content)
	}
}
