package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/apply"
	"github.com/Nihal1l/jobboard-client/internal/callback"
	"github.com/Nihal1l/jobboard-client/internal/domain"
	"github.com/Nihal1l/jobboard-client/internal/infra"
	"github.com/Nihal1l/jobboard-client/internal/payment"
	"github.com/Nihal1l/jobboard-client/internal/plans"
	"github.com/Nihal1l/jobboard-client/internal/session"
	"github.com/Nihal1l/jobboard-client/pkg/format"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: jobboard <command> [flags]

commands:
  login    store an access token (-access, optional -refresh, -email)
  logout   clear the stored session
  jobs     list job postings (-category)
  apply    apply to a job (-job <id>)
  plans    show the premium plan catalog
  upgrade  buy a plan (-plan <id>, -cycle monthly|yearly)`)
	os.Exit(2)
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if len(os.Args) < 2 {
		usage()
	}

	client, err := api.NewClient(api.Options{
		BaseURL:        cfg.APIBaseURL,
		AuthBaseURL:    cfg.AuthAPIBaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		exitWithError(err)
	}
	store := session.NewStore(cfg.SessionFile)

	ctx := context.Background()
	switch os.Args[1] {
	case "login":
		runLogin(store, os.Args[2:])
	case "logout":
		if err := store.Clear(); err != nil {
			exitWithError(err)
		}
		pterm.Success.Println("Logged out.")
	case "jobs":
		runJobs(ctx, client, os.Args[2:])
	case "apply":
		runApply(ctx, client, store, &logger, os.Args[2:])
	case "plans":
		runPlans(ctx, client, cfg, &logger)
	case "upgrade":
		runUpgrade(ctx, cfg, client, store, &logger, os.Args[2:])
	default:
		usage()
	}
}

func runLogin(store *session.Store, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	access := fs.String("access", "", "access token issued at login")
	refresh := fs.String("refresh", "", "refresh token (optional)")
	email := fs.String("email", "", "account email (optional)")
	_ = fs.Parse(args)

	if strings.TrimSpace(*access) == "" {
		exitWithError(errors.New("-access is required"))
	}
	sess := &session.Session{Access: *access, Refresh: *refresh}
	if *email != "" {
		sess.User = &session.Profile{Email: *email}
	}
	if err := store.Save(sess); err != nil {
		exitWithError(err)
	}
	pterm.Success.Println("Session saved.")
}

func runJobs(ctx context.Context, client *api.Client, args []string) {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	_ = fs.Parse(args)

	jobs, err := client.ListJobs(ctx, *category)
	if err != nil {
		pterm.Error.Println("Failed to load jobs. Please try again later.")
		os.Exit(1)
	}
	if len(jobs) == 0 {
		pterm.Info.Println("No jobs found at the moment. Check back later!")
		return
	}

	rows := pterm.TableData{{"ID", "Title", "Company", "Location", "Category", "Posted"}}
	for _, j := range jobs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", j.ID),
			j.Title,
			j.CompanyName,
			j.Location,
			j.Category,
			format.Posted(j.CreatedAt),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func runApply(ctx context.Context, client *api.Client, store *session.Store, logger *infra.Logger, args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	jobID := fs.Int64("job", 0, "job id to apply to")
	_ = fs.Parse(args)
	if *jobID <= 0 {
		exitWithError(errors.New("-job is required"))
	}

	sess, err := store.Load()
	if err != nil {
		exitWithError(err)
	}
	controller := apply.NewController(client, logger)
	if err := controller.Apply(ctx, sess, *jobID); err != nil {
		pterm.Error.Println(controller.Error(*jobID))
		os.Exit(1)
	}
	pterm.Success.Println("Applied Successfully")
}

func runPlans(ctx context.Context, client *api.Client, cfg *infra.Config, logger *infra.Logger) {
	loader := plans.NewLoader(client, logger)
	catalog, err := loader.Load(ctx)
	if err != nil {
		pterm.Error.Println("Unable to load pricing plans. Please check your connection or try again later.")
		os.Exit(1)
	}
	if len(catalog) == 0 {
		pterm.Info.Println("No plans available. Please check back later.")
		return
	}

	rows := pterm.TableData{{"", "Plan", "Monthly", "Yearly", "Saves", "Features"}}
	for _, p := range catalog {
		name := p.Name
		if p.Recommended {
			name += " ★"
		}
		rows = append(rows, []string{
			p.Glyph,
			name,
			format.Money(p.MonthlyPrice, cfg.Currency),
			format.Money(p.YearlyPrice, cfg.Currency),
			format.Money(p.YearlySavings(), cfg.Currency),
			strings.Join(p.Features, "; "),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func runUpgrade(ctx context.Context, cfg *infra.Config, client *api.Client, store *session.Store, logger *infra.Logger, args []string) {
	fs := flag.NewFlagSet("upgrade", flag.ExitOnError)
	planID := fs.Int64("plan", 0, "plan id to purchase")
	cycle := fs.String("cycle", "monthly", "billing cycle (monthly or yearly)")
	_ = fs.Parse(args)
	if *planID <= 0 {
		exitWithError(errors.New("-plan is required"))
	}

	sess, err := store.Load()
	if err != nil {
		exitWithError(err)
	}

	loader := plans.NewLoader(client, logger)
	catalog, err := loader.Load(ctx)
	if err != nil {
		pterm.Error.Println("Unable to load pricing plans. Please check your connection or try again later.")
		os.Exit(1)
	}
	var chosen *domain.Plan
	for i := range catalog {
		if catalog[i].ID == *planID {
			chosen = &catalog[i]
			break
		}
	}
	if chosen == nil {
		exitWithError(fmt.Errorf("plan %d not found in the catalog", *planID))
	}

	initiator := payment.NewInitiator(client, cfg.Currency, logger)
	redirectURL, err := initiator.Initiate(ctx, sess, *chosen, domain.BillingCycle(*cycle))
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			pterm.Error.Println("Authentication Error: Please log in again to continue.")
		} else {
			pterm.Error.Println(err.Error())
		}
		os.Exit(1)
	}

	reconciler := payment.NewReconciler(payment.ReconcilerOptions{
		API:    client,
		Logger: logger,
		OnSlow: func(time.Duration) {
			pterm.Warning.Println("Thinking longer than usual... This can happen if the network is slow.")
		},
	})
	notifier := payment.NewNotifier(client, logger)
	handlers := callback.NewHandlers(reconciler, notifier, sess, logger)

	terminal := make(chan payment.State, 1)
	handlers.OnTerminal = func(state payment.State) {
		select {
		case terminal <- state:
		default:
		}
	}

	server := infra.NewHTTPServer(cfg, callback.NewRouter(handlers, *logger))
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("callback server failed")
		}
	}()

	pterm.Info.Printfln("Complete the payment in your browser:\n\n    %s\n", redirectURL)
	pterm.Info.Printfln("Waiting for the gateway to redirect to http://localhost:%s/payment/success ...", cfg.CallbackPort)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case state := <-terminal:
		reportOutcome(state, reconciler)
	case <-stop:
		pterm.Warning.Println("Interrupted before the gateway redirected back.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown callback server")
	}
}

func reportOutcome(state payment.State, reconciler *payment.Reconciler) {
	switch state {
	case payment.StateConfirmed:
		pterm.Success.Println(reconciler.Message())
		if summary := reconciler.Summary(); summary != nil {
			pterm.Info.Printfln("Ref ID: %s", summary.TransactionID)
			pterm.Info.Printfln("Subscription: %s", format.Title(summary.PlanName))
			pterm.Info.Printfln("Amount Paid: %s", summary.Amount)
		}
	case payment.StateAuthRequired, payment.StateVerificationFailed, payment.StateNoTransactionFound:
		pterm.Error.Println(reconciler.Message())
	default:
		pterm.Info.Println("Payment flow finished without a confirmed transaction.")
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
