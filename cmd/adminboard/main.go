package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"github.com/Nihal1l/jobboard-client/internal/admin"
	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/domain"
	"github.com/Nihal1l/jobboard-client/internal/infra"
	"github.com/Nihal1l/jobboard-client/internal/session"
	"github.com/Nihal1l/jobboard-client/pkg/format"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: adminboard <command> [flags]

commands:
  refresh        aggregate users, jobs, applications and reviews
  create-job     post a job (-title, -company, -category, -location, -description, -requirements)
  update-job     edit a job (-job plus the same fields)
  delete-job     remove a job and everything attached to it (-job)
  set-status     move an application (-job, -app, -status)
  delete-review  remove a review (-job, -review)
  delete-user    remove an account (-user)`)
	os.Exit(2)
}

// console carries the pieces every subcommand needs.
type console struct {
	client *api.Client
	sess   *session.Session
	logger *infra.Logger
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

	sess, err := session.NewStore(cfg.SessionFile).Load()
	if err != nil {
		exitWithError(err)
	}
	if !sess.Valid() {
		exitWithError(errors.New("no session; run `jobboard login` first"))
	}

	c := &console{client: client, sess: sess, logger: &logger}
	ctx := context.Background()

	switch os.Args[1] {
	case "refresh":
		state := c.refresh(ctx)
		printStats(state.Stats)
	case "create-job":
		c.createJob(ctx, os.Args[2:])
	case "update-job":
		c.updateJob(ctx, os.Args[2:])
	case "delete-job":
		c.deleteJob(ctx, os.Args[2:])
	case "set-status":
		c.setStatus(ctx, os.Args[2:])
	case "delete-review":
		c.deleteReview(ctx, os.Args[2:])
	case "delete-user":
		c.deleteUser(ctx, os.Args[2:])
	default:
		usage()
	}
}

// refresh performs the full aggregation with a progress bar over the
// per-job fan-out.
func (c *console) refresh(ctx context.Context) admin.State {
	aggregator := admin.NewAggregator(c.client, c.logger)

	var bar *pb.ProgressBar
	aggregator.Progress = func(done, total int) {
		if bar == nil {
			bar = pb.StartNew(total)
		}
		bar.SetCurrent(int64(done))
		if done == total {
			bar.Finish()
		}
	}

	state, err := aggregator.RefreshAll(ctx, c.sess)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			exitWithError(errors.New("session expired; run `jobboard login` again"))
		}
		exitWithError(err)
	}
	return state
}

func jobFormFlags(fs *flag.FlagSet) *api.JobForm {
	form := &api.JobForm{}
	fs.StringVar(&form.Title, "title", "", "job title")
	fs.StringVar(&form.CompanyName, "company", "", "company name")
	fs.StringVar(&form.Category, "category", "", "job category")
	fs.StringVar(&form.Location, "location", "", "job location")
	fs.StringVar(&form.Description, "description", "", "job description")
	fs.StringVar(&form.Requirements, "requirements", "", "job requirements")
	return form
}

func (c *console) createJob(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("create-job", flag.ExitOnError)
	form := jobFormFlags(fs)
	_ = fs.Parse(args)
	if strings.TrimSpace(form.Title) == "" {
		exitWithError(errors.New("-title is required"))
	}

	state := c.refresh(ctx)
	job, err := c.client.CreateJob(ctx, c.sess.Token(), *form)
	if err != nil {
		pterm.Error.Println("Failed to create job. Please try again.")
		os.Exit(1)
	}
	state = admin.Apply(state, admin.CreateJob{Job: job})
	pterm.Success.Printfln("Job created successfully! (id %d)", job.ID)
	printStats(state.Stats)
}

func (c *console) updateJob(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("update-job", flag.ExitOnError)
	jobID := fs.Int64("job", 0, "job id to edit")
	form := jobFormFlags(fs)
	_ = fs.Parse(args)
	if *jobID <= 0 {
		exitWithError(errors.New("-job is required"))
	}

	state := c.refresh(ctx)
	job, err := c.client.UpdateJob(ctx, c.sess.Token(), *jobID, *form)
	if err != nil {
		pterm.Error.Println("Failed to update job. Please try again.")
		os.Exit(1)
	}
	state = admin.Apply(state, admin.UpdateJob{Job: job})
	pterm.Success.Println("Job updated successfully!")
	printStats(state.Stats)
}

func (c *console) deleteJob(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("delete-job", flag.ExitOnError)
	jobID := fs.Int64("job", 0, "job id to delete")
	_ = fs.Parse(args)
	if *jobID <= 0 {
		exitWithError(errors.New("-job is required"))
	}

	state := c.refresh(ctx)
	if err := c.client.DeleteJob(ctx, c.sess.Token(), *jobID); err != nil {
		pterm.Error.Println("Failed to delete job.")
		os.Exit(1)
	}
	state = admin.Apply(state, admin.DeleteJob{JobID: *jobID})
	pterm.Success.Println("Job deleted successfully!")
	printStats(state.Stats)
}

func (c *console) setStatus(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("set-status", flag.ExitOnError)
	jobID := fs.Int64("job", 0, "job the application belongs to")
	appID := fs.Int64("app", 0, "application id")
	status := fs.String("status", "", "new status (applied, pending, interview, accepted, rejected)")
	_ = fs.Parse(args)
	if *jobID <= 0 || *appID <= 0 || *status == "" {
		exitWithError(errors.New("-job, -app and -status are required"))
	}

	state := c.refresh(ctx)
	newStatus := domain.ApplicationStatus(*status)
	if err := c.client.UpdateApplicationStatus(ctx, c.sess.Token(), *jobID, *appID, newStatus); err != nil {
		pterm.Error.Println("Failed to update application status.")
		os.Exit(1)
	}
	state = admin.Apply(state, admin.SetApplicationStatus{AppID: *appID, Status: newStatus})
	pterm.Success.Println("Application status updated successfully!")
	printStats(state.Stats)
}

func (c *console) deleteReview(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("delete-review", flag.ExitOnError)
	jobID := fs.Int64("job", 0, "job the review belongs to")
	reviewID := fs.Int64("review", 0, "review id")
	_ = fs.Parse(args)
	if *jobID <= 0 || *reviewID <= 0 {
		exitWithError(errors.New("-job and -review are required"))
	}

	state := c.refresh(ctx)
	if err := c.client.DeleteReview(ctx, c.sess.Token(), *jobID, *reviewID); err != nil {
		pterm.Error.Println("Failed to delete review.")
		os.Exit(1)
	}
	state = admin.Apply(state, admin.DeleteReview{ReviewID: *reviewID})
	pterm.Success.Println("Review deleted successfully!")
	printStats(state.Stats)
}

func (c *console) deleteUser(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("delete-user", flag.ExitOnError)
	userID := fs.Int64("user", 0, "user id to delete")
	_ = fs.Parse(args)
	if *userID <= 0 {
		exitWithError(errors.New("-user is required"))
	}

	state := c.refresh(ctx)
	if err := c.client.DeleteUser(ctx, c.sess.Token(), *userID); err != nil {
		pterm.Error.Println("Failed to delete user.")
		os.Exit(1)
	}
	state = admin.Apply(state, admin.DeleteUser{UserID: *userID})
	pterm.Success.Println("User deleted successfully!")
	printStats(state.Stats)
}

func printStats(stats domain.AggregateStats) {
	rows := pterm.TableData{
		{"Users", format.Count(stats.TotalUsers, "user")},
		{"New this month", format.Count(stats.NewUsersThisMonth, "user")},
		{"Jobs", format.Count(stats.TotalJobs, "job")},
		{"Active jobs", format.Count(stats.ActiveJobs, "job")},
		{"Applications", format.Count(stats.TotalApplications, "application")},
		{"Pending", format.Count(stats.PendingApplications, "application")},
		{"Reviews", format.Count(stats.TotalReviews, "review")},
	}
	_ = pterm.DefaultTable.WithData(rows).Render()
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
