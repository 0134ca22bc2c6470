package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dockify/internal/domain"
	"dockify/internal/presenter"
)

var (
	syncNoLocation bool
	dashboardRetry bool
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the latest readings stored on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		uid, err := currentUserID(cmd)
		if err != nil {
			return err
		}
		res, err := cli.health.Metrics(ctx, uid)
		if err != nil {
			return err
		}
		metrics, ok := res.Data()
		if !ok {
			return errors.New(presenter.UserMessage(res.Err()))
		}
		fmt.Printf("%s\n", cyan("Latest readings"))
		printMetrics(os.Stdout, metrics)
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Read the device and upload its readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		uid, err := currentUserID(cmd)
		if err != nil {
			return err
		}
		types := domain.AllMetricTypes()

		if !cli.health.IsPlatformAvailable(ctx) {
			return errors.New(presenter.UserMessage(cli.health.PlatformUnavailableError()))
		}
		if !cli.health.HasPermissions(ctx, types) {
			res, err := cli.health.RequestPermissions(ctx, types)
			if err != nil {
				return err
			}
			if granted, ok := res.Data(); !ok || !granted {
				return errors.New("health permissions denied")
			}
		}

		var loc *domain.Location
		if !syncNoLocation && cli.location.HasPermission(ctx) {
			if res, err := cli.location.CurrentLocation(ctx); err == nil {
				loc = res.GetOrNil()
			}
		}

		res, err := cli.health.Sync(ctx, uid, types, loc)
		if err != nil {
			return err
		}
		if !res.IsSuccess() {
			return errors.New(presenter.UserMessage(res.Err()))
		}
		fmt.Printf("%s Health data synced successfully\n", green("✓"))
		if loc != nil {
			fmt.Printf("  %s\n", gray("location "+formatLocation(*loc)))
		}
		return nil
	},
}

var recommendationCmd = &cobra.Command{
	Use:   "recommendation",
	Short: "Show a health tip based on your latest readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := cli.recs.Recommendation(cmd.Context())
		if err != nil {
			return err
		}
		rec, ok := res.Data()
		if !ok {
			return errors.New(presenter.UserMessage(res.Err()))
		}
		fmt.Printf("%s\n%s\n", cyan("Recommendation"), rec.Text)
		fmt.Printf("%s\n", gray("as of "+rec.GeneratedAt.Format(time.Kitchen)))
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Sync the device and show today's summary with what is nearby",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		hp := presenter.NewHealthPresenter(cli.health, cli.recs, cli.auth, cli.location, cli.log.Named("dashboard"))
		defer hp.Close()
		np := presenter.NewNearbyPresenter(cli.location, cli.auth, cli.log.Named("nearby"))
		defer np.Close()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := settle(gctx, hp); err != nil {
				return err
			}
			if dashboardRetry && hp.State().BackgroundSyncError != "" {
				hp.Dispatch(presenter.HealthRetryBackgroundSync)
				return settle(gctx, hp)
			}
			return nil
		})
		g.Go(func() error {
			if err := settle(gctx, np); err != nil {
				return err
			}
			if np.State().CurrentLocation != nil {
				np.Dispatch(presenter.NearbyLoadHospitals)
			}
			return settle(gctx, np)
		})
		if err := g.Wait(); err != nil {
			return err
		}

		printDashboard(hp.State(), np.State())
		drainEffects(os.Stdout, hp.Effects())
		drainEffects(os.Stdout, np.Effects())
		return nil
	},
}

func printDashboard(hs presenter.HealthState, ns presenter.NearbyState) {
	sum := hs.TodaySummary()
	fmt.Printf("\n%s\n", cyan(sum.Greeting))
	fmt.Printf("%s\n", sum.MotivationalMessage)
	if sum.Highlight != "" {
		fmt.Printf("%s %s\n", yellow("★"), sum.Highlight)
	}
	fmt.Println()

	if hs.Error != "" {
		fmt.Printf("%s %s\n\n", red("✗"), hs.Error)
	}

	p := hs.ActivityProgress()
	fmt.Printf("%s %d/%d goals\n", yellow("Activity"), sum.GoalsCompleted, sum.TotalGoals)
	fmt.Printf("  Steps     %6d / %d\n", p.Steps, p.StepsGoal)
	fmt.Printf("  Calories  %6d / %d kcal\n", p.Calories, p.CaloriesGoal)
	fmt.Printf("  Distance  %6.1f / %.1f km\n", p.Distance, p.DistanceGoal)
	fmt.Println()

	if hs.HasMetrics() {
		fmt.Printf("%s\n", yellow("Vitals"))
		printMetrics(os.Stdout, hs.VitalMetrics())
		fmt.Printf("%s\n", yellow("All activity"))
		printMetrics(os.Stdout, hs.ActivityMetrics())
		fmt.Println()
	}

	switch {
	case hs.IsBackgroundSyncing:
		fmt.Printf("%s %s\n", gray("○"), gray("Uploading in background"))
	case hs.BackgroundSyncError != "":
		fmt.Printf("%s Upload failed: %s %s\n", red("✗"), hs.BackgroundSyncError, gray("(rerun with --retry)"))
	case hs.LastSyncTimestamp != nil:
		fmt.Printf("%s Synced at %s\n", green("●"), hs.LastSyncTimestamp.Format(time.Kitchen))
	}
	fmt.Printf("  Health permission: %s\n", hs.PermissionState)

	if hs.Recommendation != nil {
		fmt.Printf("\n%s\n  %s\n", yellow("Recommendation"), hs.Recommendation.Text)
	}

	fmt.Printf("\n%s", yellow("Nearby"))
	if ns.CurrentLocation != nil {
		fmt.Printf(" %s", gray(formatLocation(*ns.CurrentLocation)))
	}
	fmt.Println()
	if ns.Error != "" {
		fmt.Printf("  %s %s\n", red("✗"), ns.Error)
	} else {
		fmt.Printf("  %d users, %d hospitals within %.0f m\n", len(ns.NearbyUsers), len(ns.Hospitals), presenter.DefaultRadiusMeters)
	}
	fmt.Println()
}

// currentUserID resolves the signed-in user or explains how to sign in.
func currentUserID(cmd *cobra.Command) (string, error) {
	uid, ok := cli.auth.CurrentUserID(cmd.Context()).Data()
	if !ok {
		return "", errors.New("not signed in, run dockify login")
	}
	return uid, nil
}

func init() {
	syncCmd.Flags().BoolVar(&syncNoLocation, "no-location", false, "do not attach the device location")
	dashboardCmd.Flags().BoolVar(&dashboardRetry, "retry", false, "retry a failed background upload once")

	rootCmd.AddCommand(metricsCmd, syncCmd, recommendationCmd, dashboardCmd)
}
