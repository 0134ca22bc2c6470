package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dockify/internal/domain"
	"dockify/internal/presenter"
)

var (
	watchRadius float64
	watchEvery  time.Duration
)

// openNearby runs the initial nearby load, which asks for the location
// permission when it is missing.
func openNearby(cmd *cobra.Command) (*presenter.NearbyPresenter, error) {
	p := presenter.NewNearbyPresenter(cli.location, cli.auth, cli.log.Named("nearby"))
	if err := settle(cmd.Context(), p); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List users near your current location",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openNearby(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		st := p.State()
		drainEffects(os.Stdout, p.Effects())
		if st.Error != "" {
			return errors.New(st.Error)
		}
		if st.NeedsPermission() {
			return errors.New("location permission is required")
		}
		fmt.Printf("%s %s\n", cyan("Nearby users"), gray(fmt.Sprintf("within %.0f m", presenter.DefaultRadiusMeters)))
		printNearby(os.Stdout, st.CurrentLocation, st.NearbyUsers)
		return nil
	},
}

var hospitalsCmd = &cobra.Command{
	Use:   "hospitals",
	Short: "List hospitals near your current location",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openNearby(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		p.Dispatch(presenter.NearbyLoadHospitals)
		if err := settle(cmd.Context(), p); err != nil {
			return err
		}
		st := p.State()
		drainEffects(os.Stdout, p.Effects())
		if st.Error != "" {
			return errors.New(st.Error)
		}
		fmt.Printf("%s %s\n", cyan("Hospitals"), gray(fmt.Sprintf("within %.0f m", presenter.DefaultRadiusMeters)))
		printHospitals(os.Stdout, st.CurrentLocation, st.Hospitals)
		return nil
	},
}

var watchLocationCmd = &cobra.Command{
	Use:   "watch-location",
	Short: "Print location updates until interrupted",
	Long:  `Follow the device location and, at most once per --every, look up how many users are within --radius meters. Stops on Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if !cli.location.HasPermission(ctx) {
			res, err := cli.location.RequestPermission(ctx)
			if err != nil {
				return err
			}
			if granted, ok := res.Data(); !ok || !granted {
				return errors.New(presenter.UserMessage(domain.LocationPermissionDenied))
			}
		}
		uid, _ := cli.auth.CurrentUserID(ctx).Data()

		fmt.Printf("%s %s\n", cyan("Watching location"), gray("(Ctrl-C to stop)"))
		var lastLookup time.Time
		for fix := range cli.location.Observe(ctx) {
			stamp := gray(time.Now().Format("15:04:05"))
			loc, ok := fix.Data()
			if !ok {
				switch fix.Err() {
				case domain.LocationPermissionDenied, domain.LocationGPSDisabled:
					return errors.New(presenter.UserMessage(fix.Err()))
				}
				fmt.Printf("%s  %s\n", stamp, red(presenter.UserMessage(fix.Err())))
				continue
			}
			line := fmt.Sprintf("%s  %s", stamp, formatLocation(loc))
			if uid != "" && time.Since(lastLookup) >= watchEvery {
				lastLookup = time.Now()
				res, err := cli.location.NearestUsers(ctx, loc, watchRadius, uid)
				switch {
				case err != nil:
				case res.IsSuccess():
					users, _ := res.Data()
					line += fmt.Sprintf("  %s", green(fmt.Sprintf("%d nearby", len(users))))
				default:
					line += fmt.Sprintf("  %s", red(presenter.UserMessage(res.Err())))
				}
			}
			fmt.Println(line)
		}
		fmt.Println(gray("stopped"))
		return nil
	},
}

func init() {
	watchLocationCmd.Flags().Float64Var(&watchRadius, "radius", presenter.DefaultRadiusMeters, "nearby search radius in meters")
	watchLocationCmd.Flags().DurationVar(&watchEvery, "every", 10*time.Second, "minimum time between nearby lookups")

	rootCmd.AddCommand(nearbyCmd, hospitalsCmd, watchLocationCmd)
}
