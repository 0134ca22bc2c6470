package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"dockify/internal/domain"
	"dockify/internal/presenter"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// scope is the lifecycle shared by all presenters.
type scope interface {
	Wait()
	Close()
}

// settle waits for every task launched by p, closing p early when ctx is
// done.
func settle(ctx context.Context, p scope) error {
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.Close()
		return ctx.Err()
	}
}

// drainEffects prints the effects queued so far without blocking.
func drainEffects(w io.Writer, effects <-chan presenter.Effect) []presenter.Effect {
	var seen []presenter.Effect
	for {
		select {
		case e := <-effects:
			seen = append(seen, e)
			printEffect(w, e)
		default:
			return seen
		}
	}
}

func printEffect(w io.Writer, e presenter.Effect) {
	switch e.Kind {
	case presenter.ShowSnackbar:
		fmt.Fprintf(w, "%s %s\n", yellow("•"), e.Message)
	case presenter.ShowSuccessMessage:
		fmt.Fprintf(w, "%s %s\n", green("✓"), e.Message)
	case presenter.SyncSuccess:
		fmt.Fprintf(w, "%s %s\n", green("✓"), "Synced")
	case presenter.BackgroundSyncFailed:
		fmt.Fprintf(w, "%s %s\n", red("✗"), "Background sync failed")
	case presenter.OpenGPSSettings:
		fmt.Fprintf(w, "%s %s\n", yellow("!"), "Enable location in the device profile and try again")
	}
}

func hasEffect(effects []presenter.Effect, kind presenter.EffectKind) bool {
	for _, e := range effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// formatValue renders a reading with its unit, dropping a zero fraction.
func formatValue(m domain.HealthMetric) string {
	v := strconv.FormatFloat(m.Value, 'f', 1, 64)
	v = strings.TrimSuffix(v, ".0")
	if m.Unit == "" {
		return v
	}
	return v + " " + m.Unit
}

func printMetrics(w io.Writer, metrics []domain.HealthMetric) {
	if len(metrics) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("No readings"))
		return
	}
	for _, m := range metrics {
		fmt.Fprintf(w, "  %-26s %s\n", m.Type.DisplayName(), formatValue(m))
	}
}

func formatLocation(l domain.Location) string {
	return fmt.Sprintf("%.5f, %.5f", l.Latitude, l.Longitude)
}

func printNearby(w io.Writer, at *domain.Location, users []domain.NearbyUser) {
	if len(users) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("Nobody nearby"))
		return
	}
	for _, u := range users {
		line := fmt.Sprintf("  user %-8s %s", u.UserID, formatLocation(u.Location))
		if at != nil {
			line += gray(fmt.Sprintf("  (%.0f m)", at.DistanceMeters(u.Location)))
		}
		fmt.Fprintln(w, line)
	}
}

func printHospitals(w io.Writer, at *domain.Location, hospitals []domain.Hospital) {
	if len(hospitals) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("No hospitals in range"))
		return
	}
	for i, h := range hospitals {
		line := fmt.Sprintf("  %2d. %s", i+1, formatLocation(h.Location))
		if at != nil {
			line += gray(fmt.Sprintf("  (%.0f m)", at.DistanceMeters(h.Location)))
		}
		fmt.Fprintln(w, line)
	}
}
