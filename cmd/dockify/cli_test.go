package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockify/internal/domain"
	"dockify/internal/presenter"
)

func TestTerminalPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		yes   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := newTerminalPrompter(strings.NewReader(tt.input), &out, tt.yes)
		got, err := p.Confirm(context.Background(), "Allow access?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		if !tt.yes {
			assert.Contains(t, out.String(), "Allow access? [y/N]")
		}
	}
}

func TestTerminalPrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := newTerminalPrompter(strings.NewReader("  dias@dockify.kz \nsecret\n"), &out, false)
	email, err := p.ask(context.Background(), "Email")
	require.NoError(t, err)
	pass, err := p.ask(context.Background(), "Password")
	require.NoError(t, err)
	assert.Equal(t, "dias@dockify.kz", email)
	assert.Equal(t, "secret", pass)
}

// blockingReader never returns, like a terminal nobody types into.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }

func TestTerminalPrompterHonorsCancel(t *testing.T) {
	p := newTerminalPrompter(blockingReader{}, &bytes.Buffer{}, false)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Confirm(ctx, "Allow?")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "6450 steps", formatValue(domain.HealthMetric{Value: 6450, Unit: "steps"}))
	assert.Equal(t, "7.3 hours", formatValue(domain.HealthMetric{Value: 7.333, Unit: "hours"}))
	assert.Equal(t, "98", formatValue(domain.HealthMetric{Value: 98}))
}

func TestDrainEffects(t *testing.T) {
	ch := make(chan presenter.Effect, 4)
	ch <- presenter.Effect{Kind: presenter.ShowSnackbar, Message: "Location updated"}
	ch <- presenter.Effect{Kind: presenter.NavigateToHome}

	var out bytes.Buffer
	got := drainEffects(&out, ch)
	require.Len(t, got, 2)
	assert.True(t, hasEffect(got, presenter.NavigateToHome))
	assert.False(t, hasEffect(got, presenter.SyncSuccess))
	assert.Contains(t, out.String(), "Location updated")
}

func TestFormErrors(t *testing.T) {
	err := formErrors("", "Email is required", "", "Passwords do not match")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email is required")
	assert.Contains(t, err.Error(), "Passwords do not match")
	assert.EqualError(t, formErrors(), "form is incomplete")
}

type fakeScope struct {
	release chan struct{}
	closed  bool
}

func (f *fakeScope) Wait()  { <-f.release }
func (f *fakeScope) Close() { f.closed = true; close(f.release) }

func TestSettleClosesOnCancel(t *testing.T) {
	s := &fakeScope{release: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, settle(ctx, s), context.Canceled)
	assert.True(t, s.closed)

	done := &fakeScope{release: make(chan struct{})}
	close(done.release)
	assert.NoError(t, settle(context.Background(), done))
}
