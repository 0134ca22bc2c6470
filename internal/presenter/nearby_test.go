package presenter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockify/internal/domain"
)

var almaty = domain.Location{Latitude: 43.238, Longitude: 76.945}

func TestNearbyGPSDisabled(t *testing.T) {
	p := NewNearbyPresenter(&fakeLocation{}, fakeSession{id: "1"}, nil)
	defer p.Close()
	p.Wait()

	st := p.State()
	assert.Equal(t, LocationGPSDisabled, st.PermissionState)
	assert.True(t, st.IsGPSDisabled())
	assert.True(t, st.HasInitiallyLoaded)
	assert.Equal(t, Idle, st.LoadingState)
	assert.Equal(t, "Location services are disabled. Please enable GPS.", st.Error)

	p.Dispatch(NearbyOpenLocationSettings)
	assert.Equal(t, []Effect{{Kind: OpenGPSSettings}}, drain(p.Effects()))
}

func TestNearbyLoadsUsers(t *testing.T) {
	var gotRadius float64
	var gotUser string
	loc := &fakeLocation{enabled: true, permission: true, loc: almaty,
		usersFn: func(_ context.Context, _ domain.Location, radius float64, userID string) (domain.Result[[]domain.NearbyUser], error) {
			gotRadius, gotUser = radius, userID
			return domain.Success([]domain.NearbyUser{{UserID: "7", Location: almaty}}), nil
		},
	}
	p := NewNearbyPresenter(loc, fakeSession{id: "3"}, nil)
	defer p.Close()
	p.Wait()

	st := p.State()
	assert.Equal(t, LocationGranted, st.PermissionState)
	require.NotNil(t, st.CurrentLocation)
	assert.Equal(t, almaty, *st.CurrentLocation)
	assert.True(t, st.HasNearbyUsers())
	assert.Equal(t, "7", st.NearbyUsers[0].UserID)
	assert.True(t, st.HasInitiallyLoaded)
	assert.Empty(t, st.Error)
	assert.Equal(t, DefaultRadiusMeters, gotRadius)
	assert.Equal(t, "3", gotUser)
	assert.Equal(t, []Effect{{Kind: LocationFetched}}, drain(p.Effects()))

	p.Dispatch(NearbyCheckPermissionAndLoad)
	p.Wait()
	assert.Empty(t, drain(p.Effects()), "guard skips a second load")
}

func TestNearbyPermissionFlow(t *testing.T) {
	loc := &fakeLocation{enabled: true, loc: almaty}
	p := NewNearbyPresenter(loc, fakeSession{id: "1"}, nil)
	defer p.Close()
	p.Wait()

	st := p.State()
	assert.Equal(t, LocationDenied, st.PermissionState)
	assert.True(t, st.NeedsPermission())
	assert.Empty(t, st.Error)
	assert.Nil(t, st.CurrentLocation)

	p.Dispatch(NearbyRequestPermission)
	p.Wait()
	assert.Equal(t, []Effect{{Kind: ShowSnackbar, Message: "Location permission denied"}}, drain(p.Effects()))

	loc.grant = true
	p.Dispatch(NearbyRequestPermission)
	p.Wait()
	assert.Equal(t, LocationGranted, p.State().PermissionState)
	assert.NotNil(t, p.State().CurrentLocation)
}

func TestNearbyLocationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        domain.DataError
		permission LocationPermissionState
		msg        string
	}{
		{"gps off", domain.LocationGPSDisabled, LocationGPSDisabled, "Location services are disabled"},
		{"denied", domain.LocationPermissionDenied, LocationDenied, ""},
		{"timeout", domain.LocationTimeout, LocationGranted, "Location request timed out."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewNearbyPresenter(&fakeLocation{enabled: true, permission: true, locErr: tt.err}, fakeSession{id: "1"}, nil)
			defer p.Close()
			p.Wait()

			st := p.State()
			assert.Equal(t, tt.permission, st.PermissionState)
			assert.Equal(t, tt.msg, st.Error)
			assert.True(t, st.HasInitiallyLoaded)
			assert.Equal(t, Idle, st.LoadingState)
		})
	}
}

func TestNearbyNotSignedIn(t *testing.T) {
	p := NewNearbyPresenter(&fakeLocation{enabled: true, permission: true}, fakeSession{}, nil)
	defer p.Close()
	p.Wait()

	assert.Equal(t, "Please log in to view nearby users", p.State().Error)
	assert.Equal(t, Idle, p.State().LoadingState)
}

func TestNearbyRefresh(t *testing.T) {
	calls := 0
	loc := &fakeLocation{enabled: true, permission: true, loc: almaty,
		usersFn: func(context.Context, domain.Location, float64, string) (domain.Result[[]domain.NearbyUser], error) {
			calls++
			if calls > 2 {
				return domain.Failure[[]domain.NearbyUser](domain.NetworkRequestTimeout), nil
			}
			return domain.Success(make([]domain.NearbyUser, calls)), nil
		},
	}
	p := NewNearbyPresenter(loc, fakeSession{id: "1"}, nil)
	defer p.Close()
	p.Wait()
	drain(p.Effects())
	require.True(t, p.State().CanRefresh())

	p.Dispatch(NearbyRefresh)
	p.Wait()
	st := p.State()
	assert.Len(t, st.NearbyUsers, 2)
	assert.False(t, st.IsManualRefreshing)
	assert.Equal(t, []Effect{{Kind: ShowSnackbar, Message: "Location updated"}}, drain(p.Effects()))

	p.Dispatch(NearbyRefresh)
	p.Wait()
	st = p.State()
	assert.Len(t, st.NearbyUsers, 2, "failed refresh keeps the old list")
	assert.Equal(t, "Request timed out. Please try again.", st.Error)
	assert.Empty(t, drain(p.Effects()))

	p.Dispatch(NearbyDismissError)
	assert.Empty(t, p.State().Error)
}

func TestNearbyRefreshNeedsPermission(t *testing.T) {
	loc := &fakeLocation{}
	p := NewNearbyPresenter(loc, fakeSession{id: "1"}, nil)
	defer p.Close()
	p.Wait()

	p.Dispatch(NearbyRefresh)
	p.Wait()
	assert.False(t, p.State().IsManualRefreshing)
	assert.Empty(t, drain(p.Effects()))
}

func TestNearbyHospitals(t *testing.T) {
	loc := &fakeLocation{enabled: true, permission: true, loc: almaty,
		hospitalsFn: func(_ context.Context, at domain.Location, _ float64) (domain.Result[[]domain.Hospital], error) {
			return domain.Success([]domain.Hospital{{Location: at}}), nil
		},
	}
	p := NewNearbyPresenter(loc, fakeSession{id: "1"}, nil)
	defer p.Close()
	p.Wait()

	p.Dispatch(NearbyLoadHospitals)
	p.Wait()
	st := p.State()
	assert.False(t, st.IsHospitalsLoading)
	assert.Equal(t, []domain.Hospital{{Location: almaty}}, st.Hospitals)
}

func TestNearbyHospitalsWithoutLocation(t *testing.T) {
	p := NewNearbyPresenter(&fakeLocation{}, fakeSession{id: "1"}, nil)
	defer p.Close()
	p.Wait()
	drain(p.Effects())

	p.Dispatch(NearbyLoadHospitals)
	assert.Equal(t, []Effect{{Kind: ShowSnackbar, Message: "Current location is not known yet"}}, drain(p.Effects()))
}

func TestNearbyRetry(t *testing.T) {
	loc := &fakeLocation{loc: almaty}
	p := NewNearbyPresenter(loc, fakeSession{id: "1"}, nil)
	defer p.Close()
	p.Wait()
	require.Equal(t, LocationGPSDisabled, p.State().PermissionState)

	loc.enabled, loc.permission = true, true
	p.Dispatch(NearbyRetry)
	p.Wait()

	st := p.State()
	assert.Equal(t, LocationGranted, st.PermissionState)
	assert.Empty(t, st.Error)
	assert.NotNil(t, st.CurrentLocation)
}
