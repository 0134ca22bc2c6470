package presenter

import (
	"context"

	"go.uber.org/zap"

	"dockify/internal/domain"
)

// DefaultRadiusMeters is the nearby search radius.
const DefaultRadiusMeters = 5000.0

// LocationPermissionState tracks access to device location.
type LocationPermissionState int

// Location permission states.
const (
	LocationUnknown LocationPermissionState = iota
	LocationGranted
	LocationDenied
	LocationGPSDisabled
)

func (l LocationPermissionState) String() string {
	return [...]string{"Unknown", "Granted", "Denied", "GpsDisabled"}[l]
}

// NearbyState is the snapshot rendered by the nearby screen.
type NearbyState struct {
	CurrentLocation    *domain.Location
	NearbyUsers        []domain.NearbyUser
	Hospitals          []domain.Hospital
	PermissionState    LocationPermissionState
	IsManualRefreshing bool
	IsHospitalsLoading bool
	HasInitiallyLoaded bool
	LoadingState       LoadingState
	Error              string
}

// IsLoading reports whether a blocking load is in progress.
func (s NearbyState) IsLoading() bool { return s.LoadingState == Loading }

// HasNearbyUsers reports whether any user is listed.
func (s NearbyState) HasNearbyUsers() bool { return len(s.NearbyUsers) > 0 }

// NeedsPermission reports whether the permission prompt should be offered.
func (s NearbyState) NeedsPermission() bool {
	return s.PermissionState == LocationUnknown || s.PermissionState == LocationDenied
}

// IsGPSDisabled reports whether location services are off.
func (s NearbyState) IsGPSDisabled() bool { return s.PermissionState == LocationGPSDisabled }

// CanRefresh reports whether a manual refresh may start.
func (s NearbyState) CanRefresh() bool {
	return !s.IsManualRefreshing && !s.IsLoading() && s.PermissionState == LocationGranted
}

// NearbyAction is a user or system intent on the nearby screen.
type NearbyAction int

// Nearby actions.
const (
	NearbyCheckPermissionAndLoad NearbyAction = iota
	NearbyRequestPermission
	NearbyPermissionGranted
	NearbyPermissionDenied
	NearbyRefresh
	NearbyDismissError
	NearbyOpenLocationSettings
	NearbyRetry
	NearbyLoadHospitals
)

const (
	msgLoginForNearby    = "Please log in to view nearby users"
	msgGPSOff            = "Location services are disabled. Please enable GPS."
	msgGPSOffShort       = "Location services are disabled"
	msgLocationDenied    = "Location permission denied"
	msgLocationUpdated   = "Location updated"
	msgLocationNotLoaded = "Current location is not known yet"
)

// NearbyPresenter drives the nearby screen: it resolves the device
// location and lists users and hospitals around it.
type NearbyPresenter struct {
	*store[NearbyState]

	location LocationUseCases
	session  Session
	radius   float64
}

// NewNearbyPresenter creates the presenter and starts the initial load.
func NewNearbyPresenter(location LocationUseCases, session Session, log *zap.Logger) *NearbyPresenter {
	p := &NearbyPresenter{
		store:    newStore(NearbyState{}, log),
		location: location,
		session:  session,
		radius:   DefaultRadiusMeters,
	}
	p.Dispatch(NearbyCheckPermissionAndLoad)
	return p
}

// Dispatch handles one action.
func (p *NearbyPresenter) Dispatch(a NearbyAction) {
	p.log.Debug("nearby action", zap.Int("action", int(a)))
	switch a {
	case NearbyCheckPermissionAndLoad:
		p.checkPermissionAndLoad()
	case NearbyRequestPermission:
		p.requestPermission()
	case NearbyPermissionGranted:
		p.update(func(st *NearbyState) {
			st.PermissionState = LocationGranted
			st.HasInitiallyLoaded = false
		})
		p.Dispatch(NearbyCheckPermissionAndLoad)
	case NearbyPermissionDenied:
		p.update(func(st *NearbyState) { st.PermissionState = LocationDenied })
		p.emit(Effect{Kind: ShowSnackbar, Message: msgLocationDenied})
	case NearbyRefresh:
		p.refresh()
	case NearbyDismissError:
		p.update(func(st *NearbyState) { st.Error = "" })
	case NearbyOpenLocationSettings:
		p.emit(Effect{Kind: OpenGPSSettings})
	case NearbyRetry:
		p.update(func(st *NearbyState) {
			st.HasInitiallyLoaded = false
			st.Error = ""
		})
		p.checkPermissionAndLoad()
	case NearbyLoadHospitals:
		p.loadHospitals()
	}
}

func (p *NearbyPresenter) userID(ctx context.Context) (string, bool) {
	id, ok := p.session.CurrentUserID(ctx).Data()
	if !ok {
		p.update(func(st *NearbyState) {
			st.LoadingState = Idle
			st.Error = msgLoginForNearby
		})
	}
	return id, ok
}

func (p *NearbyPresenter) checkPermissionAndLoad() {
	if p.State().HasInitiallyLoaded {
		return
	}
	p.update(func(st *NearbyState) { st.LoadingState = Loading })

	p.launch(func(ctx context.Context) {
		if !p.location.IsLocationEnabled(ctx) {
			p.update(func(st *NearbyState) {
				st.PermissionState = LocationGPSDisabled
				st.LoadingState = Idle
				st.HasInitiallyLoaded = true
				st.Error = msgGPSOff
			})
			return
		}

		if p.location.HasPermission(ctx) {
			p.update(func(st *NearbyState) { st.PermissionState = LocationGranted })
			p.loadNearbyUsers(ctx)
			return
		}

		res, err := p.location.RequestPermission(ctx)
		if err != nil {
			return
		}
		if granted, ok := res.Data(); !ok || !granted {
			p.update(func(st *NearbyState) {
				st.PermissionState = LocationDenied
				st.LoadingState = Idle
				st.HasInitiallyLoaded = true
				if !ok {
					st.Error = UserMessage(res.Err())
				}
			})
			return
		}
		p.update(func(st *NearbyState) { st.PermissionState = LocationGranted })
		p.loadNearbyUsers(ctx)
	})
}

func (p *NearbyPresenter) requestPermission() {
	p.update(func(st *NearbyState) { st.LoadingState = Loading })

	p.launch(func(ctx context.Context) {
		res, err := p.location.RequestPermission(ctx)
		if err != nil {
			return
		}
		granted, ok := res.Data()
		switch {
		case !ok:
			p.update(func(st *NearbyState) {
				st.PermissionState = LocationDenied
				st.LoadingState = Idle
				st.Error = UserMessage(res.Err())
			})
		case granted:
			p.update(func(st *NearbyState) { st.PermissionState = LocationGranted })
			p.loadNearbyUsers(ctx)
		default:
			p.update(func(st *NearbyState) {
				st.PermissionState = LocationDenied
				st.LoadingState = Idle
			})
			p.emit(Effect{Kind: ShowSnackbar, Message: msgLocationDenied})
		}
	})
}

func (p *NearbyPresenter) loadNearbyUsers(ctx context.Context) {
	uid, ok := p.userID(ctx)
	if !ok {
		return
	}

	locRes, err := p.location.CurrentLocation(ctx)
	if err != nil {
		return
	}
	loc, ok := locRes.Data()
	if !ok {
		p.handleLocationError(locRes.Err())
		return
	}
	p.update(func(st *NearbyState) { st.CurrentLocation = &loc })
	p.emit(Effect{Kind: LocationFetched})

	users, err := p.location.NearestUsers(ctx, loc, p.radius, uid)
	if err != nil {
		return
	}
	p.update(func(st *NearbyState) {
		st.LoadingState = Idle
		st.HasInitiallyLoaded = true
		if list, ok := users.Data(); ok {
			st.NearbyUsers = list
			st.Error = ""
		} else {
			st.Error = UserMessage(users.Err())
		}
	})
}

func (p *NearbyPresenter) refresh() {
	if !p.State().CanRefresh() {
		return
	}
	p.update(func(st *NearbyState) { st.IsManualRefreshing = true })

	p.launch(func(ctx context.Context) {
		uid, ok := p.userID(ctx)
		if !ok {
			p.update(func(st *NearbyState) { st.IsManualRefreshing = false })
			return
		}

		locRes, err := p.location.CurrentLocation(ctx)
		if err != nil {
			return
		}
		loc, ok := locRes.Data()
		if !ok {
			p.update(func(st *NearbyState) { st.IsManualRefreshing = false })
			p.handleLocationError(locRes.Err())
			return
		}
		p.update(func(st *NearbyState) { st.CurrentLocation = &loc })

		users, err := p.location.NearestUsers(ctx, loc, p.radius, uid)
		if err != nil {
			return
		}
		list, ok := users.Data()
		if !ok {
			p.update(func(st *NearbyState) {
				st.IsManualRefreshing = false
				st.Error = UserMessage(users.Err())
			})
			return
		}
		p.update(func(st *NearbyState) {
			st.NearbyUsers = list
			st.IsManualRefreshing = false
			st.Error = ""
		})
		p.emit(Effect{Kind: ShowSnackbar, Message: msgLocationUpdated})
	})
}

// loadHospitals lists hospitals around the last known location.
func (p *NearbyPresenter) loadHospitals() {
	loc := p.State().CurrentLocation
	if loc == nil {
		p.emit(Effect{Kind: ShowSnackbar, Message: msgLocationNotLoaded})
		return
	}
	p.update(func(st *NearbyState) { st.IsHospitalsLoading = true })

	p.launch(func(ctx context.Context) {
		res, err := p.location.NearestHospitals(ctx, *loc, p.radius)
		if err != nil {
			return
		}
		p.update(func(st *NearbyState) {
			st.IsHospitalsLoading = false
			if list, ok := res.Data(); ok {
				st.Hospitals = list
			} else {
				st.Error = UserMessage(res.Err())
			}
		})
	})
}

func (p *NearbyPresenter) handleLocationError(err domain.DataError) {
	p.update(func(st *NearbyState) {
		st.LoadingState = Idle
		st.HasInitiallyLoaded = true
		switch err {
		case domain.LocationPermissionDenied:
			st.PermissionState = LocationDenied
		case domain.LocationGPSDisabled:
			st.PermissionState = LocationGPSDisabled
			st.Error = msgGPSOffShort
		default:
			st.Error = UserMessage(err)
		}
	})
}
