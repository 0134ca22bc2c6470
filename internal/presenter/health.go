package presenter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dockify/internal/domain"
)

// PermissionState tracks access to the platform health API.
type PermissionState int

// Health permission states.
const (
	PermissionUnknown PermissionState = iota
	PermissionGranted
	PermissionDenied
	PermissionNotAvailable
)

func (p PermissionState) String() string {
	return [...]string{"Unknown", "Granted", "Denied", "NotAvailable"}[p]
}

// Default activity goals.
const (
	DefaultStepsGoal    = 10000
	DefaultCaloriesGoal = 500
	DefaultDistanceGoal = 5.0
)

// HealthState is the snapshot rendered by the health dashboard.
type HealthState struct {
	HealthMetrics             []domain.HealthMetric
	Recommendation            *domain.Recommendation
	IsRecommendationLoading   bool
	PermissionState           PermissionState
	IsPlatformHealthAvailable bool
	IsSyncing                 bool
	LastSyncTimestamp         *time.Time
	StreakDays                int
	StepsGoal                 int
	CaloriesGoal              int
	DistanceGoal              float64
	CurrentHour               int

	IsBackgroundSyncing            bool
	BackgroundSyncError            string
	HasInitiallyLoadedPlatformData bool

	LoadingState LoadingState
	Error        string
}

// NewHealthState returns the state of a freshly opened dashboard.
func NewHealthState(hour int) HealthState {
	return HealthState{
		IsPlatformHealthAvailable: true,
		StepsGoal:                 DefaultStepsGoal,
		CaloriesGoal:              DefaultCaloriesGoal,
		DistanceGoal:              DefaultDistanceGoal,
		CurrentHour:               hour,
	}
}

// IsLoading reports whether a blocking load is in progress.
func (s HealthState) IsLoading() bool { return s.LoadingState == Loading }

// HasMetrics reports whether any metric is shown.
func (s HealthState) HasMetrics() bool { return len(s.HealthMetrics) > 0 }

// CanSync reports whether a manual sync may start.
func (s HealthState) CanSync() bool {
	return !s.IsSyncing && !s.IsLoading() && s.PermissionState == PermissionGranted
}

// NeedsPermission reports whether the permission prompt should be offered.
func (s HealthState) NeedsPermission() bool {
	return s.PermissionState == PermissionUnknown || s.PermissionState == PermissionDenied
}

// ShowBackgroundSyncIndicator reports whether an upload is running or has
// failed.
func (s HealthState) ShowBackgroundSyncIndicator() bool {
	return s.IsBackgroundSyncing || s.BackgroundSyncError != ""
}

// ActivityProgress is today's activity against the goals.
type ActivityProgress struct {
	Steps        int
	StepsGoal    int
	Calories     int
	CaloriesGoal int
	Distance     float64
	DistanceGoal float64
}

// GoalsCompleted counts the goals reached.
func (p ActivityProgress) GoalsCompleted() int {
	n := 0
	if p.Steps >= p.StepsGoal {
		n++
	}
	if p.Calories >= p.CaloriesGoal {
		n++
	}
	if p.Distance >= p.DistanceGoal {
		n++
	}
	return n
}

// ActivityProgress derives the activity ring values.
func (s HealthState) ActivityProgress() ActivityProgress {
	p := ActivityProgress{
		StepsGoal:    s.StepsGoal,
		CaloriesGoal: s.CaloriesGoal,
		DistanceGoal: s.DistanceGoal,
	}
	if m, ok := domain.FindMetric(s.HealthMetrics, domain.MetricSteps); ok {
		p.Steps = int(m.Value)
	}
	if m, ok := domain.FindMetric(s.HealthMetrics, domain.MetricCaloriesBurned); ok {
		p.Calories = int(m.Value)
	}
	if m, ok := domain.FindMetric(s.HealthMetrics, domain.MetricDistance); ok {
		p.Distance = m.Value
	}
	return p
}

// TotalGoals is the number of daily activity goals.
const TotalGoals = 3

// TodaySummary is the header card of the dashboard.
type TodaySummary struct {
	Greeting            string
	StreakDays          int
	GoalsCompleted      int
	TotalGoals          int
	MotivationalMessage string
	Highlight           string
}

// TodaySummary derives the header card.
func (s HealthState) TodaySummary() TodaySummary {
	p := s.ActivityProgress()
	done := p.GoalsCompleted()
	return TodaySummary{
		Greeting:            Greeting(s.CurrentHour),
		StreakDays:          s.StreakDays,
		GoalsCompleted:      done,
		TotalGoals:          TotalGoals,
		MotivationalMessage: MotivationalMessage(done, TotalGoals, s.StreakDays),
		Highlight:           s.highlight(p),
	}
}

func (s HealthState) highlight(p ActivityProgress) string {
	switch {
	case float64(p.Steps) >= float64(s.StepsGoal)*1.5:
		return "Exceptional step count today!"
	case float64(p.Calories) >= float64(s.CaloriesGoal)*1.2:
		return "Great calorie burn today!"
	case s.StreakDays >= 7:
		return "Week-long streak achieved!"
	}
	return ""
}

// Greeting picks the salutation for an hour of the day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// MotivationalMessage picks the encouragement line.
func MotivationalMessage(completed, total, streak int) string {
	switch {
	case completed == total:
		return "You've crushed all your goals today!"
	case streak >= 7:
		return fmt.Sprintf("Amazing %d-day streak! Keep it going!", streak)
	case streak >= 3:
		return fmt.Sprintf("Great momentum! You're on a %d-day streak.", streak)
	case completed > 0:
		return "You're making progress. Keep pushing!"
	default:
		return "Let's make today count!"
	}
}

var (
	vitalTypes = []domain.HealthMetricType{
		domain.MetricHeartRate,
		domain.MetricBloodOxygen,
		domain.MetricSleepDuration,
		domain.MetricBloodPressureSystolic,
		domain.MetricWeight,
		domain.MetricBodyTemperature,
	}
	activityTypes = []domain.HealthMetricType{
		domain.MetricSteps,
		domain.MetricCaloriesBurned,
		domain.MetricDistance,
	}
)

// VitalMetrics returns the vital sign readings.
func (s HealthState) VitalMetrics() []domain.HealthMetric {
	return domain.FilterMetrics(s.HealthMetrics, vitalTypes...)
}

// ActivityMetrics returns the activity readings.
func (s HealthState) ActivityMetrics() []domain.HealthMetric {
	return domain.FilterMetrics(s.HealthMetrics, activityTypes...)
}

// HealthAction is a user or system intent on the dashboard.
type HealthAction int

// Health actions.
const (
	HealthLoad HealthAction = iota
	HealthSync
	HealthRequestPermissions
	HealthPermissionGranted
	HealthPermissionDenied
	HealthRefreshRecommendation
	HealthDismissError
	HealthRetry
	HealthCheckPermissionsAndAutoSync
	HealthDismissBackgroundSyncError
	HealthRetryBackgroundSync
)

const (
	msgLoginForHealth    = "Please log in to view health data"
	msgHealthUnavailable = "Health Connect/HealthKit is not available on this device"
	msgHealthDenied      = "Health permissions denied"
	msgHealthSynced      = "Health data synced successfully"
)

// HealthPresenter drives the health dashboard: it reads the device, shows
// the readings at once and uploads them in the background.
type HealthPresenter struct {
	*store[HealthState]

	health   HealthUseCases
	recs     RecommendationUseCases
	session  Session
	location LocationUseCases
	now      func() time.Time
	types    []domain.HealthMetricType
}

// NewHealthPresenter creates the presenter and starts the initial load.
func NewHealthPresenter(health HealthUseCases, recs RecommendationUseCases, session Session, location LocationUseCases, log *zap.Logger) *HealthPresenter {
	p := &HealthPresenter{
		store:    newStore(NewHealthState(time.Now().Hour()), log),
		health:   health,
		recs:     recs,
		session:  session,
		location: location,
		now:      time.Now,
		types:    domain.AllMetricTypes(),
	}
	p.Dispatch(HealthCheckPermissionsAndAutoSync)
	return p
}

// Dispatch handles one action.
func (p *HealthPresenter) Dispatch(a HealthAction) {
	p.log.Debug("health action", zap.Int("action", int(a)))
	switch a {
	case HealthLoad, HealthCheckPermissionsAndAutoSync:
		p.checkPermissionsAndAutoSync()
	case HealthSync:
		p.sync()
	case HealthRequestPermissions:
		p.requestPermissions()
	case HealthPermissionGranted:
		p.update(func(st *HealthState) {
			st.PermissionState = PermissionGranted
			st.HasInitiallyLoadedPlatformData = false
		})
		p.Dispatch(HealthCheckPermissionsAndAutoSync)
	case HealthPermissionDenied:
		p.update(func(st *HealthState) { st.PermissionState = PermissionDenied })
		p.emit(Effect{Kind: ShowSnackbar, Message: msgHealthDenied})
	case HealthRefreshRecommendation:
		p.loadRecommendation()
	case HealthDismissError:
		p.update(func(st *HealthState) { st.Error = "" })
	case HealthRetry:
		p.update(func(st *HealthState) {
			st.HasInitiallyLoadedPlatformData = false
			st.Error = ""
		})
		p.checkPermissionsAndAutoSync()
	case HealthDismissBackgroundSyncError:
		p.update(func(st *HealthState) { st.BackgroundSyncError = "" })
	case HealthRetryBackgroundSync:
		p.retryBackgroundSync()
	}
}

// userID resolves the signed-in user or records the sign-in prompt.
func (p *HealthPresenter) userID(ctx context.Context) (string, bool) {
	id, ok := p.session.CurrentUserID(ctx).Data()
	if !ok {
		p.update(func(st *HealthState) {
			st.LoadingState = Idle
			st.Error = msgLoginForHealth
		})
	}
	return id, ok
}

func (p *HealthPresenter) locationSilently(ctx context.Context) *domain.Location {
	res, err := p.location.CurrentLocation(ctx)
	if err != nil {
		return nil
	}
	return res.GetOrNil()
}

func (p *HealthPresenter) requestLocationPermissionSilently() {
	p.launch(func(ctx context.Context) {
		if !p.location.HasPermission(ctx) {
			_, _ = p.location.RequestPermission(ctx)
		}
	})
}

func (p *HealthPresenter) sync() {
	if !p.State().CanSync() {
		return
	}
	p.update(func(st *HealthState) { st.IsSyncing = true })

	p.launch(func(ctx context.Context) {
		uid, ok := p.userID(ctx)
		if !ok {
			p.update(func(st *HealthState) { st.IsSyncing = false })
			return
		}
		res, err := p.health.Sync(ctx, uid, p.types, p.locationSilently(ctx))
		if err != nil {
			return
		}
		if res.IsSuccess() {
			now := p.now()
			p.update(func(st *HealthState) {
				st.IsSyncing = false
				st.LastSyncTimestamp = &now
			})
			p.emit(Effect{Kind: SyncSuccess})
			p.emit(Effect{Kind: ShowSnackbar, Message: msgHealthSynced})
			return
		}
		msg := UserMessage(res.Err())
		p.update(func(st *HealthState) {
			st.IsSyncing = false
			st.Error = msg
		})
		p.emit(Effect{Kind: ShowSnackbar, Message: msg})
	})
}

func (p *HealthPresenter) requestPermissions() {
	p.update(func(st *HealthState) { st.LoadingState = Loading })

	p.launch(func(ctx context.Context) {
		res, err := p.health.RequestPermissions(ctx, p.types)
		if err != nil {
			return
		}
		granted, ok := res.Data()
		switch {
		case !ok:
			p.update(func(st *HealthState) {
				st.PermissionState = PermissionDenied
				st.LoadingState = Idle
				st.Error = UserMessage(res.Err())
			})
		case granted:
			p.update(func(st *HealthState) {
				st.PermissionState = PermissionGranted
				st.HasInitiallyLoadedPlatformData = false
			})
			p.Dispatch(HealthCheckPermissionsAndAutoSync)
		default:
			p.update(func(st *HealthState) {
				st.PermissionState = PermissionDenied
				st.LoadingState = Idle
			})
			p.emit(Effect{Kind: ShowSnackbar, Message: msgHealthDenied})
		}
	})
}

func (p *HealthPresenter) loadRecommendation() {
	p.update(func(st *HealthState) { st.IsRecommendationLoading = true })

	p.launch(func(ctx context.Context) {
		res, err := p.recs.Recommendation(ctx)
		rec := res.GetOrNil()
		if err != nil {
			rec = nil
		}
		p.update(func(st *HealthState) {
			if rec != nil {
				st.Recommendation = rec
			}
			st.IsRecommendationLoading = false
		})
	})
}

// checkPermissionsAndAutoSync runs the first load at most once until a
// retry or a fresh permission grant resets the guard.
func (p *HealthPresenter) checkPermissionsAndAutoSync() {
	if p.State().HasInitiallyLoadedPlatformData {
		return
	}
	p.update(func(st *HealthState) { st.LoadingState = Loading })

	p.launch(func(ctx context.Context) {
		uid, ok := p.userID(ctx)
		if !ok {
			return
		}

		if !p.health.IsPlatformAvailable(ctx) {
			p.update(func(st *HealthState) {
				st.PermissionState = PermissionNotAvailable
				st.IsPlatformHealthAvailable = false
				st.LoadingState = Idle
				st.HasInitiallyLoadedPlatformData = true
				st.Error = msgHealthUnavailable
			})
			return
		}

		if p.health.HasPermissions(ctx, p.types) {
			p.update(func(st *HealthState) { st.PermissionState = PermissionGranted })
			p.requestLocationPermissionSilently()
			p.autoSync(ctx, uid)
			return
		}

		p.update(func(st *HealthState) {
			st.PermissionState = PermissionUnknown
			st.LoadingState = Idle
		})
		p.requestPermissionsAndThenSync(ctx, uid)
	})
}

func (p *HealthPresenter) requestPermissionsAndThenSync(ctx context.Context, uid string) {
	res, err := p.health.RequestPermissions(ctx, p.types)
	if err != nil {
		return
	}
	if granted, ok := res.Data(); !ok || !granted {
		p.update(func(st *HealthState) {
			st.PermissionState = PermissionDenied
			st.LoadingState = Idle
			st.HasInitiallyLoadedPlatformData = true
			if !ok {
				st.Error = UserMessage(res.Err())
			}
		})
		return
	}
	p.update(func(st *HealthState) { st.PermissionState = PermissionGranted })
	p.requestLocationPermissionSilently()
	p.autoSync(ctx, uid)
}

// autoSync shows the device readings immediately and uploads them in a
// separate task.
func (p *HealthPresenter) autoSync(ctx context.Context, uid string) {
	res, err := p.health.ReadPlatform(ctx, p.types)
	if err != nil {
		return
	}
	metrics, ok := res.Data()
	if !ok {
		p.update(func(st *HealthState) {
			st.LoadingState = Idle
			st.Error = UserMessage(res.Err())
			st.HasInitiallyLoadedPlatformData = true
		})
		return
	}

	// An empty read has nothing to upload.
	p.update(func(st *HealthState) {
		st.HealthMetrics = metrics
		st.LoadingState = Idle
		st.HasInitiallyLoadedPlatformData = true
		st.IsBackgroundSyncing = len(metrics) > 0
		st.BackgroundSyncError = ""
	})
	p.loadRecommendation()
	if len(metrics) > 0 {
		p.uploadInBackground(uid, metrics)
	}
}

func (p *HealthPresenter) uploadInBackground(uid string, metrics []domain.HealthMetric) {
	p.launch(func(ctx context.Context) {
		res, err := p.health.Upload(ctx, domain.HealthData{
			UserID:   uid,
			Metrics:  metrics,
			Location: p.locationSilently(ctx),
		})
		if err != nil {
			return
		}
		if res.IsSuccess() {
			now := p.now()
			p.update(func(st *HealthState) {
				st.IsBackgroundSyncing = false
				st.BackgroundSyncError = ""
				st.LastSyncTimestamp = &now
			})
			return
		}
		p.log.Warn("background upload failed", zap.Error(res.Err()))
		p.update(func(st *HealthState) {
			st.IsBackgroundSyncing = false
			st.BackgroundSyncError = UserMessage(res.Err())
		})
		p.emit(Effect{Kind: BackgroundSyncFailed})
	})
}

// retryBackgroundSync re-uploads the metrics already on screen without
// reading the device again.
func (p *HealthPresenter) retryBackgroundSync() {
	if p.State().IsBackgroundSyncing {
		return
	}
	p.launch(func(ctx context.Context) {
		uid, ok := p.userID(ctx)
		if !ok {
			return
		}
		metrics := p.State().HealthMetrics
		if len(metrics) == 0 {
			return
		}
		p.update(func(st *HealthState) {
			st.IsBackgroundSyncing = true
			st.BackgroundSyncError = ""
		})
		p.uploadInBackground(uid, metrics)
	})
}
