package presenter

import "dockify/internal/domain"

const unexpectedError = "An unexpected error occurred."

var networkMessages = map[domain.NetworkError]string{
	domain.NetworkNoInternet:         "No internet connection. Please check your network.",
	domain.NetworkRequestTimeout:     "Request timed out. Please try again.",
	domain.NetworkServerError:        "Server error. Please try again later.",
	domain.NetworkSerializationError: "Unable to process data.",
	domain.NetworkUnknown:            unexpectedError,
}

var authMessages = map[domain.AuthError]string{
	domain.AuthInvalidCredentials: "Invalid email or password.",
	domain.AuthUserNotFound:       "User not found.",
	domain.AuthUserAlreadyExists:  "An account with this email already exists.",
	domain.AuthSessionExpired:     "Your session has expired. Please log in again.",
	domain.AuthInvalidToken:       "Authentication error. Please log in again.",
	domain.AuthUnauthorized:       "You are not authorized to perform this action.",
}

var healthMessages = map[domain.HealthError]string{
	domain.HealthPermissionDenied:    "Health data access denied. Please enable permissions.",
	domain.HealthConnectNotAvailable: "Health Connect is not available on this device.",
	domain.HealthKitNotAvailable:     "HealthKit is not available on this device.",
	domain.HealthDataNotFound:        "No health data found.",
	domain.HealthSyncFailed:          "Failed to sync health data.",
	domain.HealthInvalidDataFormat:   "Invalid health data format.",
}

var locationMessages = map[domain.LocationError]string{
	domain.LocationPermissionDenied: "Location permission denied.",
	domain.LocationGPSDisabled:      "GPS is disabled. Please enable location services.",
	domain.LocationUnavailable:      "Unable to determine your location.",
	domain.LocationTimeout:          "Location request timed out.",
}

var localMessages = map[domain.LocalError]string{
	domain.LocalStorageFull: "Device storage is full.",
	domain.LocalReadError:   "Unable to read data from storage.",
	domain.LocalWriteError:  "Unable to save data.",
	domain.LocalNotFound:    "Data not found.",
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err domain.DataError) string {
	var (
		msg string
		ok  bool
	)
	switch e := err.(type) {
	case domain.NetworkError:
		msg, ok = networkMessages[e]
	case domain.AuthError:
		msg, ok = authMessages[e]
	case domain.HealthError:
		msg, ok = healthMessages[e]
	case domain.LocationError:
		msg, ok = locationMessages[e]
	case domain.LocalError:
		msg, ok = localMessages[e]
	}
	if !ok {
		return unexpectedError
	}
	return msg
}
