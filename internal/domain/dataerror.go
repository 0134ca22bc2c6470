package domain

import (
	"errors"
	"fmt"
)

// Category names one branch of the DataError taxonomy.
type Category string

// Error categories.
const (
	CategoryNetwork  Category = "network"
	CategoryAuth     Category = "auth"
	CategoryHealth   Category = "health"
	CategoryLocation Category = "location"
	CategoryLocal    Category = "local"
)

// DataError is the closed set of failures that may cross a repository
// boundary. Only the five enum types declared in this file implement it.
type DataError interface {
	error
	Category() Category
	Code() string
	dataError()
}

// NetworkError covers failures talking to the backend.
type NetworkError int

// Network errors.
const (
	NetworkNoInternet NetworkError = iota
	NetworkRequestTimeout
	NetworkServerError
	NetworkSerializationError
	NetworkUnknown
)

var networkCodes = [...]string{"NO_INTERNET", "REQUEST_TIMEOUT", "SERVER_ERROR", "SERIALIZATION_ERROR", "UNKNOWN"}

// AuthError covers authentication and session failures.
type AuthError int

// Auth errors.
const (
	AuthInvalidCredentials AuthError = iota
	AuthUserNotFound
	AuthUserAlreadyExists
	AuthSessionExpired
	AuthInvalidToken
	AuthUnauthorized
)

var authCodes = [...]string{"INVALID_CREDENTIALS", "USER_NOT_FOUND", "USER_ALREADY_EXISTS", "SESSION_EXPIRED", "INVALID_TOKEN", "UNAUTHORIZED"}

// HealthError covers failures of the platform health API and syncing.
type HealthError int

// Health errors.
const (
	HealthPermissionDenied HealthError = iota
	HealthConnectNotAvailable
	HealthKitNotAvailable
	HealthDataNotFound
	HealthSyncFailed
	HealthInvalidDataFormat
)

var healthCodes = [...]string{"PERMISSION_DENIED", "HEALTH_CONNECT_NOT_AVAILABLE", "HEALTHKIT_NOT_AVAILABLE", "DATA_NOT_FOUND", "SYNC_FAILED", "INVALID_DATA_FORMAT"}

// LocationError covers failures of the platform location API.
type LocationError int

// Location errors.
const (
	LocationPermissionDenied LocationError = iota
	LocationGPSDisabled
	LocationUnavailable
	LocationTimeout
)

var locationCodes = [...]string{"PERMISSION_DENIED", "GPS_DISABLED", "LOCATION_UNAVAILABLE", "TIMEOUT"}

// LocalError covers failures of on-device storage and caches.
type LocalError int

// Local errors.
const (
	LocalStorageFull LocalError = iota
	LocalReadError
	LocalWriteError
	LocalNotFound
)

var localCodes = [...]string{"STORAGE_FULL", "READ_ERROR", "WRITE_ERROR", "NOT_FOUND"}

func code(codes []string, i int) string {
	if i < 0 || i >= len(codes) {
		return fmt.Sprintf("UNKNOWN(%d)", i)
	}
	return codes[i]
}

func (e NetworkError) Category() Category { return CategoryNetwork }
func (e NetworkError) Code() string       { return code(networkCodes[:], int(e)) }
func (e NetworkError) Error() string      { return string(e.Category()) + ": " + e.Code() }
func (NetworkError) dataError()           {}

func (e AuthError) Category() Category { return CategoryAuth }
func (e AuthError) Code() string       { return code(authCodes[:], int(e)) }
func (e AuthError) Error() string      { return string(e.Category()) + ": " + e.Code() }
func (AuthError) dataError()           {}

func (e HealthError) Category() Category { return CategoryHealth }
func (e HealthError) Code() string       { return code(healthCodes[:], int(e)) }
func (e HealthError) Error() string      { return string(e.Category()) + ": " + e.Code() }
func (HealthError) dataError()           {}

func (e LocationError) Category() Category { return CategoryLocation }
func (e LocationError) Code() string       { return code(locationCodes[:], int(e)) }
func (e LocationError) Error() string      { return string(e.Category()) + ": " + e.Code() }
func (LocationError) dataError()           {}

func (e LocalError) Category() Category { return CategoryLocal }
func (e LocalError) Code() string       { return code(localCodes[:], int(e)) }
func (e LocalError) Error() string      { return string(e.Category()) + ": " + e.Code() }
func (LocalError) dataError()           {}

// AllDataErrors lists every member of the taxonomy.
func AllDataErrors() []DataError {
	var all []DataError
	for i := range networkCodes {
		all = append(all, NetworkError(i))
	}
	for i := range authCodes {
		all = append(all, AuthError(i))
	}
	for i := range healthCodes {
		all = append(all, HealthError(i))
	}
	for i := range locationCodes {
		all = append(all, LocationError(i))
	}
	for i := range localCodes {
		all = append(all, LocalError(i))
	}
	return all
}

// AsDataError extracts a DataError from err's chain.
func AsDataError(err error) (DataError, bool) {
	var de DataError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
