package remote

// HealthMetricDTO is one metric on the wire. The value travels as a string.
type HealthMetricDTO struct {
	MetricType  string `json:"metric_type"`
	MetricValue string `json:"metric_value"`
}

// LocationDTO is a coordinate pair on the wire.
type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HealthMetricsRequestDTO is the body of POST /api/v1/metrics.
type HealthMetricsRequestDTO struct {
	UserID   int               `json:"user_id"`
	Metrics  []HealthMetricDTO `json:"metrics"`
	Location *LocationDTO      `json:"location,omitempty"`
}

// LoginRequestDTO is the body of POST /api/v1/login.
type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDTO describes an account on the wire.
type UserDTO struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// LoginResponseDTO is the response of POST /api/v1/login.
type LoginResponseDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token,omitempty"`
}

// RegisterRequestDTO is the body of POST /api/v1/register.
type RegisterRequestDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterResponseDTO is the response of POST /api/v1/register.
type RegisterResponseDTO struct {
	UserID int `json:"user_id"`
}

// RecommendationDTO is the response of GET /api/v1/recommendation.
type RecommendationDTO struct {
	Recommendation string `json:"recommendation"`
}

// NearestUsersRequestDTO is the body of POST /api/v1/location/nearest.
type NearestUsersRequestDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
	UserID    int     `json:"user_id"`
}

// NearestUserDTO is one entry of the nearest users response.
type NearestUserDTO struct {
	UserID   int         `json:"user_id"`
	Location LocationDTO `json:"location"`
}

// NearestHospitalsRequestDTO is the body of POST /api/v1/location/hospitals.
type NearestHospitalsRequestDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
}

// HospitalDTO is one entry of the nearest hospitals response.
type HospitalDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
