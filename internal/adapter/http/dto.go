package adapthttp

import (
	"strconv"
	"time"

	"dockify/internal/domain"
)

type metricDTO struct {
	MetricType  string `json:"metric_type"`
	MetricValue string `json:"metric_value"`
}

type locationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l locationDTO) toDomain() domain.Location {
	return domain.Location{Latitude: l.Latitude, Longitude: l.Longitude}
}

type userDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func toUserDTO(a *domain.Account) userDTO {
	return userDTO{
		ID:        a.ID,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type loginResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

type uploadRequest struct {
	UserID   int64        `json:"user_id"`
	Metrics  []metricDTO  `json:"metrics"`
	Location *locationDTO `json:"location,omitempty"`
}

type nearestRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
	UserID    int64   `json:"user_id"`
}

type nearestUserDTO struct {
	UserID   int64       `json:"user_id"`
	Location locationDTO `json:"location"`
}

func toMetricDTOs(records []domain.MetricRecord) []metricDTO {
	out := make([]metricDTO, 0, len(records))
	for _, r := range records {
		out = append(out, metricDTO{
			MetricType:  string(r.Type),
			MetricValue: strconv.FormatFloat(r.Value, 'f', -1, 64),
		})
	}
	return out
}
