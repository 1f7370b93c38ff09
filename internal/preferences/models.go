package preferences

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stitts-dev/weather-caddie/internal/course"
)

// Preferences is the single record of last-used inputs. It is overwritten
// wholesale after every successful advice computation.
type Preferences struct {
	Key           string    `gorm:"primaryKey;column:pref_key;size:32" json:"-"`
	DriverCarry   float64   `json:"driver"`
	IronCarry     float64   `json:"iron"`
	LastBearing   *float64  `json:"last_bearing,omitempty"`
	ActiveProfile string    `gorm:"size:64" json:"active_profile,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Preferences) TableName() string {
	return "caddie_preferences"
}

// ActiveRound is the round in progress.
type ActiveRound struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	StartedAt    time.Time  `gorm:"not null;index" json:"started_at"`
	Course       string     `gorm:"not null" json:"course"`
	Tee          string     `gorm:"not null" json:"tee"`
	Holes        RoundHoles `gorm:"type:text" json:"holes"`
	GoalScore    int        `json:"goal_score"`
	PlanFirst3   string     `json:"plan_first_3"`
	ProfileOwner string     `json:"profile_owner"`
	ProfileClubs int        `json:"profile_clubs"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ActiveRound) TableName() string {
	return "caddie_rounds"
}

// RoundHoles is the tee's hole list, stored as JSON.
type RoundHoles []course.TeeHole

// Value implements driver.Valuer for database storage
func (h RoundHoles) Value() (driver.Value, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (h *RoundHoles) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RoundHoles", value)
	}
	return json.Unmarshal(data, h)
}
