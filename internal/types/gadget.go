package types

import (
  "time"
  "github.com/google/uuid"
)

type GadgetStatus string

const (
  GadgetStatusAvailable      GadgetStatus = "Available"
  GadgetStatusDeployed       GadgetStatus = "Deployed"
  GadgetStatusDestroyed      GadgetStatus = "Destroyed"
  GadgetStatusDecommissioned GadgetStatus = "Decommissioned"
)

// ParseGadgetStatus validates a raw status string. The zero value and
// unknown strings both return ok=false.
func ParseGadgetStatus(raw string) (GadgetStatus, bool) {
  switch GadgetStatus(raw) {
  case GadgetStatusAvailable, GadgetStatusDeployed, GadgetStatusDestroyed, GadgetStatusDecommissioned:
    return GadgetStatus(raw), true
  }
  return "", false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s GadgetStatus) IsTerminal() bool {
  return s == GadgetStatusDestroyed || s == GadgetStatusDecommissioned
}

var validTransitions = map[GadgetStatus][]GadgetStatus{
  GadgetStatusAvailable:      {GadgetStatusDeployed, GadgetStatusDestroyed, GadgetStatusDecommissioned},
  GadgetStatusDeployed:       {GadgetStatusDestroyed, GadgetStatusDecommissioned},
  GadgetStatusDestroyed:      {},
  GadgetStatusDecommissioned: {},
}

// CanTransitionTo reports whether the lifecycle graph allows moving from s
// to next. Requesting the current state again is not a valid transition.
func (s GadgetStatus) CanTransitionTo(next GadgetStatus) bool {
  for _, allowed := range validTransitions[s] {
    if allowed == next {
      return true
    }
  }
  return false
}

type Gadget struct {
  ID                        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  Name                      string          `gorm:"not null;column:name" json:"name"`
  Codename                  string          `gorm:"uniqueIndex;not null;column:codename" json:"codename"`
  Status                    GadgetStatus    `gorm:"type:varchar(32);not null;column:status" json:"status"`
  MissionSuccessProbability int             `gorm:"not null;column:mission_success_probability" json:"mission_success_probability"`
  DecommissionedAt          *time.Time      `gorm:"column:decommissioned_at" json:"decommissioned_at,omitempty"`
  CreatedBy                 uuid.UUID       `gorm:"type:uuid;index;column:created_by" json:"created_by,omitempty"`
  CreatedAt                 time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt                 time.Time       `gorm:"not null" json:"updated_at"`
}

func (Gadget) TableName() string {
  return "gadget"
}
