// internal/inventory/domain.go
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Skill is an employee trade classification. Equipment carries the skill
// required to use it, and an employee may only order equipment whose
// required skill matches their own exactly.
type Skill string

const (
	SkillElectrician Skill = "Electrician"
	SkillPlumber     Skill = "Plumber"
	SkillPainter     Skill = "Painter"
	SkillWelder      Skill = "Welder"
	SkillCarpenter   Skill = "Carpenter"
)

// Skills lists every recognized skill classification.
var Skills = []Skill{SkillElectrician, SkillPlumber, SkillPainter, SkillWelder, SkillCarpenter}

// ParseSkill converts a case-insensitive string to the corresponding Skill.
func ParseSkill(value string) (Skill, error) {
	for _, s := range Skills {
		if strings.EqualFold(string(s), value) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown skill classification: %q", value)
}

// Condition describes the physical state of a piece of equipment. The
// employee is prompted to select one when returning equipment.
type Condition string

const (
	ConditionGood    Condition = "Good"
	ConditionDamaged Condition = "Damaged"
	ConditionLost    Condition = "Lost"
)

// Conditions lists every recognized equipment condition.
var Conditions = []Condition{ConditionGood, ConditionDamaged, ConditionLost}

// ParseCondition converts a case-insensitive string to the corresponding Condition.
func ParseCondition(value string) (Condition, error) {
	for _, c := range Conditions {
		if strings.EqualFold(string(c), value) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown equipment condition: %q", value)
}

// Status describes where a piece of equipment sits in the checkout flow.
type Status string

const (
	StatusAvailable Status = "Available" // returned and ready for use
	StatusLoaned    Status = "Loaned"    // currently checked out
	StatusOrdered   Status = "Ordered"   // reserved by a confirmed order
	StatusLost      Status = "Lost"
)

// Statuses lists every recognized equipment status.
var Statuses = []Status{StatusAvailable, StatusLoaned, StatusOrdered, StatusLost}

// ParseStatus converts a case-insensitive string to the corresponding Status.
func ParseStatus(value string) (Status, error) {
	for _, s := range Statuses {
		if strings.EqualFold(string(s), value) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown equipment status: %q", value)
}

// Equipment represents one physical item in the workshop. Status and
// condition are mutated only through the checkout and order operations,
// never directly by callers.
type Equipment struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Condition     Condition `json:"condition"`
	Status        Status    `json:"status"`
	RequiredSkill Skill     `json:"required_skill"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Clone returns a shallow copy of the equipment.
func (e *Equipment) Clone() *Equipment {
	cp := *e
	return &cp
}
