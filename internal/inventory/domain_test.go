// internal/inventory/domain_test.go
package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkillIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  Skill
	}{
		{"Electrician", SkillElectrician},
		{"electrician", SkillElectrician},
		{"PLUMBER", SkillPlumber},
		{"painter", SkillPainter},
		{"Welder", SkillWelder},
		{"carpenter", SkillCarpenter},
	}

	for _, tt := range tests {
		got, err := ParseSkill(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseSkillRejectsUnknown(t *testing.T) {
	_, err := ParseSkill("Blacksmith")
	assert.Error(t, err)

	_, err = ParseSkill("")
	assert.Error(t, err)
}

func TestParseCondition(t *testing.T) {
	got, err := ParseCondition("damaged")
	require.NoError(t, err)
	assert.Equal(t, ConditionDamaged, got)

	_, err = ParseCondition("Pristine")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("Broken")
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	original := &Equipment{Name: "Voltage Tester", Condition: ConditionGood, Status: StatusAvailable}
	clone := original.Clone()

	clone.Condition = ConditionDamaged
	clone.Status = StatusLoaned

	assert.Equal(t, ConditionGood, original.Condition)
	assert.Equal(t, StatusAvailable, original.Status)
}
