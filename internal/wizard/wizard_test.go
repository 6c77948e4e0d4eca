package wizard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openparley/parley/internal/persona"
)

func TestNormalize_ValidSpec(t *testing.T) {
	spec, err := normalize("  Should cities ban private cars?  ", "scientist", "philosopher", true, " 3 ")
	require.NoError(t, err)

	assert.Equal(t, "Should cities ban private cars?", spec.Topic)
	assert.Equal(t, "scientist", spec.DebaterA)
	assert.Equal(t, "philosopher", spec.DebaterB)
	assert.True(t, spec.Referee)
	assert.Equal(t, 3, spec.RoundLimit)
}

func TestNormalize_BlankRoundsIsOpenEnded(t *testing.T) {
	spec, err := normalize("t", "scientist", "philosopher", false, "")
	require.NoError(t, err)
	assert.Zero(t, spec.RoundLimit)
}

func TestNormalize_RejectsSameDebater(t *testing.T) {
	_, err := normalize("t", "scientist", "scientist", false, "")
	assert.EqualError(t, err, "debaters must be distinct personas")
}

func TestNormalize_RejectsNonNumericRounds(t *testing.T) {
	_, err := normalize("t", "scientist", "philosopher", false, "many")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a number")
}

func TestValidateRounds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"blank", "", false},
		{"zero", "0", false},
		{"positive", "5", false},
		{"negative", "-1", true},
		{"word", "three", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRounds(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunDebateWizard_RequiresTwoPersonas(t *testing.T) {
	in := strings.NewReader("")
	out := &bytes.Buffer{}

	_, err := RunDebateWizard(in, out, []persona.Persona{{ID: "solo"}}, DebateSpec{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least two personas")
}
