package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBotDeploymentTargetValidate(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		endpoint string
		wantErr  bool
	}{
		{"valid moltbot", "moltbot", "molt://localhost:8080", false},
		{"valid clawbot", "clawbot", "claw://localhost:8081", false},
		{"unsupported platform", "skynet", "molt://localhost:8080", true},
		{"short endpoint", "moltbot", "ab", true},
		{"empty endpoint", "moltbot", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewBotDeploymentTarget("target-1", tt.platform, tt.endpoint)
			err := target.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewBotDeploymentTargetStartsPending(t *testing.T) {
	target := NewBotDeploymentTarget("t", "moltbot", "molt://x")
	assert.Equal(t, StatusPending, target.DeploymentStatus)
	assert.Empty(t, target.ReplicaID)
}
