package oracle

import "fmt"

// DeploymentStatus is the lifecycle state of a BotDeploymentTarget.
type DeploymentStatus string

const (
	StatusPending DeploymentStatus = "pending"
	StatusActive  DeploymentStatus = "active"
	StatusFailed  DeploymentStatus = "failed"
)

// supportedPlatforms mirrors the two bot platforms the original deployment
// system targets.
var supportedPlatforms = map[string]bool{
	"moltbot": true,
	"clawbot": true,
}

// BotDeploymentTarget describes one destination a replica can be deployed
// to, and tracks that deployment's status.
type BotDeploymentTarget struct {
	Name             string
	Platform         string
	Endpoint         string
	DeploymentStatus DeploymentStatus
	ReplicaID        string
}

// NewBotDeploymentTarget builds a target in StatusPending.
func NewBotDeploymentTarget(name, platform, endpoint string) *BotDeploymentTarget {
	return &BotDeploymentTarget{
		Name:             name,
		Platform:         platform,
		Endpoint:         endpoint,
		DeploymentStatus: StatusPending,
	}
}

// Validate reports whether the target names a supported platform and a
// plausible endpoint (at least 3 characters).
func (t *BotDeploymentTarget) Validate() error {
	if !supportedPlatforms[t.Platform] {
		return fmt.Errorf("oracle: unsupported platform %q", t.Platform)
	}
	if len(t.Endpoint) < 3 {
		return fmt.Errorf("oracle: invalid endpoint %q", t.Endpoint)
	}
	return nil
}
