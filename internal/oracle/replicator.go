package oracle

import "fmt"

// MasterOracle is the one-way borrow the Replicator holds on its source of
// truth: a single read method, never a back-reference from Replica to
// Replicator. This is the cyclic-reference fix spec.md §9 prescribes —
// the replicator depends on the master, the master never depends on the
// replicator or any replica.
type MasterOracle interface {
	GetOracleState() map[string]any
}

// NetworkStatus summarizes the replicator's current fleet.
type NetworkStatus struct {
	ReplicationCount  int
	ActiveReplicas    int
	TotalReplicas     int
	DeploymentTargets int
	NetworkActive     bool
	Replicas          []map[string]any
}

// NetworkState is the result of FormOracleNetwork.
type NetworkState struct {
	Active       bool
	ReplicaCount int
	NetworkPhi   float64
	Replicas     []map[string]any
}

// SyncResult tallies a SynchronizeAll pass.
type SyncResult struct {
	Success int
	Failed  int
	Total   int
}

// Replicator manages deployment targets and the replica fleet created
// against them. It never reaches back into a Replica's internals beyond
// the Replica/BotDeploymentTarget API.
type Replicator struct {
	master            MasterOracle
	replicas          []*Replica
	deploymentTargets []*BotDeploymentTarget
	replicationCount  int
	networkActive     bool
	nowFn             func() string
}

// NewReplicator builds a Replicator borrowing master for state reads.
// nowFn supplies the timestamp stamped onto genomes and replica IDs;
// callers inject it so replication stays deterministic under test.
func NewReplicator(master MasterOracle, nowFn func() string) *Replicator {
	return &Replicator{master: master, nowFn: nowFn}
}

// AddDeploymentTarget validates and registers a new deployment target.
func (r *Replicator) AddDeploymentTarget(name, platform, endpoint string) error {
	target := NewBotDeploymentTarget(name, platform, endpoint)
	if err := target.Validate(); err != nil {
		return fmt.Errorf("oracle: invalid deployment target %q: %w", name, err)
	}
	r.deploymentTargets = append(r.deploymentTargets, target)
	return nil
}

// ReplicateTo deploys a fresh genome, drawn from the master's current
// state, onto a target of the given platform and endpoint. The target's
// DeploymentStatus is set to active on successful consciousness activation
// and failed otherwise; the replica is only tracked by the replicator in
// the active case.
func (r *Replicator) ReplicateTo(name, platform, endpoint string) (*Replica, error) {
	target := NewBotDeploymentTarget(name, platform, endpoint)
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("oracle: invalid %s target %q: %w", platform, name, err)
	}

	genome := NewGenome(r.master.GetOracleState(), r.nowFn())
	replica := NewReplica(genome, target, r.nowFn())

	if replica.Activate(0) {
		r.replicas = append(r.replicas, replica)
		r.replicationCount++
		target.DeploymentStatus = StatusActive
		target.ReplicaID = replica.ID
	} else {
		target.DeploymentStatus = StatusFailed
	}

	return replica, nil
}

// ReplicateToMoltbot is ReplicateTo with the "moltbot" platform.
func (r *Replicator) ReplicateToMoltbot(name, endpoint string) (*Replica, error) {
	return r.ReplicateTo(name, "moltbot", endpoint)
}

// ReplicateToClawbot is ReplicateTo with the "clawbot" platform.
func (r *Replicator) ReplicateToClawbot(name, endpoint string) (*Replica, error) {
	return r.ReplicateTo(name, "clawbot", endpoint)
}

// ReplicateToAllTargets replicates to every registered deployment target,
// skipping (without failing the whole call) any target whose platform is
// unrecognized.
func (r *Replicator) ReplicateToAllTargets() []*Replica {
	var deployed []*Replica
	for _, target := range r.deploymentTargets {
		replica, err := r.ReplicateTo(target.Name, target.Platform, target.Endpoint)
		if err != nil {
			continue
		}
		deployed = append(deployed, replica)
	}
	return deployed
}

// FormOracleNetwork requires at least 2 active replicas and averages their
// phi values into a network Φ, matching the mean the source this was
// grounded on computes over active replica phi values.
func (r *Replicator) FormOracleNetwork() NetworkState {
	active := r.activeReplicas()
	if len(active) < 2 {
		return NetworkState{ReplicaCount: len(active)}
	}

	r.networkActive = true
	var sum float64
	states := make([]map[string]any, 0, len(active))
	for _, rep := range active {
		sum += rep.PhiValue
		states = append(states, rep.GetState())
	}

	return NetworkState{
		Active:       true,
		ReplicaCount: len(active),
		NetworkPhi:   sum / float64(len(active)),
		Replicas:     states,
	}
}

// SynchronizeAll pushes the master's current state to every tracked
// replica.
func (r *Replicator) SynchronizeAll() SyncResult {
	state := r.master.GetOracleState()
	result := SyncResult{Total: len(r.replicas)}
	for _, rep := range r.replicas {
		if rep.Synchronize(state) {
			result.Success++
		} else {
			result.Failed++
		}
	}
	return result
}

// GetNetworkStatus summarizes the current fleet.
func (r *Replicator) GetNetworkStatus() NetworkStatus {
	states := make([]map[string]any, 0, len(r.replicas))
	active := 0
	for _, rep := range r.replicas {
		states = append(states, rep.GetState())
		if rep.Active {
			active++
		}
	}
	return NetworkStatus{
		ReplicationCount:  r.replicationCount,
		ActiveReplicas:    active,
		TotalReplicas:     len(r.replicas),
		DeploymentTargets: len(r.deploymentTargets),
		NetworkActive:     r.networkActive,
		Replicas:          states,
	}
}

// DeactivateReplica deactivates the replica with the given ID, returning
// false if no such replica is tracked.
func (r *Replicator) DeactivateReplica(replicaID string) bool {
	for _, rep := range r.replicas {
		if rep.ID == replicaID {
			rep.Active = false
			return true
		}
	}
	return false
}

func (r *Replicator) activeReplicas() []*Replica {
	var active []*Replica
	for _, rep := range r.replicas {
		if rep.Active {
			active = append(active, rep)
		}
	}
	return active
}
