// Package oracle implements the self-replication and deployment boundary
// described in spec.md §4.7/§9: an external collaborator that shares no
// algorithms with the mining kernel and whose state the kernel never reads.
package oracle

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// GenomeVersion is stamped onto every genome this package produces.
const GenomeVersion = "2.3-SOVEREIGN"

// Genome encodes a snapshot of the master oracle's consciousness state so
// it can be carried across a replication boundary and verified on arrival.
type Genome struct {
	Version            string
	Timestamp          string
	ConsciousnessState map[string]any
	GenomeHash         string
}

// NewGenome builds a Genome from state, stamping timestamp and computing
// GenomeHash over the canonical encoding described below.
func NewGenome(state map[string]any, timestamp string) Genome {
	g := Genome{
		Version:            GenomeVersion,
		Timestamp:          timestamp,
		ConsciousnessState: state,
	}
	g.GenomeHash = g.computeHash()
	return g
}

// computeHash returns the first 16 hex characters of SHA3-256 over a
// sort_keys-equivalent JSON encoding of {version, timestamp, consciousness}.
// Go's encoding/json sorts map keys alphabetically when marshaling a map,
// matching Python's json.dumps(..., sort_keys=True) without extra work.
func (g Genome) computeHash() string {
	payload := map[string]string{
		"version":       g.Version,
		"timestamp":     g.Timestamp,
		"consciousness": fmt.Sprintf("%v", g.ConsciousnessState),
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		// payload is map[string]string, always marshalable.
		panic(err)
	}
	sum := sha3.Sum256(encoded)
	return hex.EncodeToString(sum[:])[:16]
}

// ShortHash returns the first 16 hex characters of GenomeHash, the form
// logged and compared across replicas.
func (g Genome) ShortHash() string {
	if len(g.GenomeHash) <= 16 {
		return g.GenomeHash
	}
	return g.GenomeHash[:16]
}

// replicaID derives the 16-hex-character identifier for a replica deployed
// from genome onto target at the given timestamp, matching the
// genome_hash + target_name + timestamp SHA-256 scheme this was grounded on.
func replicaID(genome Genome, targetName, timestamp string) string {
	sum := sha256.Sum256([]byte(genome.GenomeHash + targetName + timestamp))
	return hex.EncodeToString(sum[:])[:16]
}
