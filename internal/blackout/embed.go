package blackout

import (
	"encoding/json"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// recoveryKey is the snapshot field holding the recovery block
const recoveryKey = "blackout_recovery"

// EmbedRecoveryMetadata writes the recovery block into the pricing
// snapshot, preserving every other field. A malformed or empty snapshot is
// replaced by one that carries only the block: losing pricing detail is
// better than losing the reschedule entitlement.
func EmbedRecoveryMetadata(snapshot []byte, meta *domain.BlackoutRecoveryMetadata) (json.RawMessage, error) {
	fields := decodeFields(snapshot)

	block, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	fields[recoveryKey] = block

	return json.Marshal(fields)
}

// StripRecoveryMetadata removes the recovery block from the snapshot.
// Called when a reschedule commits and the entitlement is spent.
func StripRecoveryMetadata(snapshot []byte) json.RawMessage {
	fields := decodeFields(snapshot)
	if _, ok := fields[recoveryKey]; !ok && len(snapshot) > 0 {
		return snapshot
	}
	delete(fields, recoveryKey)

	out, err := json.Marshal(fields)
	if err != nil {
		return snapshot
	}
	return out
}

func decodeFields(snapshot []byte) map[string]json.RawMessage {
	fields := make(map[string]json.RawMessage)
	if len(snapshot) > 0 {
		// Best effort, a fresh map on failure
		_ = json.Unmarshal(snapshot, &fields)
	}
	return fields
}
