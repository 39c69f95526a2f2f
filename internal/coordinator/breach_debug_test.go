//go:build rosterdebug

package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestAddParticipantMissingEntityPanics(t *testing.T) {
	c := seeded(t)

	assert.Panics(t, func() {
		_ = c.AddParticipant("ghost@example.com", meetingID, types.StatusUnknown)
	})
}
