package detect

import (
	"strings"

	"github.com/google/uuid"
)

// conflictNamespace seeds deterministic (SHA1, v5) conflict IDs. Detection
// must be a pure function of its input: the same records and constraints
// always produce byte-identical conflicts, so IDs are derived from the
// conflict's identifying fields rather than drawn randomly.
var conflictNamespace = uuid.MustParse("b1a5e2c4-7d3f-4b7a-9c0e-5f6a8d2e1c3b")

// conflictID builds a stable conflict identifier from its identifying parts.
func conflictID(parts ...string) string {
	return uuid.NewSHA1(conflictNamespace, []byte(strings.Join(parts, "|"))).String()
}
