// server/internal/loads/portcode.go
package loads

import (
	"fmt"
	"time"
)

// GeneratePortCode builds the human-readable sequential identifier in the
// exact format GSL-{2-digit-year}-{3-digit-zero-padded-sequence}.
// The sequence is derived from the current stored load count + 1, which is
// only collision-free under a single writer. Known limitation, accepted:
// loads also carry an opaque uuid that is the real identity.
func GeneratePortCode(now time.Time, sequence int64) string {
	return fmt.Sprintf("GSL-%02d-%03d", now.Year()%100, sequence)
}
