package hostenv

import "context"

// KillTreeProbe reports whether the host can forcibly terminate a process together with all of
// its descendants. When it cannot, reason explains why.
type KillTreeProbe func(ctx context.Context) (supported bool, reason string)
