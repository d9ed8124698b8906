package ioc

import (
	"time"
)

// ResolveHook observes every top-level resolution, successful or not.
type ResolveHook func(contract string, duration time.Duration, err error)

// RegisterHook observes every binding that was actually stored. Ignored
// duplicates are not reported.
type RegisterHook func(contract, target string)
