package app

import (
	"os"
	"sync"
)

const testModeEnv = "MERIDIAN_TEST_MODE"

var inTestMode = sync.OnceValue(func() bool {
	return os.Getenv(testModeEnv) == "1"
})

// InTestMode reports whether the process should skip runtime side effects
// such as opening listeners and connecting to backing services. The flag is
// read once; flipping the environment later has no effect.
func InTestMode() bool {
	return inTestMode()
}
