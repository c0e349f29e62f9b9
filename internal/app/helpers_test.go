package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// SafeBuffer captures log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

var fixedTime = time.Date(2024, time.March, 17, 12, 30, 0, 0, time.UTC)

// setupAppTest builds an App with debug logging and a pinned clock.
func setupAppTest(t *testing.T, cfg Config) (*App, *SafeBuffer) {
	t.Helper()

	config, err := NewConfig(cfg)
	require.NoError(t, err)
	config.LogLevel = "debug"

	logBuffer := &SafeBuffer{}
	testApp := NewApp(logBuffer, config, WithClock(func() time.Time { return fixedTime }))

	t.Cleanup(func() {
		if os.Getenv("TILED2MAP_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up %s", name)
	return path
}

const map2x2 = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" width="2" height="2" tilewidth="8" tileheight="8">
 <layer id="1" name="Ground" width="2" height="2">
  <data encoding="csv">
1,2,
3,4
</data>
 </layer>
</map>
`
