package integration_test

import (
	"log"
	"os"
	"sync"
	"testing"

	"fintrack_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	globalUploadDir  string
	serverOnce       sync.Once
)

// GetTestServer lazily starts one shared server for the whole suite. Tests
// run in parallel against it and isolate themselves with unique emails.
func GetTestServer(t *testing.T) *helpers.TestServer {
	serverOnce.Do(func() {
		dir, err := os.MkdirTemp("", "fintrack-uploads-*")
		if err != nil {
			t.Fatalf("failed to create upload dir: %v", err)
		}
		globalUploadDir = dir

		log.Println("--- [GetTestServer] Initializing test server... ---")
		globalTestServer = helpers.NewTestServer(t, dir)
		log.Println("--- [GetTestServer] Test server ready ---")
	})
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		log.Println("--- [TestMain] Cleaning up... ---")
		globalTestServer.Close()
	}
	if globalUploadDir != "" {
		os.RemoveAll(globalUploadDir)
	}

	os.Exit(code)
}
