//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shipsplit-api"
	ConsumerName = "ops-portal"

	StateInventorySeeded = "inventory records seeded"
	StateBatchImportable = "an order batch awaits import"
)

const (
	ExampleResourceURL = "https://ssapi.shipstation.com/orders?importBatch=pact-batch-1"
	ExampleOrderNumber = "1001"
	ExampleSKU         = "DRA-100"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the ops portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleInventoryRecord provides stable test data for inventory interactions.
func ExampleInventoryRecord() map[string]any {
	return map[string]any{
		"SKU":       ExampleSKU,
		"Name":      "Band Tee",
		"Available": 12,
		"Location":  "A1-03",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
