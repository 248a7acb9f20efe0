package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("STOREFRONT_CONFIG_PATH", path)
	t.Setenv("STOREFRONT_MEDIA_BASE_URL", "")
	t.Setenv("STOREFRONT_DOCSTORE_BASE_URL", "")
	return path
}

func TestConfigureWritesAppConfig(t *testing.T) {
	path := isolateConfig(t)
	deps, _ := testDependencies()

	code, stdout, _ := runCLI(t, deps,
		"configure",
		"--media-base-url", "https://media.test",
		"--docstore-base-url", "https://docs.test",
	)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (output %q)", code, stdout)
	}
	if !strings.Contains(stdout, "Configuration written to "+path) {
		t.Fatalf("expected confirmation with path, got %q", stdout)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(payload), "media-base-url: https://media.test") {
		t.Fatalf("unexpected config payload %q", payload)
	}
}

func TestConfigureRequiresBothBaseURLs(t *testing.T) {
	isolateConfig(t)
	deps, _ := testDependencies()

	code, _, stderr := runCLI(t, deps, "configure", "--media-base-url", "https://media.test")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "--docstore-base-url") {
		t.Fatalf("expected missing flag in message, got %q", stderr)
	}
}

func TestConfigureCreatesFirstProfileAsDefault(t *testing.T) {
	isolateConfig(t)
	deps, _ := testDependencies()

	code, stdout, _ := runCLI(t, deps,
		"configure",
		"--name", "Max",
		"--phone", "0511",
	)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (output %q)", code, stdout)
	}
	if !strings.Contains(stdout, "Profile 'Default' created.") {
		t.Fatalf("expected creation message, got %q", stdout)
	}

	profiles, err := deps.Profiles.Load(context.Background())
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	if len(profiles.Entries) != 1 || !profiles.Entries[0].IsDefault {
		t.Fatalf("expected a single default profile, got %+v", profiles.Entries)
	}
	if profiles.Entries[0].CustomerName != "Max" {
		t.Fatalf("unexpected profile %+v", profiles.Entries[0])
	}
}

func TestConfigureMergesIntoExistingProfile(t *testing.T) {
	isolateConfig(t)
	deps, _ := testDependencies()

	if code, _, _ := runCLI(t, deps, "configure", "--name", "Max", "--phone", "0511"); code != 0 {
		t.Fatal("seed profile creation failed")
	}
	code, stdout, _ := runCLI(t, deps, "configure", "--phone", "0512")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (output %q)", code, stdout)
	}
	if !strings.Contains(stdout, "Profile 'Default' updated.") {
		t.Fatalf("expected update message, got %q", stdout)
	}

	profiles, err := deps.Profiles.Load(context.Background())
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	profile := profiles.Entries[0]
	if profile.Phone != "0512" {
		t.Fatalf("expected updated phone, got %q", profile.Phone)
	}
	if profile.CustomerName != "Max" {
		t.Fatalf("untouched fields must survive a merge, got %+v", profile)
	}
}

func TestConfigureSwitchesDefaultProfile(t *testing.T) {
	isolateConfig(t)
	deps, _ := testDependencies()

	if code, _, _ := runCLI(t, deps, "configure", "--name", "Max"); code != 0 {
		t.Fatal("seed profile creation failed")
	}
	code, _, _ := runCLI(t, deps,
		"configure",
		"--profile-name", "Work",
		"--name", "Maxine",
		"--default",
	)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	profiles, err := deps.Profiles.Load(context.Background())
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	found, err := profiles.Find("")
	if err != nil {
		t.Fatalf("find default: %v", err)
	}
	if found.Name != "Work" {
		t.Fatalf("expected Work as the new default, got %+v", found)
	}
}

func TestConfigureWithoutFlags(t *testing.T) {
	isolateConfig(t)
	deps, _ := testDependencies()

	code, _, stderr := runCLI(t, deps, "configure")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "provide configuration flags") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}
