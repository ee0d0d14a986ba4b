package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/seek/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
	"github.com/custodia-labs/seek/internal/core/services"
)

// mockSearchService implements driving.SearchService for CLI tests.
type mockSearchService struct {
	records []domain.Crate
	total   int
	err     error
	lastReq domain.SearchRequest
}

var _ driving.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(domain.SearchRequest) {}

func (m *mockSearchService) Run(_ context.Context, req domain.SearchRequest) (*domain.ResultSet, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return domain.NewResultSet("cli-test", req.Normalize(domain.DefaultPageSize), m.records, m.total), nil
}

func (m *mockSearchService) Current() *domain.ResultSet { return nil }

func (m *mockSearchService) Events() <-chan domain.Event { return nil }

func (m *mockSearchService) Close() {}

// mockHydrationService implements driving.HydrationService for CLI tests.
type mockHydrationService struct {
	details map[string]*domain.CrateDetail
}

func (m *mockHydrationService) RequestHydration(string) {}

func (m *mockHydrationService) NeedsHydration(domain.Crate) bool { return false }

func (m *mockHydrationService) Cancel() {}

func (m *mockHydrationService) Detail(_ context.Context, name string) (*domain.CrateDetail, error) {
	if d, ok := m.details[name]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

// mockEnvironmentService implements driving.EnvironmentService for CLI tests.
type mockEnvironmentService struct {
	env *domain.Environment
}

func (m *mockEnvironmentService) Snapshot() *domain.Environment { return m.env }

func (m *mockEnvironmentService) Refresh(context.Context) (*domain.Environment, error) {
	return m.env, nil
}

// mockReadmeService implements driving.ReadmeService for CLI tests.
type mockReadmeService struct {
	text string
	err  error
}

func (m *mockReadmeService) Readme(context.Context, domain.Crate) (string, error) {
	return m.text, m.err
}

type testServices struct {
	search      *mockSearchService
	hydration   *mockHydrationService
	environment *mockEnvironmentService
	readme      *mockReadmeService
	store       *memory.ConfigStore
}

func u64(v uint64) *uint64 { return &v }

// setupTestServices installs mock services holding a small serde fixture.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	updated := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	ts := &testServices{
		search: &mockSearchService{
			records: []domain.Crate{
				{ID: "serde", Name: "serde", Version: "1.0.219", Description: "A generic serialization/deserialization framework", Downloads: u64(1234567), ExactMatch: true, ProjectVersion: "1.0"},
				{ID: "serde_json", Name: "serde_json", Version: "1.0.140", Description: "A JSON serialization file format", InstalledVersion: "1.0.140"},
			},
			total: 2,
		},
		hydration: &mockHydrationService{details: map[string]*domain.CrateDetail{
			"serde": {
				ID:               "serde",
				Name:             "serde",
				Description:      "A generic serialization/deserialization framework",
				MaxVersion:       "1.0.219",
				MaxStableVersion: "1.0.219",
				Repository:       "https://github.com/serde-rs/serde",
				Downloads:        u64(1234567),
				UpdatedAt:        &updated,
				Features:         []string{"derive", "std"},
				Versions:         []string{"1.0.219", "1.0.218"},
			},
		}},
		environment: &mockEnvironmentService{env: &domain.Environment{
			Project: &domain.Project{
				ManifestPath: "/work/Cargo.toml",
				Packages: []domain.Package{{
					Name:    "app",
					Version: "0.1.0",
					Dependencies: []domain.Dependency{
						{Name: "serde", Req: "1.0", Kind: domain.DependencyNormal},
						{Name: "insta", Req: "1", Kind: domain.DependencyDev, Optional: true},
					},
				}},
			},
			Installed: []domain.InstalledBinary{{Name: "ripgrep", Version: "14.1.0", Binaries: []string{"rg"}}},
		}},
		readme: &mockReadmeService{text: "# Serde"},
		store:  memory.NewConfigStore(),
	}

	SetServices(&Services{
		Search:      ts.search,
		Hydration:   ts.hydration,
		Environment: ts.environment,
		Readme:      ts.readme,
		Settings:    services.NewSettingsService(ts.store),
	})
	t.Cleanup(func() { SetServices(nil) })
	return ts
}

// execute runs the root command with args and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	globals = Options{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps flag values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
