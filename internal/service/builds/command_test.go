package builds

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/domain/paper"
)

// TestRows keeps registry order and tolerates a missing application download.
func TestRows(t *testing.T) {
	t.Parallel()

	project := &paper.Project{
		Builds: []paper.Build{
			{
				Number:    41,
				Time:      "2023-06-20T10:00:00.000Z",
				Channel:   "default",
				Downloads: map[string]paper.Download{paper.DownloadApplication: {Name: "paper-1.20.1-41.jar"}},
			},
			{Number: 42, Channel: "experimental", Promoted: true},
		},
	}

	require.Equal(t, [][]string{
		{"41", "2023-06-20T10:00:00.000Z", "default", "false", "paper-1.20.1-41.jar"},
		{"42", "", "experimental", "true", "-"},
	}, Rows(project))
}

// TestRun_ListsBuilds prints the listing for an explicit version.
func TestRun_ListsBuilds(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/paper/versions/1.21.1/builds" {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write([]byte(`{"project_id":"paper","project_name":"Paper","version":"1.21.1","builds":[
			{"build":7,"time":"t","channel":"default","promoted":false,"changes":[],
			 "downloads":{"application":{"name":"paper-1.21.1-7.jar","sha256":"x"},
			              "mojang-mappings":{"name":"m.jar","sha256":"y"}}}]}`))
	}))
	defer ts.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{
		RegistryURL: ts.URL,
		VersionFile: filepath.Join(dir, "config.json"),
	}))

	var out bytes.Buffer

	err := Run(context.Background(), &Options{ConfigPath: cfgPath, Version: "1.21.1", Out: &out})
	require.NoError(t, err)
	require.Equal(t, "BUILD\tTIME\tCHANNEL\tPROMOTED\tFILE\n7\tt\tdefault\tfalse\tpaper-1.21.1-7.jar\n", out.String())

	// An explicit version never creates the version file.
	_, err = os.Stat(filepath.Join(dir, "config.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
