package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/client/client"
	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/dmitrijs2005/fortuneseal/internal/netx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackupClient struct {
	client.Client
	putURL string
	getURL string
	key    string
}

func (f *fakeBackupClient) BackupUploadURL(context.Context) (string, string, error) {
	return "backups/2024/03/05/k.json", f.putURL, nil
}

func (f *fakeBackupClient) BackupDownloadURL(_ context.Context, key string) (string, error) {
	f.key = key
	return f.getURL, nil
}

// objectStore mimics a presigned bucket.
type objectStore struct {
	mu   sync.Mutex
	body []byte
}

func (o *objectStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		o.body, _ = io.ReadAll(r.Body)
	case http.MethodGet:
		if o.body == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(o.body)
	}
}

func seeded(t *testing.T) (*fortuneFixture, BackupService) {
	t.Helper()
	fx := newFortuneFixture(t, time.Date(2024, 3, 5, 9, 0, 0, 0, kst))
	ctx := context.Background()

	require.NoError(t, fx.profiles.SaveProfile(ctx, fortune.Profile{Name: "지민", HonorificStyle: fortune.HonorificTraveler}))
	_, _, err := fx.svc.Reveal(ctx, fortune.Daily)
	require.NoError(t, err)
	_, _, err = fx.svc.Reveal(ctx, fortune.Yearly)
	require.NoError(t, err)

	return fx, NewBackupService(fx.db, nil, &netx.Transfer{}, fortune.DefaultCalendar(), fx.clock)
}

func TestExport_BundleShape(t *testing.T) {
	_, svc := seeded(t)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Contains(t, raw, "settings")
	assert.Nil(t, raw["settings"], "settings were never saved")
	assert.Equal(t, "2024-03-05T00:00:00.000Z", raw["exportDate"])

	profile, ok := raw["profile"].(string)
	require.True(t, ok, "profile is embedded as a string")
	assert.Contains(t, profile, "지민")

	var h fortune.History
	require.NoError(t, json.Unmarshal([]byte(raw["fortuneHistory"].(string)), &h))
	assert.Equal(t, 2, h.Len())
}

func TestExportResetImport_RoundTrip(t *testing.T) {
	fx, svc := seeded(t)
	ctx := context.Background()

	before, _, err := fx.svc.Current(ctx, fortune.Daily)
	require.NoError(t, err)
	require.NotNil(t, before)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))

	require.NoError(t, svc.Reset(ctx))
	gone, _, err := fx.svc.Current(ctx, fortune.Daily)
	require.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, svc.Import(ctx, &buf))

	after, _, err := fx.svc.Current(ctx, fortune.Daily)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, before.ID, after.ID)
	assert.True(t, before.GeneratedAt.Equal(after.GeneratedAt))

	p, err := fx.profiles.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "지민", p.Name)
}

func TestImport_PartialBundleLeavesOthersAlone(t *testing.T) {
	fx, svc := seeded(t)
	ctx := context.Background()

	err := svc.Import(ctx, strings.NewReader(`{"settings":"{\"consentGiven\":true}"}`))
	require.NoError(t, err)

	s, err := fx.profiles.Settings(ctx)
	require.NoError(t, err)
	assert.True(t, s.ConsentGiven)

	f, _, err := fx.svc.Current(ctx, fortune.Daily)
	require.NoError(t, err)
	assert.NotNil(t, f, "history untouched when absent from the bundle")
}

func TestImport_RejectsMalformed(t *testing.T) {
	fx, svc := seeded(t)
	ctx := context.Background()

	for name, body := range map[string]string{
		"not json":        `{{`,
		"history garbage": `{"fortuneHistory":"[1,2"}`,
		"profile garbage": `{"profile":"nope"}`,
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, svc.Import(ctx, strings.NewReader(body)), common.ErrorValidation)
		})
	}

	p, err := fx.profiles.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "지민", p.Name, "failed imports change nothing")
}

func TestExportFile_DefaultNameAndImportFile(t *testing.T) {
	fx, svc := seeded(t)
	ctx := context.Background()
	dir := t.TempDir()

	path, err := svc.ExportFile(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fortuneseal_backup_2024-03-05.json"), path)

	explicit := filepath.Join(dir, "nested", "mine.json")
	got, err := svc.ExportFile(ctx, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
	_, err = os.Stat(explicit)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))
	require.NoError(t, svc.ImportFile(ctx, path))

	f, _, err := fx.svc.Current(ctx, fortune.Yearly)
	require.NoError(t, err)
	assert.NotNil(t, f)

	require.Error(t, svc.ImportFile(ctx, filepath.Join(dir, "absent.json")))
}

func TestRemoteBackup(t *testing.T) {
	fx, _ := seeded(t)
	ctx := context.Background()

	store := &objectStore{}
	ts := httptest.NewServer(store)
	defer ts.Close()

	fc := &fakeBackupClient{putURL: ts.URL + "/put", getURL: ts.URL + "/get"}
	svc := NewBackupService(fx.db, fc, &netx.Transfer{HTTP: ts.Client()}, nil, clock.NewFixed(fx.clock.Now()))

	key, err := svc.ExportRemote(ctx)
	require.NoError(t, err)
	assert.Equal(t, "backups/2024/03/05/k.json", key)
	require.NotEmpty(t, store.body)

	require.NoError(t, svc.Reset(ctx))
	require.NoError(t, svc.ImportRemote(ctx, key))
	assert.Equal(t, key, fc.key)

	f, _, err := fx.svc.Current(ctx, fortune.Daily)
	require.NoError(t, err)
	assert.NotNil(t, f)
}

func TestRemoteBackup_Offline(t *testing.T) {
	_, svc := seeded(t)

	_, err := svc.ExportRemote(context.Background())
	require.ErrorIs(t, err, ErrOffline)
	require.ErrorIs(t, svc.ImportRemote(context.Background(), "k"), ErrOffline)
}
