package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/fortuneseal/internal/client/client"
	"github.com/dmitrijs2005/fortuneseal/internal/client/models"
	"github.com/dmitrijs2005/fortuneseal/internal/client/repositories/fortunes"
	"github.com/dmitrijs2005/fortuneseal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/dbx"
	"github.com/dmitrijs2005/fortuneseal/internal/filex"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/dmitrijs2005/fortuneseal/internal/netx"
)

var ErrOffline = errors.New("oracle server is not reachable")

// BackupService exports, imports and wipes all local state.
//
// Import is a blind overwrite: every document present in the bundle
// replaces the local one, absent documents are left alone. The bundle is
// applied in a single transaction.
type BackupService interface {
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) error
	// ExportFile writes a bundle to path. An empty path or a directory
	// gets the dated default file name.
	ExportFile(ctx context.Context, path string) (string, error)
	ImportFile(ctx context.Context, path string) error
	Reset(ctx context.Context) error
	// ExportRemote uploads a bundle and returns its storage key.
	ExportRemote(ctx context.Context) (string, error)
	ImportRemote(ctx context.Context, key string) error
}

type backupService struct {
	db       *sql.DB
	client   client.Client
	transfer *netx.Transfer
	calendar *fortune.Calendar
	clock    clock.Clock
}

// NewBackupService builds a BackupService. c may be nil when the CLI runs
// without a server; the remote operations then return ErrOffline.
func NewBackupService(db *sql.DB, c client.Client, transfer *netx.Transfer, cal *fortune.Calendar, clk clock.Clock) BackupService {
	if cal == nil {
		cal = fortune.DefaultCalendar()
	}
	return &backupService{db: db, client: c, transfer: transfer, calendar: cal, clock: clk}
}

func (s *backupService) bundle(ctx context.Context) ([]byte, error) {
	meta := metadata.NewSQLiteRepository(s.db)

	read := func(key string) ([]byte, error) {
		v, err := meta.Get(ctx, key)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return v, err
	}

	profile, err := read(common.ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("error reading profile: %w", err)
	}
	settings, err := read(common.SettingsKey)
	if err != nil {
		return nil, fmt.Errorf("error reading settings: %w", err)
	}

	h, err := fortunes.NewSQLiteRepository(s.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading history: %w", err)
	}
	history, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("error encoding history: %w", err)
	}

	return models.NewBackup(profile, settings, history, s.clock.Now()).Marshal()
}

func (s *backupService) Export(ctx context.Context, w io.Writer) error {
	data, err := s.bundle(ctx)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (s *backupService) ExportFile(ctx context.Context, path string) (string, error) {
	name := filex.BackupFileName(s.clock.Now().In(s.calendar.Location()))

	if path == "" {
		path = name
	} else if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, name)
	}

	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}

	data, err := s.bundle(ctx)
	if err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (s *backupService) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading backup: %w", err)
	}
	return s.apply(ctx, data)
}

func (s *backupService) ImportFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading backup: %w", err)
	}
	return s.apply(ctx, data)
}

func (s *backupService) apply(ctx context.Context, data []byte) error {
	b, err := models.ParseBackup(data)
	if err != nil {
		return err
	}

	var history fortune.History
	if b.FortuneHistory != nil {
		if err := json.Unmarshal([]byte(*b.FortuneHistory), &history); err != nil {
			return fmt.Errorf("%w: fortuneHistory: %v", common.ErrorValidation, err)
		}
	}
	for name, doc := range map[string]*string{common.ProfileKey: b.Profile, common.SettingsKey: b.Settings} {
		if doc != nil && !json.Valid([]byte(*doc)) {
			return fmt.Errorf("%w: %s is not valid JSON", common.ErrorValidation, name)
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := metadata.NewSQLiteRepository(tx)
		if b.Profile != nil {
			if err := meta.Set(ctx, common.ProfileKey, []byte(*b.Profile)); err != nil {
				return err
			}
		}
		if b.Settings != nil {
			if err := meta.Set(ctx, common.SettingsKey, []byte(*b.Settings)); err != nil {
				return err
			}
		}
		if history != nil {
			if err := fortunes.NewSQLiteRepository(tx).ReplaceAll(ctx, history); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *backupService) Reset(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return fortunes.NewSQLiteRepository(tx).Clear(ctx)
	})
}

func (s *backupService) ExportRemote(ctx context.Context) (string, error) {
	if s.client == nil {
		return "", ErrOffline
	}

	data, err := s.bundle(ctx)
	if err != nil {
		return "", err
	}

	key, url, err := s.client.BackupUploadURL(ctx)
	if err != nil {
		return "", err
	}
	if err := s.transfer.Upload(ctx, url, data); err != nil {
		return "", fmt.Errorf("error uploading backup: %w", err)
	}
	return key, nil
}

func (s *backupService) ImportRemote(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrOffline
	}

	url, err := s.client.BackupDownloadURL(ctx, key)
	if err != nil {
		return err
	}
	data, err := s.transfer.Download(ctx, url)
	if err != nil {
		return fmt.Errorf("error downloading backup: %w", err)
	}
	return s.apply(ctx, bytes.TrimSpace(data))
}
