package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fortuneseal/internal/client/client"
	"github.com/dmitrijs2005/fortuneseal/internal/client/services"
)

// Export writes a backup file: "export [file]".
func (a *App) Export(ctx context.Context, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	written, err := a.backups.ExportFile(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "백업을 저장했습니다: %s\n", written)
	return nil
}

func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <file>")
	}
	ok, err := Confirm(a.scanner, "현재 데이터를 덮어씁니다. 계속할까요?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.backups.ImportFile(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "백업을 불러왔습니다.")
	return nil
}

// Backup uploads a bundle to the server's archive and prints its key.
func (a *App) Backup(ctx context.Context) error {
	if err := a.requireOnline(); err != nil {
		return err
	}
	key, err := a.backups.ExportRemote(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "원격 백업 완료. 복원 키: %s\n", key)
	return nil
}

func (a *App) Restore(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: restore <key>")
	}
	if err := a.requireOnline(); err != nil {
		return err
	}
	ok, err := Confirm(a.scanner, "현재 데이터를 덮어씁니다. 계속할까요?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.backups.ImportRemote(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "원격 백업을 복원했습니다.")
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	ok, err := Confirm(a.scanner, "모든 기록과 설정을 지웁니다. 계속할까요?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.backups.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "초기화했습니다.")
	return nil
}

func (a *App) requireOnline() error {
	switch a.Mode() {
	case ModeDisabled:
		return services.ErrOffline
	case ModeOffline:
		return client.ErrUnavailable
	default:
		return nil
	}
}

// describeError turns well-known failures into a user-facing line.
func describeError(err error) string {
	switch {
	case errors.Is(err, services.ErrOffline), errors.Is(err, client.ErrUnavailable):
		return "서버에 연결할 수 없습니다. 로컬 기능은 계속 사용할 수 있습니다."
	case errors.Is(err, client.ErrBackupsDisabled):
		return "서버에서 원격 백업이 비활성화되어 있습니다."
	default:
		return "Error: " + err.Error()
	}
}
