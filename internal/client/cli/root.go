package cli

import (
	"context"
	"log"

	"github.com/fatih/color"
)

var (
	online   = color.New(color.FgGreen).SprintFunc()
	offline  = color.New(color.FgYellow).SprintFunc()
	disabled = color.New(color.FgHiBlack).SprintFunc()
)

func (a *App) getStatus() string {
	switch m := a.Mode(); m {
	case ModeOnline:
		return "(" + online(string(m)) + ")"
	case ModeOffline:
		return "(" + offline(string(m)) + ")"
	case ModeDisabled:
		return "(" + disabled("local") + ")"
	default:
		return ""
	}
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to the fortune seal CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.scanner)
}
