package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
)

const defaultHistoryLimit = 3

// periodArg parses args[i] as a period, falling back to daily.
func periodArg(args []string, i int) (fortune.Period, error) {
	if len(args) <= i {
		return fortune.Daily, nil
	}
	return fortune.ParsePeriod(strings.ToLower(args[i]))
}

func (a *App) Reveal(ctx context.Context, args []string) error {
	period, err := periodArg(args, 0)
	if err != nil {
		return err
	}

	f, created, err := a.fortunes.Reveal(ctx, period)
	if err != nil {
		return err
	}
	next, err := a.fortunes.Next(period)
	if err != nil {
		return err
	}

	settings, err := a.profiles.Settings(ctx)
	if err != nil {
		return err
	}
	if created && settings.SoundEnabled {
		fmt.Fprint(a.out, "\a")
	}
	if !created {
		fmt.Fprintln(a.out, "이미 열린 봉인입니다.")
	}
	fmt.Fprintln(a.out, renderCard(f, next, settings.Theme, cardWidth()))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	period, err := periodArg(args, 0)
	if err != nil {
		return err
	}

	f, next, err := a.fortunes.Current(ctx, period)
	if err != nil {
		return err
	}
	settings, err := a.profiles.Settings(ctx)
	if err != nil {
		return err
	}

	if f == nil {
		fmt.Fprintln(a.out, renderSealed(period, next, settings.Theme, cardWidth()))
		return nil
	}
	fmt.Fprintln(a.out, renderCard(f, next, settings.Theme, cardWidth()))
	return nil
}

// History prints recent fortunes: "history [period] [all]".
func (a *App) History(ctx context.Context, args []string) error {
	limit := defaultHistoryLimit
	var rest []string
	for _, arg := range args {
		if strings.EqualFold(arg, "all") {
			limit = 0
			continue
		}
		rest = append(rest, arg)
	}

	period, err := periodArg(rest, 0)
	if err != nil {
		return err
	}

	list, err := a.fortunes.History(ctx, period, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintf(a.out, "%s 기록이 없습니다.\n", periodTitle(period))
		return nil
	}

	now := a.clock.Now()
	for _, f := range list {
		label := f.PeriodKey
		if period == fortune.Daily {
			label = dateLabel(f.GeneratedAt, now, a.calendar.Location())
		}
		line := fmt.Sprintf("- [%s] %s", label, f.Text)
		if r := reactionLabel(f.Reaction); r != "" {
			line += " " + r
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// React records feedback: "react <period> <positive|neutral|none> [key]".
// The key defaults to the current bucket.
func (a *App) React(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: react <period> <positive|neutral|none> [key]")
	}
	period, err := periodArg(args, 0)
	if err != nil {
		return err
	}

	raw := strings.ToLower(args[1])
	if raw == "none" {
		raw = ""
	}
	reaction, err := fortune.ParseReaction(raw)
	if err != nil {
		return err
	}

	var key string
	if len(args) > 2 {
		key = args[2]
	} else if key, err = a.calendar.Key(period, a.clock.Now()); err != nil {
		return err
	}

	if err := a.fortunes.React(ctx, period, key, reaction); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "반응을 기록했습니다.")
	return nil
}

// Next prints the time left in one period, or in all of them.
func (a *App) Next(_ context.Context, args []string) error {
	periods := fortune.Periods
	if len(args) > 0 {
		p, err := periodArg(args, 0)
		if err != nil {
			return err
		}
		periods = []fortune.Period{p}
	}

	for _, p := range periods {
		next, err := a.fortunes.Next(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s: %s\n", periodTitle(p), next)
	}
	return nil
}
