package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fortuneseal/internal/client/models"
	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
)

func (a *App) ShowProfile(ctx context.Context) error {
	p, err := a.profiles.Profile(ctx)
	if err != nil {
		return err
	}

	name := p.Name
	if name == "" {
		name = "(익명)"
	}
	birth := p.Birthdate
	if birth == "" {
		birth = "-"
	}

	fmt.Fprintf(a.out, "이름:     %s\n", name)
	fmt.Fprintf(a.out, "생일:     %s\n", birth)
	fmt.Fprintf(a.out, "호칭:     %s (%s)\n", p.HonorificStyle, p.HonorificStyle.Suffix())
	fmt.Fprintf(a.out, "시간대:   %s\n", p.Timezone)
	fmt.Fprintf(a.out, "지문:     %s\n", p.Hash())
	return nil
}

// EditProfile interactively updates the profile. Entering "-" clears a field.
func (a *App) EditProfile(ctx context.Context) error {
	p, err := a.profiles.Profile(ctx)
	if err != nil {
		return err
	}

	name, err := GetTextWithDefault(a.scanner, "이름 (- 로 지우기)", p.Name, a.out)
	if err != nil {
		return err
	}
	birth, err := GetTextWithDefault(a.scanner, "생일 YYYY-MM-DD (- 로 지우기)", p.Birthdate, a.out)
	if err != nil {
		return err
	}
	style, err := GetTextWithDefault(a.scanner, "호칭 short|full|traveler", string(p.HonorificStyle), a.out)
	if err != nil {
		return err
	}

	p.Name = clearable(name)
	p.Birthdate = clearable(birth)
	p.HonorificStyle = fortune.HonorificStyle(strings.ToLower(style))

	if err := a.profiles.SaveProfile(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "프로필을 저장했습니다. 새 봉인부터 적용됩니다.")
	return nil
}

func clearable(s string) string {
	if s == "-" {
		return ""
	}
	return s
}

func (a *App) ShowSettings(ctx context.Context) error {
	s, err := a.profiles.Settings(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "sound:   %s\n", onOff(s.SoundEnabled))
	fmt.Fprintf(a.out, "motion:  %s\n", onOff(s.MotionEnabled))
	fmt.Fprintf(a.out, "theme:   %s\n", s.Theme)
	fmt.Fprintf(a.out, "consent: %s\n", onOff(s.ConsentGiven))
	return nil
}

// Set changes one setting: "set <sound|motion|theme|consent> <value>".
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set <sound|motion|theme|consent> <value>")
	}

	s, err := a.profiles.Settings(ctx)
	if err != nil {
		return err
	}

	key, value := strings.ToLower(args[0]), strings.ToLower(args[1])
	switch key {
	case "sound":
		s.SoundEnabled, err = parseSwitch(value)
	case "motion":
		s.MotionEnabled, err = parseSwitch(value)
	case "consent":
		s.ConsentGiven, err = parseSwitch(value)
	case "theme":
		s.Theme = models.Theme(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return err
	}

	if err := a.profiles.SaveSettings(ctx, s); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s = %s\n", key, value)
	return nil
}

func parseSwitch(v string) (bool, error) {
	switch v {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", v)
	}
	return b, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
