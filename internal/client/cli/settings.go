package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/common"
)

// settingNames maps the names accepted by "set" to a function that records
// the parsed value in a patch.
var settingNames = map[string]func(p *models.SettingsPatch, v string) error{
	"theme": func(p *models.SettingsPatch, v string) error {
		t := models.Theme(v)
		if t != models.ThemeLight && t != models.ThemeDark && t != models.ThemeSystem {
			return fmt.Errorf("theme %q: %w", v, common.ErrInvalidArgument)
		}
		p.Theme = &t
		return nil
	},
	"quality": func(p *models.SettingsPatch, v string) error {
		q := models.Quality(v)
		if q != models.QualityLow && q != models.QualityMedium && q != models.QualityHigh {
			return fmt.Errorf("quality %q: %w", v, common.ErrInvalidArgument)
		}
		p.RecordingQuality = &q
		return nil
	},
	"autodeletedays": func(p *models.SettingsPatch, v string) error {
		if v == "never" {
			p.AutoDeleteAfterDays = models.SetTo[*int](nil)
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("days %q: %w", v, common.ErrInvalidArgument)
		}
		p.AutoDeleteAfterDays = models.SetTo(&n)
		return nil
	},
	"autosync":            boolSetting(func(p *models.SettingsPatch) **bool { return &p.AutoSync }),
	"wifionly":            boolSetting(func(p *models.SettingsPatch) **bool { return &p.SyncOnWifiOnly }),
	"charging":            boolSetting(func(p *models.SettingsPatch) **bool { return &p.SyncWhileCharging }),
	"background":          boolSetting(func(p *models.SettingsPatch) **bool { return &p.BackgroundRecording }),
	"autotranscribe":      boolSetting(func(p *models.SettingsPatch) **bool { return &p.AutoTranscribe }),
	"autodeleteaftersync": boolSetting(func(p *models.SettingsPatch) **bool { return &p.AutoDeleteAfterSync }),
	"security":            boolSetting(func(p *models.SettingsPatch) **bool { return &p.SecurityEnabled }),
	"biometric":           boolSetting(func(p *models.SettingsPatch) **bool { return &p.BiometricEnabled }),
	"encrypt":             boolSetting(func(p *models.SettingsPatch) **bool { return &p.EncryptByDefault }),
}

func boolSetting(field func(p *models.SettingsPatch) **bool) func(p *models.SettingsPatch, v string) error {
	return func(p *models.SettingsPatch, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("value %q: %w", v, common.ErrInvalidArgument)
		}
		*field(p) = &b
		return nil
	}
}

func (a *App) ShowSettings(_ context.Context, _ []string) error {
	return a.printSettings(a.lib.Settings.Get())
}

func (a *App) printSettings(s models.AppSettings) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

func (a *App) ChangeSetting(_ context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	apply, ok := settingNames[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("setting %q: %w", args[0], common.ErrInvalidArgument)
	}
	var p models.SettingsPatch
	if err := apply(&p, args[1]); err != nil {
		return err
	}
	return a.printSettings(a.lib.Settings.Update(p))
}

func (a *App) ResetSettings(_ context.Context, _ []string) error {
	return a.printSettings(a.lib.Settings.Reset())
}
