package models

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// AppSettings is the single preferences record of the local profile.
// A nil AutoDeleteAfterDays means recordings are never deleted automatically.
type AppSettings struct {
	Theme               Theme   `json:"theme"`
	RecordingQuality    Quality `json:"recordingQuality"`
	AutoSync            bool    `json:"autoSync"`
	SyncOnWifiOnly      bool    `json:"syncOnWifiOnly"`
	SyncWhileCharging   bool    `json:"syncWhileCharging"`
	BackgroundRecording bool    `json:"backgroundRecording"`
	AutoTranscribe      bool    `json:"autoTranscribe"`
	AutoDeleteAfterSync bool    `json:"autoDeleteAfterSync"`
	AutoDeleteAfterDays *int    `json:"autoDeleteAfterDays"`
	SecurityEnabled     bool    `json:"securityEnabled"`
	BiometricEnabled    bool    `json:"biometricEnabled"`
	EncryptByDefault    bool    `json:"encryptByDefault"`
}

// DefaultSettings returns the factory preferences.
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:               ThemeSystem,
		RecordingQuality:    QualityMedium,
		AutoSync:            true,
		SyncOnWifiOnly:      true,
		SyncWhileCharging:   false,
		BackgroundRecording: true,
		AutoTranscribe:      false,
		AutoDeleteAfterSync: false,
		AutoDeleteAfterDays: Ptr(30),
		SecurityEnabled:     false,
		BiometricEnabled:    false,
		EncryptByDefault:    false,
	}
}

// Clone returns a copy that does not share AutoDeleteAfterDays.
func (s AppSettings) Clone() AppSettings {
	if s.AutoDeleteAfterDays != nil {
		s.AutoDeleteAfterDays = Ptr(*s.AutoDeleteAfterDays)
	}
	return s
}

type SettingsPatch struct {
	Theme               *Theme
	RecordingQuality    *Quality
	AutoSync            *bool
	SyncOnWifiOnly      *bool
	SyncWhileCharging   *bool
	BackgroundRecording *bool
	AutoTranscribe      *bool
	AutoDeleteAfterSync *bool
	AutoDeleteAfterDays Field[*int]
	SecurityEnabled     *bool
	BiometricEnabled    *bool
	EncryptByDefault    *bool
}
