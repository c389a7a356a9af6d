package entities

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

// Settings holds process-wide user preferences. It is a singleton that is
// only ever overwritten, never deleted.
type Settings struct {
	Theme         Theme  `json:"theme" yaml:"theme"`
	Layout        Layout `json:"layout" yaml:"layout"`
	ReadingGoal   int    `json:"readingGoal" yaml:"readingGoal"`
	AutoSave      bool   `json:"autoSave" yaml:"autoSave"`
	Notifications bool   `json:"notifications" yaml:"notifications"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeLight,
		Layout:        LayoutGrid,
		ReadingGoal:   20,
		AutoSave:      true,
		Notifications: true,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	Theme         *Theme  `json:"theme,omitempty"`
	Layout        *Layout `json:"layout,omitempty"`
	ReadingGoal   *int    `json:"readingGoal,omitempty"`
	AutoSave      *bool   `json:"autoSave,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
}

func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Layout != nil {
		s.Layout = *p.Layout
	}
	if p.ReadingGoal != nil {
		s.ReadingGoal = *p.ReadingGoal
	}
	if p.AutoSave != nil {
		s.AutoSave = *p.AutoSave
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	return s
}

// Validate returns a human readable reason when s holds an unsupported value.
func (s Settings) Validate() string {
	switch s.Theme {
	case ThemeLight, ThemeDark:
	default:
		return "theme must be light or dark"
	}
	switch s.Layout {
	case LayoutGrid, LayoutList:
	default:
		return "layout must be grid or list"
	}
	if s.ReadingGoal <= 0 {
		return "readingGoal must be positive"
	}
	return ""
}
