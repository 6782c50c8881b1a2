package session

// Theme is the site color scheme
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// ParseTheme defaults to dark for anything but "light"
func ParseTheme(v string) Theme {
	if v == "light" {
		return ThemeLight
	}
	return ThemeDark
}

type ThemeStore struct {
	storage Storage
	theme   Theme
}

func LoadTheme(storage Storage) *ThemeStore {
	raw, _ := storage.Get(ThemeKey)
	return &ThemeStore{storage: storage, theme: ParseTheme(raw)}
}

func (s *ThemeStore) Theme() Theme { return s.theme }

func (s *ThemeStore) SetTheme(t Theme) {
	s.theme = t
	s.storage.Set(ThemeKey, t.String())
}

// Toggle flips between dark and light and returns the new theme
func (s *ThemeStore) Toggle() Theme {
	if s.theme == ThemeDark {
		s.SetTheme(ThemeLight)
	} else {
		s.SetTheme(ThemeDark)
	}
	return s.theme
}
