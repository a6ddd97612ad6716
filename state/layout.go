package state

// Persisted layout keys. These are the only UI flags that survive a
// restart; transient view state stays in memory with the view.
const (
	KeySidebarOpen     = "sidebar_open"
	KeySidebarWidth    = "sidebar_width"
	KeyTheme           = "theme"
	KeyMemoryPanelOpen = "memory_panel_open"
	KeySearchModalOpen = "search_modal_open"
)

var layoutAllowList = []string{
	KeySidebarOpen,
	KeySidebarWidth,
	KeyTheme,
	KeyMemoryPanelOpen,
	KeySearchModalOpen,
}

// LayoutStore persists UI layout flags: sidebar open/width, theme and
// panel/modal visibility.
type LayoutStore struct {
	store *Store
}

// OpenLayout opens the layout store at path.
func OpenLayout(path string) (*LayoutStore, error) {
	store, err := NewStore(path, layoutAllowList)
	if err != nil {
		return nil, err
	}
	return &LayoutStore{store: store}, nil
}

func (l *LayoutStore) SetSidebarOpen(open bool) error {
	return l.store.Set(KeySidebarOpen, open)
}

// SidebarOpen defaults to true when unset.
func (l *LayoutStore) SidebarOpen() bool {
	open := true
	l.store.Get(KeySidebarOpen, &open)
	return open
}

func (l *LayoutStore) SetSidebarWidth(width int) error {
	return l.store.Set(KeySidebarWidth, width)
}

// SidebarWidth defaults to 280 when unset.
func (l *LayoutStore) SidebarWidth() int {
	width := 280
	l.store.Get(KeySidebarWidth, &width)
	return width
}

func (l *LayoutStore) SetTheme(theme string) error {
	return l.store.Set(KeyTheme, theme)
}

// Theme defaults to "system" when unset.
func (l *LayoutStore) Theme() string {
	theme := "system"
	l.store.Get(KeyTheme, &theme)
	return theme
}

func (l *LayoutStore) SetMemoryPanelOpen(open bool) error {
	return l.store.Set(KeyMemoryPanelOpen, open)
}

func (l *LayoutStore) MemoryPanelOpen() bool {
	var open bool
	l.store.Get(KeyMemoryPanelOpen, &open)
	return open
}

func (l *LayoutStore) SetSearchModalOpen(open bool) error {
	return l.store.Set(KeySearchModalOpen, open)
}

func (l *LayoutStore) SearchModalOpen() bool {
	var open bool
	l.store.Get(KeySearchModalOpen, &open)
	return open
}
