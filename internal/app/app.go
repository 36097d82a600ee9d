package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/logger"
	"github.com/abhisek/gradewise/internal/router"
	"github.com/abhisek/gradewise/internal/screen"
	"github.com/abhisek/gradewise/internal/screens/editor"
	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/ui/layout"
)

// Options holds the dependencies of the terminal editor.
type Options struct {
	Adapter *gradesync.Adapter
	Notices *gradesync.NoticeLog
	Events  store.EventRepo // optional; enables the history view
	Log     *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	log    *logger.Logger
	width  int
	height int
}

// newAppModel creates a new AppModel with the weight editor as root screen.
func newAppModel(opts Options) AppModel {
	if opts.Notices == nil {
		opts.Notices = &gradesync.NoticeLog{}
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	root := editor.New(opts.Adapter, opts.Notices, opts.Events)
	return AppModel{
		router: router.New(root),
		log:    opts.Log,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if content := m.render(); content != "" {
		v.SetContent(content)
	}
	return v
}

// render draws the full frame, or nothing before the first window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", layout.Status{}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kh, ok := active.(screen.KeyHintProvider); ok {
		return kh.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Adapter == nil {
		return fmt.Errorf("app: adapter is required")
	}
	defer opts.Adapter.Close()

	m := newAppModel(opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		m.log.Error("program exited with error", "error", err)
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
