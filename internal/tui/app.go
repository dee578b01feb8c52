// ABOUTME: Root bubbletea model for the portal TUI
// ABOUTME: Runs session bootstrap, guards screens, and routes navigation

package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/produkportal/produk-cli/internal/api"
	"github.com/produkportal/produk-cli/internal/session"
	"github.com/produkportal/produk-cli/internal/tui/debuglog"
	"github.com/produkportal/produk-cli/internal/tui/login"
	"github.com/produkportal/produk-cli/internal/tui/products"
	"github.com/produkportal/produk-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenProducts
	ScreenForm
	ScreenForbidden
)

type navTarget int

const (
	navLogin navTarget = iota
	navForbidden
)

// Navigator receives the API client's navigation side effects and feeds
// them into the event loop. Safe to call from any goroutine.
type Navigator struct {
	ch chan navTarget
}

// NewNavigator creates a navigator for the TUI.
func NewNavigator() *Navigator {
	return &Navigator{ch: make(chan navTarget, 4)}
}

// SessionExpired implements api.Navigator: switch to the login screen.
func (n *Navigator) SessionExpired() {
	select {
	case n.ch <- navLogin:
	default:
	}
}

// Forbidden implements api.Navigator: switch to the forbidden screen.
func (n *Navigator) Forbidden() {
	select {
	case n.ch <- navForbidden:
	default:
	}
}

// bootstrapDoneMsg is sent when the session bootstrap finishes.
type bootstrapDoneMsg struct{}

// authResultMsg is sent when a login attempt finishes.
type authResultMsg struct {
	auth session.Auth
	err  error
}

// navigateMsg carries a navigation side effect into the update loop.
type navigateMsg struct {
	target navTarget
}

// sessionNoticeMsg carries a session-layer notification.
type sessionNoticeMsg string

// noticeExpiredMsg clears the footer notice.
type noticeExpiredMsg struct{}

// formReadyMsg opens the edit form once the product detail is loaded.
type formReadyMsg struct {
	product *api.Product
	err     error
}

// App is the root model for the TUI
type App struct {
	client  *api.Client
	auth    *session.AuthStore
	nav     *Navigator
	notices <-chan string

	screen Screen
	booted bool
	width  int
	height int
	notice string

	loginScreen *login.Model
	productList *products.Model
	form        *products.Form
}

// NewApp creates the TUI application. notices receives session-layer
// notifications (may be nil).
func NewApp(client *api.Client, auth *session.AuthStore, nav *Navigator, notices <-chan string) *App {
	return &App{
		client:  client,
		auth:    auth,
		nav:     nav,
		notices: notices,
		screen:  ScreenLogin,
	}
}

// Init implements tea.Model: kick off the one-shot session bootstrap and
// start listening for navigation and notices.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.bootstrap(), a.waitNav()}
	if a.notices != nil {
		cmds = append(cmds, a.waitNotice())
	}
	return tea.Batch(cmds...)
}

// bootstrap reconciles auth state with the backend before any screen is
// committed. Protected screens wait for this so an in-flight fetch never
// causes a false unauthenticated redirect.
func (a *App) bootstrap() tea.Cmd {
	client, auth := a.client, a.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		auth.Bootstrap(ctx, client)
		return bootstrapDoneMsg{}
	}
}

func (a *App) waitNav() tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{target: <-a.nav.ch}
	}
}

func (a *App) waitNotice() tea.Cmd {
	return func() tea.Msg {
		return sessionNoticeMsg(<-a.notices)
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case bootstrapDoneMsg:
		a.booted = true
		if a.auth.Authenticated() {
			return a, a.toProducts()
		}
		return a, a.toLogin("")

	case navigateMsg:
		var cmd tea.Cmd
		switch msg.target {
		case navLogin:
			cmd = a.toLogin("Sesi habis")
		case navForbidden:
			a.screen = ScreenForbidden
		}
		return a, tea.Batch(cmd, a.waitNav())

	case sessionNoticeMsg:
		a.notice = string(msg)
		return a, tea.Batch(a.expireNotice(), a.waitNotice())

	case noticeExpiredMsg:
		a.notice = ""
		return a, nil

	case login.SubmitMsg:
		return a, a.doLogin(msg.Email, msg.Password)

	case authResultMsg:
		if msg.err != nil {
			debuglog.Error("login", msg.err)
			cmd := a.loginScreen.Reset()
			a.loginScreen.SetNotice(loginFailureNotice(msg.err))
			return a, cmd
		}
		a.auth.SetAuth(msg.auth)
		return a, a.toProducts()

	case products.NoticeMsg:
		a.notice = string(msg)
		return a, a.expireNotice()

	case products.EditRequestMsg:
		return a, a.loadForEdit(msg.ID)

	case formReadyMsg:
		if msg.err != nil {
			a.notice = "Terjadi error: " + msg.err.Error()
			return a, a.expireNotice()
		}
		a.form = products.NewForm(a.client, msg.product)
		a.screen = ScreenForm
		return a, a.form.Init()

	case products.FormDoneMsg:
		a.form = nil
		a.screen = ScreenProducts
		if msg.Saved && a.productList != nil {
			return a, a.productList.Reload()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.routeToScreen(msg)
}

// handleKey applies global keys, then routes to the current screen.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.screen {
	case ScreenProducts:
		switch msg.String() {
		case "q":
			if a.productList == nil || !a.productList.ModalOpen() {
				return a, tea.Quit
			}
		case "n":
			if a.productList != nil && !a.productList.ModalOpen() {
				a.form = products.NewForm(a.client, nil)
				a.screen = ScreenForm
				return a, a.form.Init()
			}
		}
	case ScreenForbidden:
		switch msg.String() {
		case "esc", "q":
			a.screen = ScreenProducts
			return a, nil
		}
	}

	return a, a.routeToScreen(msg)
}

// routeToScreen forwards a message to the active screen's model.
func (a *App) routeToScreen(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		if a.loginScreen != nil {
			return a.loginScreen.Update(msg)
		}
	case ScreenProducts:
		if a.productList != nil {
			return a.productList.Update(msg)
		}
	case ScreenForm:
		if a.form != nil {
			return a.form.Update(msg)
		}
	}
	return nil
}

// toLogin switches to the login screen with an optional notice.
func (a *App) toLogin(notice string) tea.Cmd {
	a.screen = ScreenLogin
	a.productList = nil
	a.form = nil
	a.loginScreen = login.New()
	if notice != "" {
		a.loginScreen.SetNotice(notice)
	}
	return a.loginScreen.Init()
}

// toProducts switches to the product list.
func (a *App) toProducts() tea.Cmd {
	a.screen = ScreenProducts
	a.loginScreen = nil
	a.productList = products.New(a.client)
	return a.productList.Init()
}

// doLogin exchanges credentials for a session.
func (a *App) doLogin(email, password string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		auth, err := client.Login(ctx, email, password)
		return authResultMsg{auth: auth, err: err}
	}
}

// loadForEdit fetches the product before opening the edit form.
func (a *App) loadForEdit(id int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		product, err := client.GetProduct(ctx, id)
		if err != nil {
			return formReadyMsg{err: err}
		}
		return formReadyMsg{product: &product}
	}
}

func (a *App) expireNotice() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}

// loginFailureNotice flattens an API failure into the login notice line.
func loginFailureNotice(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if msgs := apiErr.Messages(); len(msgs) > 0 {
			return "Gagal masuk: " + strings.Join(msgs, "; ")
		}
	}
	return "Gagal masuk: " + err.Error()
}

// View implements tea.Model
func (a *App) View() string {
	header := styles.Title.Render("Manajemen Produk")
	if user := a.auth.Current().User; user.Name != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, styles.Subtitle.Render("  ·  "+user.Name))
	}

	var body string
	switch a.screen {
	case ScreenLogin:
		if !a.booted {
			body = styles.Subtitle.Render("Memuat sesi...")
		} else if a.loginScreen != nil {
			body = a.loginScreen.View()
		}
	case ScreenProducts:
		if a.productList != nil {
			body = a.productList.View()
		}
	case ScreenForm:
		if a.form != nil {
			body = a.form.View()
		}
	case ScreenForbidden:
		body = styles.Panel.Render("403 — Akses ditolak untuk sumber daya ini.") +
			"\n" + styles.Help.Render("esc kembali")
	}

	out := header + "\n" + body
	if a.notice != "" {
		out += "\n\n" + styles.Notice.Render(a.notice)
	}
	return out
}
