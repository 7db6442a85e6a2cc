package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const DEFAULT_SERVER_URL = "http://localhost:3640"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type step int

const (
	stepEnteringServerURL step = iota
	stepCheckingHealth
	stepEnteringUsername
	stepEnteringPassword
	stepLoggingIn
	stepLoadingDashboard
	stepComplete
)

type model struct {
	step         step
	serverURL    string
	username     string
	adminPass    string
	authToken    string
	userCount    int
	entryCount   int
	currentInput string
	message      string
	quitting     bool
}

type healthOKMsg struct{}
type loginSuccessMsg struct{ token string }
type dashboardMsg struct {
	users   int
	entries int
}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	return model{
		step:         stepEnteringServerURL,
		currentInput: DEFAULT_SERVER_URL,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func checkHealth(serverURL string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		resp, err := client.Get(strings.TrimRight(serverURL, "/") + "/health")
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable at %s", serverURL)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("server returned %d on health check", resp.StatusCode)}
		}
		return healthOKMsg{}
	}
}

func loginAdmin(serverURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"action":   "adminLogin",
			"username": username,
			"password": password,
		}
		jsonData, _ := json.Marshal(payload)

		syncURL := strings.TrimRight(serverURL, "/") + "/api/v1/sync"
		req, _ := http.NewRequest("POST", syncURL, bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("login request failed: %w", err)}
		}
		defer resp.Body.Close()

		var envelope struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			Data    struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return errMsg{fmt.Errorf("unexpected response from server")}
		}
		if envelope.Status != "success" || envelope.Data.Token == "" {
			return errMsg{fmt.Errorf("admin login rejected - check username and password")}
		}

		return loginSuccessMsg{token: envelope.Data.Token}
	}
}

func loadDashboard(serverURL, token string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 15 * time.Second}

		payload := map[string]string{
			"action": "adminDashboard",
			"token":  token,
		}
		jsonData, _ := json.Marshal(payload)

		syncURL := strings.TrimRight(serverURL, "/") + "/api/v1/sync"
		req, _ := http.NewRequest("POST", syncURL, bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("dashboard request failed: %w", err)}
		}
		defer resp.Body.Close()

		var envelope struct {
			Status string `json:"status"`
			Data   []struct {
				Entries map[string]int `json:"entries"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return errMsg{fmt.Errorf("unexpected response from server")}
		}
		if envelope.Status != "success" {
			return errMsg{fmt.Errorf("dashboard fetch rejected")}
		}

		total := 0
		for _, row := range envelope.Data {
			for _, n := range row.Entries {
				total += n
			}
		}

		return dashboardMsg{users: len(envelope.Data), entries: total}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			if m.step == stepEnteringServerURL || m.step == stepEnteringUsername || m.step == stepEnteringPassword {
				m.currentInput += msg.String()
			}

		case "enter":
			switch m.step {
			case stepEnteringServerURL:
				if m.currentInput != "" {
					m.serverURL = m.currentInput
					m.currentInput = ""
					m.step = stepCheckingHealth
					m.message = "Checking server..."
					return m, checkHealth(m.serverURL)
				}

			case stepEnteringUsername:
				if m.currentInput != "" {
					m.username = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPassword
				}

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.adminPass = m.currentInput
					m.currentInput = ""
					m.step = stepLoggingIn
					m.message = "Logging in..."
					return m, loginAdmin(m.serverURL, m.username, m.adminPass)
				}

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}
		}

	case healthOKMsg:
		m.step = stepEnteringUsername
		m.message = successStyle.Render("✓ Server is up")

	case loginSuccessMsg:
		m.authToken = msg.token
		m.step = stepLoadingDashboard
		m.message = successStyle.Render("✓ Logged in as " + m.username)
		return m, loadDashboard(m.serverURL, m.authToken)

	case dashboardMsg:
		m.userCount = msg.users
		m.entryCount = msg.entries
		m.step = stepComplete
		m.message = successStyle.Render("✓ Server is ready")

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		switch m.step {
		case stepCheckingHealth:
			m.step = stepEnteringServerURL
			m.currentInput = m.serverURL
		case stepLoggingIn:
			m.step = stepEnteringUsername
		case stepLoadingDashboard:
			m.step = stepEnteringUsername
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("⚙ Vita Server Setup\n\n"))
	if m.message != "" {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepEnteringServerURL:
		s.WriteString(promptStyle.Render("Server URL:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter (ctrl+c to quit)\n")

	case stepCheckingHealth:
		s.WriteString("Checking " + m.serverURL + "...\n")

	case stepEnteringUsername:
		s.WriteString(promptStyle.Render("Admin username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Admin password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn, stepLoadingDashboard:
		s.WriteString("Working...\n")

	case stepComplete:
		s.WriteString(fmt.Sprintf("Registered users: %d\n", m.userCount))
		s.WriteString(fmt.Sprintf("History entries:  %d\n", m.entryCount))
		s.WriteString(dimStyle.Render("\nDefault rewards are seeded automatically on server start.\n"))
		s.WriteString("\nPress Enter to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
