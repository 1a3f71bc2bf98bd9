package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ohshaan/Leave-botanv/internal/cli/formatter"
)

func newChatCmd(app *App) *cobra.Command {
	var employee string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive leave chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errors.New("chat requires an interactive terminal")
			}

			empID := strings.TrimSpace(employee)
			if empID == "" {
				empID = strings.TrimSpace(os.Getenv("LEAVEBOT_EMP_ID"))
			}
			if empID == "" {
				var err error
				empID, err = promptEmployeeID()
				if err != nil {
					return err
				}
			}

			ctx := context.Background()
			stopSpinner := formatter.StartSpinner("Loading your leave profile...")
			st, err := app.Sessions.Bind(ctx, empID)
			stopSpinner()
			if err != nil {
				return fmt.Errorf("starting session: %w", err)
			}

			if app.Transcripts != nil {
				if err := app.Transcripts.StartSession(ctx, st.ID, st.EmpID); err != nil {
					fmt.Fprintf(os.Stderr, "warning: transcript log unavailable: %v\n", err)
					app.Transcripts = nil
				}
			}

			model := newChatModel(app, st)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&employee, "employee", "e", "", "employee id to bind the session to")
	return cmd
}

// promptEmployeeID collects the employee id through a themed single-field
// form when neither the flag nor the environment supplies one.
func promptEmployeeID() (string, error) {
	var id string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Employee ID").
				Placeholder("1001").
				Value(&id).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("employee id is required")
					}
					return nil
				}),
		),
	).WithTheme(leavebotHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("reading employee id: %w", err)
	}
	return strings.TrimSpace(id), nil
}
