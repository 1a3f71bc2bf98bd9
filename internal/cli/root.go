// Package cli wires the terminal chat surface: a cobra entrypoint, a
// bubbletea conversation loop and the employee-id form.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ohshaan/Leave-botanv/internal/intelligence"
	"github.com/ohshaan/Leave-botanv/internal/repository"
	"github.com/ohshaan/Leave-botanv/internal/session"
)

// App holds the collaborators CLI commands run against.
type App struct {
	Sessions    *session.Manager
	Engine      *intelligence.Engine
	Transcripts repository.TranscriptRepo // nil disables persistence

	// IsInteractive reports whether stdin is an interactive terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "leavebot" command. Chat is both the
// default action and an explicit subcommand.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "leavebot",
		Short: "Conversational assistant for ERP leave management",
	}
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	chat := newChatCmd(app)
	root.AddCommand(chat)

	root.RunE = func(cmd *cobra.Command, args []string) error {
		return chat.RunE(cmd, args)
	}
	root.Flags().AddFlagSet(chat.Flags())

	return root
}
