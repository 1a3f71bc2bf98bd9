package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ohshaan/Leave-botanv/internal/cli"
	"github.com/ohshaan/Leave-botanv/internal/db"
	"github.com/ohshaan/Leave-botanv/internal/erp"
	"github.com/ohshaan/Leave-botanv/internal/intelligence"
	"github.com/ohshaan/Leave-botanv/internal/llm"
	"github.com/ohshaan/Leave-botanv/internal/repository"
	"github.com/ohshaan/Leave-botanv/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Wire the ERP gateway. The base URL must come from the environment;
	// everything downstream of the chat loop talks to this one client.
	erpCfg := erp.LoadConfig()
	if erpCfg.BaseURL == "" {
		return fmt.Errorf("LEAVEBOT_ERP_URL is not set")
	}
	var erpObserver erp.Observer = erp.NoopObserver{}
	if erpCfg.LogCalls {
		erpObserver = erp.NewLogObserver(os.Stderr)
	}
	gateway := erp.NewClient(erpCfg, erpObserver)

	// Determine help document path: env var or bundled default.
	helpPath := os.Getenv("LEAVEBOT_HELP_DOC")
	if helpPath == "" {
		helpPath = "leave_help.txt"
	}

	app := &cli.App{
		Sessions: session.NewManager(gateway, session.LoadHelpDoc(helpPath)),
	}

	// Detect interactive terminal for the chat entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the chat bridge (only when the LLM is enabled). Without it the
	// cascade still answers every deterministic intent.
	var llmClient llm.Client
	var llmObserver llm.Observer = llm.NoopObserver{}
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(os.Stderr)
		}
		llmClient = llm.NewClient(llmCfg, llmObserver)
	}
	app.Engine = intelligence.NewEngine(llmClient, gateway, llmObserver)

	// Transcript persistence is opt-in via LEAVEBOT_DB.
	if dbPath := os.Getenv("LEAVEBOT_DB"); dbPath != "" {
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		app.Transcripts = repository.NewSQLiteTranscriptRepo(database)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
