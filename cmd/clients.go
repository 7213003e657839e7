package cmd

import (
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/config"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/logging"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/resolve"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/whatsapp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// apiNewFunc is the function used to create Notion clients. It can be
// replaced in tests to inject a mock server endpoint.
var apiNewFunc = api.New

// whatsappNewFunc is the function used to create WhatsApp clients. It can be
// replaced in tests to inject a mock server endpoint.
var whatsappNewFunc = whatsapp.New

// newLogger builds the run logger. Debug entries are only shown with
// --verbose.
func newLogger(cfg *config.Config, cmd *cobra.Command) *zap.Logger {
	return logging.New(logging.Options{
		Verbose: verbose,
		Stderr:  cmd.ErrOrStderr(),
		File:    cfg.LogFile,
	})
}

// newClient creates a Notion client from config, wiring up verbose logging.
func newClient(cfg *config.Config, logger *zap.Logger) *api.Client {
	opts := []api.Option{api.WithNotionVersion(cfg.NotionVersion)}
	if verbose {
		opts = append(opts, api.WithVerbose(logging.Printf(logger.Named("notion"))))
	}
	return apiNewFunc(cfg.NotionToken, opts...)
}

// newSender creates a WhatsApp client, failing with a config error when
// credentials are missing.
func newSender(cfg *config.Config, logger *zap.Logger) (*whatsapp.Client, error) {
	if cfg.WhatsApp.Token == "" {
		return nil, exitcode.Config("no WhatsApp access token configured, set WHATSAPP_TOKEN")
	}
	if cfg.WhatsApp.PhoneNumberID == "" {
		return nil, exitcode.Config("no WhatsApp sender configured, set WHATSAPP_PHONE_NUMBER_ID")
	}
	opts := []whatsapp.Option{whatsapp.WithAPIVersion(cfg.WhatsApp.APIVersion)}
	if verbose {
		opts = append(opts, whatsapp.WithVerbose(logging.Printf(logger.Named("whatsapp"))))
	}
	return whatsappNewFunc(cfg.WhatsApp.Token, cfg.WhatsApp.PhoneNumberID, opts...), nil
}

// requireConfig loads config and validates that a Notion token is present.
func requireConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, exitcode.General("loading config", err)
	}
	if cfg.NotionToken == "" {
		return nil, exitcode.Auth("no Notion token configured, set NOTION_TOKEN or run 'boardnotifier setup'", nil)
	}
	return cfg, nil
}

// requireDatabase returns the ID of the database named by --database, or the
// configured one.
func requireDatabase(cfg *config.Config, client *api.Client) (string, error) {
	identifier := databaseFlag
	if identifier == "" {
		identifier = cfg.DatabaseID
	}
	if identifier == "" {
		return "", exitcode.Usage("no database configured, set DATABASE_ID, pass --database, or run 'boardnotifier setup'")
	}
	db, err := resolve.Database(client, identifier)
	if err != nil {
		return "", err
	}
	return db.ID, nil
}

// requireRecipient returns the --to number or the configured one.
func requireRecipient(cfg *config.Config, to string) (string, error) {
	if to != "" {
		return to, nil
	}
	if cfg.WhatsApp.Number == "" {
		return "", exitcode.Config("WHATSAPP_NUMBER not configured, set it in the environment or pass --to")
	}
	return cfg.WhatsApp.Number, nil
}
