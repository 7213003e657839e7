package cmd

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/api"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/testutil"
	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/whatsapp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testDatabaseID = "0f4e5a1c-93b2-4d7e-a1f0-5c3d2e1b4a69"

// testEnv isolates config and points both API clients at mock servers.
type testEnv struct {
	notion   *testutil.MockServer
	whatsapp *testutil.MockServer
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	resetAllFlags()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NOTION_TOKEN", "secret_test")
	t.Setenv("DATABASE_ID", testDatabaseID)
	t.Setenv("WHATSAPP_NUMBER", "+55 11 99999-0000")
	t.Setenv("WHATSAPP_TOKEN", "wa-token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "1099")
	t.Setenv("BOARDNOTIFIER_LOG_FILE", "")
	t.Setenv("NO_COLOR", "1")

	env := &testEnv{
		notion:   testutil.NewMockServer(t),
		whatsapp: testutil.NewMockServer(t),
		out:      new(bytes.Buffer),
		errOut:   new(bytes.Buffer),
	}

	origAPI := apiNewFunc
	apiNewFunc = func(token string, opts ...api.Option) *api.Client {
		return api.New(token, append(opts, api.WithEndpoint(env.notion.URL()))...)
	}
	origWA := whatsappNewFunc
	whatsappNewFunc = func(token, phoneNumberID string, opts ...whatsapp.Option) *whatsapp.Client {
		return whatsapp.New(token, phoneNumberID, append(opts, whatsapp.WithEndpoint(env.whatsapp.URL()))...)
	}
	origInteractive := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() {
		apiNewFunc = origAPI
		whatsappNewFunc = origWA
		isInteractive = origInteractive
	})

	rootCmd.SetOut(env.out)
	rootCmd.SetErr(env.errOut)
	return env
}

// run executes the root command with args.
func (e *testEnv) run(args ...string) error {
	rootCmd.SetArgs(args)
	return Execute()
}

// acceptMessages makes the WhatsApp mock accept every message.
func (e *testEnv) acceptMessages(t *testing.T) {
	t.Helper()
	e.whatsapp.HandleJSON(http.MethodPost, "/messages", http.StatusOK, testutil.LoadFixture(t, "whatsapp_sent.json"))
}

// sentBodies returns the text bodies received by the WhatsApp mock.
func (e *testEnv) sentBodies(t *testing.T) []string {
	t.Helper()
	var bodies []string
	for _, req := range e.whatsapp.RequestsTo("/messages") {
		var msg struct {
			To   string `json:"to"`
			Text struct {
				Body string `json:"body"`
			} `json:"text"`
		}
		if err := req.DecodeBody(&msg); err != nil {
			t.Fatalf("decoding sent message: %v", err)
		}
		bodies = append(bodies, msg.Text.Body)
	}
	return bodies
}

func resetAllFlags() {
	verbose = false
	outputFormat = ""
	databaseFlag = ""
	resetAssignedFlags()
	resetUnassignedFlags()
	resetTasksFlags()
	resetDatabaseFlags()
	clearChanged(rootCmd)
}

// clearChanged forgets which flags were set by earlier Execute calls so
// mutually exclusive groups don't trip across tests.
func clearChanged(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	c.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	for _, sub := range c.Commands() {
		clearChanged(sub)
	}
}
