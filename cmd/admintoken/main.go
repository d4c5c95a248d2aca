// Command admintoken prints a session cookie value for the configured admin,
// for use when the server runs with AUTH_REQUIRED=true.
package main

import (
	"fmt"
	"os"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/pkg/auth"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}

	token := auth.CreateSessionToken(cfg.AdminUserID, auth.SessionSecretBytes(cfg.SessionSecret), cfg.SessionTTL)
	fmt.Fprintf(os.Stdout, "%s=%s\n", auth.SessionCookieName(), token)
}
