// Command tokengen mints an operator access token for calling the API, for
// use from cron wrappers and local testing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fieldops/billing-backend-go/internal/config"
	"github.com/fieldops/billing-backend-go/internal/pkg/jwt"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	admin := flag.Bool("admin", false, "grant admin privileges")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := jwtService.GenerateOperatorToken(*subject, *admin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires:", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
}
