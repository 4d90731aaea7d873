// token mints an access token for local testing of the API.
//
//	token --user-id u-1 --employee-id <employee uuid>
//	token --user-id admin --admin
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/auth"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/jwt"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var (
		actor   auth.Actor
		secret  string
		expires string
	)
	flagSet := pflag.NewFlagSet("token", pflag.ContinueOnError)
	flagSet.StringVar(&actor.UserID, "user-id", "", "user id placed in the token (required)")
	flagSet.StringVar(&actor.EmployeeID, "employee-id", "", "employee id the caller acts for")
	flagSet.BoolVar(&actor.IsAdmin, "admin", false, "grant admin privileges")
	flagSet.StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "HS256 signing secret")
	flagSet.StringVar(&expires, "expires", "1h", "token lifetime")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if actor.UserID == "" {
		return errors.New("--user-id is required")
	}
	if secret == "" {
		return errors.New("--secret or JWT_SECRET is required")
	}

	token, expiresAt, err := jwt.NewJWTService(secret, expires).GenerateAccessToken(actor)
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}
