// Tokengen issues signed identity tokens for local testing, standing in
// for the external identity service that shares the same signing key.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"github.com/hwannow/PartyUp/auth"
	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/internal"
)

func main() {
	userID := flag.String("user", "", "user id to embed in the token")
	displayName := flag.String("name", "", "display name to embed in the token")
	flag.Parse()

	if *userID == "" {
		log.Fatal("missing -user")
	}

	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	provider := auth.NewTokenProvider([]byte(config.IdentityKey), config.AuthTokenDuration)
	token, err := provider.Issue(auth.Identity{
		UserID:      domain.UserID(*userID),
		DisplayName: *displayName,
	})
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
