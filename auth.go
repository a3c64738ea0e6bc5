package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/oauth2"
)

// authorize runs the interactive authorization-code flow once, caches the
// resulting token and prints the refresh token so it can be put into the
// config file or .env. After this every command authenticates silently.
func authorize(config *Config) {
	fmt.Println("🚀 Starting Google authorization...")

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		log.Fatalf("Unable to read authorization code: %v", err)
	}

	token, err := oauthConfig.Exchange(context.Background(), authCode)
	if err != nil {
		log.Fatalf("Unable to retrieve token from web: %v", err)
	}

	db, err := openDB(".citasync.db")
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	if err := saveToken(db, tokenAccount, token); err != nil {
		log.Fatalf("Error saving token: %v", err)
	}

	fmt.Println("✅ Authorization successful")
	if token.RefreshToken != "" {
		fmt.Printf("🔑 Refresh token (set refresh_token or OAUTH_REFRESH_TOKEN):\n%s\n", token.RefreshToken)
	}
}
