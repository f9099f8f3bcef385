package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/staffing-api-go/pkg/auth"
	"github.com/arnavshah/staffing-api-go/pkg/config"
)

func main() {
	config.LoadDotEnv()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <store name>")
		os.Exit(1)
	}

	name := os.Args[1]
	secret := os.Getenv("API_MASTER_SECRET")
	if secret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in environment or .env")
		os.Exit(1)
	}

	key := auth.New("", secret).GenerateAPIKey(name)
	fmt.Printf("Generated Key for %s:\n%s\n", name, key)
}
