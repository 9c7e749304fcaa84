package main

import (
    "log"

    "github.com/joho/godotenv"

    "onboarding-go/cmd"
)

func main() {
    // Load environment variables
    if err := godotenv.Load(); err != nil {
        log.Println("No .env file found")
    }

    if err := cmd.Execute(); err != nil {
        log.Fatal(err)
    }
}
