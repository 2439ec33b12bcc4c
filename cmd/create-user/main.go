package main

import (
	"autocare_portal_go/config"
	"autocare_portal_go/db"
	"autocare_portal_go/models"
	"autocare_portal_go/services"
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// Creates employee and admin accounts, which cannot be registered through the signup page.
func main() {
	role := flag.String("role", models.RoleEmployee, "account role (customer, employee or admin)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		RemoteURL:   cfg.TursoDatabaseURL,
		AuthToken:   cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("=== Create New %s ===\n", strings.ToUpper((*role)[:1])+(*role)[1:])
	fmt.Println()

	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')

	fmt.Print("Phone (optional): ")
	phone, _ := reader.ReadString('\n')

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	fmt.Println() // New line after password input

	user, err := services.RegisterUser(db.DB, services.RegisterInput{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: string(passwordBytes),
		Role:     *role,
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
	fmt.Println()
	fmt.Printf("The user can now log in at %s/login\n", cfg.AppURL)
}
