package auth

import (
	"fmt"
	"net/http"

	"github.com/dpearce/inkwell/cmd/cli/api"
	"github.com/dpearce/inkwell/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers auth-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(whoamiCmd())
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

// registerCmd creates an account and stores the returned token locally.
func registerCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an Inkwell account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("username, email and password are required")
			}

			var resp authResponse
			payload := map[string]string{"username": username, "email": email, "password": password}
			if err := api.Do(http.MethodPost, "/auth/register", "", payload, &resp); err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}

			if err := config.SaveToken(resp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Registered as %s (id %d). Token stored locally.\n", resp.User.Username, resp.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "Email for the new account")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")

	return cmd
}

// loginCmd logs in and stores the JWT token locally.
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Inkwell API",
		Long:  "Authenticate with the Inkwell API and store a token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			var resp authResponse
			payload := map[string]string{"email": email, "password": password}
			if err := api.Do(http.MethodPost, "/auth/login", "", payload, &resp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if resp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(resp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

// whoamiCmd prints the identity the stored token resolves to.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}

			var user struct {
				ID       int    `json:"id"`
				Username string `json:"username"`
				Email    string `json:"email"`
			}
			if err := api.Do(http.MethodGet, "/auth/me", token, nil, &user); err != nil {
				return err
			}

			fmt.Printf("%s <%s> (id %d)\n", user.Username, user.Email, user.ID)
			return nil
		},
	}
}
