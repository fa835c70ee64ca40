package main

import (
	"fmt"

	"storefront/internal/models"

	"github.com/spf13/cobra"
)

func newRegisterCmd(app *cli) *cobra.Command {
	var in models.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.api().Register(in)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			app.printf("Account created for %s (%s).\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password, at least 6 characters")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(app *cli) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := app.api().Login(email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			app.printf("Welcome, %s.\ntoken: %s\n", res.User.Name, res.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRecoverCmd(app *cli) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Request password recovery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := app.api().Recover(email)
			if err != nil {
				return fmt.Errorf("recovery failed: %w", err)
			}
			app.printf("%s\n", msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
