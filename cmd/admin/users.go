package main

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/tutorbook/internal/auth"
	"github.com/mmynk/tutorbook/internal/models"
)

func (cli *commandLine) addUser(email, name, roleName, password string) error {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return err
	}
	if len(password) < auth.MinPasswordLength {
		return auth.ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	u := models.NewUser(email, name, hash)
	u.Role = role
	if err := cli.store.CreateUser(cli.ctx, u); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return nil
}

func (cli *commandLine) setRole(email, roleName string) error {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return err
	}

	u, err := cli.store.GetUserByEmail(cli.ctx, email)
	if err != nil {
		return err
	}
	if err := cli.store.UpdateUserRole(cli.ctx, u.ID, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	slog.Info("Role updated", "user_id", u.ID, "from", u.Role, "to", role)
	return nil
}

func (cli *commandLine) resetPassword(email, password string) error {
	if len(password) < auth.MinPasswordLength {
		return auth.ErrWeakPassword
	}

	u, err := cli.store.GetUserByEmail(cli.ctx, email)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := cli.store.UpdatePassword(cli.ctx, u.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("Password reset", "user_id", u.ID)
	return nil
}
