package main

import (
	"errors"
	"fmt"
	"time"

	"alcyxob/workouthub/internal/service"

	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed bearer token for a user id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.JWT.Enabled() {
			return errors.New("jwt.secret is not configured")
		}
		ttl := cfg.JWT.Expiration
		if tokenTTL > 0 {
			ttl = tokenTTL
		}

		tokens, err := service.NewTokenService(cfg.JWT.Secret, ttl)
		if err != nil {
			return err
		}
		token, err := tokens.GenerateToken(tokenUser)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id to put in the uid claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to jwt.expiration)")
	_ = tokenCmd.MarkFlagRequired("user")
}
