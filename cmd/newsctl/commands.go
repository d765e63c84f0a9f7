package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"news-rating-be/internal/config"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/internal/service"
	"news-rating-be/pkg/model"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// newHashCommand prints a bcrypt hash for the allow-list file. The password
// is read from stdin when not given as an argument.
func newHashCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash [password]",
		Short: "Hash a password for allowed_users.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password is empty")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func newCheckUsersCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "check-users",
		Short: "Validate the allow-list file",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := config.LoadCredentials(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			names := make([]string, 0, len(creds.Credentials.Usernames))
			for username := range creds.Credentials.Usernames {
				names = append(names, username)
			}
			sort.Strings(names)

			bad := 0
			for _, username := range names {
				u := creds.Credentials.Usernames[username]
				if _, err := bcrypt.Cost([]byte(u.Password)); err != nil {
					bad++
					fmt.Fprintln(out, color.RedString("✗ %s: password is not a bcrypt hash", username))
					continue
				}
				fmt.Fprintln(out, color.GreenString("✓ %s (%s)", username, u.Name))
			}
			if bad > 0 {
				return fmt.Errorf("%d user(s) with invalid password hashes", bad)
			}
			fmt.Fprintf(out, "%d user(s) OK\n", len(names))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "allowed_users.yaml", "Allow-list YAML file")
	return cmd
}

func newCheckModelCommand() *cobra.Command {
	var prePath, clfPath string

	cmd := &cobra.Command{
		Use:   "check-model",
		Short: "Load both model artifacts and check them against the story form",
		RunE: func(cmd *cobra.Command, args []string) error {
			artifacts, err := model.LoadArtifacts(prePath, clfPath)
			if err != nil {
				return err
			}
			if err := service.VerifyStorySchema(artifacts.Preprocessor, logger.NewNopLogger()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, color.GreenString("✓ artifacts loaded"))
			fmt.Fprintf(out, "features:   %d\n", artifacts.Preprocessor.Width())
			fmt.Fprintf(out, "classes:    %v\n", artifacts.Classifier.Classes())
			fmt.Fprintf(out, "estimators: %s\n", strings.Join(artifacts.Classifier.EstimatorNames(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&prePath, "preprocessor", "preprocessor_dur_hml_5t_trk.json", "Preprocessor artifact")
	cmd.Flags().StringVar(&clfPath, "classifier", "voting_classifier_ex_xgb_dur_hml_5t_trk.json", "Classifier artifact")
	return cmd
}
