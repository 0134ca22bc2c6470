package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dockify/internal/presenter"
)

var (
	loginEmail    string
	loginPassword string

	regEmail     string
	regUsername  string
	regFirstName string
	regLastName  string
	regPassword  string
	regConfirm   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var err error
		if loginEmail == "" {
			if loginEmail, err = cli.prompt.ask(ctx, "Email"); err != nil {
				return err
			}
		}
		if loginPassword == "" {
			if loginPassword, err = cli.prompt.ask(ctx, "Password"); err != nil {
				return err
			}
		}

		p := presenter.NewLoginPresenter(cli.auth, cli.log.Named("login"))
		defer p.Close()
		p.Dispatch(presenter.EmailChanged{Email: loginEmail})
		p.Dispatch(presenter.PasswordChanged{Password: loginPassword})
		if !p.State().IsLoginEnabled() {
			return formErrors(p.State().EmailError, p.State().PasswordError)
		}
		p.Dispatch(presenter.Submit{})
		if err := settle(ctx, p); err != nil {
			return err
		}

		effects := drainEffects(os.Stdout, p.Effects())
		if !hasEffect(effects, presenter.NavigateToHome) {
			return errors.New(p.State().Error)
		}
		user, _ := cli.auth.CurrentUser(ctx).Data()
		fmt.Printf("%s Signed in as %s\n", green("✓"), cyan(user.FullName()))
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fields := []struct {
			dst    *string
			prompt string
		}{
			{&regEmail, "Email"},
			{&regUsername, "Username"},
			{&regPassword, "Password"},
			{&regConfirm, "Confirm password"},
		}
		for _, f := range fields {
			if *f.dst != "" {
				continue
			}
			v, err := cli.prompt.ask(ctx, f.prompt)
			if err != nil {
				return err
			}
			*f.dst = v
		}

		p := presenter.NewRegisterPresenter(cli.auth, cli.log.Named("register"))
		defer p.Close()
		p.Dispatch(presenter.EmailChanged{Email: regEmail})
		p.Dispatch(presenter.UsernameChanged{Username: regUsername})
		p.Dispatch(presenter.FirstNameChanged{FirstName: regFirstName})
		p.Dispatch(presenter.LastNameChanged{LastName: regLastName})
		p.Dispatch(presenter.PasswordChanged{Password: regPassword})
		p.Dispatch(presenter.ConfirmPasswordChanged{ConfirmPassword: regConfirm})
		if st := p.State(); !st.IsRegisterEnabled() {
			return formErrors(st.EmailError, st.UsernameError, st.PasswordError, st.ConfirmPasswordError)
		}
		p.Dispatch(presenter.Submit{})
		if err := settle(ctx, p); err != nil {
			return err
		}

		effects := drainEffects(os.Stdout, p.Effects())
		if !hasEffect(effects, presenter.NavigateToLogin) {
			return errors.New(p.State().Error)
		}
		fmt.Printf("Run %s to continue.\n", cyan("dockify login --email "+regEmail))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := cli.auth.Logout(cmd.Context())
		if err := res.Err(); err != nil {
			return errors.New(presenter.UserMessage(err))
		}
		fmt.Printf("%s Signed out\n", green("✓"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := cli.auth.CurrentUser(cmd.Context()).Data()
		if !ok {
			fmt.Printf("%s\n", gray("Not signed in. Run dockify login."))
			return
		}
		fmt.Printf("%s\n", cyan(user.FullName()))
		fmt.Printf("  ID:       %s\n", user.ID)
		fmt.Printf("  Username: %s\n", user.Username)
		fmt.Printf("  Email:    %s\n", user.Email)
		if user.CreatedAt != "" {
			fmt.Printf("  Since:    %s\n", user.CreatedAt)
		}
		fmt.Printf("  Server:   %s\n", cli.cfg.BaseURL)
	},
}

// formErrors joins the non-empty field messages of a form.
func formErrors(msgs ...string) error {
	var errs []error
	for _, m := range msgs {
		if m != "" {
			errs = append(errs, errors.New(m))
		}
	}
	if len(errs) == 0 {
		return errors.New("form is incomplete")
	}
	return errors.Join(errs...)
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when empty)")

	registerCmd.Flags().StringVar(&regEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&regUsername, "username", "", "username")
	registerCmd.Flags().StringVar(&regFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&regLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password (prompted when empty)")
	registerCmd.Flags().StringVar(&regConfirm, "confirm-password", "", "password confirmation (prompted when empty)")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
