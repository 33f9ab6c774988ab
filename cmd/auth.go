package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jon4hz/quotevault/internal/repository"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var credentialFlags struct {
	Email    string
	Password string
}

func addCredentialFlags(cmd *cobra.Command, withPassword bool) {
	cmd.Flags().StringVar(&credentialFlags.Email, "email", "", "Email address of the account")
	_ = cmd.MarkFlagRequired("email")
	if withPassword {
		cmd.Flags().StringVar(&credentialFlags.Password, "password", "", "Password of the account, read from stdin when empty")
	}
}

// password returns the password flag, or prompts for one. A terminal reads it without echo,
// piped input is read up to the first newline.
func password(cmd *cobra.Command) (string, error) {
	if credentialFlags.Password != "" {
		return credentialFlags.Password, nil
	}
	return readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
}

func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	var pw string
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		pw = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}

var signUpCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pw, err := password(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			user, err := a.engine.Auth().SignUp(cmd.Context(), credentialFlags.Email, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", user.DisplayNameOrEmail())
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and pull your data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pw, err := password(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			user, err := a.engine.Auth().SignIn(cmd.Context(), credentialFlags.Email, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", user.Email)
			if err := a.engine.Sync(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Initial sync incomplete: %v\n", err)
			}
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.engine.Auth().SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		})
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Send a password reset email",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.engine.Auth().ResetPassword(cmd.Context(), credentialFlags.Email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password reset email sent to %s.\n", credentialFlags.Email)
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			user := a.engine.Auth().GetCurrentUser(cmd.Context())
			if user == nil {
				return repository.ErrNotLoggedIn
			}
			printUser(cmd.OutOrStdout(), *user)
			return nil
		})
	},
}

var profileFlags struct {
	Name      string
	AvatarURL string
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the display name or avatar URL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var name, avatar *string
		if cmd.Flags().Changed("name") {
			name = &profileFlags.Name
		}
		if cmd.Flags().Changed("avatar-url") {
			avatar = &profileFlags.AvatarURL
		}
		if name == nil && avatar == nil {
			return errors.New("nothing to update, use --name or --avatar-url")
		}
		return withApp(cmd.Context(), func(a *app) error {
			user, err := a.engine.Auth().UpdateProfile(cmd.Context(), name, avatar)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), *user)
			return nil
		})
	},
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar <image>",
	Short: "Upload a profile picture",
	Long:  `Upload a JPEG, PNG or GIF image. It is cropped to a square and stored as your avatar.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		return withApp(cmd.Context(), func(a *app) error {
			url, err := a.engine.Auth().UploadAvatar(cmd.Context(), data)
			if err != nil {
				return err
			}
			if _, err := a.engine.Auth().UpdateProfile(cmd.Context(), nil, &url); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s avatar: %s\n", humanize.Bytes(uint64(len(data))), url)
			return nil
		})
	},
}

func init() {
	addCredentialFlags(signUpCmd, true)
	addCredentialFlags(loginCmd, true)
	addCredentialFlags(resetPasswordCmd, false)

	profileSetCmd.Flags().StringVar(&profileFlags.Name, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileFlags.AvatarURL, "avatar-url", "", "URL of the avatar image")
	profileCmd.AddCommand(profileSetCmd, profileAvatarCmd)

	rootCmd.AddCommand(signUpCmd, loginCmd, logoutCmd, resetPasswordCmd, whoamiCmd, profileCmd)
}
