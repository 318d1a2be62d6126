package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tsedii1275/campusadmin/internal/core/domain"
)

var (
	profileName       string
	profileDepartment string
	currentPassword   string
	newPassword       string
	confirmPassword   string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the administrator profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	Run:   runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update name and department",
	Run:   runProfileUpdate,
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the account password",
	Run:   runChangePassword,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "full name")
	profileUpdateCmd.Flags().StringVar(&profileDepartment, "department", "", "department")
	_ = profileUpdateCmd.MarkFlagRequired("name")
	_ = profileUpdateCmd.MarkFlagRequired("department")

	changePasswordCmd.Flags().StringVar(&currentPassword, "current", "", "current password")
	changePasswordCmd.Flags().StringVar(&newPassword, "new", "", "new password")
	changePasswordCmd.Flags().StringVar(&confirmPassword, "confirm", "", "new password again")
	_ = changePasswordCmd.MarkFlagRequired("current")
	_ = changePasswordCmd.MarkFlagRequired("new")
	_ = changePasswordCmd.MarkFlagRequired("confirm")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd, changePasswordCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	p, err := a.account.FetchProfile(context.Background())
	if err != nil {
		slog.Error("Failed to fetch profile", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Name:       %s\n", p.Name)
	fmt.Printf("Email:      %s\n", p.Email)
	fmt.Printf("Role:       %s\n", p.Role)
	fmt.Printf("Department: %s\n", p.Department)
}

func runProfileUpdate(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	p, err := a.account.UpdateProfile(context.Background(), domain.UpdateProfileInput{
		Name:       profileName,
		Department: profileDepartment,
	})
	if err != nil {
		slog.Error("Failed to update profile", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Profile updated: %s, %s\n", p.Name, p.Department)
}

func runChangePassword(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	err := a.account.ChangePassword(context.Background(), domain.ChangePasswordInput{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	})
	if err != nil {
		slog.Error("Failed to change password", "error", err)
		os.Exit(1)
	}
	fmt.Println("Password changed")
}
