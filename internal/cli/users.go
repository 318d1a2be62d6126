package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Tsedii1275/campusadmin/internal/core/domain"
)

var (
	userName   string
	userEmail  string
	userRole   string
	userCampus string
	userStatus string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Run:   runUsersList,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Run:   runUsersCreate,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user's name, role, campus and status",
	Args:  cobra.ExactArgs(1),
	Run:   runUsersUpdate,
}

var usersSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> <Active|Inactive>",
	Short: "Activate or deactivate a user",
	Args:  cobra.ExactArgs(2),
	Run:   runUsersSetStatus,
}

var usersResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <id>",
	Short: "Issue a temporary password for a user",
	Args:  cobra.ExactArgs(1),
	Run:   runUsersResetPassword,
}

func init() {
	usersCreateCmd.Flags().StringVar(&userName, "name", "", "full name")
	usersCreateCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	usersCreateCmd.Flags().StringVar(&userRole, "role", "Staff", "role")
	usersCreateCmd.Flags().StringVar(&userStatus, "status", "Active", "Active or Inactive")
	_ = usersCreateCmd.MarkFlagRequired("name")
	_ = usersCreateCmd.MarkFlagRequired("email")

	usersUpdateCmd.Flags().StringVar(&userName, "name", "", "full name")
	usersUpdateCmd.Flags().StringVar(&userRole, "role", "", "role")
	usersUpdateCmd.Flags().StringVar(&userCampus, "campus", "", "campus")
	usersUpdateCmd.Flags().StringVar(&userStatus, "status", "Active", "Active or Inactive")
	_ = usersUpdateCmd.MarkFlagRequired("name")

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersUpdateCmd, usersSetStatusCmd, usersResetPasswordCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	users, err := a.users.Fetch(context.Background())
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tCAMPUS")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Status, u.Campus)
	}
	_ = w.Flush()
}

func runUsersCreate(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	u, err := a.users.Create(context.Background(), domain.CreateUserInput{
		Name:   userName,
		Email:  userEmail,
		Role:   userRole,
		Status: domain.UserStatus(userStatus),
	})
	if err != nil {
		slog.Error("Failed to create user", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Created user %d (%s %s)\n", u.ID, u.Name, u.Avatar)
}

func runUsersUpdate(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	id := mustID(args[0])
	u, err := a.users.Update(context.Background(), id, domain.UpdateUserInput{
		Name:   userName,
		Role:   userRole,
		Campus: userCampus,
		Status: domain.UserStatus(userStatus),
	})
	if err != nil {
		slog.Error("Failed to update user", "id", id, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Updated user %d (%s)\n", u.ID, u.Name)
}

func runUsersSetStatus(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	id := mustID(args[0])
	u, err := a.users.SetStatus(context.Background(), id, domain.UserStatus(args[1]))
	if err != nil {
		slog.Error("Failed to update status", "id", id, "error", err)
		os.Exit(1)
	}
	fmt.Printf("User %d is now %s\n", u.ID, u.Status)
}

func runUsersResetPassword(cmd *cobra.Command, args []string) {
	a := mustApp()
	defer a.close()

	id := mustID(args[0])
	pw, err := a.users.ResetPassword(context.Background(), id)
	if err != nil {
		slog.Error("Failed to reset password", "id", id, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Temporary password for user %d: %s\n", id, pw)
}

func mustApp() *app {
	a, err := newApp()
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	return a
}

func mustID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		slog.Error("Invalid id", "arg", arg)
		os.Exit(1)
	}
	return id
}
