package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create, join, or inspect availability groups",
	}
	cmd.AddCommand(a.groupCreateCmd())
	cmd.AddCommand(a.groupJoinCmd())
	cmd.AddCommand(a.groupMembersCmd())
	return cmd
}

func (a *App) groupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new group and join it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])

			group, err := a.repo.CreateGroup(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("creating group: %w", err)
			}

			if _, err := a.repo.JoinGroup(cmd.Context(), group.InviteCode,
				a.config.Identity.OwnerID, a.config.Identity.DisplayName); err != nil {
				return fmt.Errorf("joining new group: %w", err)
			}

			a.config.Group.DefaultInvite = group.InviteCode
			if err := a.config.Save(); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			fmt.Printf("Created group %s\n", formatHeader(group.Name))
			fmt.Printf("Invite code: %s\n", formatOverlap(group.InviteCode))
			fmt.Println(formatMuted("Share the code; others join with 'whenworks group join <code>'"))
			return nil
		},
	}
}

func (a *App) groupJoinCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a group by invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := displayName
			if name == "" {
				name = a.config.Identity.DisplayName
			}

			group, err := a.repo.JoinGroup(cmd.Context(), args[0], a.config.Identity.OwnerID, name)
			if err != nil {
				return fmt.Errorf("joining group: %w", err)
			}

			a.config.Group.DefaultInvite = group.InviteCode
			if displayName != "" {
				a.config.Identity.DisplayName = displayName
			}
			if err := a.config.Save(); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			fmt.Printf("Joined %s as %s\n", formatHeader(group.Name), name)
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name shown to the group")
	return cmd
}

func (a *App) groupMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List the members of the configured group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			group, err := a.defaultGroup(cmd)
			if err != nil {
				return err
			}

			members, err := a.repo.ListMembers(cmd.Context(), group.ID)
			if err != nil {
				return fmt.Errorf("listing members: %w", err)
			}

			fmt.Printf("%s [%s]\n", formatHeader(group.Name), group.InviteCode)
			for _, p := range members {
				label := p.DisplayName
				if p.ID == a.config.Identity.OwnerID {
					label += formatMuted(" (you)")
				}
				fmt.Printf("  %s\n", label)
			}
			if len(members) == 0 {
				fmt.Println(formatMuted("  no members yet"))
			}
			return nil
		},
	}
}
