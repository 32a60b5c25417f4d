package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/wire"
)

// MessageCmd returns the message command group.
func MessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Exchange messages on an accepted mission",
	}

	cmd.AddCommand(messageSendCmd())
	cmd.AddCommand(messageThreadCmd())
	cmd.AddCommand(messageReadCmd())
	cmd.AddCommand(messageUnreadCmd())
	return cmd
}

func messageSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [mission-id] [body]",
		Short: "Post a message to the mission thread",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			message, err := wire.MessageService().Post(cmd.Context(), primary.PostMessageRequest{
				Caller:    caller,
				MissionID: args[0],
				Body:      args[1],
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Sent %s on %s\n", message.ID, message.MissionID)
			return nil
		},
	}

	registerCallerFlags(cmd)
	return cmd
}

func messageThreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread [mission-id]",
		Short: "Show the mission thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			messages, err := wire.MessageService().Thread(cmd.Context(), caller, args[0])
			if err != nil {
				return err
			}

			if len(messages) == 0 {
				fmt.Println("No messages yet")
				return nil
			}

			fmt.Println()
			mine := color.New(color.FgCyan)
			for _, m := range messages {
				sender := m.SenderRef
				if sender == caller.Ref() {
					sender = mine.Sprint("you")
				}
				unreadMark := ""
				if m.ReadAt == "" && m.SenderRef != caller.Ref() {
					unreadMark = color.New(color.FgYellow).Sprint(" •")
				}
				fmt.Printf("[%s] %s%s: %s\n", m.CreatedAt, sender, unreadMark, m.Body)
			}
			fmt.Println()
			return nil
		},
	}

	registerCallerFlags(cmd)
	return cmd
}

func messageReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [mission-id]",
		Short: "Mark the thread's messages to you as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			if err := wire.MessageService().MarkThreadRead(cmd.Context(), caller, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Thread on %s marked read\n", args[0])
			return nil
		},
	}

	registerCallerFlags(cmd)
	return cmd
}

func messageUnreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unread [mission-id]",
		Short: "Count unread messages addressed to you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			count, err := wire.MessageService().UnreadCount(cmd.Context(), caller, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%d unread\n", count)
			return nil
		},
	}

	registerCallerFlags(cmd)
	return cmd
}
