package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paperchat/paperchat/internal/client"
	"github.com/paperchat/paperchat/internal/model/chat"
	"github.com/paperchat/paperchat/internal/model/paper"
	"github.com/paperchat/paperchat/internal/session"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func newChatCmd(newClient func() *client.Client) *cobra.Command {
	var (
		public     bool
		verbose    bool
		categories []string
		dateFrom   string
		dateTo     string
		authors    string
		sortBy     string
	)

	cmd := &cobra.Command{
		Use:   "chat [session-id]",
		Short: "Start a search session, or resume one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestedID := ""
			if len(args) == 1 {
				requestedID = args[0]
			}

			logger := zap.NewNop()
			if verbose {
				dev, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = dev
			}

			ctrl := session.NewController(newClient(), logger, session.Options{CreatePublic: public})
			id, err := ctrl.Start(cmd.Context(), requestedID)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return fmt.Errorf("no session with id %s", requestedID)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, noticeStyle.Render("session "+id))
			for _, msg := range ctrl.Messages() {
				printMessage(out, msg)
			}

			filters := paper.SearchFilters{
				Categories: categories,
				DateFrom:   dateFrom,
				DateTo:     dateTo,
				Authors:    authors,
				SortBy:     sortBy,
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 64*1024), 64*1024)
			for {
				fmt.Fprint(out, userStyle.Render("you> "))
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())

				switch line {
				case "":
					continue
				case "/quit", "/exit":
					return nil
				case "/publish":
					if err := ctrl.Publish(cmd.Context()); err != nil {
						fmt.Fprintln(out, errorStyle.Render("publish failed: "+err.Error()))
						continue
					}
					fmt.Fprintln(out, noticeStyle.Render("session is now public"))
					continue
				}

				if err := ctrl.RunTurn(cmd.Context(), line, filters); err != nil {
					var partial *session.PartialTurnError
					if errors.As(err, &partial) {
						fmt.Fprintln(out, errorStyle.Render(
							"your message was saved but no reply arrived: "+partial.Err.Error()))
						continue
					}
					fmt.Fprintln(out, errorStyle.Render("turn failed: "+err.Error()))
					continue
				}

				msgs := ctrl.Messages()
				printMessage(out, msgs[len(msgs)-1])
			}
		},
	}

	cmd.Flags().BoolVar(&public, "public", false, "create the session as public")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log controller activity")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "restrict to arXiv categories (repeatable)")
	cmd.Flags().StringVar(&dateFrom, "from", "", "earliest submission date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateTo, "to", "", "latest submission date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&authors, "authors", "", "comma-separated author names")
	cmd.Flags().StringVar(&sortBy, "sort", paper.SortRelevance, "sort order: relevance, lastUpdated, submitted")

	return cmd
}

func printMessage(out io.Writer, msg chat.Message) {
	switch msg.Role {
	case chat.RoleUser:
		fmt.Fprintln(out, userStyle.Render("you: ")+msg.Content)
	default:
		content := msg.Content
		if content == "" {
			content = noticeStyle.Render("(no papers matched)")
		}
		fmt.Fprintln(out, assistantStyle.Render(content))
	}
}
