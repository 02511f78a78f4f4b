package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/paperchat/paperchat/internal/client"
	"github.com/paperchat/paperchat/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var baseURL string

	root := &cobra.Command{
		Use:           "paperchat",
		Short:         "Conversational arXiv paper search",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", cfg.Client.BaseURL, "backend endpoint")

	newClient := func() *client.Client {
		return client.New(client.Config{BaseURL: baseURL, Timeout: cfg.Client.Timeout})
	}

	root.AddCommand(
		newChatCmd(newClient),
		newPublishCmd(newClient),
		newPublicCmd(newClient),
		newCategoriesCmd(newClient),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func newPublishCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <session-id>",
		Short: "Make a session publicly viewable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().SetVisibility(cmd.Context(), args[0], true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), noticeStyle.Render("session published: "+args[0]))
			return nil
		},
	}
}

func newPublicCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "public",
		Short: "List publicly shared sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chats, err := newClient().PublicChats(cmd.Context())
			if err != nil {
				return err
			}
			if len(chats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), noticeStyle.Render("no public sessions"))
				return nil
			}
			for _, pc := range chats {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					pc.ID, pc.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newCategoriesCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the supported arXiv categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := newClient().Categories(cmd.Context())
			if err != nil {
				return err
			}

			codes := make([]string, 0, len(categories))
			for code := range categories {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			for _, code := range codes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", code, categories[code])
			}
			return nil
		},
	}
}
