package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

func newNotebooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebooks",
		Short: "Inspect and manage stored notebooks",
	}
	cmd.AddCommand(newNotebooksListCommand())
	cmd.AddCommand(newNotebooksShowCommand())
	cmd.AddCommand(newNotebooksDeleteCommand())
	return cmd
}

func newNotebooksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored notebooks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newOfflineApp()
			if err != nil {
				return err
			}
			infos, err := a.store.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("No notebooks yet.")
				return nil
			}

			keyWidth, personaWidth := len("KEY"), len("PERSONA")
			for _, info := range infos {
				keyWidth = max(keyWidth, len(info.Key))
				personaWidth = max(personaWidth, len(info.PersonaID))
			}

			fmt.Printf("%s  %s  %s  %s\n",
				padRight("KEY", keyWidth), padRight("PERSONA", personaWidth),
				padRight("MODIFIED", 16), "TOPIC")
			for _, info := range infos {
				fmt.Printf("%s  %s  %s  %s\n",
					padRight(info.Key, keyWidth),
					padRight(info.PersonaID, personaWidth),
					padRight(info.Modified.Format("2006-01-02 15:04"), 16),
					info.Topic)
			}
			return nil
		},
	}
}

func newNotebooksShowCommand() *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Print a notebook's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newOfflineApp()
			if err != nil {
				return err
			}
			content, err := a.store.ReadKey(args[0])
			if err != nil {
				return err
			}
			if html {
				return goldmark.Convert([]byte(content), os.Stdout)
			}
			fmt.Println(content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "Render the notebook markdown as HTML")
	return cmd
}

func newNotebooksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newOfflineApp()
			if err != nil {
				return err
			}
			if err := a.store.DeleteKey(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}
