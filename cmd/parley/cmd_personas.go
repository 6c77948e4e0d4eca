package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPersonasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personas [id]",
		Short: "List available personas, or show one in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newOfflineApp()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return showPersona(a, args[0])
			}
			return listPersonas(a)
		},
	}
	return cmd
}

func listPersonas(a *app) error {
	personas := a.registry.List()

	idWidth, nameWidth := len("ID"), len("NAME")
	for _, p := range personas {
		idWidth = max(idWidth, len(p.ID))
		nameWidth = max(nameWidth, len(p.Name))
	}

	fmt.Printf("%s  %s  %s\n", padRight("ID", idWidth), padRight("NAME", nameWidth), "DESCRIPTION")
	for _, p := range personas {
		fmt.Printf("%s  %s  %s\n", padRight(p.ID, idWidth), padRight(p.Name, nameWidth), p.Description)
	}
	return nil
}

func showPersona(a *app, id string) error {
	p, err := a.registry.Resolve(id)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n", p.Name, p.ID)
	if p.Description != "" {
		fmt.Println(p.Description)
		fmt.Println()
	}
	fmt.Println("Directive:")
	fmt.Println(p.Directive)
	fmt.Println()
	fmt.Println("Preferences:")
	fmt.Println(p.PreferenceList())
	fmt.Println()
	fmt.Println("Stance:")
	fmt.Println(p.Stance.Profile())
	return nil
}
