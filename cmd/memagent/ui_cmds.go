package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUICmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Show and change persisted UI preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := (*a).layout
			fmt.Printf("theme: %s\n", layout.Theme())
			fmt.Printf("sidebar: open=%t width=%d\n", layout.SidebarOpen(), layout.SidebarWidth())
			fmt.Printf("memory panel: open=%t\n", layout.MemoryPanelOpen())
			return nil
		},
	}

	theme := &cobra.Command{
		Use:   "theme <light|dark|system>",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "light", "dark", "system":
			default:
				return fmt.Errorf("unknown theme %q", args[0])
			}
			return (*a).layout.SetTheme(args[0])
		},
	}

	sidebar := &cobra.Command{
		Use:   "sidebar <on|off|width>",
		Short: "Toggle the sidebar or set its width",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := (*a).layout
			switch args[0] {
			case "on":
				return layout.SetSidebarOpen(true)
			case "off":
				return layout.SetSidebarOpen(false)
			default:
				width, err := strconv.Atoi(args[0])
				if err != nil || width <= 0 {
					return fmt.Errorf("expected on, off or a positive width")
				}
				return layout.SetSidebarWidth(width)
			}
		},
	}

	cmd.AddCommand(theme, sidebar)
	return cmd
}
