package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/illing1230/ai-memory-agent-sub000/agent"
	"github.com/illing1230/ai-memory-agent-sub000/api"
)

func newAgentsCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Browse the agent marketplace and installed agents",
	}

	types := &cobra.Command{
		Use:   "types",
		Short: "List marketplace agent types",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			agentTypes, err := app.client.ListAgentTypes(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range agentTypes {
				fmt.Printf("%s  %s v%s by %s\n    %s\n", t.ID, t.Name, t.Version, t.Publisher, t.Description)
				for _, field := range agent.DescribeSchema(t.ConfigSchema) {
					fmt.Printf("    config: %s\n", agent.FormatField(field))
				}
			}
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List installed agent instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			instances, err := app.client.ListAgentInstances(cmd.Context())
			if err != nil {
				return err
			}
			for _, inst := range instances {
				status := "disabled"
				if inst.Enabled {
					status = "enabled"
				}
				fmt.Printf("%s  %-24s type=%s %s\n", inst.ID, inst.Name, inst.AgentTypeID, status)
			}
			return nil
		},
	}

	var name, roomID, configJSON string
	install := &cobra.Command{
		Use:   "install <agent-type-id>",
		Short: "Install an agent instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}

			var cfg map[string]interface{}
			if configJSON != "" {
				if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
					return fmt.Errorf("parse --config: %w", err)
				}
			}

			inst, err := app.client.CreateAgentInstance(cmd.Context(), api.CreateAgentInstanceRequest{
				AgentTypeID: args[0],
				Name:        name,
				RoomID:      roomID,
				Config:      cfg,
			})
			if err != nil {
				return err
			}
			fmt.Printf("installed %s (%s)\n", inst.Name, inst.ID)
			return nil
		},
	}
	install.Flags().StringVar(&name, "name", "", "instance name")
	install.Flags().StringVar(&roomID, "room", "", "chat room to bind the agent to")
	install.Flags().StringVar(&configJSON, "config", "", "instance config as JSON")

	remove := &cobra.Command{
		Use:   "remove <instance-id>",
		Short: "Uninstall an agent instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.DeleteAgentInstance(cmd.Context(), args[0])
		},
	}

	var (
		description, version              string
		stringFields, numberFields        []string
		intFields, boolFields, enumFields []string
		required                          []string
	)
	publish := &cobra.Command{
		Use:   "publish <name>",
		Short: "Publish an agent type with a config schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}

			props := map[string]interface{}{}
			addField := func(specs []string, build func(desc string) map[string]interface{}) error {
				for _, spec := range specs {
					fieldName, desc, ok := strings.Cut(spec, "=")
					if !ok || fieldName == "" {
						return fmt.Errorf("bad field %q, expected name=description", spec)
					}
					props[fieldName] = build(desc)
				}
				return nil
			}
			if err := addField(stringFields, agent.StringProperty); err != nil {
				return err
			}
			if err := addField(numberFields, agent.NumberProperty); err != nil {
				return err
			}
			if err := addField(intFields, agent.IntegerProperty); err != nil {
				return err
			}
			if err := addField(boolFields, agent.BooleanProperty); err != nil {
				return err
			}
			for _, spec := range enumFields {
				fieldName, rest, ok := strings.Cut(spec, "=")
				desc, values, ok2 := strings.Cut(rest, ":")
				if !ok || !ok2 || fieldName == "" || values == "" {
					return fmt.Errorf("bad enum field %q, expected name=description:v1,v2", spec)
				}
				props[fieldName] = agent.StringEnumProperty(desc, strings.Split(values, ",")...)
			}

			var schema map[string]interface{}
			if len(props) > 0 {
				schema = agent.ObjectSchema(props, required...)
			}

			agentType, err := app.client.CreateAgentType(cmd.Context(), api.CreateAgentTypeRequest{
				Name:         args[0],
				Description:  description,
				Version:      version,
				ConfigSchema: schema,
			})
			if err != nil {
				return err
			}
			fmt.Printf("published %s v%s (%s)\n", agentType.Name, agentType.Version, agentType.ID)
			for _, field := range agent.DescribeSchema(agentType.ConfigSchema) {
				fmt.Printf("    config: %s\n", agent.FormatField(field))
			}
			return nil
		},
	}
	publish.Flags().StringVar(&description, "description", "", "agent type description")
	publish.Flags().StringVar(&version, "version", "0.1.0", "agent type version")
	publish.Flags().StringArrayVar(&stringFields, "string", nil, "string config field, name=description")
	publish.Flags().StringArrayVar(&numberFields, "number", nil, "number config field, name=description")
	publish.Flags().StringArrayVar(&intFields, "int", nil, "integer config field, name=description")
	publish.Flags().StringArrayVar(&boolFields, "bool", nil, "boolean config field, name=description")
	publish.Flags().StringArrayVar(&enumFields, "enum", nil, "enum config field, name=description:v1,v2")
	publish.Flags().StringArrayVar(&required, "required", nil, "required config field name")

	setEnabled := func(use, short string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <instance-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app := *a
				if err := app.requireLogin(); err != nil {
					return err
				}
				_, err := app.client.UpdateAgentInstance(cmd.Context(), args[0],
					api.UpdateAgentInstanceRequest{Enabled: &enabled})
				return err
			},
		}
	}

	cmd.AddCommand(types, publish, list, install, remove,
		setEnabled("enable", "Enable an agent instance", true),
		setEnabled("disable", "Disable an agent instance", false))
	return cmd
}
