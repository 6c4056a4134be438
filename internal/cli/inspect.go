package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/installers"
	"github.com/arthur-debert/dotsetup/pkg/packagelist"
	"github.com/spf13/cobra"
)

func newDetectCmd(opts *globalOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: MsgDetectShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, deps)
			if err != nil {
				return err
			}

			plan, err := e.dispatcher(installers.Observer{}).Plan(cmd.Context())
			printPlanFields(e, plan)
			if err != nil {
				return err
			}

			switch {
			case plan.Manager.UsesManifest:
				e.printer.Field(MsgCommand, plan.Command.String())
			case plan.Empty:
				e.printer.Field(MsgCommand, plan.Manager.Describe())
			default:
				e.printer.Field(MsgCommand, plan.Manager.Describe()+" <packages>")
			}
			return nil
		},
	}
}

func newListCmd(opts *globalOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Long:  MsgListLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, deps)
			if err != nil {
				return err
			}

			plan, err := e.dispatcher(installers.Observer{}).Plan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if plan.Manager.UsesManifest {
				entries, err := packagelist.LoadBrewfile(plan.ListPath)
				if err != nil {
					return err
				}
				for _, entry := range entries {
					fmt.Fprintln(out, entry.String())
				}
				return nil
			}

			for _, pkg := range plan.Packages {
				fmt.Fprintln(out, pkg)
			}
			return nil
		},
	}
}

func newInstallersCmd(opts *globalOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "installers",
		Short: MsgInstallersShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, deps)
			if err != nil {
				return err
			}

			tasks, err := e.dispatcher(installers.Observer{}).Installers()
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				e.printer.Line(MsgNoInstallers)
				return nil
			}

			for _, t := range tasks {
				suffix := ""
				if _, ok := t.(*installers.ScriptTask); !ok {
					suffix = MsgBuiltinSuffix
				}
				e.printer.Line("%s%s", t.Name(), suffix)
			}
			return nil
		},
	}
}

func newConfigCmd(opts *globalOptions, deps Deps) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if template {
				fmt.Fprint(out, config.GenerateConfigContent())
				return nil
			}

			e, err := newEnv(cmd, opts, deps)
			if err != nil {
				return err
			}
			data, err := config.Marshal(e.config)
			if err != nil {
				return err
			}
			fmt.Fprint(out, strings.TrimRight(string(data), "\n")+"\n")
			return nil
		},
	}
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
}
