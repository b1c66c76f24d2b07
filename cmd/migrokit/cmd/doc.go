// Package cmd implements migrokit's command-line interface.
//
// Grounded on the teacher's pkg/cmd: commands are small constructor
// functions returning a *cli.Command, registered into a
// `group:"commands"` fx.Provide slice in fx.go, and run through a
// single Run(Params) that owns the urfave/cli/v3 app and the
// fx.Lifecycle/fx.Shutdowner wiring (root.go). requireConfig mirrors
// the teacher's Before-hook gate for commands that need a project
// config file.
package cmd
