package cmd

import "go.uber.org/fx"

// Module wires every subcommand into the "commands" group root.Run
// collects, mirroring the teacher's pkg/cmd/fx.go.
var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(diff, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(migrate, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(rollback, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(historyCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(initCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(conn, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(visualizeCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
