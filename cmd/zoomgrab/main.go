package main

import (
	"context"
	"zoomgrab/cmd/zoomgrab/commands"
	"zoomgrab/lib/telemetry"
)

func main() {
	ctx := context.Background()
	// no telemetry.json5 in the environment just means no exporters
	telemetry.SetupFromEnv(ctx, "zoomgrab")
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
