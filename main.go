package main

import (
	"context"

	"github.com/locvowork/report_engine_sample/reportsvc/internal/bootstrap"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: "+err.Error())
		panic(err)
	}

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Application failed: "+err.Error())
		panic(err)
	}
}
