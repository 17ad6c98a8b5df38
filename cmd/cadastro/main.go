package main

import (
	"context"
	"log"
	"os"

	"golden-movie-studio/internal"
)

func main() {
	ctx := context.Background()

	app, err := internal.NewApp(ctx)
	if err != nil {
		log.Fatalf("init app failed: %v", err)
	}
	defer app.Close()

	app.InitControllers()

	if err = app.Run(ctx); err != nil {
		app.Logger().Sugar().Errorf("cadastro stopped with error: %v", err)
		app.Close()
		os.Exit(1)
	}
}
