package main

import (
	"context"

	"github.com/cactusdynamics/benchchart"
	"github.com/sirupsen/logrus"
)

func run(ctx context.Context) error {
	return benchchart.NewChartRenderer().Render(ctx)
}

func main() {
	if err := run(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to render benchmark chart")
	}
}
