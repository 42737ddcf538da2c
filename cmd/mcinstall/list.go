package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
	"github.com/sirupsen/logrus"

	"github.com/smarty/mcinstall/contracts"
	"github.com/smarty/mcinstall/shell"
)

type ListApp struct {
	config   contracts.Config
	services services
	logger   logrus.FieldLogger
	stdout   io.Writer
}

func NewListApp(config contracts.Config, services services, logger logrus.FieldLogger, stdout io.Writer) *ListApp {
	return &ListApp{config: config, services: services, logger: logger, stdout: stdout}
}

func (this *ListApp) Run(ctx context.Context) int {
	database, err := shell.OpenInstallationDatabase(ctx, this.config.DatabasePath(), this.services.disk)
	if err != nil {
		this.logger.WithError(err).Error("unable to open installation database")
		return 1
	}
	defer func() { _ = database.Close() }()

	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("NAME", "VERSION", "CREATED", "PATH")
	for _, installation := range database.Installations() {
		table.AddRow(installation.Name, installation.Version, humanize.Time(installation.CreatedAt), installation.Path)
	}
	_, _ = fmt.Fprintln(this.stdout, table)
	return 0
}
