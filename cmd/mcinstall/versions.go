package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/sirupsen/logrus"

	"github.com/smarty/mcinstall/contracts"
	"github.com/smarty/mcinstall/core"
)

type VersionsApp struct {
	config   contracts.Config
	services services
	logger   logrus.FieldLogger
	stdout   io.Writer
}

func NewVersionsApp(config contracts.Config, services services, logger logrus.FieldLogger, stdout io.Writer) *VersionsApp {
	return &VersionsApp{config: config, services: services, logger: logger, stdout: stdout}
}

func (this *VersionsApp) Run(ctx context.Context) int {
	manifest, err := this.services.cache.Load(ctx)
	if err != nil {
		this.logger.WithError(err).Error("unable to load version manifest")
		return 1
	}
	versions, err := core.FilterVersions(manifest.Versions, this.config.Arguments, this.config.ReleaseTypes)
	if err != nil {
		this.logger.WithError(err).Error("unable to filter versions")
		return 2
	}

	table := uitable.New()
	table.AddRow("VERSION", "TYPE", "RELEASED", "")
	for _, version := range versions {
		table.AddRow(version.ID, version.Type, version.ReleaseTime, latestMarker(manifest.Latest, version.ID))
	}
	_, _ = fmt.Fprintln(this.stdout, table)
	return 0
}

func latestMarker(latest contracts.LatestVersions, id string) string {
	switch id {
	case latest.Release:
		return "latest"
	case latest.Snapshot:
		return "latest-snapshot"
	default:
		return ""
	}
}
