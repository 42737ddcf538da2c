package main

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/smarty/mcinstall/contracts"
	"github.com/smarty/mcinstall/shell"
)

type InstallApp struct {
	config   contracts.Config
	services services
	logger   logrus.FieldLogger
}

func NewInstallApp(config contracts.Config, services services, logger logrus.FieldLogger) *InstallApp {
	return &InstallApp{config: config, services: services, logger: logger}
}

func (this *InstallApp) Run(ctx context.Context) int {
	if len(this.config.Arguments) != 1 {
		this.logger.Error("usage: mcinstall install [flags] <version>")
		return 2
	}
	requested := this.config.Arguments[0]

	database, err := shell.OpenInstallationDatabase(ctx, this.config.DatabasePath(), this.services.disk)
	if err != nil {
		this.logger.WithError(err).Error("unable to open installation database")
		return 1
	}
	defer func() { _ = database.Close() }()

	this.logger.Debugf("I will look for cached data in %s", this.config.CacheDirectory)
	manifest, err := this.services.cache.Load(ctx)
	if err != nil {
		this.logger.WithError(err).Error("unable to load version manifest")
		return 1
	}
	info, found := manifest.Find(requested)
	if !found {
		this.logger.Errorf("version %s not found", requested)
		return 1
	}

	installation := contracts.NewInstallation(info.ID, this.config.InstallationRoot(), time.Now().UTC())
	logger := this.logger.WithFields(logrus.Fields{"version": info.ID, "installation": installation.Name})
	started := time.Now()
	if err = this.services.operation.Execute(ctx, info, installation); err != nil {
		this.report(logger, err)
		return 1
	}

	database.Add(installation)
	if err = database.Commit(); err != nil {
		logger.WithError(err).Error("unable to record installation")
		return 1
	}
	logger.WithField("elapsed", time.Since(started).Round(time.Millisecond)).Infof("Installed %s to %s", info.ID, installation.Path)
	return 0
}

func (this *InstallApp) report(logger logrus.FieldLogger, err error) {
	var failures *multierror.Error
	if !errors.As(err, &failures) {
		logger.WithError(err).Error("installation failed")
		return
	}
	for _, failure := range failures.Errors {
		logger.Error(failure)
	}
	logger.Errorf("installation failed: %d errors", len(failures.Errors))
}
