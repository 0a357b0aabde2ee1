package main

import (
	"github.com/sirupsen/logrus"

	"github.com/22chandu94/DragonsDashboard/internal/config"
	"github.com/22chandu94/DragonsDashboard/internal/metrics"
	"github.com/22chandu94/DragonsDashboard/internal/metrics/datadog"
	"github.com/22chandu94/DragonsDashboard/internal/metrics/prompush"
)

// setupMetrics installs the configured backend and returns a function that
// flushes it. A backend that fails to initialize leaves metrics disabled.
func setupMetrics(m config.Metrics, job string, log logrus.FieldLogger) (flush func()) {
	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case "pushgateway":
		b, err = prompush.NewBackend(job, m.PushgatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       m.DatadogAddr,
			Namespace:  m.Namespace,
			GlobalTags: m.Tags,
		})
	case "", "none":
		log.WithField("backend", m.Backend).Debug("metrics disabled")
		return func() {}
	default:
		log.WithField("backend", m.Backend).Warn("unknown metrics backend; metrics disabled")
		return func() {}
	}
	if err != nil {
		log.WithError(err).WithField("backend", m.Backend).Warn("metrics backend init failed; using nop")
		return func() {}
	}

	log.WithFields(logrus.Fields{"backend": m.Backend, "job": job}).Info("metrics enabled")
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.WithError(err).Warn("metrics flush")
		}
	}
}
