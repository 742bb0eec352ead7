package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/cpu"
)

var (
	// Connected - whether a live IRC connection exists right now.
	Connected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "irc_connected",
		Help: "Whether the IRC connection is currently established (1) or not (0)",
	})

	// MessagesPerChannel - chat messages received, per channel.
	MessagesPerChannel = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "irc_messages_total",
			Help: "Total number of chat messages received per channel",
		},
		[]string{"channel"},
	)

	// Pings - server keepalives answered.
	Pings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irc_pings_total",
		Help: "Total number of server PINGs answered",
	})

	// Reconnects - redials, both server-requested and after errors.
	Reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irc_reconnects_total",
		Help: "Total number of reconnects",
	})

	// CPUUsage - process host CPU load.
	CPUUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bot_cpu_percent",
		Help: "Current CPU usage percent",
	})
)

// StartCPUSampler refreshes the CPU gauge every interval for the
// lifetime of the process.
func StartCPUSampler(interval time.Duration) {
	go func() {
		for range time.Tick(interval) {
			percents, err := cpu.Percent(0, false)
			if err != nil || len(percents) == 0 {
				continue
			}
			CPUUsage.Set(percents[0])
		}
	}()
}
