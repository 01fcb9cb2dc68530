package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/marinelink/nav_encoder/internal/config"
	"github.com/marinelink/nav_encoder/internal/gps"
	"github.com/marinelink/nav_encoder/internal/nav"
)

// RunConsole subscribes to the snapshot, GPS and NMEA topics and dumps
// everything human-readable to stdout.
func RunConsole() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to route snapshots
	snapToken := client.Subscribe(cfg.TopicSnapshot, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s nav.Snapshot
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: snapshot unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[NAV ]  xte=%s  brgT=%s  brgM=%s  dist=%s  vmg=%s  wpt=%s\n",
			fmtOptional(s.CrossTrackError, "%.1fm"),
			fmtOptional(s.BearingTrue, "%.3frad"),
			fmtOptional(s.BearingMagnetic, "%.3frad"),
			fmtOptional(s.Distance, "%.0fm"),
			fmtOptional(s.VelocityMadeGood, "%.2fm/s"),
			fmtOptionalStr(s.NextPoint),
		)
	})
	snapToken.Wait()
	if snapToken.Error() != nil {
		return snapToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicSnapshot)

	// Subscribe to GPS fixes
	gpsToken := client.Subscribe(cfg.TopicGPS, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f gps.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("console: gps unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[GPS ]  time=%s lat=%.6f lon=%.6f speed=%.1fkn course=%.1f° validity=%s\n",
			f.Time, f.Latitude, f.Longitude, f.SpeedKnots, f.CourseDeg, f.Validity,
		)
	})
	gpsToken.Wait()
	if gpsToken.Error() != nil {
		return gpsToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicGPS)

	// Subscribe to encoded sentences
	nmeaToken := client.Subscribe(cfg.TopicNMEA, 0, func(_ mqtt.Client, msg mqtt.Message) {
		fmt.Printf("[NMEA]  %s\n", msg.Payload())
	})
	nmeaToken.Wait()
	if nmeaToken.Error() != nil {
		return nmeaToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicNMEA)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}

func fmtOptional(p *float64, format string) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf(format, *p)
}

func fmtOptionalStr(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}
