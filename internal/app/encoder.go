package app

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/marinelink/nav_encoder/internal/config"
	"github.com/marinelink/nav_encoder/internal/gps"
	"github.com/marinelink/nav_encoder/internal/nav"
	"github.com/marinelink/nav_encoder/internal/nmea"
)

// RunEncoder subscribes to route snapshots, encodes APB and RMB
// sentences with the configured talker, and publishes each produced
// sentence to the NMEA topic. A snapshot with missing mandatory data
// is skipped silently (normal with no active route); a snapshot with
// out-of-range data is logged and skipped, never emitted garbled.
func RunEncoder() error {
	cfg := config.Get()
	talker := nmea.TalkerFromString(cfg.TalkerID)

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDEncoder)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("encoder: connected to MQTT broker at %s", cfg.MQTTBroker)

	var (
		mu      sync.RWMutex
		lastFix gps.Fix
		haveFix bool
	)

	// The latest valid GPS fix backfills velocity made good when the
	// route source does not supply it.
	fixToken := client.Subscribe(cfg.TopicGPS, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f gps.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("encoder: gps unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastFix = f
		haveFix = f.Validity == "A"
		mu.Unlock()
	})
	fixToken.Wait()
	if fixToken.Error() != nil {
		return fixToken.Error()
	}
	log.Printf("encoder: subscribed to %s", cfg.TopicGPS)

	snapToken := client.Subscribe(cfg.TopicSnapshot, 0, func(c mqtt.Client, msg mqtt.Message) {
		var snap nav.Snapshot
		if err := json.Unmarshal(msg.Payload(), &snap); err != nil {
			log.Printf("encoder: snapshot unmarshal error: %v", err)
			return
		}

		mu.RLock()
		fix, ok := lastFix, haveFix
		mu.RUnlock()
		backfillVMG(&snap, fix, ok)

		for _, build := range []func(*nav.Snapshot, nmea.Talker) ([]string, error){
			nmea.BuildAPB,
			nmea.BuildRMB,
		} {
			sentences, err := build(&snap, talker)
			if err != nil {
				// Bad data, not missing data: skip this cycle.
				log.Printf("encoder: %v", err)
				continue
			}
			for _, s := range sentences {
				token := c.Publish(cfg.TopicNMEA, 0, false, s)
				token.Wait()
				if token.Error() != nil {
					log.Printf("encoder: publish error: %v", token.Error())
				}
			}
		}
	})
	snapToken.Wait()
	if snapToken.Error() != nil {
		return snapToken.Error()
	}
	log.Printf("encoder: subscribed to %s, talker %s", cfg.TopicSnapshot, talker)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("encoder: shutting down")
	client.Disconnect(250)
	return nil
}

// backfillVMG fills velocityMadeGood from the latest valid GPS fix
// when the route source left it empty and a true bearing is known.
func backfillVMG(snap *nav.Snapshot, fix gps.Fix, haveFix bool) {
	if snap.VelocityMadeGood != nil || !haveFix || snap.BearingTrue == nil {
		return
	}
	brgDeg := nmea.NormalizeAngleDeg(*snap.BearingTrue)
	vmgKnots := nav.DeriveVMG(fix.SpeedKnots, fix.CourseDeg, brgDeg)
	mps := vmgKnots * 1852.0 / 3600.0
	snap.VelocityMadeGood = &mps
}
