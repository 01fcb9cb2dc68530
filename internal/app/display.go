package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/marinelink/nav_encoder/internal/config"
	"github.com/marinelink/nav_encoder/internal/gps"
	"github.com/marinelink/nav_encoder/internal/nav"
	"github.com/marinelink/nav_encoder/internal/nmea"
)

// displayData holds the latest values shown on the instrument display.
type displayData struct {
	mu       sync.RWMutex
	snapshot nav.Snapshot
	haveSnap bool
	fix      gps.Fix
	haveFix  bool
}

// RunDisplay drives an SSD1306 over I2C showing cross-track error,
// bearing and destination waypoint, refreshed from MQTT data on a
// ticker.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Printf("display: initialized at 0x%02X", cfg.DisplayI2CAddr)

	data := &displayData{}

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	snapToken := client.Subscribe(cfg.TopicSnapshot, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s nav.Snapshot
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("display: snapshot unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.snapshot = s
		data.haveSnap = true
		data.mu.Unlock()
	})
	snapToken.Wait()
	if snapToken.Error() != nil {
		return snapToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicSnapshot)

	gpsToken := client.Subscribe(cfg.TopicGPS, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f gps.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("display: gps unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.fix = f
		data.haveFix = true
		data.mu.Unlock()
	})
	gpsToken.Wait()
	if gpsToken.Error() != nil {
		return gpsToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicGPS)

	// Display update loop
	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		data.mu.RLock()
		snap, haveSnap := data.snapshot, data.haveSnap
		fix, haveFix := data.fix, data.haveFix
		data.mu.RUnlock()

		lines := renderNavLines(snap, haveSnap, fix, haveFix)
		if err := drawLines(dev, lines); err != nil {
			log.Printf("display: draw error: %v", err)
		}
	}

	return nil
}

// renderNavLines formats up to four display rows from the latest data.
func renderNavLines(snap nav.Snapshot, haveSnap bool, fix gps.Fix, haveFix bool) []string {
	if !haveSnap && !haveFix {
		return []string{"Nav Encoder", "Waiting..."}
	}

	var lines []string
	if haveSnap {
		if snap.CrossTrackError != nil {
			xte := *snap.CrossTrackError
			side := "R"
			if xte < 0 {
				side = "L"
			}
			lines = append(lines, fmt.Sprintf("XTE %.3fNM %s",
				nmea.MetersToNauticalMiles(math.Abs(xte)), side))
		}
		if snap.BearingTrue != nil {
			lines = append(lines, fmt.Sprintf("BRG %05.1fT",
				nmea.NormalizeAngleDeg(*snap.BearingTrue)))
		}
		if snap.NextPoint != nil {
			lines = append(lines, "WPT "+*snap.NextPoint)
		}
	}
	if haveFix {
		lines = append(lines, fmt.Sprintf("SOG %.1fkn %03.0f",
			fix.SpeedKnots, fix.CourseDeg))
	}
	if len(lines) == 0 {
		lines = []string{"Nav Encoder", "No route"}
	}
	return lines
}

func drawLines(dev *ssd1306.Dev, lines []string) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	y := 13
	for _, line := range lines {
		drawer.Dot = fixed.P(0, y)
		drawer.DrawBytes([]byte(line))
		y += 13
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
