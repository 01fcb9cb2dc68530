package app

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/marinelink/nav_encoder/internal/config"
)

// RunSerialWriter forwards encoded sentences from the NMEA topic to
// the autopilot serial port, one CRLF-terminated line each.
func RunSerialWriter() error {
	cfg := config.Get()

	serialOpts := serial.OpenOptions{
		PortName:        cfg.AutopilotSerialPort,
		BaudRate:        uint(cfg.AutopilotBaudRate),
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return err
	}
	defer port.Close()
	log.Printf("serial: autopilot port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDSerial)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("serial: connected to MQTT broker at %s", cfg.MQTTBroker)

	// MQTT handlers run concurrently; writes to the port must not
	// interleave.
	var mu sync.Mutex
	token := client.Subscribe(cfg.TopicNMEA, 0, func(_ mqtt.Client, msg mqtt.Message) {
		line := string(msg.Payload()) + "\r\n"
		mu.Lock()
		_, err := port.Write([]byte(line))
		mu.Unlock()
		if err != nil {
			log.Printf("serial: write error: %v", err)
		}
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("serial: subscribed to %s", cfg.TopicNMEA)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("serial: shutting down")
	client.Disconnect(250)
	return nil
}
