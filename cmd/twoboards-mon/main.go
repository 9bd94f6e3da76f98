package main

import (
	"flag"
	"log"
	"os"

	"github.com/moe2code/twoboards.go/pkg/bus"
	"github.com/moe2code/twoboards.go/pkg/bus/mqtt"
	"github.com/moe2code/twoboards.go/pkg/cli/sh"
)

var (
	mqttURL = "mqtt://localhost:1883/twoboards/"
)

func init() {
	if val := os.Getenv("TWOBOARDS_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	token := q.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		log.Fatalln(err)
	}

	q.Sub(mqtt.FrameTopic+"/+", func(topic string, payload []byte) {
		var f bus.Frame
		if err := f.Unmarshal(payload); err != nil {
			log.Printf("%s: bad frame: %v", topic, err)
			return
		}
		log.Printf("%s: %s  %s", topic, f.String(), sh.Describe(f))
	})
	<-(chan struct{})(nil)
}
