// Package env assembles a node's environment from command line flags
// and TWOBOARDS_* environment variables.
package env

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/denisbrodbeck/machineid"

	"github.com/moe2code/twoboards.go/pkg/bus"
	"github.com/moe2code/twoboards.go/pkg/bus/mqtt"
	"github.com/moe2code/twoboards.go/pkg/bus/stream"
	"github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/nvram"
	"github.com/moe2code/twoboards.go/pkg/power"
)

// MachineID retrieves the unique ID identifying the machine.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		panic(err)
	}
	return id
}

// Config provides common options to set up a node.
type Config struct {
	// MQTTBrokerURL specifies the MQTT broker backing the bus.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string

	// NodeID is this node's origin identity on the bus.
	NodeID string

	// LinkAddr, when set, selects the direct point-to-point stream
	// link instead of the brokered bus. e.g. host:port to dial,
	// listen://:port to wait for the peer.
	LinkAddr string

	// StateDir holds the durable state: the score record, the
	// latched power flags and the wake line sentinel.
	StateDir string
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/twoboards/",
	StateDir:      ".",
}

func init() {
	if val := os.Getenv("TWOBOARDS_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("TWOBOARDS_LINK"); val != "" {
		defaultConfig.LinkAddr = val
	}
	if val := os.Getenv("TWOBOARDS_STATE_DIR"); val != "" {
		defaultConfig.StateDir = val
	}
	if val := os.Getenv("TWOBOARDS_ID"); val != "" {
		defaultConfig.NodeID = val
	} else {
		defaultConfig.NodeID = MachineID()
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.NodeID, "id", defaultConfig.NodeID, "Node ID on the bus")
	flag.StringVar(&defaultConfig.LinkAddr, "link", defaultConfig.LinkAddr,
		"Direct peer link address instead of MQTT; listen://ADDR waits for the peer")
	flag.StringVar(&defaultConfig.StateDir, "state-dir", defaultConfig.StateDir, "Durable state directory")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewBus creates the bus from config: the direct stream link when
// LinkAddr is set, the MQTT-backed bus otherwise.
func (c *Config) NewBus() (bus.Bus, error) {
	if c.LinkAddr != "" {
		if addr := strings.TrimPrefix(c.LinkAddr, "listen://"); addr != c.LinkAddr {
			return stream.NewListener(addr), nil
		}
		return stream.Dial(c.LinkAddr), nil
	}
	return mqtt.NewBus(c.MQTTBrokerURL, c.NodeID)
}

// MustNewBus creates the bus or traps. A node without its bus does no
// protocol work at all.
func (c *Config) MustNewBus() bus.Bus {
	b, err := c.NewBus()
	if err != nil {
		framework.Trap(err)
	}
	return b
}

// ScoreRegion locates the durable score record in the state directory.
func (c *Config) ScoreRegion() nvram.Region {
	return &nvram.File{Path: filepath.Join(c.StateDir, "score.rec")}
}

// PowerFlags locates the latched power flags in the state directory.
func (c *Config) PowerFlags() power.FlagStore {
	return &power.FileFlags{Dir: c.StateDir}
}

// WakeLine locates the peer wake sentinel in the state directory.
func (c *Config) WakeLine() power.WakeLine {
	return &power.FileWakeLine{Path: filepath.Join(c.StateDir, "wake")}
}
