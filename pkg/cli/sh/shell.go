// Package sh provides the ishell backed interactive bus shell, used to
// inject protocol frames and watch live traffic during development.
package sh

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/moe2code/twoboards.go/pkg/bus"
	"github.com/moe2code/twoboards.go/pkg/env"
	fx "github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/game"
	"github.com/moe2code/twoboards.go/pkg/score"
)

// Shell injects and observes bus frames interactively.
type Shell struct {
	Interactive bool
	Watch       bool

	Shell  *ishell.Shell
	Config *env.Config
	Bus    bus.Bus

	cancel func()
}

const shellKey = "$shell"

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&HandCmd,
		&ResultCmd,
		&StatsCmd,
		&SleepCmd,
		&RawCmd,
		&WatchCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(conf.NodeID + " > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Connect attaches the shell to the bus as one more origin.
func (s *Shell) Connect() error {
	b, err := s.Config.NewBus()
	if err != nil {
		return err
	}
	b.Notify(func(f bus.Frame) {
		if s.Watch {
			s.Shell.Printf("<< %s  %s\n", f.String(), Describe(f))
		}
	})
	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	s.Bus = b
	if runnable, ok := b.(fx.Runnable); ok {
		go runnable.Run(ctx)
	}
	return nil
}

// Close detaches the shell from the bus.
func (s *Shell) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Run runs the shell, either interactively or over the given args.
func (s *Shell) Run(args ...string) {
	defer s.Close()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is the shared entry point of the cli binary.
func Main() {
	flag.Parse()
	s := New(env.NewConfig())
	if err := s.Connect(); err != nil {
		log.Fatalln(err)
	}
	s.Run(flag.Args()...)
}

// Send transmits a frame and echoes it on the shell.
func Send(c *ishell.Context, f bus.Frame) {
	if err := ShellFrom(c).Bus.Send(f); err != nil {
		c.Err(err)
		return
	}
	c.Printf(">> %s  %s\n", f.String(), Describe(f))
}

// Describe renders the protocol meaning of a frame, empty for traffic
// outside the identifier table.
func Describe(f bus.Frame) string {
	switch game.Classify(f) {
	case game.MsgHandAnnounce:
		if len(f.Data) == 0 {
			return "hand (no payload)"
		}
		hand, err := game.DecodeHand(f.Data[0])
		if err != nil {
			return fmt.Sprintf("hand (%v)", err)
		}
		return "hand " + hand.String()
	case game.MsgResultAnnounce:
		if len(f.Data) == 0 {
			return "result (no payload)"
		}
		result, err := game.DecodeResult(f.Data[0])
		if err != nil {
			return fmt.Sprintf("result (%v)", err)
		}
		return "result: " + result.String()
	case game.MsgStatsRequest:
		return "stats request"
	case game.MsgStatsResponse:
		ledger, err := score.LedgerFromStats(f.Data)
		if err != nil {
			return fmt.Sprintf("stats (%v)", err)
		}
		return "stats: " + ledger.String()
	case game.MsgSleepCommand:
		return "sleep command"
	}
	return ""
}

func parseHand(arg string) (game.Hand, error) {
	switch strings.ToLower(arg) {
	case "rock", "r":
		return game.Rock, nil
	case "paper", "p":
		return game.Paper, nil
	case "scissors", "s":
		return game.Scissors, nil
	}
	n, err := strconv.ParseUint(arg, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown hand %q", arg)
	}
	return game.Hand(n), nil
}

var (
	// HandCmd announces a hand as the initiator would.
	HandCmd = ishell.Cmd{
		Name:    "hand",
		Aliases: []string{"h"},
		Help:    "rock|paper|scissors",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("hand expected"))
				return
			}
			hand, err := parseHand(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			Send(c, bus.Frame{ID: game.HandAnnounceID, Data: []byte{game.EncodeHand(hand)}})
		},
	}

	// ResultCmd announces a round result as the responder would.
	ResultCmd = ishell.Cmd{
		Name: "result",
		Help: "1|2|3|4",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("result code expected"))
				return
			}
			n, err := strconv.ParseUint(c.Args[0], 0, 8)
			if err != nil {
				c.Err(err)
				return
			}
			Send(c, bus.Frame{ID: game.ResultAnnounceID, Data: []byte{byte(n)}})
		},
	}

	// StatsCmd requests game statistics.
	StatsCmd = ishell.Cmd{
		Name: "stats",
		Help: "",
		Func: func(c *ishell.Context) {
			Send(c, bus.Frame{ID: game.StatsID, Remote: true})
		},
	}

	// SleepCmd commands the responder to standby.
	SleepCmd = ishell.Cmd{
		Name: "sleep",
		Help: "",
		Func: func(c *ishell.Context) {
			Send(c, bus.Frame{ID: game.SleepID, Data: []byte{0}})
		},
	}

	// RawCmd sends an arbitrary frame.
	RawCmd = ishell.Cmd{
		Name: "raw",
		Help: "[-r] ID [BYTE ...]",
		Func: func(c *ishell.Context) {
			args := c.Args
			var f bus.Frame
			if len(args) > 0 && args[0] == "-r" {
				f.Remote = true
				args = args[1:]
			}
			if len(args) == 0 {
				c.Err(fmt.Errorf("frame ID expected"))
				return
			}
			id, err := strconv.ParseUint(args[0], 0, 16)
			if err != nil {
				c.Err(err)
				return
			}
			f.ID = uint16(id)
			for _, arg := range args[1:] {
				b, err := strconv.ParseUint(arg, 0, 8)
				if err != nil {
					c.Err(err)
					return
				}
				f.Data = append(f.Data, byte(b))
			}
			Send(c, f)
		},
	}

	// WatchCmd toggles printing of received frames.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "on|off",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			switch {
			case len(c.Args) == 0:
				s.Watch = !s.Watch
			case c.Args[0] == "on":
				s.Watch = true
			case c.Args[0] == "off":
				s.Watch = false
			default:
				c.Err(fmt.Errorf("on or off expected"))
				return
			}
			if s.Watch {
				c.Println("watching")
			} else {
				c.Println("not watching")
			}
		},
	}
)
